//go:build windows

package console

import (
	"log"
	"os"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleWindow      = kernel32.NewProc("GetConsoleWindow")
	procAllocConsole          = kernel32.NewProc("AllocConsole")
	procFreeConsole           = kernel32.NewProc("FreeConsole")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

// IsRunningFromConsole reports whether the program runs in a terminal.
//
// A console-mode build double-clicked from Explorer frees the console it
// was given and reports false. A GUI-mode build started from a terminal
// allocates its own console and redirects the std streams to it.
func IsRunningFromConsole() bool {
	fromExplorer := isLaunchedFromExplorer()
	if hasConsoleWindow() {
		if fromExplorer {
			procFreeConsole.Call()
			return false
		}
		return true
	}
	if fromExplorer {
		return false
	}

	// AllocConsole rather than AttachConsole: a shared parent console
	// mixes both programs' input.
	procAllocConsole.Call()
	redirectStdStreams()
	return true
}

func hasConsoleWindow() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	return hwnd != 0
}

// redirectStdStreams points os.Std* and the default logger at a freshly
// allocated console.
func redirectStdStreams() {
	stdout, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil || stdout == 0 {
		return
	}
	stderr, err := windows.GetStdHandle(windows.STD_ERROR_HANDLE)
	if err != nil || stderr == 0 {
		return
	}
	os.Stdout = os.NewFile(uintptr(stdout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(stderr), "/dev/stderr")
	if stdin, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE); err == nil && stdin != 0 {
		os.Stdin = os.NewFile(uintptr(stdin), "/dev/stdin")
	}
	log.SetOutput(os.Stderr)
}

func isLaunchedFromExplorer() bool {
	name := processImageName(uint32(os.Getppid()))
	return name != "" && isExplorerExe(name)
}

func processImageName(pid uint32) string {
	if pid == 0 {
		return ""
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:size])
}

var (
	handlerOnce sync.Once
	handlerFn   uintptr
	onCtrlC     func()
	ctrlCOnce   sync.Once
)

// SetupConsoleHandler calls shutdown once on Ctrl+C or Ctrl+Break. Go's
// os.Interrupt delivery is unreliable while SDL owns a locked thread.
//
// SDL replaces console handlers during init; call the returned function
// afterwards to register again.
func SetupConsoleHandler(shutdown func()) func() {
	handlerOnce.Do(func() {
		onCtrlC = shutdown
		handlerFn = windows.NewCallback(func(ctrlType uint32) uintptr {
			if ctrlType != windows.CTRL_C_EVENT && ctrlType != windows.CTRL_BREAK_EVENT {
				return 0
			}
			ctrlCOnce.Do(onCtrlC)
			return 1
		})
	})

	register := func() {
		if ret, _, err := procSetConsoleCtrlHandler.Call(handlerFn, 1); ret == 0 {
			log.Printf("Warning: failed to set console control handler: %v", err)
		}
	}
	register()
	return register
}
