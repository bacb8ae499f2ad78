//go:build !windows

package console

// IsRunningFromConsole always reports true outside Windows.
func IsRunningFromConsole() bool {
	return true
}

// SetupConsoleHandler is a no-op outside Windows, where os.Interrupt
// delivery works with SDL.
func SetupConsoleHandler(shutdown func()) func() {
	return func() {}
}
