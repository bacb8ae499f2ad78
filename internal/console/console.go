// Package console detects whether the program was started from a terminal
// or double-clicked, and installs a Ctrl+C handler that keeps working while
// SDL holds a locked OS thread. Only Windows needs either; elsewhere the
// functions are no-ops.
package console

import "strings"

// isExplorerExe reports whether path names explorer.exe, ignoring case and
// directory.
func isExplorerExe(path string) bool {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		path = path[i+1:]
	}
	return strings.EqualFold(path, "explorer.exe")
}
