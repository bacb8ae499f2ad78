package console

import "testing"

func TestIsExplorerExe(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{`C:\Windows\explorer.exe`, true},
		{`C:\WINDOWS\EXPLORER.EXE`, true},
		{"explorer.exe", true},
		{"/usr/bin/explorer.exe", true},
		{`C:\Windows\System32\cmd.exe`, false},
		{`C:\tools\notexplorer.exe`, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isExplorerExe(tt.path); got != tt.want {
			t.Errorf("isExplorerExe(%q) = %t, want %t", tt.path, got, tt.want)
		}
	}
}
