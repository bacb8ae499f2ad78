package tray

import (
	"reflect"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	const url = "http://localhost:8080/?corner=top_left"
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", url}},
		{"darwin", "open", []string{url}},
		{"linux", "xdg-open", []string{url}},
	}
	for _, tt := range tests {
		name, args := browserCommand(tt.goos, url)
		if name != tt.name || !reflect.DeepEqual(args, tt.args) {
			t.Errorf("browserCommand(%q) = %s %v, want %s %v", tt.goos, name, args, tt.name, tt.args)
		}
	}
}

func TestIconEmbedded(t *testing.T) {
	icon := GetIcon()
	if len(icon) < 6 || icon[0] != 0 || icon[2] != 1 {
		t.Errorf("GetIcon() is not an ICO file (%d bytes)", len(icon))
	}
}
