package main

import (
	"io/fs"
	"testing"

	"github.com/soar/padoverlay/internal/profile"
)

func TestOverlayURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "http://localhost:8080"},
		{"0.0.0.0:9000", "http://localhost:9000"},
		{"127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"[::1]:8080", "http://[::1]:8080"},
		{"overlay.local", "http://overlay.local"},
	}
	for _, tt := range tests {
		if got := overlayURL(tt.addr); got != tt.want {
			t.Errorf("overlayURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestFrontendEmbedded(t *testing.T) {
	files, err := overlayFiles()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"index.html", "overlay.css", "overlay.js"} {
		if _, err := fs.Stat(files, name); err != nil {
			t.Errorf("frontend missing %s: %v", name, err)
		}
	}
}

func TestBundledProfiles(t *testing.T) {
	s, err := profile.Load("profiles", "")
	if err != nil {
		t.Fatalf("Load(profiles) error: %v", err)
	}
	if s.Active().Name != "default" {
		t.Errorf("Active() = %s, want default", s.Active().Name)
	}
	stick, err := s.Get("stick")
	if err != nil {
		t.Fatalf("Get(stick) error: %v", err)
	}
	if stick.Hotkeys().Len() != 2 {
		t.Errorf("stick should use the shared hotkeys, Len() = %d", stick.Hotkeys().Len())
	}
	if s.Active().Hotkeys().Len() != 4 {
		t.Errorf("default hotkeys Len() = %d, want 4", s.Active().Hotkeys().Len())
	}
}
