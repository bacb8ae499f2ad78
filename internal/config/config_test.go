package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soar/padoverlay/internal/input"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", s.Addr)
	}
	if s.Profiles != "profiles" {
		t.Errorf("Profiles = %q, want profiles", s.Profiles)
	}
	if s.QueueSize != 256 || s.AxisThreshold != 16384 {
		t.Errorf("QueueSize, AxisThreshold = %d, %d", s.QueueSize, s.AxisThreshold)
	}
	if s.AxisInterval != 16*time.Millisecond {
		t.Errorf("AxisInterval = %s, want 16ms", s.AxisInterval)
	}
	if s.Profile != "" || s.Layout != input.FamilyUnknown {
		t.Errorf("Profile, Layout = %q, %v, want empty", s.Profile, s.Layout)
	}
}

func TestLoadPositional(t *testing.T) {
	s, err := Load([]string{"--addr", ":9000", "racing", "ps"}, io.Discard)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Addr != ":9000" || s.Profile != "racing" || s.Layout != input.FamilyPlayStation {
		t.Errorf("got %+v", s)
	}

	if _, err := Load([]string{"racing", "neogeo"}, io.Discard); err == nil {
		t.Error("unknown layout should fail")
	}
	if _, err := Load([]string{"a", "xbox", "extra"}, io.Discard); err == nil {
		t.Error("three positional arguments should fail")
	}
}

func TestLoadEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := "addr: \":7000\"\naxis-interval: 32ms\nqueue-size: 64\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PADOVERLAY_QUEUE_SIZE", "128")

	s, err := Load([]string{"--config", path}, io.Discard)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Addr != ":7000" {
		t.Errorf("Addr = %q, want value from file", s.Addr)
	}
	if s.AxisInterval != 32*time.Millisecond {
		t.Errorf("AxisInterval = %s, want 32ms", s.AxisInterval)
	}
	if s.QueueSize != 128 {
		t.Errorf("QueueSize = %d, want env override 128", s.QueueSize)
	}

	s, err = Load([]string{"--config", path, "--queue-size", "16"}, io.Discard)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.QueueSize != 16 {
		t.Errorf("QueueSize = %d, want flag override 16", s.QueueSize)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load([]string{"--help"}, io.Discard); !errors.Is(err, ErrHelp) {
		t.Errorf("--help = %v, want ErrHelp", err)
	}
	if _, err := Load([]string{"--queue-size", "0"}, io.Discard); err == nil {
		t.Error("zero queue size should fail")
	}
	if _, err := Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}, io.Discard); err == nil {
		t.Error("missing settings file should fail")
	}
}
