// Package config assembles runtime settings from flags, environment
// variables and an optional settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/padoverlay/internal/input"
)

// EnvPrefix is prepended to every environment variable, e.g.
// PADOVERLAY_ADDR or PADOVERLAY_QUEUE_SIZE.
const EnvPrefix = "PADOVERLAY"

// ErrHelp is returned when -h/--help was requested.
var ErrHelp = pflag.ErrHelp

// Settings are the resolved runtime settings.
type Settings struct {
	Addr          string        `mapstructure:"addr"`
	Profiles      string        `mapstructure:"profiles"`
	QueueSize     int           `mapstructure:"queue-size"`
	AxisThreshold int           `mapstructure:"axis-threshold"`
	AxisInterval  time.Duration `mapstructure:"axis-interval"`
	Tray          bool          `mapstructure:"tray"`
	Verbose       bool          `mapstructure:"verbose"`

	// Positional arguments.
	Profile string       `mapstructure:"-"`
	Layout  input.Family `mapstructure:"-"`
}

func newFlagSet(out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("padoverlay", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringP("config", "c", "", "settings file (yaml, toml or json)")
	fs.String("addr", ":8080", "HTTP listen address for the overlay page")
	fs.StringP("profiles", "p", "profiles", "directory holding profile YAML files")
	fs.Int("queue-size", 256, "events buffered between the input reader and the interpreter")
	fs.Int("axis-threshold", 16384, "minimum absolute axis value that updates the overlay")
	fs.Duration("axis-interval", 16*time.Millisecond, "minimum time between axis updates")
	fs.Bool("tray", runtime.GOOS == "windows", "show a system tray icon")
	fs.BoolP("verbose", "v", false, "log every input event")
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: padoverlay [flags] [profile] [layout]\n\n")
		fmt.Fprintf(out, "  profile  name of the profile to activate (default: first found)\n")
		fmt.Fprintf(out, "  layout   force a device family for every controller: %s\n\n",
			strings.Join(input.FamilyNames(), ", "))
		fs.PrintDefaults()
	}
	return fs
}

// Load parses args (without the program name). Flags override environment
// variables, which override the settings file.
func Load(args []string, out io.Writer) (*Settings, error) {
	fs := newFlagSet(out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	if err := s.positional(fs.Args()); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) positional(args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("too many arguments: %s", strings.Join(args[2:], " "))
	}
	if len(args) > 0 {
		s.Profile = args[0]
	}
	if len(args) > 1 {
		f, ok := input.ParseFamily(args[1])
		if !ok {
			return fmt.Errorf("unknown layout %q (valid: %s)", args[1], strings.Join(input.FamilyNames(), ", "))
		}
		s.Layout = f
	}
	return nil
}

func (s *Settings) validate() error {
	var errs []error
	if s.Profiles == "" {
		errs = append(errs, errors.New("profiles directory must not be empty"))
	}
	if s.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("queue-size must be positive, got %d", s.QueueSize))
	}
	if s.AxisThreshold < 0 || s.AxisThreshold > 32768 {
		errs = append(errs, fmt.Errorf("axis-threshold must be within 0..32768, got %d", s.AxisThreshold))
	}
	if s.AxisInterval < 0 {
		errs = append(errs, fmt.Errorf("axis-interval must not be negative, got %s", s.AxisInterval))
	}
	return errors.Join(errs...)
}
