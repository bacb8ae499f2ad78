package profile

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/soar/padoverlay/internal/hotkey"
)

// SharedHotkeysFile is the file in the profile directory whose hotkey tree
// (under its "mappings" key) is used by every profile that has no hotkeys
// of its own. It is not itself a profile.
const SharedHotkeysFile = "hotkeys.yaml"

// Store holds every profile loaded from a directory and the one selected
// as active. Profiles are never modified after Load returns.
type Store struct {
	profiles map[string]*Profile
	order    []string
	active   *Profile
}

// Load reads every *.yaml and *.yml profile in dir and selects active. An
// empty name selects the first profile in directory order.
func Load(dir, active string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ConfigError{Source: dir, Err: err}
	}

	shared, err := loadSharedHotkeys(filepath.Join(dir, SharedHotkeysFile))
	if err != nil {
		log.Printf("Ignoring shared hotkeys: %v", err)
	}

	s := &Store{
		profiles: make(map[string]*Profile),
	}
	var candidates int
	for _, e := range entries {
		if e.IsDir() || !isProfileFile(e.Name()) {
			continue
		}
		candidates++
		path := filepath.Join(dir, e.Name())
		p, err := LoadFile(path)
		if err != nil {
			log.Printf("Skipping profile %s: %v", path, err)
			continue
		}
		if _, dup := s.profiles[p.Name]; dup {
			log.Printf("Skipping profile %s: name %q already loaded", path, p.Name)
			continue
		}
		if !p.ownHotkeys && shared != nil {
			p.hotkeys = shared
		}
		s.profiles[p.Name] = p
		s.order = append(s.order, p.Name)
		log.Printf("Loaded profile: %s (%d families, %d hotkeys)", p.Name, len(p.mappings), p.hotkeys.Len())
	}

	switch {
	case candidates == 0:
		return nil, &ConfigError{Source: dir, Err: errors.New("no YAML profiles found")}
	case len(s.order) == 0:
		return nil, &ConfigError{Source: dir, Err: fmt.Errorf("none of %d profiles could be loaded", candidates)}
	}

	if active == "" {
		s.active = s.profiles[s.order[0]]
		log.Printf("No profile specified. Using default: %s", s.active.Name)
		return s, nil
	}
	if err := s.Select(active); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads a single profile. Its name is the file name without
// extension.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Err: err}
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p, err := Parse(name, data)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Source = path
		}
		return nil, err
	}
	p.Source = path
	return p, nil
}

func isProfileFile(name string) bool {
	if name == SharedHotkeysFile {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func loadSharedHotkeys(path string) (*hotkey.Tree, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc struct {
		Mappings yaml.Node `yaml:"mappings"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tree := hotkey.NewTree()
	if err := parseHotkeys(path, tree, &doc.Mappings); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("Loaded shared hotkeys: %d combinations", tree.Len())
	return tree, nil
}

// Get returns the named profile.
func (s *Store) Get(name string) (*Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Available: s.Names()}
	}
	return p, nil
}

// Select makes the named profile active.
func (s *Store) Select(name string) error {
	p, err := s.Get(name)
	if err != nil {
		return err
	}
	s.active = p
	log.Printf("Active profile set to: %s", p.Name)
	return nil
}

// Active returns the active profile.
func (s *Store) Active() *Profile {
	return s.active
}

// Names lists the loaded profiles in directory order.
func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}
