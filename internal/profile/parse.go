package profile

import (
	"errors"
	"fmt"
	"log"

	"go.yaml.in/yaml/v3"

	"github.com/soar/padoverlay/internal/display"
	"github.com/soar/padoverlay/internal/hotkey"
	"github.com/soar/padoverlay/internal/input"
)

type rawStyle struct {
	Color string `yaml:"color"`
	Label string `yaml:"label"`
}

func (s rawStyle) style() Style {
	if s.Color == "" {
		s.Color = display.NeutralColor
	}
	return Style{Color: s.Color, Label: s.Label}
}

type rawButton struct {
	rawStyle  `yaml:",inline"`
	SDLButton string `yaml:"sdl_button"`
}

type rawAxis struct {
	SDLAxis  string   `yaml:"sdl_axis"`
	Positive rawStyle `yaml:"positive"`
	Negative rawStyle `yaml:"negative"`
}

type pair struct {
	key   string
	value *yaml.Node
}

// pairs returns the entries of a mapping node in document order. A nil or
// null node is an empty mapping.
func pairs(n *yaml.Node) ([]pair, error) {
	n = resolve(n)
	if n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null") {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	out := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, pair{key: n.Content[i].Value, value: n.Content[i+1]})
	}
	return out, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && (n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return n
}

// Parse builds a profile from YAML. Top-level structure errors fail the
// whole source; bad individual entries are logged and skipped.
func Parse(name string, data []byte) (*Profile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Source: name, Err: err}
	}
	top, err := pairs(&doc)
	if err != nil {
		return nil, &ConfigError{Source: name, Err: err}
	}

	p := &Profile{
		Name:     name,
		mappings: make(map[input.Family]*Mapping),
		hotkeys:  hotkey.NewTree(),
	}
	for _, kv := range top {
		switch kv.key {
		case "mappings":
			if err := parseMappings(p, kv.value); err != nil {
				return nil, &ConfigError{Source: name, Err: fmt.Errorf("mappings: %w", err)}
			}
		case "hotkeys":
			if err := parseHotkeys(name, p.hotkeys, kv.value); err != nil {
				return nil, &ConfigError{Source: name, Err: fmt.Errorf("hotkeys: %w", err)}
			}
			p.ownHotkeys = true
		}
	}
	return p, nil
}

func parseMappings(p *Profile, n *yaml.Node) error {
	families, err := pairs(n)
	if err != nil {
		return err
	}
	for _, kv := range families {
		family, ok := input.ParseFamily(kv.key)
		if !ok {
			log.Printf("Profile %s: skipping unknown device family %q", p.Name, kv.key)
			continue
		}
		sections, err := pairs(kv.value)
		if err != nil {
			log.Printf("Profile %s: skipping family %s: %v", p.Name, kv.key, err)
			continue
		}
		m, ok := p.mappings[family]
		if !ok {
			m = newMapping()
			p.mappings[family] = m
		}
		for _, sec := range sections {
			switch sec.key {
			case "buttons":
				parseButtons(p.Name, family, m, sec.value)
			case "axes":
				parseAxes(p.Name, family, m, sec.value)
			}
		}
	}
	return nil
}

func parseButtons(profile string, family input.Family, m *Mapping, n *yaml.Node) {
	entries, err := pairs(n)
	if err != nil {
		log.Printf("Profile %s: %s buttons: %v", profile, family, err)
		return
	}
	for _, kv := range entries {
		var raw rawButton
		if err := kv.value.Decode(&raw); err != nil {
			log.Printf("Profile %s: %s button %q: %v", profile, family, kv.key, err)
			continue
		}
		b, ok := input.ParseButton(raw.SDLButton)
		if !ok {
			log.Printf("Profile %s: %s button %q: unknown sdl_button %q", profile, family, kv.key, raw.SDLButton)
			continue
		}
		if _, dup := m.Buttons[b]; dup {
			log.Printf("Profile %s: %s button %q: %s already mapped, keeping the first entry", profile, family, kv.key, b)
			continue
		}
		m.Buttons[b] = raw.style()
	}
}

func parseAxes(profile string, family input.Family, m *Mapping, n *yaml.Node) {
	entries, err := pairs(n)
	if err != nil {
		log.Printf("Profile %s: %s axes: %v", profile, family, err)
		return
	}
	for _, kv := range entries {
		var raw rawAxis
		if err := kv.value.Decode(&raw); err != nil {
			log.Printf("Profile %s: %s axis %q: %v", profile, family, kv.key, err)
			continue
		}
		a, ok := input.ParseAxis(raw.SDLAxis)
		if !ok {
			log.Printf("Profile %s: %s axis %q: unknown sdl_axis %q", profile, family, kv.key, raw.SDLAxis)
			continue
		}
		if _, dup := m.Axes[a]; dup {
			log.Printf("Profile %s: %s axis %q: %s already mapped, keeping the first entry", profile, family, kv.key, a)
			continue
		}
		m.Axes[a] = AxisMapping{Positive: raw.Positive.style(), Negative: raw.Negative.style()}
	}
}

// Payload keys in the order they are checked when a node declares more
// than one.
var payloadKeys = []struct {
	key  string
	kind hotkey.Kind
}{
	{"Dpad", hotkey.KindDpad},
	{"Face", hotkey.KindFace},
	{"Shoulders", hotkey.KindShoulders},
	{"Single", hotkey.KindSingle},
}

func payloadKind(key string) (hotkey.Kind, bool) {
	for _, pk := range payloadKeys {
		if pk.key == key {
			return pk.kind, true
		}
	}
	return 0, false
}

var errNotMapping = errors.New("expected a mapping")

func parseHotkeys(source string, tree *hotkey.Tree, n *yaml.Node) error {
	root := resolve(n)
	if root != nil && root.Kind != 0 && root.Kind != yaml.MappingNode && root.Tag != "!!null" {
		return fmt.Errorf("line %d: %w", root.Line, errNotMapping)
	}
	walkHotkeys(source, tree, nil, root)
	return nil
}

func walkHotkeys(source string, tree *hotkey.Tree, path []input.Button, n *yaml.Node) {
	entries, err := pairs(n)
	if err != nil {
		log.Printf("Hotkeys %s: %s: %v", source, hotkey.FormatCombination(path), err)
		return
	}

	var payload *hotkey.Payload
	for _, pk := range payloadKeys {
		for _, kv := range entries {
			if kv.key != pk.key {
				continue
			}
			p, err := decodePayload(pk.kind, kv.value)
			if err != nil {
				log.Printf("Hotkeys %s: %s %s: %v", source, hotkey.FormatCombination(path), kv.key, err)
				continue
			}
			if payload != nil {
				log.Printf("Hotkeys %s: %s: ignoring extra %s payload", source, hotkey.FormatCombination(path), kv.key)
				continue
			}
			payload = &p
		}
	}
	if payload != nil {
		if len(path) == 0 {
			log.Printf("Hotkeys %s: ignoring payload at the root of the tree", source)
		} else if err := tree.Add(path, *payload); err != nil {
			log.Printf("Hotkeys %s: %v", source, err)
		}
	}

	for _, kv := range entries {
		if _, ok := payloadKind(kv.key); ok {
			continue
		}
		b, ok := input.ParseButton(kv.key)
		if !ok {
			log.Printf("Hotkeys %s: skipping unknown button %q", source, kv.key)
			continue
		}
		child := append(path[:len(path):len(path)], b)
		walkHotkeys(source, tree, child, kv.value)
	}
}

func decodePayload(kind hotkey.Kind, n *yaml.Node) (hotkey.Payload, error) {
	p := hotkey.Payload{Kind: kind}
	if kind == hotkey.KindSingle {
		if err := n.Decode(&p.Text); err != nil {
			return p, err
		}
		return p, nil
	}
	var sub map[string]string
	if err := n.Decode(&sub); err != nil {
		return p, err
	}
	for i, name := range kind.SlotNames() {
		p.Slots[i] = sub[name]
	}
	return p, nil
}
