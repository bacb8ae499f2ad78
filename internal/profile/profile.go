// Package profile loads the per-family color and label tables and the
// hotkey combination tree that drive the overlay.
package profile

import (
	"slices"

	"github.com/soar/padoverlay/internal/hotkey"
	"github.com/soar/padoverlay/internal/input"
)

// Style is the color and label shown for an input.
type Style struct {
	Color string
	Label string
}

// AxisMapping holds the styles for each direction of an axis.
type AxisMapping struct {
	Positive Style
	Negative Style
}

// Mapping is the table of one device family.
type Mapping struct {
	Buttons map[input.Button]Style
	Axes    map[input.Axis]AxisMapping
}

func newMapping() *Mapping {
	return &Mapping{
		Buttons: make(map[input.Button]Style),
		Axes:    make(map[input.Axis]AxisMapping),
	}
}

// Profile is a named, read-only set of mappings and hotkeys.
type Profile struct {
	Name   string
	Source string

	mappings map[input.Family]*Mapping
	hotkeys  *hotkey.Tree

	// set when the source declared its own hotkeys key
	ownHotkeys bool
}

// ButtonStyle looks up the style of a button for a family.
func (p *Profile) ButtonStyle(f input.Family, b input.Button) (Style, bool) {
	m, ok := p.mappings[f]
	if !ok {
		return Style{}, false
	}
	s, ok := m.Buttons[b]
	return s, ok
}

// AxisStyle looks up the style of one direction of an axis for a family.
func (p *Profile) AxisStyle(f input.Family, a input.Axis, positive bool) (Style, bool) {
	m, ok := p.mappings[f]
	if !ok {
		return Style{}, false
	}
	am, ok := m.Axes[a]
	if !ok {
		return Style{}, false
	}
	if positive {
		return am.Positive, true
	}
	return am.Negative, true
}

// Hotkeys returns the combination tree. It is never nil.
func (p *Profile) Hotkeys() *hotkey.Tree {
	return p.hotkeys
}

// Families lists the families that have a mapping table.
func (p *Profile) Families() []input.Family {
	families := make([]input.Family, 0, len(p.mappings))
	for f := range p.mappings {
		families = append(families, f)
	}
	slices.Sort(families)
	return families
}
