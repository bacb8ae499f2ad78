// Package hotkey recognises multi-button combinations. A Tree holds the
// registered combinations of a profile; a Resolver tracks which eligible
// buttons are held and looks the held set up in the tree.
package hotkey

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/soar/padoverlay/internal/display"
	"github.com/soar/padoverlay/internal/input"
)

// Kind is the layout of a combination payload.
type Kind int

const (
	KindSingle Kind = iota
	KindDpad
	KindFace
	KindShoulders
)

var kindTypes = [...]display.Type{
	KindSingle:    display.TypeSingle,
	KindDpad:      display.TypeDpad,
	KindFace:      display.TypeFace,
	KindShoulders: display.TypeShoulders,
}

var slotNames = [...][4]string{
	KindDpad:      {"Up", "Down", "Left", "Right"},
	KindFace:      {"North", "South", "West", "East"},
	KindShoulders: {"RB", "RT", "LB", "LT"},
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTypes) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return string(kindTypes[k])
}

// SlotNames returns the sub-key names of a four-way kind, in Slots order.
// KindSingle has no slots and returns empty names.
func (k Kind) SlotNames() [4]string {
	if k <= KindSingle || int(k) >= len(slotNames) {
		return [4]string{}
	}
	return slotNames[k]
}

// Payload is what a resolved combination displays.
type Payload struct {
	Kind  Kind
	Text  string
	Slots [4]string
}

// Record converts the payload to a display record.
func (p Payload) Record() display.Record {
	rec := display.Record{
		Type:  kindTypes[p.Kind],
		Color: display.HotkeyColor,
	}
	if p.Kind == KindSingle {
		rec.Text = p.Text
		return rec
	}
	rec.Slots = make(map[string]string, 4)
	for i, name := range p.Kind.SlotNames() {
		rec.Slots[strings.ToLower(name)] = p.Slots[i]
	}
	return rec
}

var (
	ErrEmptyCombination = errors.New("empty combination")
	ErrDuplicate        = errors.New("combination already registered")
)

type node struct {
	children map[input.Button]*node
	payload  *Payload
}

// Tree stores combinations keyed by their canonically ordered button set.
// Paths are sorted on registration, so a combination written as
// Start→Guide and one written as Guide→Start occupy the same leaf.
type Tree struct {
	root node
	size int
}

func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of registered combinations.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Add registers a combination of buttons. Every button must be hotkey
// eligible and appear once.
func (t *Tree) Add(buttons []input.Button, p Payload) error {
	if len(buttons) == 0 {
		return ErrEmptyCombination
	}
	path := canonical(buttons)
	for i, b := range path {
		if !b.HotkeyEligible() {
			return fmt.Errorf("button %s cannot take part in a combination", b)
		}
		if i > 0 && path[i-1] == b {
			return fmt.Errorf("button %s repeated in combination", b)
		}
	}

	n := &t.root
	for _, b := range path {
		if n.children == nil {
			n.children = make(map[input.Button]*node)
		}
		child, ok := n.children[b]
		if !ok {
			child = &node{}
			n.children[b] = child
		}
		n = child
	}
	if n.payload != nil {
		return fmt.Errorf("%w: %s", ErrDuplicate, FormatCombination(path))
	}
	n.payload = &p
	t.size++
	return nil
}

// lookup walks a canonically ordered path. The payload must sit at exactly
// the end of the path; prefixes and extensions of a registered combination
// do not match.
func (t *Tree) lookup(path []input.Button) (Payload, bool) {
	if t == nil || len(path) == 0 {
		return Payload{}, false
	}
	n := &t.root
	for _, b := range path {
		child, ok := n.children[b]
		if !ok {
			return Payload{}, false
		}
		n = child
	}
	if n.payload == nil {
		return Payload{}, false
	}
	return *n.payload, true
}

// canonical returns a copy of buttons sorted by display name.
func canonical(buttons []input.Button) []input.Button {
	path := slices.Clone(buttons)
	slices.SortFunc(path, func(a, b input.Button) int {
		return strings.Compare(a.String(), b.String())
	})
	return path
}

// FormatCombination renders buttons as "Guide+Start".
func FormatCombination(buttons []input.Button) string {
	names := make([]string, len(buttons))
	for i, b := range buttons {
		names[i] = b.String()
	}
	return strings.Join(names, "+")
}
