package hotkey

import (
	"github.com/soar/padoverlay/internal/input"
)

// Resolver tracks the held set of hotkey-eligible buttons. It is not safe
// for concurrent use; the interpreter loop owns it.
type Resolver struct {
	tree *Tree
	held map[input.Button]struct{}
}

// NewResolver returns a resolver over tree. A nil tree never resolves.
func NewResolver(tree *Tree) *Resolver {
	return &Resolver{
		tree: tree,
		held: make(map[input.Button]struct{}),
	}
}

// Press adds b to the held set and resolves the new set. Buttons that are
// not eligible leave the set untouched and never resolve.
func (r *Resolver) Press(b input.Button) (Payload, bool) {
	if !b.HotkeyEligible() {
		return Payload{}, false
	}
	r.held[b] = struct{}{}
	return r.Resolve()
}

// Release removes b from the held set and resolves what remains.
func (r *Resolver) Release(b input.Button) (Payload, bool) {
	if !b.HotkeyEligible() {
		return Payload{}, false
	}
	delete(r.held, b)
	return r.Resolve()
}

// Resolve looks up the current held set. An empty set never resolves.
func (r *Resolver) Resolve() (Payload, bool) {
	if len(r.held) == 0 {
		return Payload{}, false
	}
	return r.tree.lookup(r.Held())
}

// Held returns the held buttons in canonical order.
func (r *Resolver) Held() []input.Button {
	buttons := make([]input.Button, 0, len(r.held))
	for b := range r.held {
		buttons = append(buttons, b)
	}
	return canonical(buttons)
}

// Reset empties the held set.
func (r *Resolver) Reset() {
	clear(r.held)
}
