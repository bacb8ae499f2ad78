// Package controller tracks connected controllers, their detected device
// family and the overlay surface each one is bound to.
package controller

import (
	"log"
	"slices"

	"github.com/soar/padoverlay/internal/display"
	"github.com/soar/padoverlay/internal/input"
)

// MaxBound is the number of controllers that can be shown at once, one
// per screen corner.
const MaxBound = display.NumCorners

// Controller is a connected device.
type Controller struct {
	ID     input.DeviceID
	Family input.Family
	Corner display.Corner

	surface display.Surface
}

// Surface returns the bound surface, or nil.
func (c *Controller) Surface() display.Surface {
	return c.surface
}

// Bound reports whether the controller has a surface.
func (c *Controller) Bound() bool {
	return c.surface != nil
}

// Registry holds the connected controllers. It is owned by the interpreter
// loop and is not safe for concurrent use.
type Registry struct {
	controllers map[input.DeviceID]*Controller
	corners     [display.NumCorners]*Controller
}

func NewRegistry() *Registry {
	return &Registry{
		controllers: make(map[input.DeviceID]*Controller),
	}
}

// Connect starts tracking id with an unknown family. It returns false if
// id is already tracked, in which case nothing changes.
func (r *Registry) Connect(id input.DeviceID) bool {
	if _, ok := r.controllers[id]; ok {
		return false
	}
	r.controllers[id] = &Controller{ID: id}
	log.Printf("Controller %d connected", id)
	return true
}

// Disconnect stops tracking id and releases its surface. Untracked ids are
// ignored.
func (r *Registry) Disconnect(id input.DeviceID) bool {
	c, ok := r.controllers[id]
	if !ok {
		return false
	}
	r.unbind(c)
	delete(r.controllers, id)
	log.Printf("Controller %d disconnected", id)
	return true
}

// Get returns the controller for id.
func (r *Registry) Get(id input.DeviceID) (*Controller, bool) {
	c, ok := r.controllers[id]
	return c, ok
}

// AssignFamily sets the family of id if it is still unknown. The first
// detection wins for the lifetime of the connection.
func (r *Registry) AssignFamily(id input.DeviceID, f input.Family) bool {
	c, ok := r.controllers[id]
	if !ok || c.Family != input.FamilyUnknown || f == input.FamilyUnknown {
		return false
	}
	c.Family = f
	log.Printf("Controller %d type detected: %s", id, f)
	return true
}

// Bind asks p for a surface in the lowest free corner. It fails if id is
// untracked, already bound, or all corners are taken.
func (r *Registry) Bind(id input.DeviceID, p display.Presenter) bool {
	c, ok := r.controllers[id]
	if !ok || c.surface != nil {
		return false
	}
	corner := slices.Index(r.corners[:], nil)
	if corner < 0 {
		return false
	}
	s := p.Assign(id, display.Corner(corner))
	if s == nil {
		return false
	}
	c.surface = s
	c.Corner = display.Corner(corner)
	r.corners[corner] = c
	log.Printf("Controller %d shown at %s", id, c.Corner)
	return true
}

func (r *Registry) unbind(c *Controller) {
	if c.surface == nil {
		return
	}
	c.surface.Release()
	c.surface = nil
	r.corners[c.Corner] = nil
}

// Unbound lists tracked controllers without a surface, lowest id first.
func (r *Registry) Unbound() []input.DeviceID {
	var ids []input.DeviceID
	for id, c := range r.controllers {
		if c.surface == nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of tracked controllers.
func (r *Registry) Len() int {
	return len(r.controllers)
}

// BoundCount returns the number of controllers with a surface.
func (r *Registry) BoundCount() int {
	n := 0
	for _, c := range r.corners {
		if c != nil {
			n++
		}
	}
	return n
}

// ReleaseAll releases every surface and forgets every controller.
func (r *Registry) ReleaseAll() {
	for id, c := range r.controllers {
		r.unbind(c)
		delete(r.controllers, id)
	}
}
