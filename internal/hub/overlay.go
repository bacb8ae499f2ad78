package hub

import (
	"github.com/soar/padoverlay/internal/display"
	"github.com/soar/padoverlay/internal/input"
)

// Overlay presents controller surfaces as browser overlays: each surface
// publishes to the hub clients watching its corner.
type Overlay struct {
	hub *Hub
}

func NewOverlay(h *Hub) *Overlay {
	return &Overlay{hub: h}
}

// Assign implements display.Presenter.
func (o *Overlay) Assign(id input.DeviceID, corner display.Corner) display.Surface {
	o.hub.Publish(corner, NewAssignMessage(id, corner))
	return &surface{hub: o.hub, id: id, corner: corner}
}

// surface is owned by the interpreter loop.
type surface struct {
	hub      *Hub
	id       input.DeviceID
	corner   display.Corner
	released bool
}

func (s *surface) Update(rec display.Record) {
	if s.released {
		return
	}
	s.hub.Publish(s.corner, NewRecordMessage(s.id, s.corner, rec))
}

func (s *surface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.hub.Publish(s.corner, NewReleaseMessage(s.id, s.corner))
}
