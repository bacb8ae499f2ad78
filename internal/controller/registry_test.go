package controller

import (
	"testing"

	"github.com/soar/padoverlay/internal/display"
	"github.com/soar/padoverlay/internal/input"
)

type fakeSurface struct {
	corner   display.Corner
	released bool
}

func (s *fakeSurface) Update(display.Record) {}
func (s *fakeSurface) Release() { s.released = true }

type fakePresenter struct {
	assigned []*fakeSurface
}

func (p *fakePresenter) Assign(id input.DeviceID, corner display.Corner) display.Surface {
	s := &fakeSurface{corner: corner}
	p.assigned = append(p.assigned, s)
	return s
}

func TestConnectIdempotent(t *testing.T) {
	r := NewRegistry()
	if !r.Connect(1) {
		t.Fatal("first Connect should report true")
	}
	r.AssignFamily(1, input.FamilyXbox)
	if r.Connect(1) {
		t.Error("second Connect should report false")
	}
	c, ok := r.Get(1)
	if !ok || c.Family != input.FamilyXbox {
		t.Errorf("second Connect changed state: %+v", c)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestDisconnect(t *testing.T) {
	r := NewRegistry()
	p := &fakePresenter{}
	r.Connect(7)
	r.Bind(7, p)

	if !r.Disconnect(7) {
		t.Error("Disconnect of tracked id should report true")
	}
	if !p.assigned[0].released {
		t.Error("Disconnect should release the surface")
	}
	if _, ok := r.Get(7); ok {
		t.Error("Get after Disconnect should miss")
	}
	if r.Disconnect(7) {
		t.Error("Disconnect of untracked id should be a no-op")
	}
}

func TestAssignFamilyFirstWins(t *testing.T) {
	r := NewRegistry()
	r.Connect(1)
	if r.AssignFamily(1, input.FamilyUnknown) {
		t.Error("assigning unknown should be refused")
	}
	if !r.AssignFamily(1, input.FamilyNintendo) {
		t.Error("first assignment should succeed")
	}
	if r.AssignFamily(1, input.FamilyXbox) {
		t.Error("second assignment should be a no-op")
	}
	if c, _ := r.Get(1); c.Family != input.FamilyNintendo {
		t.Errorf("Family = %v, want NINTENDO", c.Family)
	}
	if r.AssignFamily(2, input.FamilyXbox) {
		t.Error("assigning to an untracked id should fail")
	}
}

func TestBindCapacity(t *testing.T) {
	r := NewRegistry()
	p := &fakePresenter{}
	for id := input.DeviceID(1); id <= 5; id++ {
		r.Connect(id)
	}
	for id := input.DeviceID(1); id <= 4; id++ {
		if !r.Bind(id, p) {
			t.Fatalf("Bind(%d) should succeed", id)
		}
	}
	if r.Bind(5, p) {
		t.Error("fifth controller should not be bound while four are connected")
	}
	if c, _ := r.Get(5); c.Bound() {
		t.Error("fifth controller should have no surface")
	}
	if r.BoundCount() != MaxBound {
		t.Errorf("BoundCount() = %d, want %d", r.BoundCount(), MaxBound)
	}
	if got := r.Unbound(); len(got) != 1 || got[0] != 5 {
		t.Errorf("Unbound() = %v, want [5]", got)
	}

	r.Disconnect(2)
	if !r.Bind(5, p) {
		t.Fatal("fifth controller should bind once a corner frees")
	}
	if c, _ := r.Get(5); c.Corner != display.TopRight {
		t.Errorf("Corner = %v, want the freed top_right", c.Corner)
	}
}

func TestBindTwice(t *testing.T) {
	r := NewRegistry()
	p := &fakePresenter{}
	r.Connect(1)
	r.Bind(1, p)
	if r.Bind(1, p) {
		t.Error("second Bind should fail")
	}
	if len(p.assigned) != 1 {
		t.Errorf("presenter asked %d times, want 1", len(p.assigned))
	}
	if r.Bind(9, p) {
		t.Error("Bind of untracked id should fail")
	}
}

func TestReleaseAll(t *testing.T) {
	r := NewRegistry()
	p := &fakePresenter{}
	for id := input.DeviceID(1); id <= 3; id++ {
		r.Connect(id)
		r.Bind(id, p)
	}
	r.ReleaseAll()
	for i, s := range p.assigned {
		if !s.released {
			t.Errorf("surface %d not released", i)
		}
	}
	if r.Len() != 0 || r.BoundCount() != 0 {
		t.Errorf("Len() = %d, BoundCount() = %d, want 0, 0", r.Len(), r.BoundCount())
	}
}
