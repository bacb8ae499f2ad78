// Package interpreter turns discrete controller events into display
// records. It owns the controller registry and the hotkey held set, and is
// driven from a single goroutine.
package interpreter

import (
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/soar/padoverlay/internal/controller"
	"github.com/soar/padoverlay/internal/display"
	"github.com/soar/padoverlay/internal/hotkey"
	"github.com/soar/padoverlay/internal/input"
	"github.com/soar/padoverlay/internal/profile"
)

const (
	// DefaultAxisThreshold is about half of the signed 16-bit range.
	DefaultAxisThreshold = 16384
	// DefaultAxisInterval caps axis updates at roughly 60 per second.
	DefaultAxisInterval = 16 * time.Millisecond
)

// Options tune an Interpreter. Zero values select the defaults.
type Options struct {
	AxisThreshold int
	AxisInterval  time.Duration

	// ForcedFamily, when known, is assigned to every controller on
	// connect and disables detection.
	ForcedFamily input.Family

	Verbose bool

	// Now is the clock used for axis rate limiting.
	Now func() time.Time
}

// Interpreter applies events to controller state and forwards the
// resulting records to each controller's surface.
type Interpreter struct {
	profile   *profile.Profile
	presenter display.Presenter
	registry  *controller.Registry
	hotkeys   *hotkey.Resolver
	limiter   *rate.Limiter

	threshold int
	forced    input.Family
	verbose   bool
	now       func() time.Time
}

// New returns an interpreter for the active profile p.
func New(p *profile.Profile, presenter display.Presenter, opts Options) *Interpreter {
	if opts.AxisThreshold <= 0 {
		opts.AxisThreshold = DefaultAxisThreshold
	}
	if opts.AxisInterval <= 0 {
		opts.AxisInterval = DefaultAxisInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Interpreter{
		profile:   p,
		presenter: presenter,
		registry:  controller.NewRegistry(),
		hotkeys:   hotkey.NewResolver(p.Hotkeys()),
		limiter:   rate.NewLimiter(rate.Every(opts.AxisInterval), 1),
		threshold: opts.AxisThreshold,
		forced:    opts.ForcedFamily,
		verbose:   opts.Verbose,
		now:       opts.Now,
	}
}

// Registry exposes controller state for inspection.
func (in *Interpreter) Registry() *controller.Registry {
	return in.registry
}

// Handle applies one event. It returns the record produced for the event,
// if any; the record has already been forwarded to the controller's
// surface when one is bound. A panic while handling the event is
// recovered and turned into the neutral record.
func (in *Interpreter) Handle(ev input.Event) (rec display.Record, ok bool) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("Error handling %v: %v", ev, v)
			rec, ok = display.Neutral(), true
			in.emitRecovered(ev.Device, rec)
		}
	}()

	if in.verbose {
		log.Printf("[DEBUG] %v", ev)
	}

	switch ev.Kind {
	case input.EventConnected:
		in.connect(ev.Device)
	case input.EventDisconnected:
		in.disconnect(ev.Device)
	case input.EventButton:
		if ev.Pressed {
			return in.press(ev.Device, ev.Code)
		}
		return in.release(ev.Device, ev.Code)
	case input.EventAxis:
		return in.axis(ev.Device, ev.Code, ev.Value)
	}
	return display.Record{}, false
}

func (in *Interpreter) connect(id input.DeviceID) {
	if !in.registry.Connect(id) {
		return
	}
	if in.forced != input.FamilyUnknown {
		in.registry.AssignFamily(id, in.forced)
	}
	if !in.registry.Bind(id, in.presenter) {
		log.Printf("Controller %d has no free corner, it will not be shown", id)
	}
}

func (in *Interpreter) disconnect(id input.DeviceID) {
	if !in.registry.Disconnect(id) {
		return
	}
	// Buttons held on the departed pad would otherwise stay held forever.
	in.hotkeys.Reset()

	for _, waiting := range in.registry.Unbound() {
		if !in.registry.Bind(waiting, in.presenter) {
			break
		}
	}
}

func (in *Interpreter) press(id input.DeviceID, code int) (display.Record, bool) {
	c, ok := in.registry.Get(id)
	if !ok {
		return display.Record{}, false
	}
	b, ok := input.ButtonFromCode(code)
	if !ok {
		return display.Record{}, false
	}

	if b.HotkeyEligible() {
		if p, ok := in.hotkeys.Press(b); ok {
			return in.emit(c, p.Record()), true
		}
	}

	if c.Family == input.FamilyUnknown {
		in.registry.AssignFamily(id, input.DetectFamily(b))
	}
	rec := display.Neutral()
	if s, ok := in.profile.ButtonStyle(c.Family, b); ok {
		rec = display.Button(s.Color, s.Label)
	}
	return in.emit(c, rec), true
}

func (in *Interpreter) release(id input.DeviceID, code int) (display.Record, bool) {
	c, ok := in.registry.Get(id)
	if !ok {
		return display.Record{}, false
	}
	b, ok := input.ButtonFromCode(code)
	if !ok {
		return display.Record{}, false
	}

	if b.HotkeyEligible() {
		if p, ok := in.hotkeys.Release(b); ok {
			return in.emit(c, p.Record()), true
		}
	}
	return in.emit(c, display.Neutral()), true
}

func (in *Interpreter) axis(id input.DeviceID, code int, value int16) (display.Record, bool) {
	c, ok := in.registry.Get(id)
	if !ok {
		return display.Record{}, false
	}
	if abs(int(value)) < in.threshold {
		return display.Record{}, false
	}
	if !in.limiter.AllowN(in.now(), 1) {
		return display.Record{}, false
	}

	rec := display.Neutral()
	a, ok := input.AxisFromCode(code)
	if ok && c.Family != input.FamilyUnknown {
		if s, ok := in.profile.AxisStyle(c.Family, a, value > 0); ok {
			rec = display.Button(s.Color, s.Label)
		}
	}
	return in.emit(c, rec), true
}

// emit forwards rec to the controller's surface. Controllers without one
// (over capacity) drop it silently.
func (in *Interpreter) emit(c *controller.Controller, rec display.Record) display.Record {
	if s := c.Surface(); s != nil {
		s.Update(rec)
	}
	return rec
}

func (in *Interpreter) emitRecovered(id input.DeviceID, rec display.Record) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("Error resetting display of controller %d: %v", id, v)
		}
	}()
	if c, ok := in.registry.Get(id); ok {
		in.emit(c, rec)
	}
}

// Run applies events in order until the channel is closed, then releases
// every surface and forgets every controller.
func (in *Interpreter) Run(events <-chan input.Event) {
	for ev := range events {
		in.Handle(ev)
	}
	in.Close()
}

// Close releases every surface and clears all state.
func (in *Interpreter) Close() {
	in.registry.ReleaseAll()
	in.hotkeys.Reset()
	log.Println("Interpreter stopped")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
