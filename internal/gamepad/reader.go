package gamepad

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/padoverlay/internal/input"
)

const pollDelayNS = 4_000_000 // ~250Hz, well above the overlay's axis rate

// Reader polls the SDL3 joystick subsystem and pushes decoded events to a
// sink. It never blocks on the sink.
type Reader struct {
	joysticks map[sdl.JoystickID]*sdl.Joystick
	decoder   *decoder
	verbose   bool
	afterInit func()
}

func NewReader(sink Sink, verbose bool) *Reader {
	return &Reader{
		joysticks: make(map[sdl.JoystickID]*sdl.Joystick),
		decoder:   newDecoder(sink),
		verbose:   verbose,
	}
}

// AfterInit registers fn to run on the reader thread once SDL is up.
// SDL installs its own console handlers during init.
func (r *Reader) AfterInit(fn func()) {
	r.afterInit = fn
}

// Run initializes SDL and runs the event loop on a locked OS thread until
// ctx is cancelled. Open joysticks are closed before it returns; no event
// is pushed after that.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 Joystick subsystem initialized")
	if r.afterInit != nil {
		r.afterInit()
	}

	// Check for already-connected joysticks
	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown, sdl.EventJoystickButtonUp:
			be := event.JButton()
			pressed := event.Type() == sdl.EventJoystickButtonDown
			if r.verbose {
				log.Printf("[DEBUG] Button: index=%d pressed=%t joystick=%d", be.Button, pressed, be.Which)
			}
			r.decoder.button(input.DeviceID(be.Which), int32(be.Button), pressed)

		case sdl.EventJoystickAxisMotion:
			ae := event.JAxis()
			r.decoder.axis(input.DeviceID(ae.Which), int32(ae.Axis), int16(ae.Value))

		case sdl.EventJoystickHatMotion:
			he := event.JHat()
			if r.verbose {
				log.Printf("[DEBUG] Hat: index=%d value=0x%02X joystick=%d", he.Hat, he.Value, he.Which)
			}
			r.decoder.hatMotion(input.DeviceID(he.Which), int32(he.Hat), uint8(he.Value))
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := GetMapping(vendorID, productID)
	r.joysticks[jsID] = js

	log.Printf("Joystick connected: %s (VID=%04X PID=%04X) mapping=%s id=%d",
		name, vendorID, productID, mapping.Name, jsID)

	r.decoder.added(input.DeviceID(jsID), mapping)
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	js, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	log.Printf("Joystick disconnected: id=%d", instanceID)
	sdl.CloseJoystick(js)
	delete(r.joysticks, instanceID)
	r.decoder.removed(input.DeviceID(instanceID))
}

func (r *Reader) closeAll() {
	for id, js := range r.joysticks {
		sdl.CloseJoystick(js)
		delete(r.joysticks, id)
	}
}
