package gamepad

import (
	"log"

	"github.com/soar/padoverlay/internal/input"
)

const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

var hatButtons = []struct {
	bit    uint8
	button input.Button
}{
	{hatUp, input.ButtonUp},
	{hatRight, input.ButtonRight},
	{hatDown, input.ButtonDown},
	{hatLeft, input.ButtonLeft},
}

// Sink receives decoded events. Push must not block.
type Sink interface {
	Push(ev input.Event) bool
}

type pad struct {
	mapping *DeviceMapping
	hat     uint8
}

// decoder turns raw joystick callbacks into canonical input events. It
// keeps the per-device hat state needed to split hat motion into d-pad
// presses and releases.
type decoder struct {
	sink Sink
	pads map[input.DeviceID]*pad
}

func newDecoder(sink Sink) *decoder {
	return &decoder{
		sink: sink,
		pads: make(map[input.DeviceID]*pad),
	}
}

func (d *decoder) push(ev input.Event) {
	if !d.sink.Push(ev) {
		log.Printf("Dropped input event: %v", ev)
	}
}

func (d *decoder) added(id input.DeviceID, m *DeviceMapping) {
	if _, ok := d.pads[id]; ok {
		return
	}
	d.pads[id] = &pad{mapping: m}
	d.push(input.Connected(id))
}

func (d *decoder) removed(id input.DeviceID) {
	if _, ok := d.pads[id]; !ok {
		return
	}
	delete(d.pads, id)
	d.push(input.Disconnected(id))
}

func (d *decoder) button(id input.DeviceID, index int32, pressed bool) {
	p, ok := d.pads[id]
	if !ok {
		return
	}
	b, ok := p.mapping.Button(index)
	if !ok {
		return
	}
	d.push(input.ButtonEvent(id, int(b), pressed))
}

func (d *decoder) axis(id input.DeviceID, index int32, raw int16) {
	p, ok := d.pads[id]
	if !ok {
		return
	}
	am, ok := p.mapping.Axis(index)
	if !ok {
		return
	}
	d.push(input.AxisEvent(id, int(am.Target), am.Value(raw)))
}

// hatMotion emits a press or release for every d-pad direction whose bit
// changed. Only the first hat is read.
func (d *decoder) hatMotion(id input.DeviceID, index int32, value uint8) {
	p, ok := d.pads[id]
	if !ok || !p.mapping.HasHat || index != 0 {
		return
	}
	changed := p.hat ^ value
	p.hat = value
	for _, hb := range hatButtons {
		if changed&hb.bit != 0 {
			d.push(input.ButtonEvent(id, int(hb.button), value&hb.bit != 0))
		}
	}
}
