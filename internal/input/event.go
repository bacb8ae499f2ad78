package input

import "fmt"

// DeviceID identifies a connected controller. It is assigned by the input
// subsystem at connect time and stays stable until disconnect.
type DeviceID int32

// EventKind tags the variant carried by an Event.
type EventKind uint8

const (
	EventConnected EventKind = iota
	EventDisconnected
	EventButton
	EventAxis
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventButton:
		return "button"
	case EventAxis:
		return "axis"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a discrete input event handed from the polling reader to the
// interpreter loop. Code holds the raw button or axis code; it is only
// translated on the loop side so unmappable codes survive the handoff.
type Event struct {
	Kind    EventKind
	Device  DeviceID
	Code    int
	Pressed bool
	Value   int16
}

func Connected(id DeviceID) Event {
	return Event{Kind: EventConnected, Device: id}
}

func Disconnected(id DeviceID) Event {
	return Event{Kind: EventDisconnected, Device: id}
}

func ButtonEvent(id DeviceID, code int, pressed bool) Event {
	return Event{Kind: EventButton, Device: id, Code: code, Pressed: pressed}
}

func AxisEvent(id DeviceID, code int, value int16) Event {
	return Event{Kind: EventAxis, Device: id, Code: code, Value: value}
}

func (e Event) String() string {
	switch e.Kind {
	case EventButton:
		return fmt.Sprintf("button device=%d code=%d pressed=%t", e.Device, e.Code, e.Pressed)
	case EventAxis:
		return fmt.Sprintf("axis device=%d code=%d value=%d", e.Device, e.Code, e.Value)
	}
	return fmt.Sprintf("%s device=%d", e.Kind, e.Device)
}
