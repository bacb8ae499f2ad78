package input

import "strings"

// Axis is a canonical controller axis, numbered like the SDL game
// controller API.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisTriggerLeft
	AxisTriggerRight

	numAxes

	AxisUnknown Axis = -1
)

var axisNames = [numAxes]string{
	AxisLeftX:        "LEFTX",
	AxisLeftY:        "LEFTY",
	AxisRightX:       "RIGHTX",
	AxisRightY:       "RIGHTY",
	AxisTriggerLeft:  "TRIGGERLEFT",
	AxisTriggerRight: "TRIGGERRIGHT",
}

func (a Axis) String() string {
	if a < 0 || a >= numAxes {
		return "UNKNOWN"
	}
	return axisNames[a]
}

// AxisFromCode translates a raw axis code.
func AxisFromCode(code int) (Axis, bool) {
	if code < 0 || code >= int(numAxes) {
		return AxisUnknown, false
	}
	return Axis(code), true
}

// ParseAxis resolves an axis name such as "LEFTX" (case-insensitive).
func ParseAxis(name string) (Axis, bool) {
	name = strings.TrimSpace(name)
	for i, n := range axisNames {
		if strings.EqualFold(n, name) {
			return Axis(i), true
		}
	}
	return AxisUnknown, false
}
