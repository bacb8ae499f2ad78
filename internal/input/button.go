package input

import "strings"

// Button is a canonical controller button. Values follow the SDL game
// controller numbering, so codes decoded by the gamepad reader can be
// looked up directly.
type Button int

const (
	ButtonSouth Button = iota // A, Cross
	ButtonEast                // B, Circle
	ButtonWest                // X, Square
	ButtonNorth               // Y, Triangle
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLB
	ButtonRB
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonMisc
	ButtonPaddle1
	ButtonPaddle2
	ButtonPaddle3
	ButtonPaddle4
	ButtonTouchpad

	// Digital triggers. Some pads (Switch Pro ZL/ZR, most Sega-style pads)
	// report their triggers as plain buttons rather than axes.
	ButtonLT
	ButtonRT

	numButtons

	ButtonUnknown Button = -1
)

var buttonNames = [numButtons]string{
	ButtonSouth:      "South",
	ButtonEast:       "East",
	ButtonWest:       "West",
	ButtonNorth:      "North",
	ButtonBack:       "Back",
	ButtonGuide:      "Guide",
	ButtonStart:      "Start",
	ButtonLeftStick:  "LS",
	ButtonRightStick: "RS",
	ButtonLB:         "LB",
	ButtonRB:         "RB",
	ButtonUp:         "Up",
	ButtonDown:       "Down",
	ButtonLeft:       "Left",
	ButtonRight:      "Right",
	ButtonMisc:       "Misc",
	ButtonPaddle1:    "Paddle1",
	ButtonPaddle2:    "Paddle2",
	ButtonPaddle3:    "Paddle3",
	ButtonPaddle4:    "Paddle4",
	ButtonTouchpad:   "Touchpad",
	ButtonLT:         "LT",
	ButtonRT:         "RT",
}

// Letter names used by Xbox-style profiles for the face buttons.
var buttonAliases = map[string]Button{
	"a": ButtonSouth,
	"b": ButtonEast,
	"x": ButtonWest,
	"y": ButtonNorth,
}

// String returns the display name of the button.
func (b Button) String() string {
	if b < 0 || b >= numButtons {
		return "Unknown"
	}
	return buttonNames[b]
}

// ButtonFromCode translates a raw button code. The second return value is
// false for codes outside the table.
func ButtonFromCode(code int) (Button, bool) {
	if code < 0 || code >= int(numButtons) {
		return ButtonUnknown, false
	}
	return Button(code), true
}

// ParseButton resolves a display name, or one of the A/B/X/Y aliases, to a
// Button. Matching is case-insensitive.
func ParseButton(name string) (Button, bool) {
	name = strings.TrimSpace(name)
	for i, n := range buttonNames {
		if strings.EqualFold(n, name) {
			return Button(i), true
		}
	}
	if b, ok := buttonAliases[strings.ToLower(name)]; ok {
		return b, true
	}
	return ButtonUnknown, false
}

// HotkeyEligible reports whether the button takes part in hotkey
// combinations.
func (b Button) HotkeyEligible() bool {
	switch b {
	case ButtonGuide, ButtonStart,
		ButtonUp, ButtonDown, ButtonLeft, ButtonRight,
		ButtonNorth, ButtonSouth, ButtonEast, ButtonWest,
		ButtonLB, ButtonRB:
		return true
	}
	return false
}
