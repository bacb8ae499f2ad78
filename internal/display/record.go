// Package display defines what the interpreter hands to the presentation
// layer: finished records, the four screen corners, and the surface
// contract a renderer implements.
package display

// Type identifies the layout of a Record.
type Type string

const (
	TypeButton    Type = "button"
	TypeSingle    Type = "single"
	TypeDpad      Type = "dpad"
	TypeFace      Type = "face"
	TypeShoulders Type = "shoulders"
)

const (
	// NeutralColor is shown whenever no mapping or combination applies.
	NeutralColor = "#808080"
	// HotkeyColor is the background of every combination display.
	HotkeyColor = "#FF00FF"
)

// Record is one display update. Button records use Color and Label; a
// single-label combination uses Text; four-way combinations fill Slots with
// the lower-case sub-key names of their kind (up/down/left/right,
// north/south/west/east, rb/rt/lb/lt).
type Record struct {
	Type  Type              `json:"type"`
	Color string            `json:"color"`
	Label string            `json:"label,omitempty"`
	Text  string            `json:"text,omitempty"`
	Slots map[string]string `json:"slots,omitempty"`
}

// Neutral returns the grey, empty record.
func Neutral() Record {
	return Record{Type: TypeButton, Color: NeutralColor}
}

// Button returns a simple color and label record.
func Button(color, label string) Record {
	return Record{Type: TypeButton, Color: color, Label: label}
}

// IsNeutral reports whether r is the neutral default.
func (r Record) IsNeutral() bool {
	return r.Type == TypeButton && r.Color == NeutralColor && r.Label == ""
}
