package gamepad

import (
	"math"

	"github.com/soar/padoverlay/internal/input"
)

// AxisMapping defines how a raw joystick axis index maps to a canonical axis.
type AxisMapping struct {
	Index     int32
	Target    input.Axis
	IsTrigger bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw joystick button index maps to a canonical button.
type ButtonMapping struct {
	Index  int32
	Target input.Button
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// Button returns the canonical button for a raw index.
func (m *DeviceMapping) Button(index int32) (input.Button, bool) {
	for _, bm := range m.Buttons {
		if bm.Index == index {
			return bm.Target, true
		}
	}
	return input.ButtonUnknown, false
}

// Axis returns the mapping for a raw axis index.
func (m *DeviceMapping) Axis(index int32) (AxisMapping, bool) {
	for _, am := range m.Axes {
		if am.Index == index {
			return am, true
		}
	}
	return AxisMapping{}, false
}

// Value converts a raw reading to the canonical range: sticks pass through,
// triggers are rescaled to 0..32767.
func (am AxisMapping) Value(raw int16) int16 {
	if !am.IsTrigger {
		return raw
	}
	return NormalizeTrigger(raw, am.RawMin, am.RawMax)
}

// NormalizeTrigger rescales a raw trigger value from rawMin..rawMax to 0..32767.
func NormalizeTrigger(raw, rawMin, rawMax int16) int16 {
	if rawMax <= rawMin {
		return 0
	}
	v := (int64(raw) - int64(rawMin)) * math.MaxInt16 / (int64(rawMax) - int64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > math.MaxInt16 {
		v = math.MaxInt16
	}
	return int16(v)
}

// Built-in mappings for common controllers.

var standardAxes = []AxisMapping{
	{Index: 0, Target: input.AxisLeftX},
	{Index: 1, Target: input.AxisLeftY},
	{Index: 2, Target: input.AxisRightX},
	{Index: 3, Target: input.AxisRightY},
	{Index: 4, Target: input.AxisTriggerLeft, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	{Index: 5, Target: input.AxisTriggerRight, IsTrigger: true, RawMin: -32768, RawMax: 32767},
}

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Target: input.ButtonSouth},
		{Index: 1, Target: input.ButtonEast},
		{Index: 2, Target: input.ButtonWest},
		{Index: 3, Target: input.ButtonNorth},
		{Index: 4, Target: input.ButtonLB},
		{Index: 5, Target: input.ButtonRB},
		{Index: 6, Target: input.ButtonBack},
		{Index: 7, Target: input.ButtonStart},
		{Index: 8, Target: input.ButtonLeftStick},
		{Index: 9, Target: input.ButtonRightStick},
		{Index: 10, Target: input.ButtonGuide},
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Target: input.ButtonSouth}, // Cross
		{Index: 1, Target: input.ButtonEast},  // Circle
		{Index: 2, Target: input.ButtonWest},  // Square
		{Index: 3, Target: input.ButtonNorth}, // Triangle
		{Index: 4, Target: input.ButtonBack},  // Share / Create
		{Index: 5, Target: input.ButtonGuide}, // PS button
		{Index: 6, Target: input.ButtonStart}, // Options
		{Index: 7, Target: input.ButtonLeftStick},
		{Index: 8, Target: input.ButtonRightStick},
		{Index: 9, Target: input.ButtonLB},  // L1
		{Index: 10, Target: input.ButtonRB}, // R1
	},
	HasHat: true,
}

// The Switch Pro controller has digital ZL/ZR, so it reports no trigger axes.
var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: standardAxes[:4],
	Buttons: []ButtonMapping{
		{Index: 0, Target: input.ButtonSouth},
		{Index: 1, Target: input.ButtonEast},
		{Index: 2, Target: input.ButtonWest},
		{Index: 3, Target: input.ButtonNorth},
		{Index: 4, Target: input.ButtonLB},
		{Index: 5, Target: input.ButtonRB},
		{Index: 6, Target: input.ButtonBack},
		{Index: 7, Target: input.ButtonStart},
		{Index: 8, Target: input.ButtonLeftStick},
		{Index: 9, Target: input.ButtonRightStick},
		{Index: 10, Target: input.ButtonGuide},
		{Index: 11, Target: input.ButtonLT}, // ZL
		{Index: 12, Target: input.ButtonRT}, // ZR
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name:    "generic",
	Axes:    standardAxes,
	Buttons: xboxMapping.Buttons,
	HasHat:  true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
