package tray

import _ "embed"

// Four magenta corners on a neutral pad.
//
//go:embed icon.ico
var iconData []byte

// GetIcon returns the embedded tray icon data
func GetIcon() []byte {
	return iconData
}
