package hub

import (
	"strconv"
	"strings"
	"time"

	"github.com/soar/padoverlay/internal/display"
	"github.com/soar/padoverlay/internal/input"
)

// Message types sent from server to client.
const (
	TypeAssign         = "assign"          // a controller took the corner
	TypeRecord         = "record"          // new display record for the corner
	TypeRelease        = "release"         // the corner is free again
	TypeCornerSelected = "corner_selected" // confirms a select_corner request
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string          `json:"type"`
	Seq       int64           `json:"seq"`
	Timestamp int64           `json:"timestamp"` // Unix timestamp in milliseconds
	Corner    string          `json:"corner,omitempty"`
	DeviceID  int32           `json:"deviceId"`
	Record    *display.Record `json:"record,omitempty"`
	TextColor string          `json:"textColor,omitempty"` // readable text color over Record.Color
}

// NewAssignMessage announces that a controller is shown at corner.
func NewAssignMessage(id input.DeviceID, corner display.Corner) *WSMessage {
	rec := display.Neutral()
	return &WSMessage{
		Type:      TypeAssign,
		Timestamp: time.Now().UnixMilli(),
		Corner:    corner.String(),
		DeviceID:  int32(id),
		Record:    &rec,
		TextColor: ContrastColor(rec.Color),
	}
}

// NewRecordMessage carries a display record.
func NewRecordMessage(id input.DeviceID, corner display.Corner, rec display.Record) *WSMessage {
	return &WSMessage{
		Type:      TypeRecord,
		Timestamp: time.Now().UnixMilli(),
		Corner:    corner.String(),
		DeviceID:  int32(id),
		Record:    &rec,
		TextColor: ContrastColor(rec.Color),
	}
}

// NewReleaseMessage tells clients to hide the corner.
func NewReleaseMessage(id input.DeviceID, corner display.Corner) *WSMessage {
	return &WSMessage{
		Type:      TypeRelease,
		Timestamp: time.Now().UnixMilli(),
		Corner:    corner.String(),
		DeviceID:  int32(id),
	}
}

// NewCornerSelectedMessage confirms a corner selection; an empty corner
// means every corner.
func NewCornerSelectedMessage(corner string) *WSMessage {
	return &WSMessage{
		Type:      TypeCornerSelected,
		Timestamp: time.Now().UnixMilli(),
		Corner:    corner,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type   string `json:"type"`
	Corner string `json:"corner,omitempty"`
}

// ContrastColor picks black or white text for a "#RRGGBB" background
// using the W3C brightness formula. Unparseable colors get white.
func ContrastColor(background string) string {
	hex := strings.TrimPrefix(background, "#")
	if len(hex) < 6 {
		return "white"
	}
	var rgb [3]int64
	for i := range rgb {
		v, err := strconv.ParseInt(hex[i*2:i*2+2], 16, 0)
		if err != nil {
			return "white"
		}
		rgb[i] = v
	}
	brightness := (rgb[0]*299 + rgb[1]*587 + rgb[2]*114) / 1000
	if brightness > 125 {
		return "black"
	}
	return "white"
}
