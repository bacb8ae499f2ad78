package display

import (
	"fmt"
	"strings"

	"github.com/soar/padoverlay/internal/input"
)

// Corner is one of the four fixed overlay positions.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight

	NumCorners = 4
)

var cornerNames = [NumCorners]string{"top_left", "top_right", "bottom_left", "bottom_right"}

func (c Corner) String() string {
	if c < 0 || c >= NumCorners {
		return fmt.Sprintf("Corner(%d)", int(c))
	}
	return cornerNames[c]
}

// ParseCorner accepts names such as "top_left" or "TOP_LEFT".
func ParseCorner(s string) (Corner, bool) {
	for i, n := range cornerNames {
		if strings.EqualFold(n, s) {
			return Corner(i), true
		}
	}
	return 0, false
}

// Surface is a display area owned by the presentation layer. The
// interpreter only holds a reference; Release hands it back.
type Surface interface {
	Update(r Record)
	Release()
}

// Presenter allocates surfaces for controllers.
type Presenter interface {
	Assign(id input.DeviceID, corner Corner) Surface
}
