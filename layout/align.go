package layout

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Align is a set of alignment flags for content placed inside a widget. Horizontal
// and vertical flags combine freely; setting both flags of one axis fills that axis.
type Align uint8

const (
	AlignCenter Align = 0x00
	AlignLeft   Align = 0x01
	AlignRight  Align = 0x02
	AlignMiddle Align = 0x00
	AlignTop    Align = 0x04
	AlignBottom Align = 0x08

	AlignFillX = AlignLeft | AlignRight
	AlignFillY = AlignTop | AlignBottom
)

var alignNames = map[string]Align{
	"center": AlignCenter,
	"middle": AlignMiddle,
	"left":   AlignLeft,
	"right":  AlignRight,
	"top":    AlignTop,
	"bottom": AlignBottom,
	"fill_x": AlignFillX,
	"fill_y": AlignFillY,
	"fill":   AlignFillX | AlignFillY,
}

// ParseAlign combines named flags ("left", "top", "fill_x", ...) into an Align.
func ParseAlign(names ...string) (Align, error) {
	var a Align
	for _, name := range names {
		flag, ok := alignNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("layout: unknown alignment %q", name)
		}
		a |= flag
	}
	return a, nil
}

func (a Align) String() string {
	var parts []string
	switch a & AlignFillX {
	case AlignFillX:
		parts = append(parts, "fill_x")
	case AlignLeft:
		parts = append(parts, "left")
	case AlignRight:
		parts = append(parts, "right")
	default:
		parts = append(parts, "center")
	}
	switch a & AlignFillY {
	case AlignFillY:
		parts = append(parts, "fill_y")
	case AlignTop:
		parts = append(parts, "top")
	case AlignBottom:
		parts = append(parts, "bottom")
	default:
		parts = append(parts, "middle")
	}
	return strings.Join(parts, "|")
}

// AlignedQuad returns the normalized-device-coordinate rectangle, within [-1,1]²,
// that shows content of size content (pixels) at native scale inside a viewport of
// size viewport (pixels), placed according to a. Fill flags stretch the content
// over the whole axis.
func AlignedQuad(a Align, content, viewport rl.Vector2) (minima, maxima rl.Vector2) {
	c := rl.NewVector2(content.X/viewport.X, content.Y/viewport.Y)
	minima = rl.NewVector2(-c.X, -c.Y)
	maxima = c

	if a&AlignLeft != 0 {
		minima.X = -1
		maxima.X -= 1 - c.X
	}
	if a&AlignRight != 0 {
		maxima.X = 1
		if a&AlignLeft == 0 {
			minima.X += 1 - c.X
		}
	}
	if a&AlignBottom != 0 {
		minima.Y = -1
		maxima.Y -= 1 - c.Y
	}
	if a&AlignTop != 0 {
		maxima.Y = 1
		if a&AlignBottom == 0 {
			minima.Y += 1 - c.Y
		}
	}
	return minima, maxima
}
