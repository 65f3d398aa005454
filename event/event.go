// event/event.go

// Package event normalizes raw input notifications into engine events and defines
// the two-phase dispatch contract used by the scenegraph.
//
// Every event is one of a closed set of variant structs. Consumers type-switch on the
// concrete type, or compare Type()/Subtype() when they only care about the category.
package event

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Type is the top-level event category.
type Type uint8

const (
	TypeKeyboard Type = 1 // key down, key up, character
	TypeMouse    Type = 2 // button press/release, wheel, motion
)

func (t Type) String() string {
	switch t {
	case TypeKeyboard:
		return "KBD"
	case TypeMouse:
		return "MOUSE"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Subtype is the category-specific discriminant. Values overlap between categories,
// so a Subtype is only meaningful together with its Type.
type Subtype uint8

// Keyboard subtypes.
const (
	SubKeyDown Subtype = 1
	SubKeyUp   Subtype = 2
	// SubChar is a printable character. It may be generated several times between a key
	// press and its release (auto-repeat) or not at all (modifiers, function keys).
	// Hook it to follow what the user types; hook SubKeyDown/SubKeyUp to track key state.
	SubChar Subtype = 3
)

// Mouse subtypes.
const (
	SubButtonDown Subtype = 1
	SubButtonUp   Subtype = 2
	SubWheel      Subtype = 3
	SubMove       Subtype = 4
)

var subtypeNames = map[Type]map[Subtype]string{
	TypeKeyboard: {SubKeyDown: "KEYDOWN", SubKeyUp: "KEYUP", SubChar: "CHAR"},
	TypeMouse:    {SubButtonDown: "BUTTONDOWN", SubButtonUp: "BUTTONUP", SubWheel: "WHEEL", SubMove: "MOVE"},
}

// SubtypeName returns the display name of s within category t.
func SubtypeName(t Type, s Subtype) string {
	if name, ok := subtypeNames[t][s]; ok {
		return name
	}
	return fmt.Sprintf("Subtype(%d)", uint8(s))
}

// Event is a normalized input occurrence.
type Event interface {
	Type() Type
	Subtype() Subtype
}

// Positional is implemented by events that carry a cursor position.
type Positional interface {
	Event
	Position() rl.Vector2
	// At returns a copy of the event located at pos.
	At(pos rl.Vector2) Event
}

// Buttons is a bitmask of held mouse buttons; bit i is button i (zero-based).
type Buttons uint8

// Pressed reports whether zero-based button i is held.
func (b Buttons) Pressed(i int) bool {
	if i < 0 || i >= 8 {
		return false
	}
	return b&(1<<uint(i)) != 0
}

// KeyDown reports a key press. Key is a raylib key code.
type KeyDown struct {
	Key int32
}

func (KeyDown) Type() Type       { return TypeKeyboard }
func (KeyDown) Subtype() Subtype { return SubKeyDown }
func (e KeyDown) String() string { return describe(e, fmt.Sprintf("key=%d", e.Key)) }

// KeyUp reports a key release.
type KeyUp struct {
	Key int32
}

func (KeyUp) Type() Type       { return TypeKeyboard }
func (KeyUp) Subtype() Subtype { return SubKeyUp }
func (e KeyUp) String() string { return describe(e, fmt.Sprintf("key=%d", e.Key)) }

// Char reports a generated printable character.
type Char struct {
	Char rune
}

func (Char) Type() Type       { return TypeKeyboard }
func (Char) Subtype() Subtype { return SubChar }
func (e Char) String() string { return describe(e, fmt.Sprintf("char=%q", e.Char)) }

// MouseMove reports cursor motion. Pos and Rel use a bottom-left origin with Y up.
type MouseMove struct {
	Pos     rl.Vector2
	Rel     rl.Vector2
	Buttons Buttons
}

func (MouseMove) Type() Type                { return TypeMouse }
func (MouseMove) Subtype() Subtype          { return SubMove }
func (e MouseMove) Position() rl.Vector2    { return e.Pos }
func (e MouseMove) At(pos rl.Vector2) Event { e.Pos = pos; return e }
func (e MouseMove) String() string {
	return describe(e, fmt.Sprintf("pos=%s rel=%s buttons=%08b", vec(e.Pos), vec(e.Rel), uint8(e.Buttons)))
}

// ButtonDown reports a mouse button press. Button is zero-based.
type ButtonDown struct {
	Pos    rl.Vector2
	Button int
}

func (ButtonDown) Type() Type                { return TypeMouse }
func (ButtonDown) Subtype() Subtype          { return SubButtonDown }
func (e ButtonDown) Position() rl.Vector2    { return e.Pos }
func (e ButtonDown) At(pos rl.Vector2) Event { e.Pos = pos; return e }
func (e ButtonDown) String() string {
	return describe(e, fmt.Sprintf("pos=%s button=%d", vec(e.Pos), e.Button))
}

// ButtonUp reports a mouse button release. Button is zero-based.
type ButtonUp struct {
	Pos    rl.Vector2
	Button int
}

func (ButtonUp) Type() Type                { return TypeMouse }
func (ButtonUp) Subtype() Subtype          { return SubButtonUp }
func (e ButtonUp) Position() rl.Vector2    { return e.Pos }
func (e ButtonUp) At(pos rl.Vector2) Event { e.Pos = pos; return e }
func (e ButtonUp) String() string {
	return describe(e, fmt.Sprintf("pos=%s button=%d", vec(e.Pos), e.Button))
}

// Wheel reports a scroll of the mouse wheel on one or both axes.
type Wheel struct {
	Pos   rl.Vector2
	Delta rl.Vector2
}

func (Wheel) Type() Type                { return TypeMouse }
func (Wheel) Subtype() Subtype          { return SubWheel }
func (e Wheel) Position() rl.Vector2    { return e.Pos }
func (e Wheel) At(pos rl.Vector2) Event { e.Pos = pos; return e }
func (e Wheel) String() string {
	return describe(e, fmt.Sprintf("pos=%s delta=%s", vec(e.Pos), vec(e.Delta)))
}

func describe(e Event, fields string) string {
	return fmt.Sprintf("<Event type=%s subtype=%s %s>", e.Type(), SubtypeName(e.Type(), e.Subtype()), fields)
}

func vec(v rl.Vector2) string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Localize returns ev moved into a coordinate space whose origin sits at origin.
// Events without a position are returned unchanged.
func Localize(ev Event, origin rl.Vector2) Event {
	p, ok := ev.(Positional)
	if !ok {
		return ev
	}
	pos := p.Position()
	return p.At(rl.NewVector2(pos.X-origin.X, pos.Y-origin.Y))
}
