package event

import (
	"fmt"
	"iter"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NotificationType identifies a raw platform input notification.
type NotificationType uint8

const (
	NotifyNone NotificationType = iota
	NotifyKeyDown
	NotifyKeyUp
	NotifyMouseMotion
	NotifyButtonDown
	NotifyButtonUp
	NotifyWheel
	NotifyText   // a character generated without a key press (auto-repeat, IME)
	NotifyResize // the display surface changed size; not translated
)

var notificationNames = [...]string{
	NotifyNone:        "None",
	NotifyKeyDown:     "KeyDown",
	NotifyKeyUp:       "KeyUp",
	NotifyMouseMotion: "MouseMotion",
	NotifyButtonDown:  "ButtonDown",
	NotifyButtonUp:    "ButtonUp",
	NotifyWheel:       "Wheel",
	NotifyText:        "Text",
	NotifyResize:      "Resize",
}

func (t NotificationType) String() string {
	if int(t) < len(notificationNames) {
		return notificationNames[t]
	}
	return fmt.Sprintf("NotificationType(%d)", uint8(t))
}

// Notification is a raw input record as delivered by the platform, before
// normalization. Positions use a top-left origin with Y growing downward. Button is
// one-based for button down/up, while Buttons (motion) is already zero-based.
type Notification struct {
	Type    NotificationType
	Key     int32
	Char    rune       // generated character; 0 when the key produced none
	Pos     rl.Vector2 // the new surface size for NotifyResize
	Rel     rl.Vector2
	Buttons Buttons
	Button  int
	Wheel   rl.Vector2
}

// Surface is the display surface the notifications refer to.
type Surface interface {
	// Height returns the current surface height in pixels.
	Height() int
	// SetGrab turns pointer capture on or off.
	SetGrab(on bool)
}

// Translator converts notifications into events. It keeps no state between calls
// beyond the surface it queries for vertical flips.
type Translator struct {
	surface Surface
}

func NewTranslator(s Surface) *Translator {
	return &Translator{surface: s}
}

// Translate returns the events for one notification: zero, one or two of them.
//
// The sequence is lazy; side effects (pointer capture on button press/release) take
// place while it is iterated. Unknown notification types yield nothing.
func (t *Translator) Translate(n Notification) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		switch n.Type {
		case NotifyKeyDown:
			if !yield(KeyDown{Key: n.Key}) {
				return
			}
			if n.Char != 0 {
				yield(Char{Char: n.Char})
			}
		case NotifyKeyUp:
			yield(KeyUp{Key: n.Key})
		case NotifyText:
			if n.Char != 0 {
				yield(Char{Char: n.Char})
			}
		case NotifyMouseMotion:
			yield(MouseMove{
				Pos:     t.flip(n.Pos),
				Rel:     rl.NewVector2(n.Rel.X, -n.Rel.Y),
				Buttons: n.Buttons,
			})
		case NotifyButtonDown:
			t.surface.SetGrab(true)
			yield(ButtonDown{Pos: t.flip(n.Pos), Button: n.Button - 1})
		case NotifyButtonUp:
			t.surface.SetGrab(false)
			yield(ButtonUp{Pos: t.flip(n.Pos), Button: n.Button - 1})
		case NotifyWheel:
			yield(Wheel{Pos: t.flip(n.Pos), Delta: n.Wheel})
		}
	}
}

// TranslateAll translates a batch of notifications in order.
func (t *Translator) TranslateAll(ns []Notification) []Event {
	var out []Event
	for _, n := range ns {
		for ev := range t.Translate(n) {
			out = append(out, ev)
		}
	}
	return out
}

func (t *Translator) flip(p rl.Vector2) rl.Vector2 {
	return rl.NewVector2(p.X, float32(t.surface.Height())-p.Y)
}
