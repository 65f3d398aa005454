package raylib

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kryonlabs/mindscape/event"
)

// mouseButtons lists the buttons polled each frame; the index is the zero-based
// button number.
var mouseButtons = [...]rl.MouseButton{
	rl.MouseButtonLeft,
	rl.MouseButtonRight,
	rl.MouseButtonMiddle,
}

// PollNotifications drains raylib's input state for the current frame into raw
// notifications, in the platform's top-left coordinates.
func (r *RaylibRenderer) PollNotifications() []event.Notification {
	var keys []int32
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		keys = append(keys, k)
	}
	var chars []rune
	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		chars = append(chars, rune(c))
	}
	out := keyNotifications(keys, chars)
	for _, k := range keys {
		r.held[k] = struct{}{}
	}

	var released []int32
	for k := range r.held {
		if rl.IsKeyReleased(k) {
			released = append(released, k)
		}
	}
	slices.Sort(released)
	for _, k := range released {
		delete(r.held, k)
		out = append(out, event.Notification{Type: event.NotifyKeyUp, Key: k})
	}

	pos := rl.GetMousePosition()
	var buttons event.Buttons
	for i, b := range mouseButtons {
		if rl.IsMouseButtonDown(b) {
			buttons |= 1 << i
		}
	}
	if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
		out = append(out, event.Notification{Type: event.NotifyMouseMotion, Pos: pos, Rel: delta, Buttons: buttons})
	}
	for i, b := range mouseButtons {
		if rl.IsMouseButtonPressed(b) {
			out = append(out, event.Notification{Type: event.NotifyButtonDown, Pos: pos, Button: i + 1})
		}
		if rl.IsMouseButtonReleased(b) {
			out = append(out, event.Notification{Type: event.NotifyButtonUp, Pos: pos, Button: i + 1})
		}
	}
	if wheel := rl.GetMouseWheelMoveV(); wheel.X != 0 || wheel.Y != 0 {
		out = append(out, event.Notification{Type: event.NotifyWheel, Pos: pos, Wheel: wheel})
	}

	if rl.IsWindowResized() {
		size := rl.NewVector2(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		r.log.Debug("window resized", "width", size.X, "height", size.Y)
		out = append(out, event.Notification{Type: event.NotifyResize, Pos: size})
	}
	return out
}

// keyNotifications pairs each printable key press with the next queued character.
// Characters left over (auto-repeat, compose sequences) become text notifications.
func keyNotifications(keys []int32, chars []rune) []event.Notification {
	out := make([]event.Notification, 0, len(keys)+len(chars))
	for _, k := range keys {
		n := event.Notification{Type: event.NotifyKeyDown, Key: k}
		if printable(k) && len(chars) > 0 {
			n.Char, chars = chars[0], chars[1:]
		}
		out = append(out, n)
	}
	for _, c := range chars {
		out = append(out, event.Notification{Type: event.NotifyText, Char: c})
	}
	return out
}

func printable(key int32) bool {
	switch {
	case key >= rl.KeySpace && key <= rl.KeyGrave:
		return true
	case key >= rl.KeyKp0 && key <= rl.KeyKpAdd:
		return true
	}
	return false
}

// Height implements event.Surface.
func (r *RaylibRenderer) Height() int {
	return rl.GetScreenHeight()
}

// SetGrab implements event.Surface. raylib can only confine the pointer by hiding and
// locking it, so unless the window config sets GrabLocksCursor the grab is only
// recorded, and widget.Container keeps routing to the pressed widget instead.
func (r *RaylibRenderer) SetGrab(on bool) {
	if on == r.grabbed {
		return
	}
	r.grabbed = on
	if !r.config.GrabLocksCursor {
		return
	}
	if on {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
	r.log.Debug("pointer grab", "on", on)
}

// Grabbed reports whether the pointer is currently captured.
func (r *RaylibRenderer) Grabbed() bool { return r.grabbed }
