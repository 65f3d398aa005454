// render/render.go
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kryonlabs/mindscape/event"
)

const (
	DefaultFontSize = 30.0 // Label font size when none is given
	DefaultFPS      = 30
)

type WindowConfig struct {
	Width           int
	Height          int
	Title           string
	Resizable       bool
	TargetFPS       int
	Background      rl.Color // Window clear color
	GrabLocksCursor bool     // Pointer capture also hides and locks the cursor
}

// Renderer is the drawing surface widgets render into. Coordinates passed to
// PushViewport are window pixels with a bottom-left origin, relative to the origin of
// the current viewport. Draw calls take normalized device coordinates.
type Renderer interface {
	// --- Scoped state ---
	ViewportSize() rl.Vector2 // size of the current viewport in pixels
	PushViewport(x, y, w, h int32)
	PopViewport()
	PushIdentityTransform() // identity projection and view for NDC drawing
	PopTransform()

	// --- Drawing ---
	FillRect(minima, maxima rl.Vector2, color rl.Color)
	DrawTexture(tex rl.Texture2D, minima, maxima rl.Vector2)

	// --- Text ---
	// TextTexture rasterizes text into a texture owned by the caller, who must hand it
	// back through ReleaseTexture.
	TextTexture(text string, fontSize float32, color rl.Color) (rl.Texture2D, error)
	ReleaseTexture(tex rl.Texture2D)
}

// Node is an element of the scenegraph: it receives events and renders itself.
type Node interface {
	event.Receiver
	Render(r Renderer) error
	Children() []Node
}

// Stateful nodes bracket their rendering (and their children's) with renderer state.
// PushState returns the function that restores the state; Draw defers it.
type Stateful interface {
	PushState(r Renderer) (pop func(), err error)
}

// DefaultWindowConfig provides sensible default values for the application window.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:      640,
		Height:     480,
		Title:      "Mindscape",
		Resizable:  true,
		TargetFPS:  DefaultFPS,
		Background: rl.NewColor(51, 102, 102, 255), // Teal gray
	}
}
