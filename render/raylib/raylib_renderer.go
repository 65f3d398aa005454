// render/raylib/raylib_renderer.go
package raylib

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kryonlabs/mindscape/render"
)

// ErrWindowNotReady is returned by Init when raylib could not open a window.
var ErrWindowNotReady = errors.New("raylib: window is not ready")

type viewport struct{ x, y, w, h int32 }

type RaylibRenderer struct {
	config     render.WindowConfig
	log        *log.Logger
	font       rl.Font
	viewports  []viewport
	transforms int
	textures   map[uint32]rl.Texture2D // live textures handed out by TextTexture
	held       map[int32]struct{}      // keys pressed and not yet released
	grabbed    bool
}

// New returns a renderer for cfg. Nothing touches the window until Init.
func New(cfg render.WindowConfig, logger *log.Logger) *RaylibRenderer {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = render.DefaultFPS
	}
	return &RaylibRenderer{
		config:   cfg,
		log:      logger.WithPrefix("raylib"),
		textures: make(map[uint32]rl.Texture2D),
		held:     make(map[int32]struct{}),
	}
}

func (r *RaylibRenderer) Init() error {
	r.log.Info("initializing window", "width", r.config.Width, "height", r.config.Height, "title", r.config.Title)

	if r.config.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(r.config.Width), int32(r.config.Height), r.config.Title)
	if !rl.IsWindowReady() {
		return ErrWindowNotReady
	}
	rl.SetTargetFPS(int32(r.config.TargetFPS))
	// Escape is delivered as an ordinary key event.
	rl.SetExitKey(rl.KeyNull)
	r.font = rl.GetFontDefault()

	r.log.Debug("window ready", "fps", r.config.TargetFPS, "grab_locks_cursor", r.config.GrabLocksCursor)
	return nil
}

func (r *RaylibRenderer) Cleanup() {
	if len(r.viewports) > 0 || r.transforms > 0 {
		r.log.Warn("unbalanced renderer state at cleanup", "viewports", len(r.viewports), "transforms", r.transforms)
	}
	for id, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, id)
	}
	if r.grabbed {
		r.SetGrab(false)
	}
	if rl.IsWindowReady() {
		r.log.Debug("closing window")
		rl.CloseWindow()
	}
}

func (r *RaylibRenderer) ShouldClose() bool {
	return rl.IsWindowReady() && rl.WindowShouldClose()
}

func (r *RaylibRenderer) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(r.config.Background)
}

func (r *RaylibRenderer) EndFrame() {
	if len(r.viewports) > 0 || r.transforms > 0 {
		r.log.Warn("frame ended with pushed state", "viewports", len(r.viewports), "transforms", r.transforms)
		r.viewports, r.transforms = r.viewports[:0], 0
	}
	rl.EndDrawing()
}

func (r *RaylibRenderer) current() viewport {
	if n := len(r.viewports); n > 0 {
		return r.viewports[n-1]
	}
	return viewport{0, 0, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())}
}

func (r *RaylibRenderer) ViewportSize() rl.Vector2 {
	v := r.current()
	return rl.NewVector2(float32(v.w), float32(v.h))
}

func (r *RaylibRenderer) PushViewport(x, y, w, h int32) {
	cur := r.current()
	v := viewport{cur.x + x, cur.y + y, w, h}
	rl.DrawRenderBatchActive()
	rl.Viewport(v.x, v.y, v.w, v.h)
	r.viewports = append(r.viewports, v)
}

func (r *RaylibRenderer) PopViewport() {
	if len(r.viewports) == 0 {
		r.log.Warn("PopViewport without matching push")
		return
	}
	rl.DrawRenderBatchActive()
	r.viewports = r.viewports[:len(r.viewports)-1]
	v := r.current()
	rl.Viewport(v.x, v.y, v.w, v.h)
}

func (r *RaylibRenderer) PushIdentityTransform() {
	rl.DrawRenderBatchActive()
	rl.MatrixMode(rl.Projection)
	rl.PushMatrix()
	rl.LoadIdentity()
	rl.MatrixMode(rl.Modelview)
	rl.PushMatrix()
	rl.LoadIdentity()
	r.transforms++
}

func (r *RaylibRenderer) PopTransform() {
	if r.transforms == 0 {
		r.log.Warn("PopTransform without matching push")
		return
	}
	rl.DrawRenderBatchActive()
	rl.MatrixMode(rl.Projection)
	rl.PopMatrix()
	rl.MatrixMode(rl.Modelview)
	rl.PopMatrix()
	r.transforms--
}

// FillRect fills the NDC rectangle [minima, maxima] of the current viewport.
func (r *RaylibRenderer) FillRect(minima, maxima rl.Vector2, color rl.Color) {
	rl.Begin(rl.Quads)
	rl.Color4ub(color.R, color.G, color.B, color.A)
	rl.Vertex2f(minima.X, minima.Y)
	rl.Vertex2f(maxima.X, minima.Y)
	rl.Vertex2f(maxima.X, maxima.Y)
	rl.Vertex2f(minima.X, maxima.Y)
	rl.End()
}

// DrawTexture maps tex upright onto the NDC rectangle [minima, maxima].
func (r *RaylibRenderer) DrawTexture(tex rl.Texture2D, minima, maxima rl.Vector2) {
	if tex.ID == 0 {
		return
	}
	rl.SetTexture(tex.ID)
	rl.Begin(rl.Quads)
	rl.Color4ub(255, 255, 255, 255)
	// image row 0 is the top of the text
	rl.TexCoord2f(0, 1)
	rl.Vertex2f(minima.X, minima.Y)
	rl.TexCoord2f(1, 1)
	rl.Vertex2f(maxima.X, minima.Y)
	rl.TexCoord2f(1, 0)
	rl.Vertex2f(maxima.X, maxima.Y)
	rl.TexCoord2f(0, 0)
	rl.Vertex2f(minima.X, maxima.Y)
	rl.End()
	rl.SetTexture(0)
}

func (r *RaylibRenderer) TextTexture(text string, fontSize float32, color rl.Color) (rl.Texture2D, error) {
	if fontSize <= 0 {
		fontSize = render.DefaultFontSize
	}
	img := rl.ImageTextEx(r.font, text, fontSize, textSpacing(fontSize, r.font.BaseSize), color)
	if img == nil || img.Width == 0 || img.Height == 0 {
		return rl.Texture2D{}, fmt.Errorf("raylib: rasterizing %q at %gpx produced an empty image", text, fontSize)
	}
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if tex.ID == 0 {
		return rl.Texture2D{}, fmt.Errorf("raylib: uploading texture for %q failed", text)
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	r.textures[tex.ID] = tex
	r.log.Debug("text texture", "id", tex.ID, "text", text, "size", fontSize, "w", tex.Width, "h", tex.Height)
	return tex, nil
}

func (r *RaylibRenderer) ReleaseTexture(tex rl.Texture2D) {
	if _, ok := r.textures[tex.ID]; !ok {
		r.log.Warn("releasing unknown texture", "id", tex.ID)
		return
	}
	delete(r.textures, tex.ID)
	rl.UnloadTexture(tex)
}

// LiveTextures returns the number of textures handed out and not yet released.
func (r *RaylibRenderer) LiveTextures() int { return len(r.textures) }

// textSpacing matches the glyph spacing raylib's DrawText uses for the default font.
func textSpacing(fontSize float32, baseSize int32) float32 {
	if baseSize <= 0 {
		baseSize = 10
	}
	return fontSize / float32(baseSize)
}
