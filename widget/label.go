package widget

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kryonlabs/mindscape/layout"
	"github.com/kryonlabs/mindscape/render"
)

// Label draws a line of text at native pixel size inside its cell, optionally over a
// background fill.
type Label struct {
	Widget
	Text     string
	Align    layout.Align
	FontSize float32 // zero means render.DefaultFontSize

	tex    rl.Texture2D
	texFor textKey
}

type textKey struct {
	text  string
	size  float32
	color rl.Color
}

func NewLabel(xcell, ycell *layout.Cell, text string, align layout.Align) *Label {
	return &Label{Widget: Widget{XCell: xcell, YCell: ycell}, Text: text, Align: align}
}

func (l *Label) fontSize() float32 {
	if l.FontSize <= 0 {
		return render.DefaultFontSize
	}
	return l.FontSize
}

func (l *Label) Render(r render.Renderer) error {
	if l.Bg.A > 0 {
		r.FillRect(rl.NewVector2(-1, -1), rl.NewVector2(1, 1), l.Bg)
	}
	if l.Text == "" {
		l.release(r)
	} else {
		if err := l.refresh(r); err != nil {
			return err
		}
		content := rl.NewVector2(float32(l.tex.Width), float32(l.tex.Height))
		minima, maxima := layout.AlignedQuad(l.Align, content, r.ViewportSize())
		r.DrawTexture(l.tex, minima, maxima)
	}
	return render.DrawChildren(r, l)
}

// refresh rasterizes the text again when its content, size or colour changed.
func (l *Label) refresh(r render.Renderer) error {
	key := textKey{text: l.Text, size: l.fontSize(), color: l.ForegroundColor()}
	if l.tex.ID != 0 && key == l.texFor {
		return nil
	}
	tex, err := r.TextTexture(key.text, key.size, key.color)
	if err != nil {
		return fmt.Errorf("label %q: %w", l.Name, err)
	}
	l.release(r)
	l.tex, l.texFor = tex, key
	return nil
}

func (l *Label) release(r render.Renderer) {
	if l.tex.ID != 0 {
		r.ReleaseTexture(l.tex)
	}
	l.tex, l.texFor = rl.Texture2D{}, textKey{}
}
