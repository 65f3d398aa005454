// Package widget provides the tiling widgets of the scenegraph: plain widgets,
// containers that own a layout grid, and text labels.
//
// A widget is positioned by two layout cells, one per axis, usually obtained from
// the parent container's Grid.CellPair. Positions are pixels with a bottom-left
// origin, relative to the parent container.
package widget

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kryonlabs/mindscape/event"
	"github.com/kryonlabs/mindscape/layout"
	"github.com/kryonlabs/mindscape/render"
)

// Bounded is implemented by nodes that occupy a rectangle of their parent.
type Bounded interface {
	Contains(p rl.Vector2) bool
}

type Widget struct {
	render.Tree
	Name    string
	XCell   *layout.Cell
	YCell   *layout.Cell
	Fg      rl.Color // zero means white
	Bg      rl.Color // drawn only when not fully transparent
	OnEvent event.HandlerFunc
}

func New(xcell, ycell *layout.Cell) *Widget {
	return &Widget{XCell: xcell, YCell: ycell}
}

// Pos returns the widget's offset inside its parent, in pixels.
func (w *Widget) Pos() rl.Vector2 {
	if w.XCell == nil || w.YCell == nil {
		return rl.Vector2{}
	}
	return rl.NewVector2(w.XCell.Offset, w.YCell.Offset)
}

// Size returns the widget's size in pixels.
func (w *Widget) Size() rl.Vector2 {
	if w.XCell == nil || w.YCell == nil {
		return rl.Vector2{}
	}
	return rl.NewVector2(w.XCell.Size, w.YCell.Size)
}

// Contains reports whether p, in the parent's coordinates, lies inside the widget.
func (w *Widget) Contains(p rl.Vector2) bool {
	pos, size := w.Pos(), w.Size()
	return p.X >= pos.X && p.X < pos.X+size.X && p.Y >= pos.Y && p.Y < pos.Y+size.Y
}

// ForegroundColor returns Fg, defaulting to opaque white.
func (w *Widget) ForegroundColor() rl.Color {
	if w.Fg == (rl.Color{}) {
		return rl.White
	}
	return w.Fg
}

// PushState restricts drawing to the widget's rectangle.
func (w *Widget) PushState(r render.Renderer) (func(), error) {
	pos, size := w.Pos(), w.Size()
	r.PushViewport(int32(pos.X), int32(pos.Y), int32(size.X), int32(size.Y))
	return r.PopViewport, nil
}

func (w *Widget) Render(r render.Renderer) error {
	return render.DrawChildren(r, w)
}

func (w *Widget) Handle(ev event.Event) {
	if w.OnEvent != nil {
		w.OnEvent(ev)
	}
}

func (w *Widget) String() string {
	return w.Name
}
