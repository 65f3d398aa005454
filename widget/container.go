package widget

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kryonlabs/mindscape/event"
	"github.com/kryonlabs/mindscape/layout"
	"github.com/kryonlabs/mindscape/render"
)

// Container is a widget that owns a grid and lays its children out on it.
//
// A container without cells is a root: it lays out over the whole current viewport
// and switches to identity projection and view transforms while it renders, so its
// children can draw in normalized device coordinates.
type Container struct {
	Widget
	Grid *layout.Grid

	captured      render.Node // child holding pointer capture between button down and up
	captureButton int         // button whose release ends the capture
}

func NewContainer(grid *layout.Grid, xcell, ycell *layout.Cell) *Container {
	return &Container{Widget: Widget{XCell: xcell, YCell: ycell}, Grid: grid}
}

// NewRoot returns a root container over grid.
func NewRoot(grid *layout.Grid) *Container {
	return NewContainer(grid, nil, nil)
}

func (c *Container) IsRoot() bool {
	return c.XCell == nil || c.YCell == nil
}

// Cell returns the cells positioning column x, row y of the container's grid.
func (c *Container) Cell(x, y int) (xcell, ycell *layout.Cell) {
	return c.Grid.CellPair(x, y)
}

// PushState recomputes the grid for this frame and pushes the container's state.
func (c *Container) PushState(r render.Renderer) (func(), error) {
	if c.IsRoot() {
		r.PushIdentityTransform()
		if err := c.Grid.Compute(r.ViewportSize()); err != nil {
			r.PopTransform()
			return nil, fmt.Errorf("container %q: %w", c.Name, err)
		}
		return r.PopTransform, nil
	}
	if err := c.Grid.Compute(c.Size()); err != nil {
		return nil, fmt.Errorf("container %q: %w", c.Name, err)
	}
	return c.Widget.PushState(r)
}

func (c *Container) Render(r render.Renderer) error {
	if c.Bg.A > 0 {
		r.FillRect(rl.NewVector2(-1, -1), rl.NewVector2(1, 1), c.Bg)
	}
	return render.DrawChildren(r, c)
}

// TriggerChildren propagates positional events only to children whose rectangle
// contains the position, translated into the container's own coordinates. While a
// child holds pointer capture it receives every positional event instead, until the
// button that started the capture is released. Events without a position go to all
// children.
func (c *Container) TriggerChildren(ev event.Event) {
	if _, ok := ev.(event.Positional); !ok {
		c.Tree.TriggerChildren(ev)
		return
	}
	if !c.IsRoot() {
		ev = event.Localize(ev, c.Pos())
	}

	if c.captured != nil {
		target := c.captured
		if up, ok := ev.(event.ButtonUp); ok && up.Button == c.captureButton {
			c.captured = nil
		}
		event.Trigger(target, ev)
		return
	}

	pos := ev.(event.Positional).Position()
	for _, child := range c.Children() {
		if b, ok := child.(Bounded); ok && !b.Contains(pos) {
			continue
		}
		if down, ok := ev.(event.ButtonDown); ok && c.captured == nil {
			c.captured, c.captureButton = child, down.Button
		}
		event.Trigger(child, ev)
	}
}
