package widget

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kryonlabs/mindscape/render"
)

// Placement is the absolute rectangle of one widget in window pixels, bottom-left origin.
type Placement struct {
	Name     string
	Kind     string
	Depth    int
	Pos      rl.Vector2
	Size     rl.Vector2
	Overflow rl.Vector2 // containers only: fixed allocations exceeding the rows (X) and columns (Y)
}

// Layout computes every grid in the tree for a viewport of the given size, the same
// way rendering does, and returns the resulting rectangles in tree order.
func Layout(root *Container, viewport rl.Vector2) ([]Placement, error) {
	if err := root.Grid.Compute(viewport); err != nil {
		return nil, err
	}
	out := []Placement{{
		Name:     root.Name,
		Kind:     kind(root),
		Size:     viewport,
		Overflow: overflow(root, viewport),
	}}
	err := placeChildren(root, rl.Vector2{}, 1, &out)
	return out, err
}

func placeChildren(parent render.Node, origin rl.Vector2, depth int, out *[]Placement) error {
	for _, child := range parent.Children() {
		w := widgetOf(child)
		if w == nil {
			continue
		}
		pos, size := w.Pos(), w.Size()
		abs := rl.NewVector2(origin.X+pos.X, origin.Y+pos.Y)
		p := Placement{Name: w.Name, Kind: kind(child), Depth: depth, Pos: abs, Size: size}

		if c, ok := child.(*Container); ok {
			if err := c.Grid.Compute(size); err != nil {
				return err
			}
			p.Overflow = overflow(c, size)
		}
		*out = append(*out, p)

		// every widget pushes its own viewport, so descendants are relative to it
		if err := placeChildren(child, abs, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

func widgetOf(n render.Node) *Widget {
	switch w := n.(type) {
	case *Widget:
		return w
	case *Container:
		return &w.Widget
	case *Label:
		return &w.Widget
	}
	return nil
}

func kind(n render.Node) string {
	switch n.(type) {
	case *Container:
		return "container"
	case *Label:
		return "label"
	}
	return "widget"
}

func overflow(c *Container, dims rl.Vector2) rl.Vector2 {
	return rl.NewVector2(c.Grid.Rows.Overflow(dims.X), c.Grid.Cols.Overflow(dims.Y))
}
