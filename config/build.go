package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/kryonlabs/mindscape/event"
	"github.com/kryonlabs/mindscape/layout"
	"github.com/kryonlabs/mindscape/widget"
)

// Handlers maps the names used by on_event to event handlers.
type Handlers map[string]event.HandlerFunc

// Build validates the scene and turns its root into a widget tree. Handler names
// missing from handlers are logged and left unbound.
//
// Child containers are added before labels, so labels draw on top.
func Build(s *Scene, handlers Handlers, logger *log.Logger) (*widget.Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	b := builder{handlers: handlers, log: logger}
	root := widget.NewRoot(buildGrid(s.Root.Grid))
	if err := b.fill(root, &s.Root); err != nil {
		return nil, err
	}
	return root, nil
}

type builder struct {
	handlers Handlers
	log      *log.Logger
}

func (b *builder) fill(c *widget.Container, spec *ContainerSpec) error {
	c.Name = nameOr(spec.Name, "container")
	bg, err := ParseColor(spec.Bg)
	if err != nil {
		return fmt.Errorf("%w: %s.bg: %w", ErrInvalidScene, c.Name, err)
	}
	c.Bg = bg
	c.OnEvent = b.handler(c.Name, spec.OnEvent)

	for i := range spec.Containers {
		cs := &spec.Containers[i]
		child := widget.NewContainer(buildGrid(cs.Grid), nil, nil)
		child.XCell, child.YCell = c.Cell(cellOf(cs.Cell))
		if err := b.fill(child, cs); err != nil {
			return err
		}
		c.Add(child)
	}
	for i := range spec.Labels {
		lbl, err := b.label(c, &spec.Labels[i])
		if err != nil {
			return err
		}
		c.Add(lbl)
	}
	b.log.Debug("built container", "name", c.Name, "rows", c.Grid.Rows.Len(), "cols", c.Grid.Cols.Len(), "children", len(c.Children()))
	return nil
}

func (b *builder) label(parent *widget.Container, spec *LabelSpec) (*widget.Label, error) {
	align, err := layout.ParseAlign(spec.Align...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	lbl := widget.NewLabel(nil, nil, spec.Text, align)
	lbl.XCell, lbl.YCell = parent.Cell(cellOf(spec.Cell))
	lbl.Name = nameOr(spec.Name, "label")
	lbl.FontSize = spec.FontSize
	if lbl.Fg, err = ParseColor(spec.Fg); err != nil {
		return nil, fmt.Errorf("%w: %s.fg: %w", ErrInvalidScene, lbl.Name, err)
	}
	if lbl.Bg, err = ParseColor(spec.Bg); err != nil {
		return nil, fmt.Errorf("%w: %s.bg: %w", ErrInvalidScene, lbl.Name, err)
	}
	lbl.OnEvent = b.handler(lbl.Name, spec.OnEvent)
	return lbl, nil
}

func (b *builder) handler(widgetName, name string) event.HandlerFunc {
	if name == "" {
		return nil
	}
	h, ok := b.handlers[name]
	if !ok {
		b.log.Warn("no handler registered", "widget", widgetName, "on_event", name)
		return nil
	}
	return h
}

func buildGrid(g GridSpec) *layout.Grid {
	return layout.NewGrid(buildAxis(g.Rows, g.RowCount), buildAxis(g.Cols, g.ColCount))
}

func buildAxis(cells []CellSpec, count int) *layout.Vector {
	if len(cells) == 0 {
		return layout.Uniform(max(count, 1))
	}
	v := layout.NewVector()
	for _, c := range cells {
		weight := float32(1)
		if c.Weight != nil {
			weight = *c.Weight
		}
		v.Cells = append(v.Cells, layout.NewCell(weight, c.Fixed))
	}
	return v
}

func nameOr(name, kind string) string {
	if name != "" {
		return name
	}
	return kind + "-" + uuid.NewString()[:8]
}
