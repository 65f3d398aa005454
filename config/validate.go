package config

import (
	"errors"
	"fmt"

	"github.com/kryonlabs/mindscape/layout"
)

// Validate reports every problem in the scene, each wrapping ErrInvalidScene.
func (s *Scene) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidScene}, args...)...))
	}

	w := s.Window
	if w.Width < 0 || w.Height < 0 {
		add("window size %dx%d is negative", w.Width, w.Height)
	}
	if w.TargetFPS < 0 {
		add("window.target_fps %d is negative", w.TargetFPS)
	}
	if _, err := ParseColor(w.Background); err != nil {
		add("window.background: %v", err)
	}

	if s.Root.Cell != nil {
		add("root: a root container takes no cell")
	}
	validateContainer(&s.Root, "root", add)
	return errors.Join(errs...)
}

func validateContainer(c *ContainerSpec, path string, add func(string, ...any)) {
	if c.Name != "" {
		path = c.Name
	}
	rows := validateAxis(c.Grid.Rows, c.Grid.RowCount, path+".grid.rows", add)
	cols := validateAxis(c.Grid.Cols, c.Grid.ColCount, path+".grid.cols", add)
	if _, err := ParseColor(c.Bg); err != nil {
		add("%s.bg: %v", path, err)
	}

	inGrid := func(child string, cell *[2]int) {
		x, y := cellOf(cell)
		if x < 0 || x >= cols || y < 0 || y >= rows {
			add("%s: cell [%d, %d] outside the %d-column, %d-row grid of %s", child, x, y, cols, rows, path)
		}
	}
	for i := range c.Labels {
		l := &c.Labels[i]
		lpath := fmt.Sprintf("%s.label[%d]", path, i)
		if l.Name != "" {
			lpath = l.Name
		}
		inGrid(lpath, l.Cell)
		if _, err := layout.ParseAlign(l.Align...); err != nil {
			add("%s: %v", lpath, err)
		}
		if l.FontSize < 0 {
			add("%s: font_size %g is negative", lpath, l.FontSize)
		}
		if _, err := ParseColor(l.Fg); err != nil {
			add("%s.fg: %v", lpath, err)
		}
		if _, err := ParseColor(l.Bg); err != nil {
			add("%s.bg: %v", lpath, err)
		}
	}
	for i := range c.Containers {
		child := &c.Containers[i]
		cpath := fmt.Sprintf("%s.container[%d]", path, i)
		if child.Name != "" {
			cpath = child.Name
		}
		inGrid(cpath, child.Cell)
		validateContainer(child, cpath, add)
	}
}

// validateAxis checks one grid axis and returns how many cells it will have.
func validateAxis(cells []CellSpec, count int, path string, add func(string, ...any)) int {
	if len(cells) > 0 && count > 0 {
		add("%s: both a cell list and a count are given", path)
	}
	if count < 0 {
		add("%s: count %d is negative", path, count)
	}
	for i, c := range cells {
		if c.Weight != nil && *c.Weight < 0 {
			add("%s[%d]: weight %g is negative", path, i, *c.Weight)
		}
		if c.Fixed < 0 {
			add("%s[%d]: fixed %g is negative", path, i, c.Fixed)
		}
	}
	switch {
	case len(cells) > 0:
		return len(cells)
	case count > 0:
		return count
	}
	return 1
}

func cellOf(cell *[2]int) (x, y int) {
	if cell == nil {
		return 0, 0
	}
	return cell[0], cell[1]
}
