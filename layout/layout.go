// layout/layout.go

// Package layout implements the tiling grid arithmetic used to place widgets.
//
// A Vector is an ordered run of cells along one axis. Compute distributes a total
// dimension over the cells: fixed allocations are taken first, and the remainder is
// shared out in proportion to each cell's weight. A Grid pairs a row Vector with a
// column Vector.
package layout

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Unset marks a cell offset or size that has not been computed yet.
const Unset float32 = -1

var (
	// ErrNoWeight is returned when flexible space remains but no cell has weight to take it.
	ErrNoWeight = errors.New("layout: zero total weight with non-zero remainder")
	// ErrNegativeWeight is returned when a cell's weight is below zero.
	ErrNegativeWeight = errors.New("layout: negative cell weight")
)

// Cell is one slot along a layout axis.
type Cell struct {
	Weight float32 // share of the flexible remainder
	Fixed  float32 // pixels allocated before weighting
	Offset float32 // computed
	Size   float32 // computed

	computed bool
}

// NewCell returns a cell with the given weight and fixed allocation.
func NewCell(weight, fixed float32) *Cell {
	return &Cell{Weight: weight, Fixed: fixed, Offset: Unset, Size: Unset}
}

// Flex returns a cell with weight 1 and no fixed allocation.
func Flex() *Cell { return NewCell(1, 0) }

// Fixed returns a cell of exactly px pixels.
func Fixed(px float32) *Cell { return NewCell(0, px) }

// Computed reports whether Offset and Size hold results of a Compute call. A cell
// built as a literal reports false until its vector is computed.
func (c *Cell) Computed() bool {
	return c.computed
}

// Vector is an ordered sequence of cells along one axis. Order determines placement:
// the first cell sits at offset zero.
type Vector struct {
	Cells []*Cell
}

func NewVector(cells ...*Cell) *Vector {
	return &Vector{Cells: cells}
}

// Uniform returns a vector of n equally weighted cells.
func Uniform(n int) *Vector {
	cells := make([]*Cell, n)
	for i := range cells {
		cells[i] = Flex()
	}
	return &Vector{Cells: cells}
}

func (v *Vector) Len() int { return len(v.Cells) }

// At returns cell i.
func (v *Vector) At(i int) *Cell { return v.Cells[i] }

// FixedTotal returns the sum of all fixed allocations.
func (v *Vector) FixedTotal() float32 {
	var total float32
	for _, c := range v.Cells {
		total += c.Fixed
	}
	return total
}

// WeightTotal returns the sum of all weights.
func (v *Vector) WeightTotal() float32 {
	var total float32
	for _, c := range v.Cells {
		total += c.Weight
	}
	return total
}

// Overflow returns how many pixels the fixed allocations exceed dim by, or 0.
// A positive overflow makes Compute produce negative flexible shares.
func (v *Vector) Overflow(dim float32) float32 {
	if over := v.FixedTotal() - dim; over > 0 {
		return over
	}
	return 0
}

// Compute lays the cells out over dim pixels. Results stay valid until the next call.
// On error no cell is modified.
func (v *Vector) Compute(dim float32) error {
	if err := v.check(dim); err != nil {
		return err
	}

	remainder := dim - v.FixedTotal()
	wtotal := v.WeightTotal()
	var offset float32
	for _, c := range v.Cells {
		c.Offset = offset
		c.Size = c.Fixed
		if wtotal != 0 {
			c.Size += remainder * c.Weight / wtotal
		}
		c.computed = true
		offset += c.Size
	}
	return nil
}

// check returns the error Compute would fail with for dim, without touching the cells.
func (v *Vector) check(dim float32) error {
	for i, c := range v.Cells {
		if c.Weight < 0 {
			return fmt.Errorf("cell %d: %w", i, ErrNegativeWeight)
		}
	}
	if remainder := dim - v.FixedTotal(); v.WeightTotal() == 0 && remainder != 0 {
		return fmt.Errorf("%w (%g px over %d cells)", ErrNoWeight, remainder, len(v.Cells))
	}
	return nil
}

// Grid is a 2D tiling made of a row vector and a column vector.
type Grid struct {
	Rows *Vector
	Cols *Vector
}

func NewGrid(rows, cols *Vector) *Grid {
	return &Grid{Rows: rows, Cols: cols}
}

// UniformGrid returns a grid of equally weighted rows and columns.
func UniformGrid(rows, cols int) *Grid {
	return NewGrid(Uniform(rows), Uniform(cols))
}

// Compute lays the grid out over dims. Rows are computed against dims.X and columns
// against dims.Y. Both axes are checked first, so on error neither is modified.
func (g *Grid) Compute(dims rl.Vector2) error {
	if err := g.Rows.check(dims.X); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	if err := g.Cols.check(dims.Y); err != nil {
		return fmt.Errorf("cols: %w", err)
	}
	// neither can fail now
	_ = g.Rows.Compute(dims.X)
	_ = g.Cols.Compute(dims.Y)
	return nil
}

// CellPair returns the (x, y) cells that position a widget at column x, row y.
// The same cell pointers are returned on every call.
func (g *Grid) CellPair(x, y int) (xcell, ycell *Cell) {
	return g.Cols.At(x), g.Rows.At(y)
}

// Contains reports whether CellPair(x, y) is in range.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.Cols.Len() && y >= 0 && y < g.Rows.Len()
}
