// internal/canvas/builder.go
//
// Grid construction and painting.
// Responsibilities:
//   - Validate a GridRequest against the viewport (width first, then height).
//   - Build a fresh rectangular Grid of unpainted cells.
//   - Paint a single cell by coordinates.
//
// Notes:
//   - Build never mutates an existing grid; replacing the displayed grid is
//     the caller's job (see the session package).
package canvas

import "fmt"

// Builder builds grids for a fixed cell size.
type Builder struct {
	CellSize int
}

// NewBuilder returns a Builder; a non-positive cellSize falls back to DefaultCellSize.
func NewBuilder(cellSize int) Builder {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return Builder{CellSize: cellSize}
}

// Build validates req against bounds and returns a new Grid.
//
// Validation order:
//   - rows/columns must be positive (ErrInvalidSize).
//   - viewport must not be negative (ErrInvalidViewport).
//   - columns*cellSize must fit the width, then rows*cellSize the height
//     (*SizeError). Only the first violation is reported. The comparison is
//     done against width/cellSize so huge counts cannot overflow.
func (b Builder) Build(req GridRequest, bounds ViewportBounds) (*Grid, error) {
	size := b.cellSize()
	if req.Rows <= 0 || req.Columns <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, req.Rows, req.Columns)
	}
	if bounds.Width < 0 || bounds.Height < 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidViewport, bounds.Width, bounds.Height)
	}

	if limit := bounds.Width / size; req.Columns > limit {
		return nil, &SizeError{Axis: AxisWidth, Limit: limit}
	}
	if limit := bounds.Height / size; req.Rows > limit {
		return nil, &SizeError{Axis: AxisHeight, Limit: limit}
	}

	cells := make([][]*Cell, req.Rows)
	for r := range cells {
		row := make([]*Cell, req.Columns)
		for c := range row {
			row[c] = &Cell{Row: r, Col: c}
		}
		cells[r] = row
	}
	return &Grid{Rows: req.Rows, Columns: req.Columns, Cells: cells}, nil
}

func (b Builder) cellSize() int {
	if b.CellSize <= 0 {
		return DefaultCellSize
	}
	return b.CellSize
}

// Cell returns the cell at (row, col).
func (g *Grid) Cell(row, col int) (*Cell, error) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Columns {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrCellOutOfRange, row, col, g.Rows, g.Columns)
	}
	return g.Cells[row][col], nil
}

// Paint sets the color of exactly the cell at (row, col).
func (g *Grid) Paint(row, col int, color Color) error {
	c, err := g.Cell(row, col)
	if err != nil {
		return err
	}
	c.Paint(color)
	return nil
}

// Colors returns a copy of every cell's color, row by row.
func (g *Grid) Colors() [][]Color {
	out := make([][]Color, g.Rows)
	for r, row := range g.Cells {
		out[r] = make([]Color, len(row))
		for c, cell := range row {
			out[r][c] = cell.Color
		}
	}
	return out
}
