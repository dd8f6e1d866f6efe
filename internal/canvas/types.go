// internal/canvas/types.go
//
// Core type definitions for the pixel canvas.
// Defines:
//   - GridRequest / ViewportBounds: inputs of a build.
//   - Grid / Cell: the rectangular matrix of paintable cells.
//   - SizeError and the sentinel errors returned by the builder and painter.

package canvas

import (
	"errors"
	"fmt"
)

// DefaultCellSize is the pixel footprint of one cell along each axis.
const DefaultCellSize = 20

// Color is a display color as delivered by the color picker (e.g. "#ff0000").
// The empty Color means "unset": the cell shows the background.
type Color string

// Axis names the viewport dimension a SizeError refers to.
type Axis string

const (
	AxisWidth  Axis = "width"
	AxisHeight Axis = "height"
)

// GridRequest holds the requested dimensions, counted in cells.
type GridRequest struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// ViewportBounds is the area available to display the grid, in pixels.
type ViewportBounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var (
	ErrInvalidSize     = errors.New("rows and columns must be positive")
	ErrInvalidViewport = errors.New("viewport dimensions must not be negative")
	ErrCellOutOfRange  = errors.New("cell out of range")
)

// SizeError reports that a requested grid does not fit the viewport on Axis.
// Limit is the largest cell count that would have fit on that axis.
type SizeError struct {
	Axis  Axis
	Limit int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("Canvas exceeds browser %s. Maximum grid %s is %d.", e.Axis, e.Axis, e.Limit)
}

// Cell is one independently paintable unit of a Grid.
// Row and Col identify the cell so a click can be routed to it.
type Cell struct {
	Row   int
	Col   int
	Color Color
}

// Paint sets the cell's display color.
func (c *Cell) Paint(color Color) { c.Color = color }

// Grid is a rectangular matrix of cells: len(Cells) == Rows and every row
// holds exactly Columns cells.
type Grid struct {
	Rows    int
	Columns int
	Cells   [][]*Cell
}
