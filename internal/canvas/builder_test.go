package canvas

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Fits(t *testing.T) {
	b := NewBuilder(20)
	g, err := b.Build(GridRequest{Rows: 10, Columns: 15}, ViewportBounds{Width: 400, Height: 300})
	require.NoError(t, err)

	assert.Equal(t, 10, g.Rows)
	assert.Equal(t, 15, g.Columns)
	require.Len(t, g.Cells, 10)
	for r, row := range g.Cells {
		require.Len(t, row, 15)
		for c, cell := range row {
			assert.Equal(t, r, cell.Row)
			assert.Equal(t, c, cell.Col)
			assert.Equal(t, Color(""), cell.Color)
		}
	}
}

func TestBuild_Rectangular(t *testing.T) {
	b := NewBuilder(20)
	bounds := ViewportBounds{Width: 200, Height: 140}
	for r := 1; r <= 7; r++ {
		for c := 1; c <= 10; c++ {
			g, err := b.Build(GridRequest{Rows: r, Columns: c}, bounds)
			require.NoError(t, err, "%dx%d", r, c)
			require.Len(t, g.Cells, r)
			for _, row := range g.Cells {
				assert.Len(t, row, c)
			}
		}
	}
}

func TestBuild_ExactFit(t *testing.T) {
	g, err := NewBuilder(20).Build(GridRequest{Rows: 15, Columns: 20}, ViewportBounds{Width: 400, Height: 300})
	require.NoError(t, err)
	assert.Equal(t, 15, g.Rows)
	assert.Equal(t, 20, g.Columns)
}

func TestBuild_SizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		req    GridRequest
		bounds ViewportBounds
		axis   Axis
		limit  int
	}{
		{
			name:   "width overflow",
			req:    GridRequest{Rows: 20, Columns: 30},
			bounds: ViewportBounds{Width: 400, Height: 300},
			axis:   AxisWidth,
			limit:  20,
		},
		{
			name:   "width overflow with fitting height",
			req:    GridRequest{Rows: 1, Columns: 21},
			bounds: ViewportBounds{Width: 410, Height: 300},
			axis:   AxisWidth,
			limit:  20,
		},
		{
			name:   "height overflow",
			req:    GridRequest{Rows: 16, Columns: 10},
			bounds: ViewportBounds{Width: 400, Height: 319},
			axis:   AxisHeight,
			limit:  15,
		},
		{
			name:   "both overflow reports width",
			req:    GridRequest{Rows: 100, Columns: 100},
			bounds: ViewportBounds{Width: 400, Height: 300},
			axis:   AxisWidth,
			limit:  20,
		},
		{
			name:   "huge column count",
			req:    GridRequest{Rows: 1, Columns: 922337203685477581},
			bounds: ViewportBounds{Width: 400, Height: 300},
			axis:   AxisWidth,
			limit:  20,
		},
		{
			name:   "max int columns",
			req:    GridRequest{Rows: 1, Columns: math.MaxInt},
			bounds: ViewportBounds{Width: 400, Height: 300},
			axis:   AxisWidth,
			limit:  20,
		},
		{
			name:   "huge row count",
			req:    GridRequest{Rows: 922337203685477581, Columns: 1},
			bounds: ViewportBounds{Width: 400, Height: 300},
			axis:   AxisHeight,
			limit:  15,
		},
		{
			name:   "zero viewport",
			req:    GridRequest{Rows: 1, Columns: 1},
			bounds: ViewportBounds{},
			axis:   AxisWidth,
			limit:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewBuilder(20).Build(tt.req, tt.bounds)
			assert.Nil(t, g)

			var se *SizeError
			require.True(t, errors.As(err, &se), "expected *SizeError, got %v", err)
			assert.Equal(t, tt.axis, se.Axis)
			assert.Equal(t, tt.limit, se.Limit)
		})
	}
}

func TestSizeError_Message(t *testing.T) {
	err := &SizeError{Axis: AxisWidth, Limit: 20}
	assert.Equal(t, "Canvas exceeds browser width. Maximum grid width is 20.", err.Error())

	err = &SizeError{Axis: AxisHeight, Limit: 7}
	assert.Equal(t, "Canvas exceeds browser height. Maximum grid height is 7.", err.Error())
}

func TestBuild_InvalidInput(t *testing.T) {
	b := NewBuilder(20)
	bounds := ViewportBounds{Width: 400, Height: 300}

	for _, req := range []GridRequest{{Rows: 0, Columns: 5}, {Rows: 5, Columns: 0}, {Rows: -1, Columns: -1}} {
		_, err := b.Build(req, bounds)
		assert.ErrorIs(t, err, ErrInvalidSize, "%+v", req)
	}

	_, err := b.Build(GridRequest{Rows: 1, Columns: 1}, ViewportBounds{Width: -20, Height: 100})
	assert.ErrorIs(t, err, ErrInvalidViewport)
}

func TestBuild_FreshGridEachTime(t *testing.T) {
	b := NewBuilder(20)
	req := GridRequest{Rows: 3, Columns: 3}
	bounds := ViewportBounds{Width: 100, Height: 100}

	first, err := b.Build(req, bounds)
	require.NoError(t, err)
	require.NoError(t, first.Paint(1, 1, "#ff0000"))

	second, err := b.Build(req, bounds)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.NotSame(t, first.Cells[1][1], second.Cells[1][1])
	assert.Equal(t, Color(""), second.Cells[1][1].Color)
	assert.Equal(t, Color("#ff0000"), first.Cells[1][1].Color)
}

func TestNewBuilder_DefaultCellSize(t *testing.T) {
	assert.Equal(t, DefaultCellSize, NewBuilder(0).CellSize)
	assert.Equal(t, DefaultCellSize, NewBuilder(-3).CellSize)

	g, err := Builder{}.Build(GridRequest{Rows: 2, Columns: 2}, ViewportBounds{Width: 40, Height: 40})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows)
}

func TestPaint_OnlyTargetCell(t *testing.T) {
	g, err := NewBuilder(20).Build(GridRequest{Rows: 4, Columns: 5}, ViewportBounds{Width: 100, Height: 80})
	require.NoError(t, err)

	require.NoError(t, g.Paint(2, 3, "#00ff00"))
	for r, row := range g.Colors() {
		for c, color := range row {
			if r == 2 && c == 3 {
				assert.Equal(t, Color("#00ff00"), color)
				continue
			}
			assert.Equal(t, Color(""), color, "cell (%d,%d)", r, c)
		}
	}

	// Repainting overwrites.
	require.NoError(t, g.Paint(2, 3, "#0000ff"))
	assert.Equal(t, Color("#0000ff"), g.Cells[2][3].Color)
}

func TestPaint_OutOfRange(t *testing.T) {
	g, err := NewBuilder(20).Build(GridRequest{Rows: 2, Columns: 2}, ViewportBounds{Width: 40, Height: 40})
	require.NoError(t, err)

	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		err := g.Paint(rc[0], rc[1], "#000000")
		assert.ErrorIs(t, err, ErrCellOutOfRange)
	}
	assert.Equal(t, [][]Color{{"", ""}, {"", ""}}, g.Colors())
}
