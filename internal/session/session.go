// internal/session/session.go
//
// Per-owner canvas state and interaction dispatch.
// Responsibilities:
//   - Hold the currently displayed grid and the selected picker color.
//   - Apply interaction messages (size submit, color select, cell click).
//   - Swap grids atomically: a failed build leaves the old grid in place.
//
// Notes:
//   - Dispatch is serialized per session, so a session behaves like the
//     single-threaded event loop of a browser page.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/pixelart/apps/go-server/internal/canvas"
	"github.com/robalobadob/pixelart/apps/go-server/internal/colorpick"
)

var ErrNoGrid = errors.New("no grid has been built")

// Msg is an interaction delivered to a Session.
type Msg interface{ isMsg() }

// SubmitSizeRequest asks for a new grid of Rows x Columns cells sized for Viewport.
type SubmitSizeRequest struct {
	Rows     int
	Columns  int
	Viewport canvas.ViewportBounds
}

// SelectColor changes the picker value used by later clicks.
type SelectColor struct {
	Value string
}

// ClickCell paints the cell at (Row, Col) with the selected color.
// A non-empty Color is selected first, but only if the click lands on a cell:
// a failed click leaves the selection unchanged.
type ClickCell struct {
	Row   int
	Col   int
	Color string
}

func (SubmitSizeRequest) isMsg() {}
func (SelectColor) isMsg() {}
func (ClickCell) isMsg() {}

// Result describes the effect of a dispatched message.
type Result struct {
	Built   bool         // a new grid replaced the previous one
	Color   canvas.Color // selected color after the message
	Painted *canvas.Cell // copy of the painted cell, for ClickCell
}

// Session is the state owned by one user (or anonymous visitor).
// Owner is the store key; it is only read or reassigned by the holder of the
// HTTP server's session mutex, so it is not guarded by mu.
type Session struct {
	ID        string
	Owner     string
	CreatedAt time.Time

	mu        sync.Mutex
	builder   canvas.Builder
	grid      *canvas.Grid
	color     canvas.Color
	updatedAt time.Time
}

// New creates an empty session for owner, building grids with cellSize.
func New(owner string, cellSize int) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Owner:     owner,
		CreatedAt: now,
		builder:   canvas.NewBuilder(cellSize),
		color:     colorpick.Default,
		updatedAt: now,
	}
}

// Dispatch applies msg to the session.
func (s *Session) Dispatch(msg Msg) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m := msg.(type) {
	case SubmitSizeRequest:
		g, err := s.builder.Build(canvas.GridRequest{Rows: m.Rows, Columns: m.Columns}, m.Viewport)
		if err != nil {
			return Result{Color: s.color}, err
		}
		s.grid = g
		s.touch()
		return Result{Built: true, Color: s.color}, nil

	case SelectColor:
		c, err := colorpick.Parse(m.Value)
		if err != nil {
			return Result{Color: s.color}, err
		}
		s.color = c
		s.touch()
		return Result{Color: s.color}, nil

	case ClickCell:
		if s.grid == nil {
			return Result{Color: s.color}, ErrNoGrid
		}
		cell, err := s.grid.Cell(m.Row, m.Col)
		if err != nil {
			return Result{Color: s.color}, err
		}
		if m.Color != "" {
			c, err := colorpick.Parse(m.Color)
			if err != nil {
				return Result{Color: s.color}, err
			}
			s.color = c
		}
		cell.Paint(s.color)
		s.touch()
		painted := *cell
		return Result{Color: s.color, Painted: &painted}, nil
	}
	return Result{}, fmt.Errorf("unknown message %T", msg)
}

func (s *Session) touch() { s.updatedAt = time.Now().UTC() }

// View is a read-only snapshot of a session for rendering.
type View struct {
	ID        string       `json:"id"`
	CellSize  int          `json:"cellSize"`
	Color     canvas.Color `json:"color"`
	Grid      *GridView    `json:"grid"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// GridView is the rendered form of a canvas.Grid.
type GridView struct {
	Rows    int              `json:"rows"`
	Columns int              `json:"columns"`
	Cells   [][]canvas.Color `json:"cells"`
}

// Snapshot copies the current state; later dispatches do not affect it.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:        s.ID,
		CellSize:  s.builder.CellSize,
		Color:     s.color,
		UpdatedAt: s.updatedAt,
	}
	if s.grid != nil {
		v.Grid = &GridView{Rows: s.grid.Rows, Columns: s.grid.Columns, Cells: s.grid.Colors()}
	}
	return v
}
