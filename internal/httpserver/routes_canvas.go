// internal/httpserver/routes_canvas.go
//
// HTTP routes for the canvas.
// Exposes, under /canvas:
//   - GET    /canvas         → current view (grid is null before the first build)
//   - POST   /canvas/grid    → build a new grid for the caller's viewport
//   - PUT    /canvas/color   → select the picker color
//   - POST   /canvas/paint   → paint one cell (optionally selecting a color first)
//   - DELETE /canvas         → discard the caller's canvas
//   - GET    /canvas/history → recent build attempts
//
// Each caller (user or anonymous cookie) owns exactly one canvas session.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/pixelart/apps/go-server/internal/canvas"
	"github.com/robalobadob/pixelart/apps/go-server/internal/colorpick"
	"github.com/robalobadob/pixelart/apps/go-server/internal/history"
	"github.com/robalobadob/pixelart/apps/go-server/internal/session"
	"github.com/robalobadob/pixelart/apps/go-server/internal/store"
)

const maxBodyBytes = 1 << 16

// mountCanvas registers all /canvas routes.
func (s *Server) mountCanvas(r chi.Router) {
	r.Route("/canvas", func(r chi.Router) {
		r.Get("/", s.handleGetCanvas)
		r.Delete("/", s.handleDeleteCanvas)
		r.Post("/grid", s.handleBuildGrid)
		r.Put("/color", s.handleSelectColor)
		r.Post("/paint", s.handlePaint)
		r.Get("/history", s.handleHistory)
	})
}

// buildReq is the payload of POST /canvas/grid.
type buildReq struct {
	Rows     int                   `json:"rows"`
	Columns  int                   `json:"columns"`
	Viewport canvas.ViewportBounds `json:"viewport"`
}

// sizeErrorRes is returned with 422 when the grid does not fit the viewport.
type sizeErrorRes struct {
	Error   string      `json:"error"`
	Axis    canvas.Axis `json:"axis"`
	Limit   int         `json:"limit"`
	Message string      `json:"message"`
}

type colorReq struct {
	Color string `json:"color"`
}

// paintReq is the payload of POST /canvas/paint; Color is optional.
type paintReq struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Color *string `json:"color,omitempty"`
}

type paintRes struct {
	Row   int          `json:"row"`
	Col   int          `json:"col"`
	Color canvas.Color `json:"color"`
}

func (s *Server) handleGetCanvas(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(r.Context(), s.owner(w, r))
	if err != nil {
		http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

func (s *Server) handleDeleteCanvas(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), ownerKey(s.owner(w, r))); err != nil {
		http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleBuildGrid replaces the caller's grid, or reports why it cannot.
// A rejected build leaves the previous grid untouched.
func (s *Server) handleBuildGrid(w http.ResponseWriter, r *http.Request) {
	var req buildReq
	if err := decode(w, r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if lim := s.cfg.MaxViewport; req.Viewport.Width > lim.Width || req.Viewport.Height > lim.Height {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "viewport_too_large", "max": lim})
		return
	}

	owner := s.owner(w, r)
	sess, err := s.sessionFor(r.Context(), owner)
	if err != nil {
		http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
		return
	}

	_, err = sess.Dispatch(session.SubmitSizeRequest{Rows: req.Rows, Columns: req.Columns, Viewport: req.Viewport})
	var se *canvas.SizeError
	switch {
	case err == nil:
		s.recordBuild(r.Context(), owner, req, nil)
		hlog.FromRequest(r).Info().Str("owner", ownerKey(owner)).
			Int("rows", req.Rows).Int("columns", req.Columns).Msg("grid built")
		_ = json.NewEncoder(w).Encode(sess.Snapshot())
	case errors.As(err, &se):
		s.recordBuild(r.Context(), owner, req, se)
		writeJSON(w, http.StatusUnprocessableEntity, sizeErrorRes{
			Error:   "size_exceeded",
			Axis:    se.Axis,
			Limit:   se.Limit,
			Message: se.Error(),
		})
	case errors.Is(err, canvas.ErrInvalidSize), errors.Is(err, canvas.ErrInvalidViewport):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_size", "message": err.Error()})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("build grid")
		http.Error(w, `{"error":"build_failed"}`, http.StatusInternalServerError)
	}
}

func (s *Server) handleSelectColor(w http.ResponseWriter, r *http.Request) {
	var req colorReq
	if err := decode(w, r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.sessionFor(r.Context(), s.owner(w, r))
	if err != nil {
		http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
		return
	}
	res, err := sess.Dispatch(session.SelectColor{Value: req.Color})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_color", "message": err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]canvas.Color{"color": res.Color})
}

// handlePaint is the cell click: it paints exactly one cell with the selected color.
func (s *Server) handlePaint(w http.ResponseWriter, r *http.Request) {
	var req paintReq
	if err := decode(w, r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.sessionFor(r.Context(), s.owner(w, r))
	if err != nil {
		http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
		return
	}
	click := session.ClickCell{Row: req.Row, Col: req.Col}
	if req.Color != nil {
		click.Color = *req.Color
	}

	res, err := sess.Dispatch(click)
	switch {
	case err == nil:
		_ = json.NewEncoder(w).Encode(paintRes{Row: res.Painted.Row, Col: res.Painted.Col, Color: res.Painted.Color})
	case errors.Is(err, colorpick.ErrInvalidColor):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_color", "message": err.Error()})
	case errors.Is(err, session.ErrNoGrid):
		http.Error(w, `{"error":"no_grid"}`, http.StatusConflict)
	case errors.Is(err, canvas.ErrCellOutOfRange):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "out_of_range", "message": err.Error()})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("paint")
		http.Error(w, `{"error":"paint_failed"}`, http.StatusInternalServerError)
	}
}

// handleHistory lists the caller's recent build attempts (?limit=N, default 20, max 100).
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	entries, err := s.history.Recent(r.Context(), s.owner(w, r), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("history")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(entries)
}

// recordBuild logs a build attempt; failures are non-fatal.
func (s *Server) recordBuild(ctx context.Context, owner history.Owner, req buildReq, se *canvas.SizeError) {
	e := history.Entry{
		Rows:           req.Rows,
		Columns:        req.Columns,
		ViewportWidth:  req.Viewport.Width,
		ViewportHeight: req.Viewport.Height,
		Accepted:       se == nil,
	}
	if se != nil {
		e.Axis, e.Limit = string(se.Axis), se.Limit
	}
	if err := s.history.Record(ctx, owner, e); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("record build")
	}
}

// ------------------------------ owners -------------------------------------

// owner identifies the caller: the signed-in user, or the anonymous cookie.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) history.Owner {
	if me := userFrom(r); me != nil {
		return history.Owner{UserID: me.ID}
	}
	return history.Owner{AnonymousID: s.ensureAnonID(w, r)}
}

func userKey(id string) string { return "user:" + id }
func anonKey(id string) string { return "anon:" + id }

func ownerKey(o history.Owner) string {
	if o.UserID != "" {
		return userKey(o.UserID)
	}
	return anonKey(o.AnonymousID)
}

// sessionFor returns owner's canvas session, creating it on first use.
func (s *Server) sessionFor(ctx context.Context, owner history.Owner) (*session.Session, error) {
	key := ownerKey(owner)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.store.Get(ctx, key)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	sess = session.New(key, s.cfg.CellSize)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// decode reads a bounded JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
