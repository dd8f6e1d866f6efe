// internal/history/store.go
//
// SQLite-backed log of grid build attempts.
// Only the request and its outcome are stored; painted cells never are.

package history

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Owner identifies who submitted a build: a signed-in user or an anonymous visitor.
// Exactly one of the fields is set.
type Owner struct {
	UserID      string
	AnonymousID string
}

// Entry is one recorded build attempt.
type Entry struct {
	ID             int64     `json:"id"`
	Rows           int       `json:"rows"`
	Columns        int       `json:"columns"`
	ViewportWidth  int       `json:"viewportWidth"`
	ViewportHeight int       `json:"viewportHeight"`
	Accepted       bool      `json:"accepted"`
	Axis           string    `json:"axis,omitempty"`  // rejected axis, "" when accepted
	Limit          int       `json:"limit,omitempty"` // max cells on Axis
	CreatedAt      time.Time `json:"createdAt"`
}

const defaultLimit = 20

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var errNoOwner = errors.New("history: owner has neither user nor anonymous id")

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts e for owner. CreatedAt defaults to now.
func (s *Store) Record(ctx context.Context, owner Owner, e Entry) error {
	if owner.UserID == "" && owner.AnonymousID == "" {
		return errNoOwner
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	var axis, limit any
	if !e.Accepted {
		axis, limit = e.Axis, e.Limit
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO grid_builds
            (user_id, anonymous_id, grid_rows, grid_columns, viewport_width, viewport_height,
             accepted, axis, max_cells, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullable(owner.UserID), nullable(owner.AnonymousID), e.Rows, e.Columns,
		e.ViewportWidth, e.ViewportHeight, e.Accepted, axis, limit,
		e.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// Recent returns owner's latest entries, newest first.
// A non-positive limit means 20.
func (s *Store) Recent(ctx context.Context, owner Owner, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	clause, arg := `user_id=?`, owner.UserID
	if owner.UserID == "" {
		clause, arg = `anonymous_id=?`, owner.AnonymousID
	}
	if arg == "" {
		return nil, errNoOwner
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, grid_rows, grid_columns, viewport_width, viewport_height,
               accepted, COALESCE(axis, ''), COALESCE(max_cells, 0), created_at
        FROM grid_builds
        WHERE `+clause+`
        ORDER BY created_at DESC, id DESC
        LIMIT ?`, arg, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Rows, &e.Columns, &e.ViewportWidth, &e.ViewportHeight,
			&e.Accepted, &e.Axis, &e.Limit, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Claim moves an anonymous visitor's entries to userID after sign-in.
func (s *Store) Claim(ctx context.Context, anonID, userID string) (int64, error) {
	if anonID == "" || userID == "" {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE grid_builds SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
