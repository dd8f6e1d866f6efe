// cli.go
//
// Command line entry points:
//   - pixelart serve: run the HTTP server (default when no subcommand is given).
//   - pixelart check: build a grid offline, optionally paint cells, and print
//     a terminal preview. Exits non-zero when the grid does not fit.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/pixelart/apps/go-server/internal/canvas"
	"github.com/robalobadob/pixelart/apps/go-server/internal/config"
	"github.com/robalobadob/pixelart/apps/go-server/internal/db"
	"github.com/robalobadob/pixelart/apps/go-server/internal/httpserver"
	"github.com/robalobadob/pixelart/apps/go-server/internal/session"
	"github.com/robalobadob/pixelart/apps/go-server/internal/store"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pixelart",
		Short:         "Pixel Art Maker server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCmd(), newCheckCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer sqlDB.Close()
	if err := db.Migrate(sqlDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	srv := httpserver.New(cfg, store.NewMemoryStore(), sqlDB)
	log.Info().Str("port", cfg.Port).Int("cellSize", cfg.CellSize).Msg("starting pixelart server")
	return srv.Start(":" + cfg.Port)
}

type checkOpts struct {
	rows, columns int
	width, height int
	cellSize      int
	paint         []string
	preview       bool
}

func newCheckCmd() *cobra.Command {
	var o checkOpts
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a grid fits a viewport and preview it",
		Example: `  pixelart check --rows 10 --columns 15 --width 400 --height 300
  pixelart check --rows 4 --columns 4 --width 80 --height 80 --paint 1,1=#ff0000 --paint 2,2=blue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.rows, "rows", 10, "grid height in cells")
	f.IntVar(&o.columns, "columns", 10, "grid width in cells")
	f.IntVar(&o.width, "width", 1280, "viewport width in pixels")
	f.IntVar(&o.height, "height", 720, "viewport height in pixels")
	f.IntVar(&o.cellSize, "cell-size", canvas.DefaultCellSize, "pixels per cell")
	f.StringArrayVar(&o.paint, "paint", nil, "paint a cell, as row,col=color (repeatable)")
	f.BoolVar(&o.preview, "preview", true, "print a terminal preview of the grid")
	return cmd
}

func runCheck(out io.Writer, o checkOpts) error {
	sess := session.New("cli", o.cellSize)
	if _, err := sess.Dispatch(session.SubmitSizeRequest{
		Rows:     o.rows,
		Columns:  o.columns,
		Viewport: canvas.ViewportBounds{Width: o.width, Height: o.height},
	}); err != nil {
		return err
	}

	for _, p := range o.paint {
		row, col, color, err := parsePaint(p)
		if err != nil {
			return err
		}
		if _, err := sess.Dispatch(session.ClickCell{Row: row, Col: col, Color: color}); err != nil {
			return fmt.Errorf("paint %q: %w", p, err)
		}
	}

	v := sess.Snapshot()
	fmt.Fprintf(out, "ok: %dx%d grid fits %dx%d viewport (cell size %d)\n",
		v.Grid.Rows, v.Grid.Columns, o.width, o.height, v.CellSize)
	if o.preview {
		fmt.Fprintln(out, renderPreview(v.Grid))
	}
	return nil
}

// parsePaint parses "row,col=color".
func parsePaint(s string) (row, col int, color string, err error) {
	coords, color, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, "", fmt.Errorf("paint %q: want row,col=color", s)
	}
	r, c, ok := strings.Cut(coords, ",")
	if !ok {
		return 0, 0, "", fmt.Errorf("paint %q: want row,col=color", s)
	}
	if row, err = strconv.Atoi(strings.TrimSpace(r)); err != nil {
		return 0, 0, "", fmt.Errorf("paint %q: row: %w", s, err)
	}
	if col, err = strconv.Atoi(strings.TrimSpace(c)); err != nil {
		return 0, 0, "", fmt.Errorf("paint %q: col: %w", s, err)
	}
	if strings.TrimSpace(color) == "" {
		return 0, 0, "", fmt.Errorf("paint %q: missing color", s)
	}
	return row, col, color, nil
}

var (
	emptyCell = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	frame     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
)

// renderPreview draws each cell as two terminal columns.
func renderPreview(g *session.GridView) string {
	var b strings.Builder
	for r, row := range g.Cells {
		for _, c := range row {
			if c == "" {
				b.WriteString(emptyCell.Render("··"))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(string(c))).Render("  "))
		}
		if r < len(g.Cells)-1 {
			b.WriteByte('\n')
		}
	}
	return frame.Render(b.String())
}
