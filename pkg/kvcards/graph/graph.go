// Package graph drives configuration validation as a chain of memoized,
// asynchronously computed stages:
//
//	raw path -> resolution -> autocomplete candidates
//	workbook path -> sheet names
//	workbook path, sheet -> row count
//	workbook path, sheet, title row -> header labels
//	header labels, columns, title -> configuration -> cards
//
// A stage recomputes only when its key changes. Every run carries a
// generation number; a result whose generation is no longer current is
// dropped, so a slow stale run never overwrites a newer one.
package graph

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/ukaji3/kvcards-go/pkg/kvcards"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
	"go.uber.org/zap"
)

// Input is the raw, possibly partial, user configuration.
type Input struct {
	Path     string
	Sheet    string
	TitleRow int // 1-based; 0 means unspecified
	Columns  []int
	Title    string
}

func (in Input) clone() Input {
	in.Columns = slices.Clone(in.Columns)
	return in
}

type sheetKey struct {
	path  string
	sheet string
}

type headerKey struct {
	path  string
	sheet string
	row   int
}

// Options configures a Graph.
type Options struct {
	// Backend computes the stages. Defaults to the workbook backend.
	Backend Backend
	// Logger receives stage diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Graph holds one editing session. It is safe for concurrent use.
type Graph struct {
	backend Backend
	logger  *zap.Logger

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu        sync.Mutex
	input     Input
	submitted bool
	closed    bool
	idle      chan struct{}
	updates   chan struct{}

	resolve  *stage[string, models.PathResolution]
	complete *stage[models.PathResolution, []string]
	sheets   *stage[string, []string]
	rows     *stage[sheetKey, int]
	header   *stage[headerKey, []string]
	cards    *stage[models.Config, []models.Card]
	stages   []control
}

// New creates an empty session.
func New(opts Options) *Graph {
	if opts.Backend == nil {
		opts.Backend = WorkbookBackend()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ctx, stop := context.WithCancel(context.Background())
	g := &Graph{
		backend: opts.Backend,
		logger:  opts.Logger,
		ctx:     ctx,
		stop:    stop,
		idle:    make(chan struct{}),
		updates: make(chan struct{}, 1),
	}
	close(g.idle)

	b, log := g.backend, g.logger
	g.resolve = newStage("resolve", equal[string], func(_ context.Context, raw string) (models.PathResolution, error) {
		return b.Resolve(raw), nil
	})
	g.complete = newStage("autocomplete", equal[models.PathResolution], func(_ context.Context, res models.PathResolution) ([]string, error) {
		paths, err := b.Candidates(res)
		if err != nil {
			log.Warn("autocomplete failed", zap.Stringer("resolution", res), zap.Error(err))
			return nil, nil
		}
		return paths, nil
	})
	g.sheets = newStage("sheets", equal[string], func(_ context.Context, path string) ([]string, error) {
		names, err := b.ListSheets(path)
		if err != nil {
			log.Warn("listing sheets failed", zap.String("path", path), zap.Error(err))
			return nil, nil
		}
		return names, nil
	})
	g.rows = newStage("rows", equal[sheetKey], func(_ context.Context, k sheetKey) (int, error) {
		return b.SheetRowCount(k.path, k.sheet), nil
	})
	g.header = newStage("header", equal[headerKey], func(_ context.Context, k headerKey) ([]string, error) {
		return b.HeaderRow(k.path, k.sheet, k.row)
	})
	g.cards = newStage("cards", models.Config.Equal, func(ctx context.Context, cfg models.Config) ([]models.Card, error) {
		cards, err := b.Extract(ctx, cfg)
		if err != nil {
			log.Info("extraction failed", zap.String("path", cfg.Path), zap.String("sheet", cfg.Sheet), zap.Error(err))
		}
		return cards, err
	})
	g.stages = []control{g.resolve, g.complete, g.sheets, g.rows, g.header, g.cards}

	g.mu.Lock()
	g.propagate()
	g.mu.Unlock()
	return g
}

// SetPath replaces the raw path.
func (g *Graph) SetPath(path string) {
	g.edit(func(in *Input) { in.Path = path })
}

// SetSheet replaces the sheet name. Surrounding spaces are ignored.
func (g *Graph) SetSheet(sheet string) {
	g.edit(func(in *Input) { in.Sheet = strings.TrimSpace(sheet) })
}

// SetTitleRow replaces the 1-based header row. Values below 1 mean unspecified.
func (g *Graph) SetTitleRow(row int) {
	g.edit(func(in *Input) { in.TitleRow = max(row, 0) })
}

// SetColumns replaces the column selection.
func (g *Graph) SetColumns(columns []int) {
	g.edit(func(in *Input) { in.Columns = slices.Clone(columns) })
}

// SetTitle replaces the card title. Surrounding spaces are ignored.
func (g *Graph) SetTitle(title string) {
	g.edit(func(in *Input) { in.Title = strings.TrimSpace(title) })
}

func (g *Graph) edit(fn func(in *Input)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	in := g.input.clone()
	fn(&in)
	g.input = in
	g.propagate()
}

// Submit requests cards for the current configuration. It fails with an
// *kvcards.IncompleteError while the configuration is incomplete. After a
// successful Submit, cards follow every later complete configuration.
func (g *Graph) Submit() (models.Config, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cfg, missing := Gate(g.input, g.resolve.value)
	if len(missing) > 0 {
		return models.Config{}, &kvcards.IncompleteError{Missing: missing}
	}
	g.submitted = true
	g.propagate()
	return cfg, nil
}

// Refresh recomputes every stage, for use when files changed on disk.
func (g *Graph) Refresh() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	for _, s := range g.stages {
		s.forget()
	}
	g.propagate()
}

// Updates signals after state changes. Signals coalesce; read the state
// with Snapshot. The channel is closed by Close.
func (g *Graph) Updates() <-chan struct{} {
	return g.updates
}

// Snapshot returns the current state.
func (g *Graph) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// Wait blocks until no stage is running and returns the settled state.
func (g *Graph) Wait(ctx context.Context) (State, error) {
	for {
		g.mu.Lock()
		if !g.pending() {
			st := g.snapshot()
			g.mu.Unlock()
			return st, nil
		}
		idle := g.idle
		g.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return g.Snapshot(), ctx.Err()
		}
	}
}

// Close cancels running stages and waits for them to return.
func (g *Graph) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	for _, s := range g.stages {
		s.halt()
	}
	g.stop()
	g.mu.Unlock()

	g.wg.Wait()
	close(g.updates)
}

// propagate re-keys every stage from the current input and upstream
// values. Callers hold g.mu.
func (g *Graph) propagate() {
	in := g.input

	g.resolve.update(g, in.Path, in.Path == "")
	res := g.resolve.value
	g.complete.update(g, res, res.Kind == models.PathNotFound)

	wb := workbookPath(res)
	noSheet := wb == "" || in.Sheet == ""
	g.sheets.update(g, wb, wb == "")
	g.rows.update(g, sheetKey{wb, in.Sheet}, noSheet)
	g.header.update(g, headerKey{wb, in.Sheet, headerRow(in.TitleRow)}, noSheet)

	cfg, missing := Gate(in, res)
	g.cards.update(g, cfg, !g.submitted || len(missing) > 0)

	g.notify()
}

func (g *Graph) pending() bool {
	for _, s := range g.stages {
		if s.busy() {
			return true
		}
	}
	return false
}

func (g *Graph) notify() {
	select {
	case <-g.idle:
		if g.pending() {
			g.idle = make(chan struct{})
		}
	default:
		if !g.pending() {
			close(g.idle)
		}
	}

	if g.closed {
		return
	}
	select {
	case g.updates <- struct{}{}:
	default:
	}
}

// workbookPath returns the path stages may open, or "" if there is none.
func workbookPath(res models.PathResolution) string {
	if res.Kind != models.PathExists || !kvcards.IsSpreadsheet(res.Path) {
		return ""
	}
	return res.Path
}

func headerRow(row int) int {
	if row <= 0 {
		return models.DefaultTitleRow
	}
	return row
}

// Gate decides whether in is complete. It returns the configuration and
// the names of the unmet conditions ("path", "sheet", "columns", "title").
// The configuration is only meaningful when nothing is missing.
func Gate(in Input, res models.PathResolution) (models.Config, []string) {
	var missing []string
	if workbookPath(res) == "" || res.Path != in.Path {
		missing = append(missing, "path")
	}
	if in.Sheet == "" {
		missing = append(missing, "sheet")
	}
	if len(in.Columns) == 0 {
		missing = append(missing, "columns")
	}
	if in.Title == "" {
		missing = append(missing, "title")
	}

	cfg := models.Config{
		Path:          in.Path,
		Sheet:         in.Sheet,
		TitleRowIndex: in.TitleRow,
		Columns:       slices.Clone(in.Columns),
	}
	return cfg, missing
}
