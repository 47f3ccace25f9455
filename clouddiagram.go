package clouddiagram

import (
	"log/slog"

	"github.com/BenKalegin/clouddiagram-sub004/internal/logging"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/event"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/observability"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/selection"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/view"
)

// Session is one editing session: a document, its undo history, its view
// cache and its selection, wired together.
type Session struct {
	logger    *slog.Logger
	model     *model.Model
	history   *undo.Manager
	view      *view.View
	selection *selection.Model
	metrics   *observability.Metrics
}

type settings struct {
	logger      *slog.Logger
	historySize int
	metrics     *observability.Metrics
	ids         model.IDGenerator
	resolver    view.StyleResolver
	viewOpts    []view.Option
	single      bool
}

// Option defines a functional option for configuring the Session.
type Option func(*settings)

// WithLogger sets a custom structured logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithHistorySize bounds the undo history (default domain.DefaultHistorySize).
// Zero or a negative size keeps every edit.
func WithHistorySize(size int) Option {
	return func(s *settings) {
		s.historySize = size
	}
}

// WithMetrics feeds the given collectors from the session events.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithIDGenerator sets the generator for cells inserted without an id.
func WithIDGenerator(gen model.IDGenerator) Option {
	return func(s *settings) {
		s.ids = gen
	}
}

// WithStyleResolver sets how the view resolves opaque cell styles.
func WithStyleResolver(r view.StyleResolver) Option {
	return func(s *settings) {
		s.resolver = r
	}
}

// WithScale sets the initial view scale.
func WithScale(scale float64) Option {
	return func(s *settings) {
		s.viewOpts = append(s.viewOpts, view.WithScale(scale))
	}
}

// WithTranslate sets the initial view translation.
func WithTranslate(dx, dy float64) Option {
	return func(s *settings) {
		s.viewOpts = append(s.viewOpts, view.WithTranslate(dx, dy))
	}
}

// WithSingleSelection keeps at most one cell selected.
func WithSingleSelection() Option {
	return func(s *settings) {
		s.single = true
	}
}

// New creates a session holding an empty document.
func New(opts ...Option) *Session {
	cfg := settings{
		logger:      logging.NewNop(),
		historySize: domain.DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	m := model.New(model.WithLogger(cfg.logger), model.WithIDGenerator(cfg.ids))
	history := undo.NewManager(undo.WithLogger(cfg.logger), undo.WithSize(cfg.historySize))
	m.Transactions().OnUndoable(history.Push)

	viewOpts := append([]view.Option{view.WithLogger(cfg.logger), view.WithStyleResolver(cfg.resolver)}, cfg.viewOpts...)
	v := view.New(m, viewOpts...)
	v.TrackHistory(history)

	selOpts := []selection.Option{selection.WithLogger(cfg.logger)}
	if cfg.single {
		selOpts = append(selOpts, selection.WithSingleSelection())
	}
	sel := selection.New(m, selOpts...)
	sel.TrackHistory(history)

	if cfg.metrics != nil {
		cfg.metrics.ObserveTransactions(m.Transactions())
		cfg.metrics.ObserveHistory(history)
		cfg.metrics.ObserveView(v)
		cfg.metrics.ObserveSelection(sel)
	}

	return &Session{
		logger:    cfg.logger,
		model:     m,
		history:   history,
		view:      v,
		selection: sel,
		metrics:   cfg.metrics,
	}
}

// Model returns the document.
func (s *Session) Model() *model.Model { return s.model }

// History returns the undo manager.
func (s *Session) History() *undo.Manager { return s.history }

// View returns the state cache.
func (s *Session) View() *view.View { return s.view }

// Selection returns the selection model.
func (s *Session) Selection() *selection.Model { return s.selection }

// Metrics returns the collectors given to WithMetrics, or nil.
func (s *Session) Metrics() *observability.Metrics { return s.metrics }

// Close detaches the view and the selection from the document.
func (s *Session) Close() {
	s.view.Close()
	s.selection.Close()
}

// InsertVertex creates a vertex under parent (the default layer when nil).
func (s *Session) InsertVertex(parent *model.Cell, id string, value any, geometry *domain.Geometry, style domain.Style) (*model.Cell, error) {
	return s.model.InsertVertex(parent, id, value, geometry, style)
}

// InsertEdge creates an edge between source and target under parent.
func (s *Session) InsertEdge(parent *model.Cell, id string, value any, source, target *model.Cell, style domain.Style) (*model.Cell, error) {
	return s.model.InsertEdge(parent, id, value, source, target, style)
}

// Reparent moves cell under parent at index; a nil parent removes it.
func (s *Session) Reparent(cell, parent *model.Cell, index int) error {
	return s.model.Reparent(cell, parent, index)
}

// Remove detaches cell and its subtree.
func (s *Session) Remove(cell *model.Cell) error { return s.model.Remove(cell) }

// SetGeometry replaces the geometry of cell.
func (s *Session) SetGeometry(cell *model.Cell, g *domain.Geometry) error {
	return s.model.SetGeometry(cell, g)
}

// SetStyle replaces the style of cell.
func (s *Session) SetStyle(cell *model.Cell, style domain.Style) error {
	return s.model.SetStyle(cell, style)
}

// SetTerminal connects one end of edge; a nil terminal disconnects it.
func (s *Session) SetTerminal(edge, terminal *model.Cell, source bool) error {
	return s.model.SetTerminal(edge, terminal, source)
}

// SetVisible shows or hides cell.
func (s *Session) SetVisible(cell *model.Cell, visible bool) error {
	return s.model.SetVisible(cell, visible)
}

// SetValue replaces the user object of cell.
func (s *Session) SetValue(cell *model.Cell, value any) error {
	return s.model.SetValue(cell, value)
}

// SetCollapsed folds or unfolds cell.
func (s *Session) SetCollapsed(cell *model.Cell, collapsed bool) error {
	return s.model.SetCollapsed(cell, collapsed)
}

// SetCurrentRoot drills the view into root; nil goes back to the document.
func (s *Session) SetCurrentRoot(root *model.Cell) error {
	return s.view.SetCurrentRoot(root)
}

// NewDocument replaces the document with an empty one. It can be undone.
func (s *Session) NewDocument() error { return s.model.Clear() }

// BeginUpdate opens a transaction. Pair it with EndUpdate, or use Update.
func (s *Session) BeginUpdate() { s.model.BeginUpdate() }

// EndUpdate closes the innermost transaction.
func (s *Session) EndUpdate() { s.model.EndUpdate() }

// Update runs fn in one transaction that is closed on every exit path.
func (s *Session) Update(fn func() error) error { return s.model.Update(fn) }

// Undo reverts the last significant edit.
func (s *Session) Undo() { s.history.Undo() }

// Redo re-applies the next significant edit.
func (s *Session) Redo() { s.history.Redo() }

// CanUndo reports whether Undo has something to revert.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo has something to re-apply.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// ClearHistory drops every edit.
func (s *Session) ClearHistory() { s.history.Clear() }

// OnChange subscribes to the mutation notification of every closed transaction.
func (s *Session) OnChange(fn func(undo.ChangeEvent)) *event.Subscription {
	return s.model.OnChange(fn)
}

// OnUndo subscribes to undo notifications.
func (s *Session) OnUndo(fn func(undo.Event)) *event.Subscription {
	return s.history.OnUndo(fn)
}

// OnRedo subscribes to redo notifications.
func (s *Session) OnRedo(fn func(undo.Event)) *event.Subscription {
	return s.history.OnRedo(fn)
}

// OnSelectionChange subscribes to selection changes.
func (s *Session) OnSelectionChange(fn func(selection.Event)) *event.Subscription {
	return s.selection.OnChange(fn)
}

// Unsubscribe removes a subscription returned by one of the On methods.
func (s *Session) Unsubscribe(sub *event.Subscription) bool {
	return sub.Cancel()
}

// State returns the derived state of cell, or nil when it is not displayed.
func (s *Session) State(cell *model.Cell) *view.State { return s.view.State(cell) }

// Invalidate drops the cached state of cell and everything depending on it.
func (s *Session) Invalidate(cell *model.Cell) { s.view.Invalidate(cell) }

// Validate computes every displayed state.
func (s *Session) Validate() { s.view.Validate() }
