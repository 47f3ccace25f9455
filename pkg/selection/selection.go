// Package selection tracks the selected cells of a model. Selection edits run
// through the model's transactions as insignificant changes, so they share the
// undo timeline without stopping an undo walk.
package selection

import (
	"log/slog"

	"github.com/BenKalegin/clouddiagram-sub004/internal/logging"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/event"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
)

// Event lists the cells that entered or left the selection.
type Event struct {
	Added   []*model.Cell
	Removed []*model.Cell
}

// Model is an ordered set of selected cells.
//
// Cells that are not attached to the model cannot be selected. A selected cell
// that gets detached is hidden from reads and reported as removed; it shows up
// again if an undo brings it back.
type Model struct {
	model  *model.Model
	logger *slog.Logger
	single bool

	cells    []*model.Cell
	reported []*model.Cell

	change event.Source[Event]
	subs   []*event.Subscription
}

// Option configures a selection Model.
type Option func(*Model)

// WithLogger sets the structured logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Model) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSingleSelection keeps at most one cell selected.
func WithSingleSelection() Option {
	return func(s *Model) {
		s.single = true
	}
}

// New creates an empty selection for m.
func New(m *model.Model, opts ...Option) *Model {
	s := &Model{
		model:  m,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.subs = append(s.subs, m.OnChange(func(undo.ChangeEvent) { s.Refresh() }))
	return s
}

// TrackHistory re-checks membership after um's Undo and Redo.
func (s *Model) TrackHistory(um *undo.Manager) {
	refresh := func(undo.Event) { s.Refresh() }
	s.subs = append(s.subs, um.OnUndo(refresh), um.OnRedo(refresh))
}

// Close unsubscribes the selection from the model and any tracked history.
func (s *Model) Close() {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}

// OnChange subscribes to selection changes.
func (s *Model) OnChange(fn func(Event)) *event.Subscription {
	return s.change.Add(fn)
}

// Cells returns the selected cells that are attached, in selection order.
func (s *Model) Cells() []*model.Cell {
	out := make([]*model.Cell, 0, len(s.cells))
	for _, c := range s.cells {
		if s.model.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsSelected reports whether c is selected and attached.
func (s *Model) IsSelected(c *model.Cell) bool {
	return s.model.Contains(c) && contains(s.cells, c)
}

// Len returns the number of selected attached cells.
func (s *Model) Len() int { return len(s.Cells()) }

// IsEmpty reports whether no attached cell is selected.
func (s *Model) IsEmpty() bool { return s.Len() == 0 }

// SetCells replaces the selection.
func (s *Model) SetCells(cells ...*model.Cell) {
	next := s.selectable(cells)
	if s.single && len(next) > 1 {
		next = next[:1]
	}
	var added, removed []*model.Cell
	for _, c := range next {
		if !contains(s.cells, c) {
			added = append(added, c)
		}
	}
	for _, c := range s.cells {
		if !contains(next, c) {
			removed = append(removed, c)
		}
	}
	s.execute(added, removed)
}

// AddCells adds cells to the selection. In single-selection mode the first
// selectable cell replaces the selection.
func (s *Model) AddCells(cells ...*model.Cell) {
	if s.single {
		s.SetCells(cells...)
		return
	}
	var added []*model.Cell
	for _, c := range s.selectable(cells) {
		if !contains(s.cells, c) {
			added = append(added, c)
		}
	}
	s.execute(added, nil)
}

// RemoveCells removes cells from the selection.
func (s *Model) RemoveCells(cells ...*model.Cell) {
	var removed []*model.Cell
	for _, c := range cells {
		if contains(s.cells, c) && !contains(removed, c) {
			removed = append(removed, c)
		}
	}
	s.execute(nil, removed)
}

// Clear empties the selection.
func (s *Model) Clear() {
	s.execute(nil, append([]*model.Cell(nil), s.cells...))
}

// Refresh reports cells that left or re-entered the model since the last
// report. It never creates an edit.
func (s *Model) Refresh() {
	s.report()
}

func (s *Model) execute(added, removed []*model.Cell) {
	if len(added) == 0 && len(removed) == 0 {
		return
	}
	s.model.Transactions().Execute(&Change{selection: s, added: added, removed: removed})
}

// selectable drops nil, detached and duplicate cells.
func (s *Model) selectable(cells []*model.Cell) []*model.Cell {
	var out []*model.Cell
	for _, c := range cells {
		if !s.model.Contains(c) {
			s.logger.Debug("unattached cell not selected", "cell", c.String())
			continue
		}
		if !contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// report fires one event for the difference between the visible selection
// and the one last reported.
func (s *Model) report() {
	current := s.Cells()
	var ev Event
	for _, c := range current {
		if !contains(s.reported, c) {
			ev.Added = append(ev.Added, c)
		}
	}
	for _, c := range s.reported {
		if !contains(current, c) {
			ev.Removed = append(ev.Removed, c)
		}
	}
	s.reported = current
	if len(ev.Added) == 0 && len(ev.Removed) == 0 {
		return
	}
	s.change.Fire(ev)
}

func contains(cells []*model.Cell, c *model.Cell) bool {
	return indexOf(cells, c) >= 0
}
