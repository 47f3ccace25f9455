package undo

import (
	"log/slog"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/event"
)

// Event describes one Undo or Redo call.
type Event struct {
	// Edits are the edits processed, in processing order.
	Edits []*Edit
	// Changes are the changes executed, in execution order.
	Changes []Change
}

// Manager keeps the undo history of one editing session.
type Manager struct {
	logger  *slog.Logger
	size    int
	history []*Edit
	cursor  int

	add   event.Source[*Edit]
	undo  event.Source[Event]
	redo  event.Source[Event]
	clear event.Source[struct{}]
}

// NewManager returns an empty history bounded by domain.DefaultHistorySize
// unless WithSize says otherwise.
func NewManager(opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		logger: o.logger,
		size:   o.size,
	}
}

// Size returns the history bound. Zero or less means unbounded.
func (m *Manager) Size() int { return m.size }

// Len returns the number of edits kept.
func (m *Manager) Len() int { return len(m.history) }

// Cursor returns the index of the slot the next pushed edit will fill.
func (m *Manager) Cursor() int { return m.cursor }

// CanUndo reports whether there is an edit to undo.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether there is an undone edit to redo.
func (m *Manager) CanRedo() bool { return m.cursor < len(m.history) }

// Push records edit. Edits after the cursor are discarded, and the oldest edit
// is dropped when the history is full. Empty edits are ignored.
func (m *Manager) Push(edit *Edit) {
	if edit == nil || edit.IsEmpty() {
		return
	}
	m.trim()
	if m.size > 0 && len(m.history) >= m.size {
		dropped := m.history[0]
		m.history[0] = nil
		m.history = m.history[1:]
		dropped.Die()
		m.logger.Debug("oldest edit dropped", "size", m.size)
	}
	m.history = append(m.history, edit)
	m.cursor = len(m.history)
	m.add.Fire(edit)
}

func (m *Manager) trim() {
	if m.cursor >= len(m.history) {
		return
	}
	for i := m.cursor; i < len(m.history); i++ {
		m.history[i].Die()
		m.history[i] = nil
	}
	m.logger.Debug("redo tail discarded", "edits", len(m.history)-m.cursor)
	m.history = m.history[:m.cursor]
}

// Undo reverts edits until a significant one has been reverted. It does
// nothing when there is nothing to undo.
func (m *Manager) Undo() {
	var ev Event
	for m.cursor > 0 {
		m.cursor--
		edit := m.history[m.cursor]
		ev.Changes = append(ev.Changes, edit.Undo()...)
		ev.Edits = append(ev.Edits, edit)
		if edit.Significant() {
			break
		}
	}
	if len(ev.Edits) == 0 {
		return
	}
	m.logger.Debug("undo", "edits", len(ev.Edits), "changes", len(ev.Changes), "cursor", m.cursor)
	m.undo.Fire(ev)
}

// Redo re-applies edits until a significant one has been re-applied. It does
// nothing when there is nothing to redo.
func (m *Manager) Redo() {
	var ev Event
	for m.cursor < len(m.history) {
		edit := m.history[m.cursor]
		m.cursor++
		ev.Changes = append(ev.Changes, edit.Redo()...)
		ev.Edits = append(ev.Edits, edit)
		if edit.Significant() {
			break
		}
	}
	if len(ev.Edits) == 0 {
		return
	}
	m.logger.Debug("redo", "edits", len(ev.Edits), "changes", len(ev.Changes), "cursor", m.cursor)
	m.redo.Fire(ev)
}

// Clear discards every edit.
func (m *Manager) Clear() {
	for _, edit := range m.history {
		edit.Die()
	}
	m.history = nil
	m.cursor = 0
	m.clear.Fire(struct{}{})
}

// OnAdd subscribes to pushed edits.
func (m *Manager) OnAdd(fn func(*Edit)) *event.Subscription {
	return m.add.Add(fn)
}

// OnUndo subscribes to Undo calls that reverted at least one edit.
func (m *Manager) OnUndo(fn func(Event)) *event.Subscription {
	return m.undo.Add(fn)
}

// OnRedo subscribes to Redo calls that re-applied at least one edit.
func (m *Manager) OnRedo(fn func(Event)) *event.Subscription {
	return m.redo.Add(fn)
}

// OnClear subscribes to Clear calls.
func (m *Manager) OnClear(fn func()) *event.Subscription {
	return m.clear.Add(func(struct{}) { fn() })
}
