package undo

import (
	"log/slog"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/event"
)

// ChangeEvent is delivered once per closed transaction.
type ChangeEvent struct {
	Edit *Edit
	// Changes lists the changes as they were applied, in order.
	Changes []Change
}

// Transactions groups executed changes into edits.
type Transactions struct {
	logger  *slog.Logger
	level   int
	edit    *Edit
	applied []Change
	closing bool

	startEdit  event.Source[struct{}]
	endEdit    event.Source[struct{}]
	beforeUndo event.Source[*Edit]
	change     event.Source[ChangeEvent]
	undoable   event.Source[*Edit]
}

// NewTransactions returns a transaction manager with no open transaction.
func NewTransactions(opts ...Option) *Transactions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Transactions{
		logger: o.logger,
		edit:   NewEdit(),
	}
}

// Level returns the current nesting depth.
func (t *Transactions) Level() int { return t.level }

// Open reports whether a transaction is in progress.
func (t *Transactions) Open() bool { return t.level > 0 }

// Begin opens a transaction or nests into the open one.
func (t *Transactions) Begin() {
	t.level++
	if t.level == 1 {
		t.startEdit.Fire(struct{}{})
	}
}

// End closes the innermost transaction. Closing the outermost one publishes the
// pending edit. End without a matching Begin is ignored.
func (t *Transactions) End() {
	if t.level == 0 {
		t.logger.Warn("end without begin ignored")
		return
	}
	t.level--
	if t.level > 0 || t.closing {
		return
	}

	t.closing = true
	defer func() { t.closing = false }()

	for {
		t.endEdit.Fire(struct{}{})

		edit, applied := t.edit, t.applied
		t.edit, t.applied = NewEdit(), nil
		if edit.IsEmpty() {
			return
		}

		t.logger.Debug("transaction closed", "changes", edit.Len(), "significant", edit.Significant())
		t.beforeUndo.Fire(edit)
		t.change.Fire(ChangeEvent{Edit: edit, Changes: applied})
		t.undoable.Fire(edit)

		// Listeners may have left a transaction open or executed changes of
		// their own. Open ones are published by their own End.
		if t.level > 0 || t.edit.IsEmpty() {
			return
		}
	}
}

// Execute applies c inside a transaction and records its inverse.
func (t *Transactions) Execute(c Change) {
	t.Begin()
	inverse := c.Execute()
	t.edit.Add(inverse)
	t.applied = append(t.applied, c)
	t.End()
}

// Update runs fn inside a transaction. The transaction is closed even when fn
// returns an error or panics; changes fn applied before failing are kept.
func (t *Transactions) Update(fn func() error) error {
	t.Begin()
	defer t.End()
	return fn()
}

// OnStartEdit subscribes to the opening of an outermost transaction.
func (t *Transactions) OnStartEdit(fn func()) *event.Subscription {
	return t.startEdit.Add(func(struct{}) { fn() })
}

// OnEndEdit subscribes to the closing of an outermost transaction, empty or not.
func (t *Transactions) OnEndEdit(fn func()) *event.Subscription {
	return t.endEdit.Add(func(struct{}) { fn() })
}

// OnBeforeUndo subscribes to non-empty edits before they are published.
func (t *Transactions) OnBeforeUndo(fn func(*Edit)) *event.Subscription {
	return t.beforeUndo.Add(fn)
}

// OnChange subscribes to the mutation notification of every non-empty edit.
func (t *Transactions) OnChange(fn func(ChangeEvent)) *event.Subscription {
	return t.change.Add(fn)
}

// OnUndoable subscribes to finished edits. A Manager's Push is the usual listener.
func (t *Transactions) OnUndoable(fn func(*Edit)) *event.Subscription {
	return t.undoable.Add(fn)
}
