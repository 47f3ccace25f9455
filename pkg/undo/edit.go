package undo

// Edit is one undoable unit of work: the inverses of the changes executed
// inside a transaction, in execution order.
//
// A new edit is in the done state. Undo reverts it once, Redo re-applies it
// once; calling either out of turn does nothing.
type Edit struct {
	changes     []Change
	significant bool
	undone      bool
	redone      bool
	dead        bool
	teardown    []func()
}

// NewEdit returns an empty edit.
func NewEdit() *Edit {
	return &Edit{}
}

// Add appends the inverse of an executed change.
func (e *Edit) Add(inverse Change) {
	e.changes = append(e.changes, inverse)
	if IsSignificant(inverse) {
		e.significant = true
	}
}

// IsEmpty reports whether the edit holds no changes.
func (e *Edit) IsEmpty() bool {
	return len(e.changes) == 0
}

// Len returns the number of changes held.
func (e *Edit) Len() int {
	return len(e.changes)
}

// Significant reports whether any change of the edit is significant.
func (e *Edit) Significant() bool {
	return e.significant
}

// Undone reports whether the edit is currently reverted.
func (e *Edit) Undone() bool { return e.undone }

// Redone reports whether the edit was re-applied after an undo.
func (e *Edit) Redone() bool { return e.redone }

// Changes returns the changes the next Undo or Redo will execute, in storage order.
func (e *Edit) Changes() []Change {
	out := make([]Change, len(e.changes))
	copy(out, e.changes)
	return out
}

// Undo executes the stored changes in reverse order and returns them in the
// order they ran.
func (e *Edit) Undo() []Change {
	if e.undone {
		return nil
	}
	executed := make([]Change, 0, len(e.changes))
	for i := len(e.changes) - 1; i >= 0; i-- {
		c := e.changes[i]
		e.changes[i] = c.Execute()
		executed = append(executed, c)
	}
	e.undone = true
	e.redone = false
	return executed
}

// Redo executes the stored changes in order and returns them.
func (e *Edit) Redo() []Change {
	if !e.undone {
		return nil
	}
	executed := make([]Change, 0, len(e.changes))
	for i, c := range e.changes {
		e.changes[i] = c.Execute()
		executed = append(executed, c)
	}
	e.undone = false
	e.redone = true
	return executed
}

// OnDie registers fn to run when the edit is discarded from history.
func (e *Edit) OnDie(fn func()) {
	e.teardown = append(e.teardown, fn)
}

// Die discards the edit. Teardown hooks run once.
func (e *Edit) Die() {
	if e.dead {
		return
	}
	e.dead = true
	for _, fn := range e.teardown {
		fn()
	}
	e.teardown = nil
}

// Dead reports whether Die was called.
func (e *Edit) Dead() bool { return e.dead }
