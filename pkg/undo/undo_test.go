package undo_test

import (
	"testing"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setChange assigns a value to a string slot and returns the previous one.
type setChange struct {
	slot        *string
	value       string
	significant bool
}

func (c setChange) Execute() undo.Change {
	prev := *c.slot
	*c.slot = c.value
	return setChange{slot: c.slot, value: prev, significant: c.significant}
}

func (c setChange) Kind() string      { return "set" }
func (c setChange) Significant() bool { return c.significant }

func set(slot *string, v string) setChange {
	return setChange{slot: slot, value: v, significant: true}
}

// session wires transactions to a manager the way an editor does.
func session(opts ...undo.Option) (*undo.Transactions, *undo.Manager) {
	tx := undo.NewTransactions()
	m := undo.NewManager(opts...)
	tx.OnUndoable(m.Push)
	return tx, m
}

func TestChange_Helpers(t *testing.T) {
	var s string
	assert.Equal(t, "set", undo.KindOf(set(&s, "a")))
	assert.True(t, undo.IsSignificant(set(&s, "a")))
	assert.False(t, undo.IsSignificant(setChange{slot: &s}))

	f := undo.Func{Do: func() { s = "on" }, Undo: func() { s = "off" }}
	assert.Equal(t, "func", undo.KindOf(f))
	inv := f.Execute()
	assert.Equal(t, "on", s)
	inv.Execute()
	assert.Equal(t, "off", s)
}

func TestEdit_UndoRedoGuards(t *testing.T) {
	var a, b string
	e := undo.NewEdit()
	e.Add(set(&a, "a0").Execute())
	e.Add(set(&b, "b0").Execute())
	require.Equal(t, "a0", a)

	assert.Nil(t, e.Redo(), "redo on a fresh edit is a no-op")

	executed := e.Undo()
	require.Len(t, executed, 2)
	assert.Equal(t, "", a)
	assert.Equal(t, "", b)
	assert.True(t, e.Undone())
	assert.Nil(t, e.Undo(), "second undo is a no-op")

	e.Redo()
	assert.Equal(t, "a0", a)
	assert.Equal(t, "b0", b)
	assert.True(t, e.Redone())
	assert.False(t, e.Undone())
}

func TestEdit_UndoRunsInReverse(t *testing.T) {
	var s string
	e := undo.NewEdit()
	e.Add(set(&s, "1").Execute())
	e.Add(set(&s, "2").Execute())
	e.Add(set(&s, "3").Execute())
	require.Equal(t, "3", s)

	e.Undo()
	assert.Equal(t, "", s)
	e.Redo()
	assert.Equal(t, "3", s)
}

func TestEdit_DieOnce(t *testing.T) {
	calls := 0
	e := undo.NewEdit()
	e.OnDie(func() { calls++ })
	e.Die()
	e.Die()
	assert.Equal(t, 1, calls)
	assert.True(t, e.Dead())
}

func TestTransactions_NestedFireOnce(t *testing.T) {
	var a, b string
	tx, m := session()
	var events []undo.ChangeEvent
	tx.OnChange(func(ev undo.ChangeEvent) { events = append(events, ev) })

	tx.Begin()
	tx.Execute(set(&a, "x"))
	tx.Begin()
	tx.Execute(set(&b, "y"))
	tx.End()
	assert.Empty(t, events, "inner end does not notify")
	tx.End()

	require.Len(t, events, 1)
	assert.Len(t, events[0].Changes, 2)
	assert.Equal(t, 1, m.Len())

	m.Undo()
	assert.Equal(t, "", a)
	assert.Equal(t, "", b)
}

func TestTransactions_EventOrder(t *testing.T) {
	var s string
	tx, _ := session()
	var order []string
	tx.OnStartEdit(func() { order = append(order, "start") })
	tx.OnEndEdit(func() { order = append(order, "end") })
	tx.OnBeforeUndo(func(*undo.Edit) { order = append(order, "before") })
	tx.OnChange(func(undo.ChangeEvent) { order = append(order, "change") })
	tx.OnUndoable(func(*undo.Edit) { order = append(order, "undoable") })

	tx.Execute(set(&s, "v"))
	assert.Equal(t, []string{"start", "end", "before", "change", "undoable"}, order)
}

func TestTransactions_EmptyProducesNothing(t *testing.T) {
	tx, m := session()
	changes := 0
	tx.OnChange(func(undo.ChangeEvent) { changes++ })

	tx.Begin()
	tx.End()
	require.NoError(t, tx.Update(func() error { return nil }))

	assert.Zero(t, changes)
	assert.Zero(t, m.Len())
}

func TestTransactions_EndWithoutBegin(t *testing.T) {
	tx, _ := session()
	tx.End()
	assert.Equal(t, 0, tx.Level())
}

func TestTransactions_UpdateClosesOnPanic(t *testing.T) {
	var s string
	tx, m := session()
	assert.Panics(t, func() {
		_ = tx.Update(func() error {
			tx.Execute(set(&s, "v"))
			panic("boom")
		})
	})
	assert.Equal(t, 0, tx.Level())
	assert.Equal(t, 1, m.Len())
}

func TestTransactions_ReentrantListenerGetsSeparateEdit(t *testing.T) {
	var a, b string
	tx, m := session()
	var events []undo.ChangeEvent
	tx.OnChange(func(ev undo.ChangeEvent) {
		events = append(events, ev)
		if len(events) == 1 {
			tx.Execute(set(&b, "follow-up"))
		}
	})

	tx.Execute(set(&a, "first"))

	require.Len(t, events, 2)
	assert.NotSame(t, events[0].Edit, events[1].Edit)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "follow-up", b)
	assert.Equal(t, 0, tx.Level())
}

func TestManager_UndoRedo(t *testing.T) {
	var s string
	tx, m := session()

	tx.Execute(set(&s, "1"))
	tx.Execute(set(&s, "2"))
	assert.True(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	m.Undo()
	assert.Equal(t, "1", s)
	m.Undo()
	assert.Equal(t, "", s)
	assert.False(t, m.CanUndo())
	m.Undo()
	assert.Equal(t, "", s, "underflow is a no-op")

	m.Redo()
	m.Redo()
	assert.Equal(t, "2", s)
	m.Redo()
	assert.Equal(t, "2", s, "overflow is a no-op")
}

func TestManager_PushTruncatesRedoTail(t *testing.T) {
	var s string
	tx, m := session()
	tx.Execute(set(&s, "1"))
	tx.Execute(set(&s, "2"))

	var undone *undo.Edit
	m.OnUndo(func(ev undo.Event) { undone = ev.Edits[0] })
	m.Undo()
	require.True(t, m.CanRedo())

	tx.Execute(set(&s, "3"))

	assert.False(t, m.CanRedo())
	assert.Equal(t, 2, m.Len())
	assert.True(t, undone.Dead(), "discarded redo edits are torn down")
	m.Undo()
	assert.Equal(t, "1", s)
}

func TestManager_Capacity(t *testing.T) {
	var s string
	tx, m := session(undo.WithSize(2))
	var first *undo.Edit
	m.OnAdd(func(e *undo.Edit) {
		if first == nil {
			first = e
		}
	})

	tx.Execute(set(&s, "1"))
	tx.Execute(set(&s, "2"))
	tx.Execute(set(&s, "3"))

	assert.Equal(t, 2, m.Len())
	assert.True(t, first.Dead())

	m.Undo()
	m.Undo()
	m.Undo()
	assert.Equal(t, "1", s, "the oldest edit is gone")
}

func TestManager_SkipsInsignificant(t *testing.T) {
	var doc, sel string
	tx, m := session()
	var ev undo.Event
	m.OnUndo(func(e undo.Event) { ev = e })

	tx.Execute(set(&doc, "shape"))
	tx.Execute(setChange{slot: &sel, value: "shape"})
	tx.Execute(setChange{slot: &sel, value: ""})

	m.Undo()
	assert.Equal(t, "", doc)
	assert.Len(t, ev.Edits, 3, "one call walks back to the significant edit")
	assert.Len(t, ev.Changes, 3)

	m.Redo()
	assert.Equal(t, "shape", doc)
	assert.True(t, m.CanRedo(), "insignificant edits after it wait for the next redo")
}

func TestManager_UndoFiresOnce(t *testing.T) {
	var s string
	tx, m := session()
	undos, redos := 0, 0
	m.OnUndo(func(undo.Event) { undos++ })
	m.OnRedo(func(undo.Event) { redos++ })

	m.Undo()
	m.Redo()
	assert.Zero(t, undos+redos)

	tx.Execute(set(&s, "1"))
	m.Undo()
	m.Redo()
	assert.Equal(t, 1, undos)
	assert.Equal(t, 1, redos)
}

func TestManager_Clear(t *testing.T) {
	var s string
	tx, m := session()
	cleared := false
	m.OnClear(func() { cleared = true })
	tx.Execute(set(&s, "1"))

	m.Clear()
	assert.True(t, cleared)
	assert.Zero(t, m.Len())
	assert.Zero(t, m.Cursor())
	assert.False(t, m.CanUndo())
}

func TestManager_IgnoresEmpty(t *testing.T) {
	m := undo.NewManager()
	m.Push(undo.NewEdit())
	m.Push(nil)
	assert.Zero(t, m.Len())
	assert.Equal(t, 100, m.Size())
}
