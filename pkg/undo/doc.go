/*
Package undo implements the reversible-command engine of the diagram core.

# Changes

A Change applies itself and returns the change that reverts it:

	inverse := c.Execute()
	inverse.Execute() // back to the state before c

# Transactions

Transactions groups the changes executed between Begin and the matching End into
a single Edit. Nested Begin/End pairs only count depth; the outermost End fires
EndEdit, then BeforeUndo, Change and Undoable once for the whole edit. Changes
executed by listeners while those events are delivered are collected into a
separate edit that is flushed right after.

# History

Manager keeps a bounded list of edits with a cursor. Undo walks backwards over
insignificant edits until it has reverted a significant one; Redo walks forward
the same way.
*/
package undo
