package undo

import "fmt"

// Change is a reversible mutation.
//
// Execute applies the change and returns a new Change that reverts it.
// Executing the returned change yields a change equivalent to the original.
// Execute must not fail: validation happens before a change is built.
type Change interface {
	Execute() Change
}

// Kinder is implemented by changes that expose a short label for logs and metrics.
type Kinder interface {
	Kind() string
}

// Significance is implemented by changes that do not count as user-visible
// edits (selection updates, for instance). Changes that do not implement it
// are significant.
type Significance interface {
	Significant() bool
}

// IsSignificant reports whether c counts as a user-visible edit.
func IsSignificant(c Change) bool {
	if s, ok := c.(Significance); ok {
		return s.Significant()
	}
	return true
}

// KindOf returns the label of c, or its Go type name when it has none.
func KindOf(c Change) string {
	if k, ok := c.(Kinder); ok {
		return k.Kind()
	}
	return fmt.Sprintf("%T", c)
}

// Func adapts a pair of closures into a Change. Do applies the mutation and
// Undo reverts it.
type Func struct {
	Label string
	Do    func()
	Undo  func()
}

func (f Func) Execute() Change {
	f.Do()
	return Func{Label: f.Label, Do: f.Undo, Undo: f.Do}
}

func (f Func) Kind() string {
	if f.Label == "" {
		return "func"
	}
	return f.Label
}
