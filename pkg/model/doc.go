/*
Package model holds the cell graph of a diagram and the changes that edit it.

Every mutation method on Model validates its arguments, builds one change,
executes it through the model's transaction manager and returns nil, or returns
a *domain.StructuralError and leaves the graph untouched.

	m := model.New()
	a, _ := m.InsertVertex(nil, "a", "A", domain.NewGeometry(0, 0, 80, 30), "")
	b, _ := m.InsertVertex(nil, "b", "B", domain.NewGeometry(200, 0, 80, 30), "")
	_, _ = m.InsertEdge(nil, "ab", nil, a, b, "")

# Connectivity

An edge references its source and target cells without owning them, and each
terminal keeps an index of the edges that use it. Removing a subtree detaches
every such link crossing the subtree boundary, for every descendant, so no
attached edge ever points at a detached cell. Undo restores the links at their
original positions.
*/
package model
