package model

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/BenKalegin/clouddiagram-sub004/internal/logging"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/event"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
)

// Model is the cell graph of one document.
//
// It owns the structural root, the registry of attached cells and the
// transaction manager every mutation runs through. Mutations validate their
// arguments first and return a *domain.StructuralError without touching the
// graph when they are invalid.
type Model struct {
	logger *slog.Logger
	root   *Cell
	cells  map[string]*Cell
	ids    IDGenerator
	tx     *undo.Transactions
}

// New creates a model holding a root ("0") with one default layer ("1").
func New(opts ...Option) *Model {
	m := &Model{
		logger: logging.NewNop(),
		cells:  make(map[string]*Cell),
		ids:    UUIDs(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tx = undo.NewTransactions(undo.WithLogger(m.logger))
	m.root = newRoot()
	m.register(m.root, nil)
	return m
}

func newRoot() *Cell {
	root := NewCell(domain.RootID, nil, nil, "")
	root.insertChild(NewCell(domain.LayerID, nil, nil, ""), 0)
	return root
}

// Root returns the structural root.
func (m *Model) Root() *Cell { return m.root }

// DefaultParent returns the first layer, where cells go when no parent is given.
func (m *Model) DefaultParent() *Cell {
	if layer := m.root.ChildAt(0); layer != nil {
		return layer
	}
	return m.root
}

// Contains reports whether c is attached to this model.
func (m *Model) Contains(c *Cell) bool {
	return c != nil && c.model == m
}

// Cell returns the attached cell with the given id.
func (m *Model) Cell(id string) *Cell {
	return m.cells[id]
}

// Len returns the number of attached cells, root included.
func (m *Model) Len() int { return len(m.cells) }

// IsAncestor reports whether ancestor is cell or one of its ancestors.
func (m *Model) IsAncestor(ancestor, cell *Cell) bool {
	for c := cell; c != nil; c = c.parent {
		if c == ancestor {
			return true
		}
	}
	return false
}

// Descendants returns cell and all its descendants in pre-order.
func (m *Model) Descendants(cell *Cell) []*Cell {
	if cell == nil {
		return nil
	}
	var out []*Cell
	cell.walk(func(c *Cell) { out = append(out, c) })
	return out
}

// Transactions returns the transaction manager shared by every component
// editing this model.
func (m *Model) Transactions() *undo.Transactions { return m.tx }

// BeginUpdate opens a transaction.
func (m *Model) BeginUpdate() { m.tx.Begin() }

// EndUpdate closes the innermost transaction.
func (m *Model) EndUpdate() { m.tx.End() }

// Update runs fn inside one transaction that is always closed.
func (m *Model) Update(fn func() error) error { return m.tx.Update(fn) }

// OnChange subscribes to the mutation notification of every closed transaction.
func (m *Model) OnChange(fn func(undo.ChangeEvent)) *event.Subscription {
	return m.tx.OnChange(fn)
}

// Add attaches child under parent at index, or moves it there when it is
// already attached. A negative index appends. When the parent does not change
// the index is counted after the child is taken out of its current slot.
func (m *Model) Add(parent, child *Cell, index int) error {
	const op = "add"
	if child == nil {
		return m.reject(op, nil, "nil cell")
	}
	if err := m.checkAttached(op, parent); err != nil {
		return err
	}
	if child.model != nil && child.model != m {
		return m.reject(op, child, "cell belongs to another model")
	}
	if child == m.root {
		return m.reject(op, child, "root cannot be moved")
	}
	if child.model == nil && child.parent != nil {
		return m.reject(op, child, "cell is part of a detached subtree")
	}
	if m.IsAncestor(child, parent) {
		return m.reject(op, child, "parent is the cell or one of its descendants")
	}

	last := parent.ChildCount()
	if child.parent == parent {
		last--
	}
	if index < 0 {
		index = last
	}
	if index > last {
		return m.reject(op, child, fmt.Sprintf("index %d out of range 0..%d", index, last))
	}

	if child.model == nil {
		if err := m.checkTerminals(op, child, true); err != nil {
			return err
		}
	} else if child.parent == parent && child.Index() == index {
		return nil
	}

	m.tx.Execute(&ChildChange{model: m, parent: parent, child: child, index: index})
	return nil
}

// Reparent moves an attached cell under parent at index. A nil parent removes
// the cell.
func (m *Model) Reparent(cell, parent *Cell, index int) error {
	if parent == nil {
		return m.Remove(cell)
	}
	if err := m.checkAttached("reparent", cell); err != nil {
		return err
	}
	return m.Add(parent, cell, index)
}

// Remove detaches cell and its subtree from the model.
func (m *Model) Remove(cell *Cell) error {
	const op = "remove"
	if err := m.checkAttached(op, cell); err != nil {
		return err
	}
	if cell == m.root {
		return m.reject(op, cell, "root cannot be removed")
	}
	m.tx.Execute(&ChildChange{model: m, child: cell})
	return nil
}

// SetGeometry stores a copy of geometry on cell. A nil geometry clears it.
func (m *Model) SetGeometry(cell *Cell, geometry *domain.Geometry) error {
	if err := m.checkAttached("set geometry", cell); err != nil {
		return err
	}
	if cell.geometry.Equal(geometry) {
		return nil
	}
	m.tx.Execute(&GeometryChange{model: m, cell: cell, geometry: geometry.Clone()})
	return nil
}

// SetStyle replaces the style of cell.
func (m *Model) SetStyle(cell *Cell, style domain.Style) error {
	if err := m.checkAttached("set style", cell); err != nil {
		return err
	}
	if cell.style == style {
		return nil
	}
	m.tx.Execute(&StyleChange{model: m, cell: cell, style: style})
	return nil
}

// SetTerminal connects the source or target end of edge to terminal. A nil
// terminal disconnects that end.
func (m *Model) SetTerminal(edge, terminal *Cell, source bool) error {
	if err := m.checkTerminal("set terminal", edge, terminal); err != nil {
		return err
	}
	if edge.Terminal(source) == terminal {
		return nil
	}
	m.tx.Execute(&TerminalChange{model: m, cell: edge, terminal: terminal, source: source, position: -1})
	return nil
}

// SetTerminals connects both ends of edge in one transaction.
func (m *Model) SetTerminals(edge, source, target *Cell) error {
	const op = "set terminals"
	if err := m.checkTerminal(op, edge, source); err != nil {
		return err
	}
	if err := m.checkTerminal(op, edge, target); err != nil {
		return err
	}
	return m.Update(func() error {
		if err := m.SetTerminal(edge, source, true); err != nil {
			return err
		}
		return m.SetTerminal(edge, target, false)
	})
}

// SetVisible shows or hides cell.
func (m *Model) SetVisible(cell *Cell, visible bool) error {
	if err := m.checkAttached("set visible", cell); err != nil {
		return err
	}
	if cell.visible == visible {
		return nil
	}
	m.tx.Execute(&VisibleChange{model: m, cell: cell, visible: visible})
	return nil
}

// SetValue replaces the user object of cell.
func (m *Model) SetValue(cell *Cell, value any) error {
	if err := m.checkAttached("set value", cell); err != nil {
		return err
	}
	if reflect.DeepEqual(cell.value, value) {
		return nil
	}
	m.tx.Execute(&ValueChange{model: m, cell: cell, value: value})
	return nil
}

// SetCollapsed folds or unfolds cell. When its geometry carries alternate
// bounds they are swapped in within the same transaction.
func (m *Model) SetCollapsed(cell *Cell, collapsed bool) error {
	if err := m.checkAttached("set collapsed", cell); err != nil {
		return err
	}
	if cell.collapsed == collapsed {
		return nil
	}
	return m.Update(func() error {
		if g := cell.geometry; g != nil && g.AlternateBounds != nil {
			m.tx.Execute(&GeometryChange{model: m, cell: cell, geometry: g.SwapBounds()})
		}
		m.tx.Execute(&CollapseChange{model: m, cell: cell, collapsed: collapsed})
		return nil
	})
}

// SetRoot replaces the structural root with a detached cell tree.
func (m *Model) SetRoot(root *Cell) error {
	const op = "set root"
	if root == nil {
		return m.reject(op, nil, "nil cell")
	}
	if root == m.root {
		return nil
	}
	if root.model != nil {
		return m.reject(op, root, "cell is already attached")
	}
	if root.parent != nil {
		return m.reject(op, root, "root must not have a parent")
	}
	if err := m.checkTerminals(op, root, false); err != nil {
		return err
	}
	m.tx.Execute(&RootChange{model: m, root: root})
	return nil
}

// Clear replaces the document with an empty root and layer.
func (m *Model) Clear() error {
	return m.SetRoot(newRoot())
}

// InsertVertex creates a vertex and appends it to parent, or to the default
// parent when parent is nil.
func (m *Model) InsertVertex(parent *Cell, id string, value any, geometry *domain.Geometry, style domain.Style) (*Cell, error) {
	if parent == nil {
		parent = m.DefaultParent()
	}
	v := NewVertex(id, value, geometry, style)
	if err := m.Add(parent, v, -1); err != nil {
		return nil, err
	}
	return v, nil
}

// InsertEdge creates an edge between source and target (either may be nil)
// and appends it to parent in one transaction.
func (m *Model) InsertEdge(parent *Cell, id string, value any, source, target *Cell, style domain.Style) (*Cell, error) {
	const op = "insert edge"
	if parent == nil {
		parent = m.DefaultParent()
	}
	if err := m.checkAttached(op, parent); err != nil {
		return nil, err
	}
	for _, t := range []*Cell{source, target} {
		if t != nil {
			if err := m.checkAttached(op, t); err != nil {
				return nil, err
			}
		}
	}
	e := NewEdge(id, value, style)
	err := m.Update(func() error {
		if err := m.Add(parent, e, -1); err != nil {
			return err
		}
		return m.SetTerminals(e, source, target)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// rename records an id assigned to a cell when it joined the model.
type rename struct {
	cell     *Cell
	from, to string
}

// register adds every cell of the tree to the registry. Recorded renames are
// replayed first; cells still lacking a free id get a generated one. The
// returned renames include both.
func (m *Model) register(root *Cell, renames []rename) []rename {
	for _, r := range renames {
		r.cell.id = r.to
	}
	applied := append([]rename(nil), renames...)
	root.walk(func(c *Cell) {
		if other, taken := m.cells[c.id]; c.id == "" || (taken && other != c) {
			old := c.id
			c.id = m.newID()
			applied = append(applied, rename{cell: c, from: old, to: c.id})
			if old != "" {
				m.logger.Debug("cell id collision, renamed", "from", old, "to", c.id)
			}
		}
		m.cells[c.id] = c
		c.model = m
	})
	return applied
}

// unregister removes every cell of the tree from the registry and gives
// renamed cells their previous id back.
func (m *Model) unregister(root *Cell, renames []rename) {
	root.walk(func(c *Cell) {
		if m.cells[c.id] == c {
			delete(m.cells, c.id)
		}
		c.model = nil
	})
	for i := len(renames) - 1; i >= 0; i-- {
		renames[i].cell.id = renames[i].from
	}
}

func (m *Model) newID() string {
	for {
		id := m.ids()
		if _, taken := m.cells[id]; id != "" && !taken {
			return id
		}
	}
}

func (m *Model) checkAttached(op string, c *Cell) error {
	switch {
	case c == nil:
		return m.reject(op, nil, "nil cell")
	case c.model == m:
		return nil
	case c.model != nil:
		return m.reject(op, c, "cell belongs to another model")
	default:
		return m.reject(op, c, "cell is not in this model")
	}
}

func (m *Model) checkTerminal(op string, edge, terminal *Cell) error {
	if err := m.checkAttached(op, edge); err != nil {
		return err
	}
	if !edge.edge {
		return m.reject(op, edge, "cell is not an edge")
	}
	if terminal == nil {
		return nil
	}
	if terminal == edge {
		return m.reject(op, edge, "edge cannot be its own terminal")
	}
	return m.checkAttached(op, terminal)
}

// checkTerminals rejects a detached tree whose edges reference cells that are
// neither inside it nor, when attachedOK is set, attached to this model.
func (m *Model) checkTerminals(op string, root *Cell, attachedOK bool) error {
	inside := make(map[*Cell]bool)
	root.walk(func(c *Cell) { inside[c] = true })

	var err error
	root.walk(func(c *Cell) {
		if err != nil || !c.edge {
			return
		}
		for _, t := range []*Cell{c.source, c.target} {
			if t == nil || inside[t] || (attachedOK && m.Contains(t)) {
				continue
			}
			err = m.reject(op, c, fmt.Sprintf("dangling terminal %q", t.id))
			return
		}
	})
	return err
}

func (m *Model) reject(op string, c *Cell, reason string) error {
	id := ""
	if c != nil {
		id = c.id
	}
	m.logger.Debug("mutation rejected", "op", op, "cell", id, "reason", reason)
	return domain.Violation(op, id, reason)
}
