package model

import "github.com/BenKalegin/clouddiagram-sub004/pkg/domain"

// Cell is a node of the diagram hierarchy: a vertex, an edge or a group.
//
// Children are owned by their parent. Parent, source, target and the edge
// index are non-owning links kept consistent by the Model. A Cell exposes no
// mutators; every change goes through the Model that holds it.
type Cell struct {
	id          string
	value       any
	geometry    *domain.Geometry
	style       domain.Style
	visible     bool
	collapsed   bool
	vertex      bool
	edge        bool
	connectable bool

	parent   *Cell
	children []*Cell
	source   *Cell
	target   *Cell
	edges    []*Cell

	model *Model
}

// NewCell returns a detached, visible cell with no kind.
func NewCell(id string, value any, geometry *domain.Geometry, style domain.Style) *Cell {
	return &Cell{
		id:       id,
		value:    value,
		geometry: geometry.Clone(),
		style:    style,
		visible:  true,
	}
}

// NewVertex returns a detached, connectable vertex.
func NewVertex(id string, value any, geometry *domain.Geometry, style domain.Style) *Cell {
	c := NewCell(id, value, geometry, style)
	c.vertex = true
	c.connectable = true
	return c
}

// NewEdge returns a detached edge with an empty relative geometry.
func NewEdge(id string, value any, style domain.Style) *Cell {
	c := NewCell(id, value, &domain.Geometry{Relative: true}, style)
	c.edge = true
	return c
}

func (c *Cell) ID() string                 { return c.id }
func (c *Cell) Value() any                 { return c.value }
func (c *Cell) Style() domain.Style        { return c.style }
func (c *Cell) Visible() bool              { return c.visible }
func (c *Cell) Collapsed() bool            { return c.collapsed }
func (c *Cell) IsVertex() bool             { return c.vertex }
func (c *Cell) IsEdge() bool               { return c.edge }
func (c *Cell) IsConnectable() bool        { return c.connectable }
func (c *Cell) Parent() *Cell              { return c.parent }
func (c *Cell) ChildCount() int            { return len(c.children) }
func (c *Cell) EdgeCount() int             { return len(c.edges) }
func (c *Cell) Source() *Cell              { return c.source }
func (c *Cell) Target() *Cell              { return c.target }
func (c *Cell) Model() *Model              { return c.model }
func (c *Cell) HasGeometry() bool          { return c.geometry != nil }
func (c *Cell) Geometry() *domain.Geometry { return c.geometry.Clone() }

// Terminal returns the source or the target of an edge.
func (c *Cell) Terminal(source bool) *Cell {
	if source {
		return c.source
	}
	return c.target
}

// ChildAt returns the child at index, or nil when out of range.
func (c *Cell) ChildAt(index int) *Cell {
	if index < 0 || index >= len(c.children) {
		return nil
	}
	return c.children[index]
}

// Children returns a copy of the child list.
func (c *Cell) Children() []*Cell {
	return append([]*Cell(nil), c.children...)
}

// Edges returns a copy of the edges that use c as a terminal.
func (c *Cell) Edges() []*Cell {
	return append([]*Cell(nil), c.edges...)
}

// Index returns the position of c in its parent, or -1 without a parent.
func (c *Cell) Index() int {
	if c.parent == nil {
		return -1
	}
	return indexOf(c.parent.children, c)
}

func (c *Cell) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.id
}

func (c *Cell) insertChild(child *Cell, index int) {
	if index < 0 || index > len(c.children) {
		index = len(c.children)
	}
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	child.parent = c
}

func (c *Cell) removeChild(child *Cell) int {
	i := indexOf(c.children, child)
	if i >= 0 {
		c.children = removeAt(c.children, i)
		child.parent = nil
	}
	return i
}

func (c *Cell) setTerminal(terminal *Cell, source bool) {
	if source {
		c.source = terminal
	} else {
		c.target = terminal
	}
}

// insertEdge adds edge to the index at position, appending when position is
// out of range. An edge already present is not added twice.
func (c *Cell) insertEdge(edge *Cell, position int) {
	if indexOf(c.edges, edge) >= 0 {
		return
	}
	if position < 0 || position > len(c.edges) {
		position = len(c.edges)
	}
	c.edges = append(c.edges, nil)
	copy(c.edges[position+1:], c.edges[position:])
	c.edges[position] = edge
}

func (c *Cell) removeEdge(edge *Cell) int {
	i := indexOf(c.edges, edge)
	if i >= 0 {
		c.edges = removeAt(c.edges, i)
	}
	return i
}

// walk visits c and its descendants in pre-order.
func (c *Cell) walk(fn func(*Cell)) {
	fn(c)
	for _, child := range c.children {
		child.walk(fn)
	}
}

func indexOf(cells []*Cell, c *Cell) int {
	for i, x := range cells {
		if x == c {
			return i
		}
	}
	return -1
}

func removeAt(cells []*Cell, i int) []*Cell {
	copy(cells[i:], cells[i+1:])
	cells[len(cells)-1] = nil
	return cells[:len(cells)-1]
}
