package model

import (
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
)

// GeometryChange replaces the geometry of a cell.
type GeometryChange struct {
	model    *Model
	cell     *Cell
	geometry *domain.Geometry
}

func (c *GeometryChange) Cell() *Cell  { return c.cell }
func (c *GeometryChange) Kind() string { return "geometry" }

func (c *GeometryChange) Execute() undo.Change {
	prev := c.cell.geometry
	c.cell.geometry = c.geometry
	return &GeometryChange{model: c.model, cell: c.cell, geometry: prev}
}

// StyleChange replaces the style of a cell.
type StyleChange struct {
	model *Model
	cell  *Cell
	style domain.Style
}

func (c *StyleChange) Cell() *Cell  { return c.cell }
func (c *StyleChange) Kind() string { return "style" }

func (c *StyleChange) Execute() undo.Change {
	prev := c.cell.style
	c.cell.style = c.style
	return &StyleChange{model: c.model, cell: c.cell, style: prev}
}

// TerminalChange connects one end of an edge. A nil terminal leaves the end
// floating at the geometry's source or target point.
type TerminalChange struct {
	model    *Model
	cell     *Cell
	terminal *Cell
	source   bool
	// position in terminal.edges to insert the edge at, -1 to append.
	position int
}

func (c *TerminalChange) Cell() *Cell     { return c.cell }
func (c *TerminalChange) Terminal() *Cell { return c.terminal }
func (c *TerminalChange) IsSource() bool  { return c.source }
func (c *TerminalChange) Kind() string    { return "terminal" }

func (c *TerminalChange) Execute() undo.Change {
	edge := c.cell
	prev := edge.Terminal(c.source)
	position := -1
	// A loop stays listed on its terminal while the other end still uses it.
	if prev != nil && edge.Terminal(!c.source) != prev {
		position = prev.removeEdge(edge)
	}
	edge.setTerminal(c.terminal, c.source)
	if c.terminal != nil {
		c.terminal.insertEdge(edge, c.position)
	}
	return &TerminalChange{model: c.model, cell: edge, terminal: prev, source: c.source, position: position}
}

// VisibleChange shows or hides a cell.
type VisibleChange struct {
	model   *Model
	cell    *Cell
	visible bool
}

func (c *VisibleChange) Cell() *Cell  { return c.cell }
func (c *VisibleChange) Kind() string { return "visible" }

func (c *VisibleChange) Execute() undo.Change {
	prev := c.cell.visible
	c.cell.visible = c.visible
	return &VisibleChange{model: c.model, cell: c.cell, visible: prev}
}

// CollapseChange folds or unfolds a cell.
type CollapseChange struct {
	model     *Model
	cell      *Cell
	collapsed bool
}

func (c *CollapseChange) Cell() *Cell  { return c.cell }
func (c *CollapseChange) Kind() string { return "collapsed" }

func (c *CollapseChange) Execute() undo.Change {
	prev := c.cell.collapsed
	c.cell.collapsed = c.collapsed
	return &CollapseChange{model: c.model, cell: c.cell, collapsed: prev}
}

// ValueChange replaces the user object of a cell.
type ValueChange struct {
	model *Model
	cell  *Cell
	value any
}

func (c *ValueChange) Cell() *Cell  { return c.cell }
func (c *ValueChange) Kind() string { return "value" }

func (c *ValueChange) Execute() undo.Change {
	prev := c.cell.value
	c.cell.value = c.value
	return &ValueChange{model: c.model, cell: c.cell, value: prev}
}

// RootChange swaps the structural root of the model. The old tree is
// unregistered as a whole and kept intact for undo.
type RootChange struct {
	model *Model
	root  *Cell
	// renames applied to root when it is registered, and to the current
	// root when it was.
	renames, prevRenames []rename
}

func (c *RootChange) Root() *Cell  { return c.root }
func (c *RootChange) Kind() string { return "root" }

func (c *RootChange) Execute() undo.Change {
	m := c.model
	prev := m.root
	if prev != nil {
		m.unregister(prev, c.prevRenames)
	}
	m.root = c.root
	var renames []rename
	if c.root != nil {
		renames = m.register(c.root, c.renames)
	}
	return &RootChange{model: m, root: prev, renames: c.prevRenames, prevRenames: renames}
}

// CellChange is implemented by every change that targets a single cell.
type CellChange interface {
	undo.Change
	Cell() *Cell
}
