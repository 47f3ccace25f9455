package model

import "github.com/BenKalegin/clouddiagram-sub004/pkg/undo"

// ChildChange moves Child under Parent at Index. A nil Parent detaches the
// child from the model.
//
// When a subtree leaves the model every terminal link crossing its boundary is
// undone: outside edges connected to a cell of the subtree lose that terminal,
// and edges of the subtree drop out of the edge index of their outside
// terminals. The inverse change carries those links and restores them when the
// subtree comes back. Ids assigned while attaching are likewise carried so a
// detach gives the cells their old ids back and a redo reuses the same ones.
type ChildChange struct {
	model   *Model
	parent  *Cell
	child   *Cell
	index   int
	links   []link
	renames []rename
}

// link is one terminal connection detached together with a subtree.
type link struct {
	edge     *Cell
	terminal *Cell
	source   bool
	// position in terminal.edges before removal, -1 if it was not listed.
	position int
	// sever is set when the edge itself lost the terminal reference.
	sever bool
}

func (c *ChildChange) Parent() *Cell { return c.parent }
func (c *ChildChange) Child() *Cell  { return c.child }
func (c *ChildChange) Index() int    { return c.index }
func (c *ChildChange) Kind() string  { return "child" }

// Execute moves the child and returns the change that moves it back.
func (c *ChildChange) Execute() undo.Change {
	m := c.model
	child := c.child
	prevParent, prevIndex := child.parent, child.Index()

	wasIn := m.Contains(child)
	nowIn := c.parent != nil && m.Contains(c.parent)

	var links []link
	var renames []rename
	if wasIn && !nowIn {
		links = detachLinks(child)
	}
	if prevParent != nil {
		prevParent.removeChild(child)
	}
	if c.parent != nil {
		c.parent.insertChild(child, c.index)
	}
	switch {
	case wasIn && !nowIn:
		m.unregister(child, c.renames)
		renames = c.renames
	case !wasIn && nowIn:
		renames = m.register(child, c.renames)
		restoreLinks(child, c.links)
	}

	return &ChildChange{
		model:   m,
		parent:  prevParent,
		child:   child,
		index:   prevIndex,
		links:   links,
		renames: renames,
	}
}

// detachLinks removes every terminal link crossing the boundary of the
// subtree rooted at root and returns them in removal order.
func detachLinks(root *Cell) []link {
	inside := make(map[*Cell]bool)
	root.walk(func(c *Cell) { inside[c] = true })

	var links []link
	root.walk(func(c *Cell) {
		for _, edge := range c.Edges() {
			if inside[edge] {
				continue
			}
			for _, source := range []bool{true, false} {
				if edge.Terminal(source) != c {
					continue
				}
				links = append(links, link{
					edge:     edge,
					terminal: c,
					source:   source,
					position: c.removeEdge(edge),
					sever:    true,
				})
				edge.setTerminal(nil, source)
			}
		}
		if !c.edge {
			return
		}
		for _, source := range []bool{true, false} {
			t := c.Terminal(source)
			if t == nil || inside[t] {
				continue
			}
			links = append(links, link{
				edge:     c,
				terminal: t,
				source:   source,
				position: t.removeEdge(c),
			})
		}
	})
	return links
}

// restoreLinks undoes detachLinks, then lists edges of the subtree that point
// outside but are missing from their terminal's edge index (a subtree moved
// back into the model by a fresh Add rather than an undo).
func restoreLinks(root *Cell, links []link) {
	for i := len(links) - 1; i >= 0; i-- {
		l := links[i]
		if l.sever {
			l.edge.setTerminal(l.terminal, l.source)
		}
		if l.position >= 0 {
			l.terminal.insertEdge(l.edge, l.position)
		}
	}

	inside := make(map[*Cell]bool)
	root.walk(func(c *Cell) { inside[c] = true })
	root.walk(func(c *Cell) {
		if !c.edge {
			return
		}
		for _, source := range []bool{true, false} {
			if t := c.Terminal(source); t != nil && !inside[t] {
				t.insertEdge(c, -1)
			}
		}
	})
}
