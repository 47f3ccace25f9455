package selection

import (
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
)

// Change adds and removes cells from a selection. It is insignificant: undo
// walks through it to the next structural edit.
type Change struct {
	selection *Model
	added     []*model.Cell
	removed   []*model.Cell
}

func (c *Change) Added() []*model.Cell   { return c.added }
func (c *Change) Removed() []*model.Cell { return c.removed }
func (c *Change) Kind() string           { return "selection" }
func (c *Change) Significant() bool      { return false }

func (c *Change) Execute() undo.Change {
	s := c.selection
	var added, removed []*model.Cell
	for _, x := range c.removed {
		if i := indexOf(s.cells, x); i >= 0 {
			s.cells = append(s.cells[:i:i], s.cells[i+1:]...)
			removed = append(removed, x)
		}
	}
	for _, x := range c.added {
		if indexOf(s.cells, x) < 0 {
			s.cells = append(s.cells, x)
			added = append(added, x)
		}
	}
	s.logger.Debug("selection changed", "added", len(added), "removed", len(removed))
	s.report()
	return &Change{selection: s, added: removed, removed: added}
}

func indexOf(cells []*model.Cell, c *model.Cell) int {
	for i, x := range cells {
		if x == c {
			return i
		}
	}
	return -1
}
