package view

import (
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
)

// CurrentRootChange swaps the cell the view is drilled into. The structural
// root of the model is not affected.
type CurrentRootChange struct {
	view *View
	root *model.Cell
}

func (c *CurrentRootChange) Root() *model.Cell { return c.root }
func (c *CurrentRootChange) Kind() string      { return "current_root" }

func (c *CurrentRootChange) Execute() undo.Change {
	prev := c.view.currentRoot
	c.view.currentRoot = c.root
	c.view.logger.Debug("current root changed", "root", c.root.String())
	return &CurrentRootChange{view: c.view, root: prev}
}

// CurrentRoot returns the cell the view is drilled into, or nil when it shows
// the whole document.
func (v *View) CurrentRoot() *model.Cell {
	if v.currentRoot != nil && !v.model.Contains(v.currentRoot) {
		return nil
	}
	return v.currentRoot
}

// SetCurrentRoot drills into root, or back to the whole document when root is
// nil or the model root. The change is undoable.
func (v *View) SetCurrentRoot(root *model.Cell) error {
	if root == v.model.Root() {
		root = nil
	}
	if root != nil && !v.model.Contains(root) {
		return domain.Violation("set current root", root.ID(), "cell is not in this model")
	}
	if root == v.currentRoot {
		return nil
	}
	v.model.Transactions().Execute(&CurrentRootChange{view: v, root: root})
	return nil
}
