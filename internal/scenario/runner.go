package scenario

import (
	"fmt"
	"log/slog"

	"github.com/BenKalegin/clouddiagram-sub004"
	"github.com/BenKalegin/clouddiagram-sub004/internal/logging"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
)

// Runner applies steps to a session.
type Runner struct {
	session *clouddiagram.Session
	logger  *slog.Logger
}

// NewRunner creates a runner for s. A nil logger discards output.
func NewRunner(s *clouddiagram.Session, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{session: s, logger: logger}
}

// Run applies every step of script in order and stops at the first error.
// Steps already applied stay applied.
func (r *Runner) Run(script *Script) error {
	r.logger.Debug("scenario started", "name", script.Name, "steps", len(script.Steps))
	for i, step := range script.Steps {
		if err := r.Apply(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	r.logger.Debug("scenario finished", "name", script.Name)
	return nil
}

// Apply runs a single step.
func (r *Runner) Apply(step Step) error {
	s := r.session
	switch step.Op {
	case OpVertex:
		parent, err := r.optional(step.Parent)
		if err != nil {
			return err
		}
		_, err = s.InsertVertex(parent, step.ID, step.Value, domain.NewGeometry(step.X, step.Y, step.Width, step.Height), domain.Style(step.Style))
		return err

	case OpEdge:
		parent, err := r.optional(step.Parent)
		if err != nil {
			return err
		}
		source, err := r.optional(step.Source)
		if err != nil {
			return err
		}
		target, err := r.optional(step.Target)
		if err != nil {
			return err
		}
		_, err = s.InsertEdge(parent, step.ID, step.Value, source, target, domain.Style(step.Style))
		return err

	case OpMove:
		c, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		g := c.Geometry()
		if g == nil {
			g = &domain.Geometry{}
		}
		return s.SetGeometry(c, g.Translate(step.DX, step.DY))

	case OpGeometry:
		c, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		g := c.Geometry()
		if g == nil {
			g = &domain.Geometry{}
		}
		g.X, g.Y, g.Width, g.Height = step.X, step.Y, step.Width, step.Height
		return s.SetGeometry(c, g)

	case OpReparent:
		c, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		parent, err := r.optional(step.Parent)
		if err != nil {
			return err
		}
		if parent == nil {
			parent = s.Model().DefaultParent()
		}
		index := -1
		if step.Index != nil {
			index = *step.Index
		}
		return s.Reparent(c, parent, index)

	case OpRemove:
		c, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		return s.Remove(c)

	case OpStyle:
		c, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		return s.SetStyle(c, domain.Style(step.Style))

	case OpValue:
		c, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		return s.SetValue(c, step.Value)

	case OpVisible:
		c, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		return s.SetVisible(c, flag(step.Visible))

	case OpCollapse:
		c, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		return s.SetCollapsed(c, flag(step.Collapsed))

	case OpTerminal:
		edge, err := r.cell(step.ID)
		if err != nil {
			return err
		}
		terminal, err := r.optional(step.Terminal)
		if err != nil {
			return err
		}
		switch step.End {
		case "source":
			return s.SetTerminal(edge, terminal, true)
		case "target", "":
			return s.SetTerminal(edge, terminal, false)
		default:
			return fmt.Errorf("end must be source or target, got %q", step.End)
		}

	case OpSelect, OpDeselect:
		cells, err := r.cells(step.Cells)
		if err != nil {
			return err
		}
		if step.Op == OpSelect {
			s.Selection().AddCells(cells...)
		} else {
			s.Selection().RemoveCells(cells...)
		}
		return nil

	case OpClearSelection:
		s.Selection().Clear()
		return nil

	case OpDrill:
		root, err := r.optional(step.ID)
		if err != nil {
			return err
		}
		return s.SetCurrentRoot(root)

	case OpBatch:
		return s.Update(func() error {
			for i, nested := range step.Steps {
				if err := r.Apply(nested); err != nil {
					return fmt.Errorf("batch step %d (%s): %w", i+1, nested.Op, err)
				}
			}
			return nil
		})

	case OpUndo:
		for range max(step.Count, 1) {
			s.Undo()
		}
		return nil

	case OpRedo:
		for range max(step.Count, 1) {
			s.Redo()
		}
		return nil

	case OpScale:
		if step.Scale <= 0 {
			return fmt.Errorf("scale must be positive, got %v", step.Scale)
		}
		s.View().SetScale(step.Scale)
		return nil

	case OpTranslate:
		s.View().SetTranslate(step.DX, step.DY)
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
}

func (r *Runner) cell(id string) (*model.Cell, error) {
	c := r.session.Model().Cell(id)
	if c == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownCell, id)
	}
	return c, nil
}

// optional resolves id, mapping the empty id to nil.
func (r *Runner) optional(id string) (*model.Cell, error) {
	if id == "" {
		return nil, nil
	}
	return r.cell(id)
}

func (r *Runner) cells(ids []string) ([]*model.Cell, error) {
	out := make([]*model.Cell, 0, len(ids))
	for _, id := range ids {
		c, err := r.cell(id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func flag(b *bool) bool {
	return b == nil || *b
}
