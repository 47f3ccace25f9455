package tui

import (
	"fmt"
	"strings"

	"github.com/BenKalegin/clouddiagram-sub004"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
)

// Report describes a session as a markdown document: the history position,
// the view cache counters, the selection and one table row per cell.
func Report(s *clouddiagram.Session) string {
	var sb strings.Builder
	m := s.Model()
	h := s.History()
	stats := s.View().Stats()

	sb.WriteString("# Session\n\n")
	fmt.Fprintf(&sb, "- **Cells:** %d\n", m.Len())
	fmt.Fprintf(&sb, "- **History:** %d of %d edits, cursor at %d\n", h.Len(), h.Size(), h.Cursor())
	fmt.Fprintf(&sb, "- **View:** scale %g, %d states cached, %d computed, %d invalidated\n",
		s.View().Scale(), stats.Cached, stats.Computed, stats.Invalidated)
	if root := s.View().CurrentRoot(); root != nil {
		fmt.Fprintf(&sb, "- **Drilled into:** `%s`\n", root.ID())
	}

	sb.WriteString("\n## Selection\n\n")
	cells := s.Selection().Cells()
	if len(cells) == 0 {
		sb.WriteString("_empty_\n")
	}
	for _, c := range cells {
		fmt.Fprintf(&sb, "- `%s`\n", c.ID())
	}

	sb.WriteString("\n## Cells\n\n")
	sb.WriteString("| Cell | Kind | Parent | Value | Bounds | Links |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, c := range m.Descendants(m.Root()) {
		writeRow(&sb, s, c)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, s *clouddiagram.Session, c *model.Cell) {
	kind := "group"
	switch {
	case c.IsEdge():
		kind = "edge"
	case c.IsVertex():
		kind = "vertex"
	}
	if !c.Visible() {
		kind += " (hidden)"
	}
	if c.Collapsed() {
		kind += " (collapsed)"
	}

	parent := ""
	if p := c.Parent(); p != nil {
		parent = "`" + p.ID() + "`"
	}
	value := ""
	if c.Value() != nil {
		value = strings.ReplaceAll(fmt.Sprint(c.Value()), "|", "\\|")
	}
	bounds := "-"
	if st := s.State(c); st != nil {
		b := st.Bounds
		bounds = fmt.Sprintf("%g,%g %gx%g", b.X, b.Y, b.Width, b.Height)
	}

	var links []string
	if c.IsEdge() {
		links = append(links, fmt.Sprintf("%s → %s", c.Source(), c.Target()))
	} else if n := c.EdgeCount(); n > 0 {
		links = append(links, fmt.Sprintf("%d edges", n))
	}
	fmt.Fprintf(sb, "| `%s` | %s | %s | %s | %s | %s |\n", c.ID(), kind, parent, value, bounds, strings.Join(links, ""))
}
