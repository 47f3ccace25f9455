package graph

import (
	"fmt"
	"strings"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
)

// Overlay contains session state to highlight on the graph.
type Overlay struct {
	Selected    []string
	CurrentRoot string
}

// GenerateMermaid produces a Mermaid flowchart of the cell tree below root.
// Layers (children of root) are flattened, vertices with children become
// subgraphs and edges are listed last. It applies shape hints from the style:
// - "ellipse": ((Circle))
// - "rhombus": {Diamond}
// - collapsed: [[Subroutine]]
// - Default: [Rectangle]
// Hidden cells and their subtrees are skipped, as are edges with a missing end.
func GenerateMermaid(root *model.Cell, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	var edges []*model.Cell
	for _, layer := range root.Children() {
		if !layer.Visible() {
			continue
		}
		for _, c := range layer.Children() {
			writeCell(&sb, c, "    ", &edges)
		}
	}

	for _, e := range edges {
		src, dst := e.Source(), e.Target()
		if src == nil || dst == nil {
			fmt.Fprintf(&sb, "    %%%% %s is not connected\n", sanitizeMermaidID(e.ID()))
			continue
		}
		arrow := "-->"
		if e.Value() != nil {
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(fmt.Sprint(e.Value())))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(src.ID()), arrow, sanitizeMermaidID(dst.ID()))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef selected fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Selected {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s selected;\n", safeID)
			}
		}
		if overlay.CurrentRoot != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentRoot))
		}
	}

	return sb.String()
}

func writeCell(sb *strings.Builder, c *model.Cell, indent string, edges *[]*model.Cell) {
	if !c.Visible() {
		return
	}
	if c.IsEdge() {
		*edges = append(*edges, c)
		return
	}
	safeID := sanitizeMermaidID(c.ID())
	if c.ChildCount() > 0 && !c.Collapsed() {
		fmt.Fprintf(sb, "%ssubgraph %s[\"%s\"]\n", indent, safeID, label(c))
		for _, child := range c.Children() {
			writeCell(sb, child, indent+"    ", edges)
		}
		fmt.Fprintf(sb, "%send\n", indent)
		return
	}

	opener, closer := "[", "]"
	style := string(c.Style())
	switch {
	case c.Collapsed():
		opener, closer = "[[", "]]"
	case strings.Contains(style, "ellipse"):
		opener, closer = "((", "))"
	case strings.Contains(style, "rhombus"):
		opener, closer = "{", "}"
	}
	fmt.Fprintf(sb, "%s%s%s\"%s\"%s\n", indent, safeID, opener, label(c), closer)
}

func label(c *model.Cell) string {
	if c.Value() == nil {
		return escape(c.ID())
	}
	return escape(fmt.Sprint(c.Value()))
}

// escape replaces double quotes, which end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
