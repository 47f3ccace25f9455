package model

import "github.com/BenKalegin/clouddiagram-sub004/pkg/domain"

// Snapshot is a detached, comparable copy of a cell tree. Cross-links are
// recorded by id.
type Snapshot struct {
	ID        string           `json:"id" yaml:"id"`
	Value     any              `json:"value,omitempty" yaml:"value,omitempty"`
	Style     domain.Style     `json:"style,omitempty" yaml:"style,omitempty"`
	Geometry  *domain.Geometry `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Vertex    bool             `json:"vertex,omitempty" yaml:"vertex,omitempty"`
	Edge      bool             `json:"edge,omitempty" yaml:"edge,omitempty"`
	Hidden    bool             `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Collapsed bool             `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Source    string           `json:"source,omitempty" yaml:"source,omitempty"`
	Target    string           `json:"target,omitempty" yaml:"target,omitempty"`
	Edges     []string         `json:"edges,omitempty" yaml:"edges,omitempty"`
	Children  []Snapshot       `json:"children,omitempty" yaml:"children,omitempty"`
}

// Snapshot captures the whole document.
func (m *Model) Snapshot() Snapshot {
	return SnapshotOf(m.root)
}

// SnapshotOf captures the tree rooted at c.
func SnapshotOf(c *Cell) Snapshot {
	s := Snapshot{
		ID:        c.id,
		Value:     c.value,
		Style:     c.style,
		Geometry:  c.geometry.Clone(),
		Vertex:    c.vertex,
		Edge:      c.edge,
		Hidden:    !c.visible,
		Collapsed: c.collapsed,
	}
	if c.source != nil {
		s.Source = c.source.id
	}
	if c.target != nil {
		s.Target = c.target.id
	}
	for _, e := range c.edges {
		s.Edges = append(s.Edges, e.id)
	}
	for _, child := range c.children {
		s.Children = append(s.Children, SnapshotOf(child))
	}
	return s
}

// Count returns the number of cells in the snapshot.
func (s Snapshot) Count() int {
	n := 1
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}
