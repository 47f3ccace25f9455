package view

import (
	"log/slog"

	"github.com/BenKalegin/clouddiagram-sub004/internal/logging"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/event"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
)

// StyleResolver turns the opaque style of a cell into the style a renderer
// receives.
type StyleResolver func(*model.Cell) domain.Style

// Transform is fired when the scale or translation changes.
type Transform struct {
	Scale     float64
	Translate domain.Point
}

// Stats counts cache activity since the view was created.
type Stats struct {
	Computed    uint64
	Invalidated uint64
	Cached      int
}

// View is the state cache of one model.
type View struct {
	model    *model.Model
	logger   *slog.Logger
	resolver StyleResolver

	scale       float64
	translate   domain.Point
	currentRoot *model.Cell

	states map[*model.Cell]*State
	// dependents maps a terminal to the edges whose cached points used it.
	dependents map[*model.Cell]map[*model.Cell]struct{}
	computing  map[*model.Cell]bool
	stats      Stats

	transform event.Source[Transform]
	subs      []*event.Subscription
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the structured logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithStyleResolver replaces the default resolver, which returns the cell style as is.
func WithStyleResolver(r StyleResolver) Option {
	return func(v *View) {
		if r != nil {
			v.resolver = r
		}
	}
}

// WithScale sets the initial scale.
func WithScale(scale float64) Option {
	return func(v *View) {
		if scale > 0 {
			v.scale = scale
		}
	}
}

// WithTranslate sets the initial translation.
func WithTranslate(dx, dy float64) Option {
	return func(v *View) {
		v.translate = domain.Point{X: dx, Y: dy}
	}
}

// New creates a view of m and subscribes it to m's change notifications.
func New(m *model.Model, opts ...Option) *View {
	v := &View{
		model:      m,
		logger:     logging.NewNop(),
		resolver:   func(c *model.Cell) domain.Style { return c.Style() },
		scale:      1,
		states:     make(map[*model.Cell]*State),
		dependents: make(map[*model.Cell]map[*model.Cell]struct{}),
		computing:  make(map[*model.Cell]bool),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.subs = append(v.subs, m.OnChange(func(ev undo.ChangeEvent) {
		v.Refresh(ev.Changes)
	}))
	return v
}

// TrackHistory forwards the changes replayed by um's Undo and Redo to Refresh.
func (v *View) TrackHistory(um *undo.Manager) {
	refresh := func(ev undo.Event) { v.Refresh(ev.Changes) }
	v.subs = append(v.subs, um.OnUndo(refresh), um.OnRedo(refresh))
}

// Close unsubscribes the view from the model and any tracked history.
func (v *View) Close() {
	for _, sub := range v.subs {
		sub.Cancel()
	}
	v.subs = nil
}

// Model returns the model the view derives from.
func (v *View) Model() *model.Model { return v.model }

// Scale returns the current scale.
func (v *View) Scale() float64 { return v.scale }

// Translate returns the current translation.
func (v *View) Translate() domain.Point { return v.translate }

// SetScale changes the scale. Every cached state is dropped.
func (v *View) SetScale(scale float64) {
	v.ScaleAndTranslate(scale, v.translate.X, v.translate.Y)
}

// SetTranslate changes the translation. Every cached state is dropped.
func (v *View) SetTranslate(dx, dy float64) {
	v.ScaleAndTranslate(v.scale, dx, dy)
}

// ScaleAndTranslate changes both at once and fires a single Transform.
func (v *View) ScaleAndTranslate(scale, dx, dy float64) {
	t := domain.Point{X: dx, Y: dy}
	if scale <= 0 || (scale == v.scale && t == v.translate) {
		return
	}
	v.scale = scale
	v.translate = t
	v.Clear()
	v.transform.Fire(Transform{Scale: scale, Translate: t})
}

// OnTransform subscribes to scale and translation changes.
func (v *View) OnTransform(fn func(Transform)) *event.Subscription {
	return v.transform.Add(fn)
}

// Stats returns the cache counters.
func (v *View) Stats() Stats {
	s := v.stats
	s.Cached = len(v.states)
	return s
}

// Clear drops every cached state.
func (v *View) Clear() {
	v.stats.Invalidated += uint64(len(v.states))
	v.states = make(map[*model.Cell]*State)
	v.dependents = make(map[*model.Cell]map[*model.Cell]struct{})
	v.logger.Debug("view cache cleared")
}

// Refresh invalidates what the given changes affect.
func (v *View) Refresh(changes []undo.Change) {
	for _, c := range changes {
		switch c := c.(type) {
		case *model.RootChange, *CurrentRootChange:
			v.Clear()
		case *model.ChildChange:
			v.Invalidate(c.Child())
		case model.CellChange:
			v.Invalidate(c.Cell())
		}
	}
}

// Invalidate drops the state of cell, of its descendants and of every edge
// connected to any of them, transitively.
func (v *View) Invalidate(cell *model.Cell) {
	if cell == nil {
		return
	}
	visited := make(map[*model.Cell]bool)
	var visit func(c *model.Cell)
	visit = func(c *model.Cell) {
		if visited[c] {
			return
		}
		visited[c] = true
		if _, ok := v.states[c]; ok {
			delete(v.states, c)
			v.stats.Invalidated++
		}
		for _, child := range c.Children() {
			visit(child)
		}
		for _, e := range c.Edges() {
			visit(e)
		}
		deps := v.dependents[c]
		delete(v.dependents, c)
		for e := range deps {
			visit(e)
		}
	}
	visit(cell)
}

// Validate computes the state of every visible cell under the current root.
func (v *View) Validate() {
	for _, c := range v.model.Descendants(v.effectiveRoot()) {
		v.State(c)
	}
}

// State returns the state of cell, computing it when needed. It returns nil
// for cells that are not displayed: detached, hidden, inside a hidden or
// collapsed ancestor, or outside the current root.
func (v *View) State(cell *model.Cell) *State {
	if cell == nil || !v.model.Contains(cell) {
		return nil
	}
	if s, ok := v.states[cell]; ok {
		return s
	}
	if v.computing[cell] {
		return nil
	}
	v.computing[cell] = true
	defer delete(v.computing, cell)

	s := v.compute(cell)
	if s != nil {
		v.states[cell] = s
		v.stats.Computed++
	}
	return s
}

func (v *View) effectiveRoot() *model.Cell {
	if v.currentRoot != nil && v.model.Contains(v.currentRoot) {
		return v.currentRoot
	}
	return v.model.Root()
}

func (v *View) compute(c *model.Cell) *State {
	root := v.effectiveRoot()
	if c == root {
		return v.finish(&State{Cell: c})
	}
	parent := c.Parent()
	if parent == nil || !c.Visible() {
		return nil
	}
	if parent != root && parent.Collapsed() {
		return nil
	}
	ps := v.State(parent)
	if ps == nil {
		return nil
	}

	s := &State{Cell: c, Origin: ps.Origin}
	g := c.Geometry()
	switch {
	case c.IsEdge():
		v.edgePoints(s, ps, g)
	case g == nil:
	case parent.IsEdge() && g.Relative:
		s.Origin = pointAlong(ps.points, (g.X+1)/2, g.Y)
	case g.Relative:
		pg := parent.Geometry()
		if pg != nil {
			s.Origin = s.Origin.Add(domain.Point{X: g.X * pg.Width, Y: g.Y * pg.Height})
		}
	default:
		s.Origin = s.Origin.Add(domain.Point{X: g.X, Y: g.Y})
	}
	if !c.IsEdge() {
		s.area = domain.Rect{X: s.Origin.X, Y: s.Origin.Y}
		if g != nil {
			if g.Offset != nil {
				s.Origin = s.Origin.Add(*g.Offset)
			}
			s.area = domain.Rect{X: s.Origin.X, Y: s.Origin.Y, Width: g.Width, Height: g.Height}
		}
	}
	return v.finish(s)
}

// edgePoints computes the unscaled polyline of an edge: the source anchor,
// the control points and the target anchor.
func (v *View) edgePoints(s, parent *State, g *domain.Geometry) {
	var pts []domain.Point
	if p, ok := v.anchor(s.Cell, parent, g, true); ok {
		pts = append(pts, p)
	}
	if g != nil {
		for _, p := range g.Points {
			pts = append(pts, parent.Origin.Add(p))
		}
	}
	if p, ok := v.anchor(s.Cell, parent, g, false); ok {
		pts = append(pts, p)
	}
	s.points = pts
	s.area = domain.BoundingBox(pts)
	s.Origin = s.area.Center()
	if len(pts) == 0 {
		s.Origin = parent.Origin
	}
}

func (v *View) anchor(edge *model.Cell, parent *State, g *domain.Geometry, source bool) (domain.Point, bool) {
	if t := edge.Terminal(source); t != nil {
		v.depend(t, edge)
		if ts := v.State(t); ts != nil {
			return ts.area.Center(), true
		}
	}
	var p *domain.Point
	if g != nil {
		p = g.TargetPoint
		if source {
			p = g.SourcePoint
		}
	}
	if p == nil {
		return domain.Point{}, false
	}
	return parent.Origin.Add(*p), true
}

func (v *View) depend(terminal, edge *model.Cell) {
	deps := v.dependents[terminal]
	if deps == nil {
		deps = make(map[*model.Cell]struct{})
		v.dependents[terminal] = deps
	}
	deps[edge] = struct{}{}
}

// finish applies scale and translation and resolves the style.
func (v *View) finish(s *State) *State {
	s.Bounds = domain.Rect{
		X:      v.scale * (v.translate.X + s.area.X),
		Y:      v.scale * (v.translate.Y + s.area.Y),
		Width:  v.scale * s.area.Width,
		Height: v.scale * s.area.Height,
	}
	if s.Cell.IsEdge() {
		s.AbsolutePoints = make([]domain.Point, len(s.points))
		for i, p := range s.points {
			s.AbsolutePoints[i] = p.Add(v.translate).Scale(v.scale)
		}
	}
	s.Style = v.resolver(s.Cell)
	return s
}
