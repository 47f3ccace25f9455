package domain

// Point is a position in model coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns the sum of both points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Scale returns p multiplied by s on both axes.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Center returns the centre of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// BoundingBox returns the smallest rectangle containing every point.
// It returns the zero Rect for an empty slice.
func BoundingBox(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Geometry describes where a cell is drawn.
//
// For vertices X/Y are relative to the parent's origin, or a fraction of the
// parent's size when Relative is set. For edges Points holds the control points
// and SourcePoint/TargetPoint position an end that has no terminal. Children of
// an edge (labels) use Relative to place themselves along the edge.
//
// A Geometry stored in a cell is never modified in place: callers clone it,
// change the clone and hand it back through the model.
type Geometry struct {
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Relative bool    `json:"relative,omitempty" yaml:"relative,omitempty"`

	Points      []Point `json:"points,omitempty" yaml:"points,omitempty"`
	SourcePoint *Point  `json:"source_point,omitempty" yaml:"source_point,omitempty"`
	TargetPoint *Point  `json:"target_point,omitempty" yaml:"target_point,omitempty"`

	// Offset moves a label away from its computed position.
	Offset *Point `json:"offset,omitempty" yaml:"offset,omitempty"`

	// AlternateBounds holds the size to swap in when the cell is collapsed or expanded.
	AlternateBounds *Rect `json:"alternate_bounds,omitempty" yaml:"alternate_bounds,omitempty"`
}

// NewGeometry returns a geometry with the given bounds.
func NewGeometry(x, y, width, height float64) *Geometry {
	return &Geometry{X: x, Y: y, Width: width, Height: height}
}

// Bounds returns the geometry rectangle.
func (g *Geometry) Bounds() Rect {
	return Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

// Clone returns a deep copy. Cloning nil returns nil.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	c := *g
	if g.Points != nil {
		c.Points = make([]Point, len(g.Points))
		copy(c.Points, g.Points)
	}
	c.SourcePoint = clonePoint(g.SourcePoint)
	c.TargetPoint = clonePoint(g.TargetPoint)
	c.Offset = clonePoint(g.Offset)
	if g.AlternateBounds != nil {
		r := *g.AlternateBounds
		c.AlternateBounds = &r
	}
	return &c
}

// Equal reports whether both geometries describe the same shape.
func (g *Geometry) Equal(o *Geometry) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.X != o.X || g.Y != o.Y || g.Width != o.Width || g.Height != o.Height || g.Relative != o.Relative {
		return false
	}
	if len(g.Points) != len(o.Points) {
		return false
	}
	for i := range g.Points {
		if g.Points[i] != o.Points[i] {
			return false
		}
	}
	if !pointEqual(g.SourcePoint, o.SourcePoint) || !pointEqual(g.TargetPoint, o.TargetPoint) || !pointEqual(g.Offset, o.Offset) {
		return false
	}
	if (g.AlternateBounds == nil) != (o.AlternateBounds == nil) {
		return false
	}
	return g.AlternateBounds == nil || *g.AlternateBounds == *o.AlternateBounds
}

// Translate returns a clone moved by dx, dy. Relative geometries keep their
// position; their control points and floating ends still move.
func (g *Geometry) Translate(dx, dy float64) *Geometry {
	c := g.Clone()
	if c == nil {
		return nil
	}
	if !c.Relative {
		c.X += dx
		c.Y += dy
	}
	for i := range c.Points {
		c.Points[i].X += dx
		c.Points[i].Y += dy
	}
	if c.SourcePoint != nil {
		c.SourcePoint.X += dx
		c.SourcePoint.Y += dy
	}
	if c.TargetPoint != nil {
		c.TargetPoint.X += dx
		c.TargetPoint.Y += dy
	}
	return c
}

// SwapBounds returns a clone whose bounds are exchanged with AlternateBounds.
// Without alternate bounds the clone is unchanged.
func (g *Geometry) SwapBounds() *Geometry {
	c := g.Clone()
	if c == nil || c.AlternateBounds == nil {
		return c
	}
	old := c.Bounds()
	alt := *c.AlternateBounds
	c.X, c.Y, c.Width, c.Height = alt.X, alt.Y, alt.Width, alt.Height
	c.AlternateBounds = &old
	return c
}

func clonePoint(p *Point) *Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func pointEqual(a, b *Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
