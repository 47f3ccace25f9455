package view

import (
	"math"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
)

// State is the derived, disposable rendering state of one cell.
type State struct {
	Cell *model.Cell `json:"-"`
	// Origin is the absolute, unscaled position of the cell.
	Origin domain.Point `json:"origin"`
	// Bounds is the absolute rectangle after scale and translation.
	Bounds domain.Rect `json:"bounds"`
	// AbsolutePoints holds the scaled points of an edge, ends included.
	AbsolutePoints []domain.Point `json:"points,omitempty"`
	Style          domain.Style   `json:"style,omitempty"`

	area   domain.Rect
	points []domain.Point
}

// Center returns the centre of the scaled bounds.
func (s *State) Center() domain.Point {
	return s.Bounds.Center()
}

// pointAlong returns the point at fraction f (0..1) of the polyline length,
// shifted by dist along the normal of the segment it falls on.
func pointAlong(points []domain.Point, f, dist float64) domain.Point {
	switch len(points) {
	case 0:
		return domain.Point{}
	case 1:
		return points[0]
	}
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += segmentLength(points[i-1], points[i])
	}
	target := total * min(max(f, 0), 1)
	for i := 1; i < len(points); i++ {
		p0, p1 := points[i-1], points[i]
		l := segmentLength(p0, p1)
		if l == 0 {
			continue
		}
		if target <= l || i == len(points)-1 {
			t := min(target/l, 1)
			dx, dy := (p1.X-p0.X)/l, (p1.Y-p0.Y)/l
			return domain.Point{
				X: p0.X + dx*l*t - dy*dist,
				Y: p0.Y + dy*l*t + dx*dist,
			}
		}
		target -= l
	}
	return points[len(points)-1]
}

func segmentLength(a, b domain.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
