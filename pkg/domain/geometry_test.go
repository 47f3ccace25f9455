package domain_test

import (
	"errors"
	"testing"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_CloneIsDeep(t *testing.T) {
	g := domain.NewGeometry(10, 20, 30, 40)
	g.Points = []domain.Point{{X: 1, Y: 2}}
	g.SourcePoint = &domain.Point{X: 5, Y: 5}
	g.AlternateBounds = &domain.Rect{Width: 80, Height: 20}

	c := g.Clone()
	require.True(t, g.Equal(c))

	c.Points[0].X = 99
	c.SourcePoint.Y = 99
	c.AlternateBounds.Width = 1

	assert.Equal(t, 1.0, g.Points[0].X)
	assert.Equal(t, 5.0, g.SourcePoint.Y)
	assert.Equal(t, 80.0, g.AlternateBounds.Width)
	assert.False(t, g.Equal(c))
}

func TestGeometry_CloneNil(t *testing.T) {
	var g *domain.Geometry
	assert.Nil(t, g.Clone())
	assert.True(t, g.Equal(nil))
	assert.False(t, g.Equal(domain.NewGeometry(0, 0, 0, 0)))
}

func TestGeometry_Translate(t *testing.T) {
	g := domain.NewGeometry(10, 10, 5, 5)
	g.Points = []domain.Point{{X: 0, Y: 0}}
	g.TargetPoint = &domain.Point{X: 1, Y: 1}

	moved := g.Translate(3, -2)
	assert.Equal(t, domain.Rect{X: 13, Y: 8, Width: 5, Height: 5}, moved.Bounds())
	assert.Equal(t, domain.Point{X: 3, Y: -2}, moved.Points[0])
	assert.Equal(t, domain.Point{X: 4, Y: -1}, *moved.TargetPoint)
	assert.Equal(t, 10.0, g.X, "original must not change")

	rel := &domain.Geometry{X: 0.5, Y: 0.5, Relative: true}
	assert.Equal(t, 0.5, rel.Translate(10, 10).X)
}

func TestGeometry_SwapBounds(t *testing.T) {
	g := domain.NewGeometry(1, 2, 100, 50)
	g.AlternateBounds = &domain.Rect{X: 1, Y: 2, Width: 20, Height: 10}

	s := g.SwapBounds()
	assert.Equal(t, domain.Rect{X: 1, Y: 2, Width: 20, Height: 10}, s.Bounds())
	assert.Equal(t, domain.Rect{X: 1, Y: 2, Width: 100, Height: 50}, *s.AlternateBounds)
	assert.True(t, g.Equal(s.SwapBounds()))

	plain := domain.NewGeometry(0, 0, 1, 1)
	assert.True(t, plain.Equal(plain.SwapBounds()))
}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, domain.Rect{}, domain.BoundingBox(nil))
	r := domain.BoundingBox([]domain.Point{{X: 4, Y: 1}, {X: -2, Y: 3}, {X: 0, Y: 7}})
	assert.Equal(t, domain.Rect{X: -2, Y: 1, Width: 6, Height: 6}, r)
	assert.Equal(t, domain.Point{X: 1, Y: 4}, r.Center())
}

func TestStructuralError(t *testing.T) {
	err := domain.Violation("reparent", "a", "cycle")
	assert.True(t, errors.Is(err, domain.ErrStructuralViolation))

	var se *domain.StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "reparent", se.Op)
	assert.Equal(t, `reparent "a": structural violation: cycle`, err.Error())
	assert.Equal(t, "add: structural violation: nil cell", domain.Violation("add", "", "nil cell").Error())
}
