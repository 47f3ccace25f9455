package view_test

import (
	"errors"
	"testing"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	m  *model.Model
	um *undo.Manager
	v  *view.View
}

func setup(t *testing.T, opts ...view.Option) fixture {
	t.Helper()
	m := model.New(model.WithIDGenerator(model.SequentialIDs("c")))
	um := undo.NewManager()
	m.Transactions().OnUndoable(um.Push)
	v := view.New(m, opts...)
	v.TrackHistory(um)
	t.Cleanup(v.Close)
	return fixture{m: m, um: um, v: v}
}

func (f fixture) vertex(t *testing.T, parent *model.Cell, id string, x, y, w, h float64) *model.Cell {
	t.Helper()
	c, err := f.m.InsertVertex(parent, id, nil, domain.NewGeometry(x, y, w, h), "")
	require.NoError(t, err)
	return c
}

func TestState_ChildrenFollowParentGeometry(t *testing.T) {
	f := setup(t)
	parent := f.vertex(t, nil, "p", 100, 100, 200, 200)
	a := f.vertex(t, parent, "a", 10, 10, 20, 20)
	b := f.vertex(t, parent, "b", 50, 60, 20, 20)

	require.NotNil(t, f.v.State(a))
	assert.Equal(t, domain.Point{X: 110, Y: 110}, f.v.State(a).Origin)
	assert.Equal(t, domain.Point{X: 150, Y: 160}, f.v.State(b).Origin)

	require.NoError(t, f.m.SetGeometry(parent, domain.NewGeometry(300, 0, 200, 200)))

	assert.Equal(t, domain.Point{X: 310, Y: 10}, f.v.State(a).Origin)
	assert.Equal(t, domain.Point{X: 350, Y: 60}, f.v.State(b).Origin)
}

func TestState_ScaleAndTranslate(t *testing.T) {
	f := setup(t)
	a := f.vertex(t, nil, "a", 10, 20, 30, 40)
	require.Equal(t, domain.Rect{X: 10, Y: 20, Width: 30, Height: 40}, f.v.State(a).Bounds)

	var got []view.Transform
	f.v.OnTransform(func(tr view.Transform) { got = append(got, tr) })

	f.v.ScaleAndTranslate(2, 5, 5)
	assert.Equal(t, domain.Rect{X: 30, Y: 50, Width: 60, Height: 80}, f.v.State(a).Bounds)
	assert.Equal(t, domain.Point{X: 10, Y: 20}, f.v.State(a).Origin, "origin stays unscaled")
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].Scale)

	f.v.SetScale(2)
	assert.Len(t, got, 1, "unchanged transform fires nothing")
	f.v.SetScale(0)
	assert.Equal(t, 2.0, f.v.Scale())
}

func TestState_Lazy(t *testing.T) {
	f := setup(t)
	a := f.vertex(t, nil, "a", 0, 0, 10, 10)
	f.vertex(t, nil, "b", 0, 0, 10, 10)

	assert.Zero(t, f.v.Stats().Computed)
	f.v.State(a)
	computed := f.v.Stats().Computed
	f.v.State(a)
	assert.Equal(t, computed, f.v.Stats().Computed, "second read hits the cache")

	f.v.Validate()
	assert.Equal(t, 4, f.v.Stats().Cached, "root, layer and both vertices")
}

func TestState_EdgePoints(t *testing.T) {
	f := setup(t)
	a := f.vertex(t, nil, "a", 0, 0, 20, 20)
	b := f.vertex(t, nil, "b", 100, 0, 20, 20)
	e, err := f.m.InsertEdge(nil, "e", nil, a, b, "")
	require.NoError(t, err)

	s := f.v.State(e)
	require.NotNil(t, s)
	assert.Equal(t, []domain.Point{{X: 10, Y: 10}, {X: 110, Y: 10}}, s.AbsolutePoints)

	require.NoError(t, f.m.SetGeometry(b, domain.NewGeometry(100, 100, 20, 20)))
	assert.Equal(t, domain.Point{X: 110, Y: 110}, f.v.State(e).AbsolutePoints[1], "edge follows its terminal")
}

func TestState_FloatingEndAndControlPoints(t *testing.T) {
	f := setup(t)
	a := f.vertex(t, nil, "a", 0, 0, 20, 20)
	e, err := f.m.InsertEdge(nil, "e", nil, a, nil, "")
	require.NoError(t, err)

	g := e.Geometry()
	g.Points = []domain.Point{{X: 50, Y: 10}}
	g.TargetPoint = &domain.Point{X: 50, Y: 80}
	require.NoError(t, f.m.SetGeometry(e, g))

	assert.Equal(t, []domain.Point{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 80}}, f.v.State(e).AbsolutePoints)
}

func TestState_EdgeLabelAlongEdge(t *testing.T) {
	f := setup(t)
	a := f.vertex(t, nil, "a", 0, 0, 20, 20)
	b := f.vertex(t, nil, "b", 100, 0, 20, 20)
	e, err := f.m.InsertEdge(nil, "e", nil, a, b, "")
	require.NoError(t, err)

	label := model.NewVertex("label", "text", &domain.Geometry{Relative: true}, "")
	require.NoError(t, f.m.Add(e, label, -1))

	assert.Equal(t, domain.Point{X: 60, Y: 10}, f.v.State(label).Origin, "x=0 is the middle of the edge")

	require.NoError(t, f.m.SetGeometry(b, domain.NewGeometry(200, 0, 20, 20)))
	assert.Equal(t, domain.Point{X: 110, Y: 10}, f.v.State(label).Origin)
}

func TestState_RelativeChild(t *testing.T) {
	f := setup(t)
	p := f.vertex(t, nil, "p", 100, 100, 200, 100)
	c, err := f.m.InsertVertex(p, "c", nil, &domain.Geometry{X: 0.5, Y: 1, Width: 10, Height: 10, Relative: true}, "")
	require.NoError(t, err)

	assert.Equal(t, domain.Point{X: 200, Y: 200}, f.v.State(c).Origin)
}

func TestState_HiddenCollapsedDetached(t *testing.T) {
	f := setup(t)
	p := f.vertex(t, nil, "p", 0, 0, 100, 100)
	c := f.vertex(t, p, "c", 0, 0, 10, 10)
	require.NotNil(t, f.v.State(c))

	require.NoError(t, f.m.SetVisible(p, false))
	assert.Nil(t, f.v.State(p))
	assert.Nil(t, f.v.State(c), "children of a hidden cell are hidden")

	f.um.Undo()
	require.NotNil(t, f.v.State(c), "undo refreshes the cache")

	require.NoError(t, f.m.SetCollapsed(p, true))
	assert.NotNil(t, f.v.State(p))
	assert.Nil(t, f.v.State(c))

	require.NoError(t, f.m.Remove(p))
	assert.Nil(t, f.v.State(p))
	assert.Nil(t, f.v.State(nil))
}

func TestInvalidate_SeveredEdge(t *testing.T) {
	f := setup(t)
	a := f.vertex(t, nil, "a", 0, 0, 20, 20)
	b := f.vertex(t, nil, "b", 100, 0, 20, 20)
	e, err := f.m.InsertEdge(nil, "e", nil, a, b, "")
	require.NoError(t, err)
	require.Len(t, f.v.State(e).AbsolutePoints, 2)

	require.NoError(t, f.m.Remove(b))
	assert.Len(t, f.v.State(e).AbsolutePoints, 1, "severed end is dropped from the cached points")

	f.um.Undo()
	assert.Len(t, f.v.State(e).AbsolutePoints, 2)
}

func TestInvalidate_Explicit(t *testing.T) {
	f := setup(t)
	a := f.vertex(t, nil, "a", 0, 0, 20, 20)
	f.v.State(a)
	before := f.v.Stats().Invalidated

	f.v.Invalidate(a)
	assert.Equal(t, before+1, f.v.Stats().Invalidated)
	f.v.Invalidate(nil)
}

func TestCurrentRoot(t *testing.T) {
	f := setup(t)
	g := f.vertex(t, nil, "g", 100, 100, 200, 200)
	inner := f.vertex(t, g, "in", 10, 10, 20, 20)
	outer := f.vertex(t, nil, "out", 0, 0, 10, 10)

	require.NoError(t, f.v.SetCurrentRoot(g))
	assert.Same(t, g, f.v.CurrentRoot())
	assert.Nil(t, f.v.State(outer), "cells outside the current root are not displayed")
	assert.Equal(t, domain.Point{X: 10, Y: 10}, f.v.State(inner).Origin)

	f.um.Undo()
	assert.Nil(t, f.v.CurrentRoot())
	assert.Equal(t, domain.Point{X: 110, Y: 110}, f.v.State(inner).Origin)

	err := f.v.SetCurrentRoot(model.NewVertex("x", nil, nil, ""))
	assert.True(t, errors.Is(err, domain.ErrStructuralViolation))

	require.NoError(t, f.v.SetCurrentRoot(g))
	require.NoError(t, f.m.Remove(g))
	assert.Nil(t, f.v.CurrentRoot(), "a removed current root falls back to the document")
	assert.NotNil(t, f.v.State(outer))
}

func TestCurrentRoot_RedoAndSelfInverse(t *testing.T) {
	f := setup(t)
	g := f.vertex(t, nil, "g", 100, 100, 200, 200)
	inner := f.vertex(t, g, "in", 10, 10, 20, 20)

	var changes []undo.Change
	f.m.Transactions().OnChange(func(ev undo.ChangeEvent) { changes = append(changes, ev.Changes...) })
	require.NoError(t, f.v.SetCurrentRoot(g))
	require.Len(t, changes, 1)
	drill, ok := changes[0].(*view.CurrentRootChange)
	require.True(t, ok)

	f.um.Undo()
	assert.Nil(t, f.v.CurrentRoot())

	inverse := drill.Execute()
	assert.Same(t, g, f.v.CurrentRoot())
	inverse.Execute()
	assert.Nil(t, f.v.CurrentRoot(), "a change followed by its inverse is the identity")

	f.um.Redo()
	assert.Same(t, g, f.v.CurrentRoot())
	assert.Equal(t, domain.Point{X: 10, Y: 10}, f.v.State(inner).Origin)
}

func TestStyleResolver(t *testing.T) {
	f := setup(t, view.WithStyleResolver(func(c *model.Cell) domain.Style {
		return "resolved:" + c.Style()
	}))
	a, err := f.m.InsertVertex(nil, "a", nil, nil, "fill=red")
	require.NoError(t, err)
	assert.Equal(t, domain.Style("resolved:fill=red"), f.v.State(a).Style)

	require.NoError(t, f.m.SetStyle(a, "fill=blue"))
	assert.Equal(t, domain.Style("resolved:fill=blue"), f.v.State(a).Style)
}

func TestClose_StopsFollowing(t *testing.T) {
	f := setup(t)
	a := f.vertex(t, nil, "a", 0, 0, 10, 10)
	f.v.State(a)
	f.v.Close()

	require.NoError(t, f.m.SetGeometry(a, domain.NewGeometry(50, 50, 10, 10)))
	assert.Equal(t, domain.Point{}, f.v.State(a).Origin, "a closed view keeps its stale cache")
}
