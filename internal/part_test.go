package internal

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayBox(t *testing.T) {
	bb := sdf.Box3{Min: v3.Vec{X: -1, Y: -1, Z: -1}, Max: v3.Vec{X: 1, Y: 1, Z: 1}}

	tNear, tFar, ok := RayBox(v3.Vec{Z: 10}, v3.Vec{Z: -1}, bb)
	require.True(t, ok)
	assert.InDelta(t, 9, tNear, 1e-12)
	assert.InDelta(t, 11, tFar, 1e-12)

	_, _, ok = RayBox(v3.Vec{X: 2, Z: 10}, v3.Vec{Z: -1}, bb) // Parallel, outside the X slab
	assert.False(t, ok)

	_, _, ok = RayBox(v3.Vec{Z: 10}, v3.Vec{Z: 1}, bb) // Pointing away
	assert.False(t, ok)

	tNear, _, ok = RayBox(v3.Vec{}, v3.Vec{X: 1}, bb) // From inside
	require.True(t, ok)
	assert.Less(t, tNear, 0.)

	_, _, ok = RayBox(v3.Vec{X: -5, Y: -5, Z: 10}, v3.Vec{X: 1, Y: 1, Z: -1}.Normalize(), bb)
	assert.False(t, ok)
}

func TestPartIntersect(t *testing.T) {
	a, err := Build(ModelPump)
	require.NoError(t, err)

	inlet := a.Part("Câmara de Entrada")
	dist, ok := inlet.Intersect(v3.Vec{X: -2, Z: 10}, v3.Vec{Z: -1}, 1000)
	require.True(t, ok)
	assert.InDelta(t, 10-1.25, dist, 1e-3)

	_, ok = inlet.Intersect(v3.Vec{X: -2, Z: 10}, v3.Vec{Z: -1}, 5) // Too far
	assert.False(t, ok)

	_, ok = inlet.Intersect(v3.Vec{X: 2, Z: 10}, v3.Vec{Z: -1}, 1000) // That's the outlet
	assert.False(t, ok)

	body := a.Part("Cilindro de Pressão")
	dist, ok = body.Intersect(v3.Vec{Y: 10}, v3.Vec{Y: -1}, 1000)
	require.True(t, ok)
	assert.InDelta(t, 9, dist, 1e-3)

	// Inside the bounding box of the round body but outside the body itself
	corner := v3.Vec{Y: 0.95, Z: 0.95}
	_, ok = body.Intersect(corner.Add(v3.Vec{X: 10}), v3.Vec{X: -1}, 1000)
	assert.False(t, ok)
}

func TestPartIntersectRotated(t *testing.T) {
	a, err := Build(ModelGear)
	require.NoError(t, err)
	tooth := a.Part("Dente da Engrenagem #4") // At 90 degrees
	require.NotNil(t, tooth)
	assert.InDelta(t, 2.1, tooth.Position.Y, 1e-9)
	dist, ok := tooth.Intersect(v3.Vec{Y: 2.1, Z: 10}, v3.Vec{Z: -1}, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 10-0.25, dist, 1e-3)
}
