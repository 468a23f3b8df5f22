package ui

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlsIdle(t *testing.T) {
	cam := newCamera(v3.Vec{X: 5, Y: 4, Z: 6}, v3.Vec{}, 45)
	c := newControls(cam, 0.05)
	assert.False(t, c.Update())
	assert.Equal(t, v3.Vec{X: 5, Y: 4, Z: 6}, cam.Position)
}

func TestControlsRotateUndamped(t *testing.T) {
	cam := newCamera(v3.Vec{Z: 10}, v3.Vec{}, 45)
	c := newControls(cam, 1)
	c.Rotate(-250, 0) // A quarter turn (2*Pi/1000 per pixel)
	require.True(t, c.Update())
	assert.InDelta(t, 10, cam.Position.X, 1e-9)
	assert.InDelta(t, 0, cam.Position.Z, 1e-9)
	assert.False(t, c.Update(), "nothing left to apply")
}

func TestControlsDamping(t *testing.T) {
	cam := newCamera(v3.Vec{Z: 10}, v3.Vec{}, 45)
	c := newControls(cam, 0.05)
	c.Rotate(-250, 0)
	require.True(t, c.Update())
	assert.InDelta(t, 0.05*math.Pi/2, c.yaw, 1e-9)
	for i := 0; i < 1000 && c.Update(); i++ {
	}
	assert.InDelta(t, math.Pi/2, c.yaw, 1e-6)
	assert.InDelta(t, 10, cam.Position.Sub(cam.Target).Length(), 1e-9)
}

func TestControlsPitchClamp(t *testing.T) {
	cam := newCamera(v3.Vec{Z: 10}, v3.Vec{}, 45)
	c := newControls(cam, 1)
	c.Rotate(0, 10000)
	c.Update()
	assert.InDelta(t, maxPitch, c.pitch, 1e-12)
	assert.Greater(t, cam.Position.Y, 9.99)
	_, right, _ := cam.basis()
	assert.False(t, math.IsNaN(right.X), "the camera basis stays defined")
}

func TestControlsZoomLimits(t *testing.T) {
	cam := newCamera(v3.Vec{Z: 10}, v3.Vec{}, 45)
	c := newControls(cam, 1)
	c.Zoom(1)
	c.Update()
	assert.InDelta(t, 10*math.Exp(-0.1), cam.Position.Z, 1e-9)
	c.Zoom(1000)
	c.Update()
	assert.InDelta(t, c.MinDist, cam.Position.Z, 1e-9)
	c.Zoom(-1000)
	c.Update()
	assert.InDelta(t, c.MaxDist, cam.Position.Z, 1e-6)
}

func TestControlsPanAndReset(t *testing.T) {
	cam := newCamera(v3.Vec{Z: 10}, v3.Vec{}, 45)
	c := newControls(cam, 1)
	cam.Aspect = 2
	c.Pan(-50, 0)
	c.Update()
	assert.InDelta(t, 1, cam.Target.X, 1e-9) // 50 px * 10 * 1/500
	assert.InDelta(t, 1, cam.Position.X, 1e-9)

	c.Rotate(100, 0)
	c.Reset()
	assert.Equal(t, v3.Vec{}, cam.Target)
	assert.Equal(t, v3.Vec{Z: 10}, cam.Position)
	assert.Equal(t, 2., cam.Aspect)
	assert.False(t, c.Update())
}
