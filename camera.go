package ui

import (
	"image"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
)

// Camera is the perspective projection state of a viewer. Y is up.
type Camera struct {
	Fov       float64 // Vertical field of view, in degrees
	Aspect    float64 // Width / height of the drawing surface
	Near, Far float64
	Position  v3.Vec
	Target    v3.Vec // The point the camera looks at (and orbits around)
	Up        v3.Vec
}

func newCamera(pos, target v3.Vec, fov float64) *Camera {
	return &Camera{
		Fov:      fov,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
		Position: pos,
		Target:   target,
		Up:       v3.Vec{Y: 1},
	}
}

// basis returns the camera's forward, right and up unit vectors.
func (c *Camera) basis() (forward, right, up v3.Vec) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return
}

// Matrix is the world to clip space matrix used by the rasterizer.
func (c *Camera) Matrix() fauxgl.Matrix {
	return fauxgl.LookAt(toFauxglVector(c.Position), toFauxglVector(c.Target), toFauxglVector(c.Up)).
		Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

// Ray returns the ray from the camera through a point in normalized device coordinates ([-1, 1], Y up).
func (c *Camera) Ray(ndc v2.Vec) (from, dir v3.Vec) {
	forward, right, up := c.basis()
	tanHalfFov := math.Tan(c.Fov * math.Pi / 360)
	dir = forward.
		Add(right.MulScalar(ndc.X * tanHalfFov * c.Aspect)).
		Add(up.MulScalar(ndc.Y * tanHalfFov))
	return c.Position, dir.Normalize()
}

// Project maps a world point to normalized device coordinates. It reports false for points behind the camera.
func (c *Camera) Project(p v3.Vec) (v2.Vec, bool) {
	forward, right, up := c.basis()
	d := p.Sub(c.Position)
	depth := d.Dot(forward)
	if depth <= 0 {
		return v2.Vec{}, false
	}
	tanHalfFov := math.Tan(c.Fov * math.Pi / 360)
	return v2.Vec{
		X: d.Dot(right) / (depth * tanHalfFov * c.Aspect),
		Y: d.Dot(up) / (depth * tanHalfFov),
	}, true
}

// pointerToNDC maps client coordinates to normalized device coordinates using the on-screen rectangle of the
// surface, so that picking is independent of the backing-buffer resolution.
func pointerToNDC(x, y float64, rect image.Rectangle) v2.Vec {
	return v2.Vec{
		X: (x-float64(rect.Min.X))/float64(rect.Dx())*2 - 1,
		Y: -((y-float64(rect.Min.Y))/float64(rect.Dy())*2 - 1),
	}
}

// ndcToPointer is the inverse of pointerToNDC.
func ndcToPointer(ndc v2.Vec, rect image.Rectangle) (x, y float64) {
	x = float64(rect.Min.X) + (ndc.X+1)/2*float64(rect.Dx())
	y = float64(rect.Min.Y) + (1-ndc.Y)/2*float64(rect.Dy())
	return
}

func toFauxglVector(v v3.Vec) fauxgl.Vector {
	return fauxgl.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
