package ui

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	minPitch = -(math.Pi/2 - 1e-5)
	maxPitch = math.Pi/2 - 1e-5
	// Pending motion below this is considered settled
	controlsSettled = 1e-9
)

// Controls is an orbit camera model with inertia, bound to a single Camera.
//
// Input methods only queue motion. Update integrates a Damping fraction of the queued motion into the camera and
// must run exactly once per rendered frame, before drawing.
type Controls struct {
	Damping     float64 // Fraction of the pending motion applied per frame, in (0, 1]
	RotateSpeed float64 // Radians per pointer pixel
	ZoomSpeed   float64 // Log-distance per wheel unit
	PanSpeed    float64 // Fraction of the orbit distance per pointer pixel
	MinDist     float64
	MaxDist     float64

	camera           *Camera
	yaw, pitch, dist float64 // Spherical coordinates of the camera around its target
	dYaw, dPitch     float64
	dZoom            float64 // Pending change of log(dist)
	dPan             v3.Vec
	home             Camera
}

func newControls(camera *Camera, damping float64) *Controls {
	c := &Controls{
		Damping:     damping,
		RotateSpeed: 2 * math.Pi / 1000,
		ZoomSpeed:   0.1,
		PanSpeed:    1. / 500,
		MinDist:     0.5,
		MaxDist:     500,
		camera:      camera,
		home:        *camera,
	}
	c.syncFromCamera()
	return c
}

// syncFromCamera recomputes the spherical coordinates from the camera's position and target.
func (c *Controls) syncFromCamera() {
	offset := c.camera.Position.Sub(c.camera.Target)
	c.dist = offset.Length()
	if c.dist == 0 {
		c.dist = 1
		offset = v3.Vec{Z: 1}
	}
	c.pitch = math.Asin(math.Max(-1, math.Min(1, offset.Y/c.dist)))
	c.yaw = math.Atan2(offset.X, offset.Z)
}

// Rotate queues an orbit by a pointer displacement in pixels.
func (c *Controls) Rotate(dx, dy float64) {
	c.dYaw -= dx * c.RotateSpeed
	c.dPitch += dy * c.RotateSpeed
}

// Zoom queues a dolly by a wheel displacement (positive moves closer).
func (c *Controls) Zoom(wheel float64) {
	c.dZoom -= wheel * c.ZoomSpeed
}

// Pan queues a translation of the target on the plane facing the camera, by a pointer displacement in pixels.
func (c *Controls) Pan(dx, dy float64) {
	_, right, up := c.camera.basis()
	scale := c.dist * c.PanSpeed
	c.dPan = c.dPan.Add(right.MulScalar(-dx * scale)).Add(up.MulScalar(dy * scale))
}

// Reset cancels pending motion and moves the camera back to its initial pose (keeping the aspect ratio).
func (c *Controls) Reset() {
	aspect := c.camera.Aspect
	*c.camera = c.home
	c.camera.Aspect = aspect
	c.dYaw, c.dPitch, c.dZoom, c.dPan = 0, 0, 0, v3.Vec{}
	c.syncFromCamera()
}

// Update integrates one frame of the pending motion into the camera. It reports whether the camera moved.
func (c *Controls) Update() bool {
	f := c.Damping
	if f <= 0 || f > 1 {
		f = 1
	}
	moving := math.Abs(c.dYaw) > controlsSettled || math.Abs(c.dPitch) > controlsSettled ||
		math.Abs(c.dZoom) > controlsSettled || c.dPan.Length() > controlsSettled
	if !moving {
		c.dYaw, c.dPitch, c.dZoom, c.dPan = 0, 0, 0, v3.Vec{}
		return false
	}

	c.yaw += c.dYaw * f
	if c.yaw < -math.Pi {
		c.yaw += 2 * math.Pi // Limits (wrap around)
	} else if c.yaw > math.Pi {
		c.yaw -= 2 * math.Pi // Limits (wrap around)
	}
	c.pitch = math.Max(minPitch, math.Min(maxPitch, c.pitch+c.dPitch*f))
	c.dist = math.Max(c.MinDist, math.Min(c.MaxDist, c.dist*math.Exp(c.dZoom*f)))
	c.camera.Target = c.camera.Target.Add(c.dPan.MulScalar(f))

	c.dYaw *= 1 - f
	c.dPitch *= 1 - f
	c.dZoom *= 1 - f
	c.dPan = c.dPan.MulScalar(1 - f)

	cosPitch := math.Cos(c.pitch)
	c.camera.Position = c.camera.Target.Add(v3.Vec{
		X: c.dist * cosPitch * math.Sin(c.yaw),
		Y: c.dist * math.Sin(c.pitch),
		Z: c.dist * cosPitch * math.Cos(c.yaw),
	})
	return true
}
