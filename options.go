package ui

import (
	"image/color"
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Option configures a Viewer at construction time.
type Option func(v *Viewer)

type viewerConfig struct {
	model      ModelType
	camPos     v3.Vec
	camTarget  v3.Vec
	camFov     float64
	damping    float64
	background color.RGBA
	resInv     int
	meshCells  int
	interval   time.Duration
	frames     <-chan time.Time
	onSelect   []func(SelectionEvent)
	watchFile  string
}

func defaultConfig() viewerConfig {
	return viewerConfig{
		model:      ModelPump,
		camPos:     v3.Vec{X: 5, Y: 4, Z: 6},
		camFov:     45,
		damping:    0.05,
		background: color.RGBA{R: 0x2D, G: 0x37, B: 0x48, A: 0xFF},
		resInv:     1,
		meshCells:  48,
		interval:   time.Second / 60,
	}
}

//-----------------------------------------------------------------------------
// CAMERA
//-----------------------------------------------------------------------------

// Opt3Cam sets the initial camera position and the point it orbits around (also used by the camera reset).
func Opt3Cam(position, target v3.Vec) Option {
	return func(v *Viewer) {
		v.cfg.camPos = position
		v.cfg.camTarget = target
	}
}

// Opt3CamFov sets the vertical field of view of the camera, in degrees (default 45).
func Opt3CamFov(fovDegrees float64) Option {
	return func(v *Viewer) {
		v.cfg.camFov = fovDegrees
	}
}

// Opt3Damping sets the fraction of queued camera motion applied each frame (default 0.05, 1 disables inertia).
func Opt3Damping(damping float64) Option {
	return func(v *Viewer) {
		v.cfg.damping = damping
	}
}

// Opt3Background changes the clear color of the drawing surface.
func Opt3Background(c color.RGBA) Option {
	return func(v *Viewer) {
		v.cfg.background = c
	}
}

//-----------------------------------------------------------------------------
// MISC
//-----------------------------------------------------------------------------

// OptMModel sets the variant shown after mounting (default pump).
func OptMModel(model ModelType) Option {
	return func(v *Viewer) {
		v.cfg.model = model
	}
}

// OptMResInv sets how many layout pixels map to one rendered pixel (default 1).
func OptMResInv(resInv int) Option {
	return func(v *Viewer) {
		v.cfg.resInv = clampResInv(resInv)
	}
}

// OptMMeshCells sets the tessellation resolution of each part (cells along its longest side).
func OptMMeshCells(cells int) Option {
	return func(v *Viewer) {
		if cells > 0 {
			v.cfg.meshCells = cells
		}
	}
}

// OptMFrameRate sets the rate of the default frame source (default 60).
func OptMFrameRate(fps int) Option {
	return func(v *Viewer) {
		if fps > 0 {
			v.cfg.interval = time.Second / time.Duration(fps)
		}
	}
}

// OptMFrameSource drives the render loop from the host's own refresh ticks instead of a ticker.
// The loop stops if the channel is closed.
func OptMFrameSource(frames <-chan time.Time) Option {
	return func(v *Viewer) {
		v.cfg.frames = frames
	}
}

// OptMOnSelect subscribes fn to selection events for the whole lifetime of the viewer.
func OptMOnSelect(fn func(SelectionEvent)) Option {
	return func(v *Viewer) {
		v.cfg.onSelect = append(v.cfg.onSelect, fn)
	}
}

// OptMWatchModelFile applies the model type written in the given text file ("pump" or "gear"), now and whenever
// the file changes.
func OptMWatchModelFile(path string) Option {
	return func(v *Viewer) {
		v.cfg.watchFile = path
	}
}

func clampResInv(resInv int) int {
	return max(1, min(64, resInv))
}
