package ui

import (
	"image/color"

	"github.com/Yeicor/assembly-ui/internal"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// LightKind identifies the role of a light in the rig.
type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

// Light is a light source of the scene. Position is the direction source for directional lights.
type Light struct {
	Kind       LightKind
	Color      color.RGBA
	Intensity  float64
	Position   v3.Vec
	Distance   float64 // Range of a point light (0 is infinite)
	CastShadow bool
}

// Grid is the ground reference grid, centered below the assembly.
type Grid struct {
	Size        float64
	Divisions   int
	Y           float64
	CenterColor color.RGBA
	LineColor   color.RGBA
}

// scene is the render graph root: a fixed light rig, the grid and at most one attached assembly.
type scene struct {
	lights []Light
	grid   Grid
	active *internal.Assembly
	// observer is notified after every topology change (test hook).
	observer func(s *scene, attached bool)
}

func newScene() *scene {
	return &scene{
		lights: []Light{
			{Kind: LightAmbient, Color: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, Intensity: 0.6},
			{Kind: LightDirectional, Color: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, Intensity: 1.2,
				Position: v3.Vec{X: 5, Y: 10, Z: 7}, CastShadow: true},
			{Kind: LightPoint, Color: color.RGBA{R: 0xFF, G: 0x66, A: 0xFF}, Intensity: 0.5,
				Position: v3.Vec{X: -2, Y: 2, Z: -2}, Distance: 10},
		},
		grid: Grid{
			Size:        20,
			Divisions:   20,
			Y:           -2,
			CenterColor: color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xFF},
			LineColor:   color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF},
		},
	}
}

// detach removes the active assembly from the graph and returns it (nil if none).
func (s *scene) detach() *internal.Assembly {
	prev := s.active
	if prev == nil {
		return nil
	}
	s.active = nil
	if s.observer != nil {
		s.observer(s, false)
	}
	return prev
}

// attach makes next the active assembly. The previous one must have been detached.
func (s *scene) attach(next *internal.Assembly) {
	if s.active != nil {
		panic("scene: attaching " + next.Name + " over an attached assembly")
	}
	s.active = next
	if s.observer != nil {
		s.observer(s, true)
	}
}

// assemblies counts the attached groups holding the reserved assembly name.
func (s *scene) assemblies() int {
	if s.active != nil && s.active.Name == internal.AssemblyName {
		return 1
	}
	return 0
}
