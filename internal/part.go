package internal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Shape is the parametric primitive a Part is made of.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeCylinder
)

// Axis is the direction a cylinder's length runs along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Primitive describes the untransformed shape of a Part, centered at the origin.
type Primitive struct {
	Shape  Shape
	Size   v3.Vec  // Box extents
	Radius float64 // Cylinder radius
	Height float64 // Cylinder length along Axis
	Axis   Axis
}

func (p Primitive) sdf3() (sdf.SDF3, error) {
	switch p.Shape {
	case ShapeBox:
		return sdf.Box3D(p.Size, 0)
	case ShapeCylinder:
		s, err := sdf.Cylinder3D(p.Height, p.Radius, 0) // Z is the cylinder's axis
		if err != nil {
			return nil, err
		}
		switch p.Axis {
		case AxisX:
			return sdf.Transform3D(s, sdf.RotateY(math.Pi/2)), nil
		case AxisY:
			return sdf.Transform3D(s, sdf.RotateX(math.Pi/2)), nil
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown shape %d", p.Shape)
}

// Material is shared by several parts of the same assembly and never mutated after the build.
type Material struct {
	Name      string
	Color     color.RGBA
	Roughness float64
	Metalness float64
}

// Part is a single named, pickable mesh of an Assembly.
//
// Shape, placement and material are fixed at build time. The displayed color may be overridden
// transiently (pick feedback) and every write is ignored once the part is released.
// Display state is not synchronized: the owner of the scene serializes access.
type Part struct {
	Name          string
	Primitive     Primitive
	Position      v3.Vec  // Translation applied last
	Angle         float64 // Rotation around Z (radians) applied before the translation
	Material      *Material
	CastShadow    bool
	ReceiveShadow bool

	shape    sdf.SDF3
	bb       sdf.Box3
	color    color.RGBA
	override bool
	released bool
}

func newPart(name string, prim Primitive, pos v3.Vec, angle float64, mat *Material) (*Part, error) {
	base, err := prim.sdf3()
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", name, err)
	}
	p := &Part{Name: name, Primitive: prim, Position: pos, Angle: angle, Material: mat}
	p.shape = sdf.Transform3D(base, p.Transform())
	p.bb = p.shape.BoundingBox()
	return p, nil
}

// Transform is the local to assembly matrix.
func (p *Part) Transform() sdf.M44 {
	return sdf.Translate3d(p.Position).Mul(sdf.RotateZ(p.Angle))
}

// SDF is the placed signed distance field of the part, in assembly coordinates.
func (p *Part) SDF() sdf.SDF3 {
	return p.shape
}

// BoundingBox is the placed bounding box of the part.
func (p *Part) BoundingBox() sdf.Box3 {
	return p.bb
}

// Color returns the displayed color: the override if any, or the material's color.
func (p *Part) Color() color.RGBA {
	if p.override {
		return p.color
	}
	return p.Material.Color
}

// SetColor overrides the displayed color. It reports false (and does nothing) on a released part.
func (p *Part) SetColor(c color.RGBA) bool {
	if p.released {
		return false
	}
	p.color = c
	p.override = c != p.Material.Color
	return true
}

// Release marks the part as detached from any scene. It can't be displayed or recolored afterwards.
func (p *Part) Release() {
	p.released = true
	p.override = false
}

// Released reports whether Release was called.
func (p *Part) Released() bool {
	return p.released
}

const (
	rayEpsilon  = 1e-4
	rayMaxSteps = 256
	rayBackOff  = 1e-2 // Start tracing slightly before the box to avoid starting on the surface
)

// Intersect returns the distance along the ray (from, dir) to the part's surface, if it is hit before maxDist.
func (p *Part) Intersect(from, dir v3.Vec, maxDist float64) (float64, bool) {
	dir = dir.Normalize()
	tNear, tFar, ok := RayBox(from, dir, p.bb)
	if !ok || tNear > maxDist {
		return 0, false
	}
	start := math.Max(tNear-rayBackOff, 0)
	origin := from.Add(dir.MulScalar(start))
	_, t, _ := sdf.Raycast3(p.shape, origin, dir, 0, 1, rayEpsilon, tFar-start+rayBackOff, rayMaxSteps)
	if t < 0 { // Missed the surface inside the box (or ran out of steps)
		return 0, false
	}
	if start+t > maxDist {
		return 0, false
	}
	return start + t, true
}

// RayBox is the slab test of a ray against an axis-aligned box.
// It returns the entry and exit distances (entry may be negative if from is inside the box).
func RayBox(from, dir v3.Vec, bb sdf.Box3) (tNear, tFar float64, ok bool) {
	o := [3]float64{from.X, from.Y, from.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	hi := [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	tNear, tFar = math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 { // Parallel to this slab
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
	}
	if tFar < 0 || tNear > tFar {
		return 0, 0, false
	}
	return tNear, tFar, true
}
