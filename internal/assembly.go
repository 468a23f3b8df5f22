package internal

import (
	"fmt"
	"image/color"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// AssemblyName is the reserved name of the group holding the displayed variant.
const AssemblyName = "MainObject"

// Assembly is a labeled group of parts representing one mechanical variant.
type Assembly struct {
	Name    string
	Model   ModelType
	Parts   []*Part   // In build order
	Primary *Material // Accent material for load-bearing parts
	Neutral *Material // Dark material for axles, bolts and fasteners

	byName map[string]*Part
}

// Build constructs a new, unattached assembly for the given variant.
// It has no side effects and always returns fresh parts and materials.
func Build(model ModelType) (*Assembly, error) {
	a := &Assembly{
		Name:  AssemblyName,
		Model: model,
		Primary: &Material{
			Name:      "primary",
			Color:     color.RGBA{R: 0xFF, G: 0x66, B: 0x00, A: 0xFF},
			Roughness: 0.3,
			Metalness: 0.6,
		},
		Neutral: &Material{
			Name:      "neutral",
			Color:     color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
			Roughness: 0.7,
			Metalness: 0.2,
		},
		byName: map[string]*Part{},
	}
	var err error
	switch model {
	case ModelPump:
		err = buildPump(a)
	case ModelGear:
		err = buildGear(a)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(model))
	}
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", model, err)
	}
	return a, nil
}

// add places a new part, enforcing assembly-scoped unique names.
func (a *Assembly) add(name string, prim Primitive, pos v3.Vec, angle float64, mat *Material) (*Part, error) {
	if _, dup := a.byName[name]; dup {
		return nil, fmt.Errorf("duplicate part name %q", name)
	}
	p, err := newPart(name, prim, pos, angle, mat)
	if err != nil {
		return nil, err
	}
	a.Parts = append(a.Parts, p)
	a.byName[name] = p
	return p, nil
}

// Part returns the part with the given name, or nil.
func (a *Assembly) Part(name string) *Part {
	return a.byName[name]
}

// Names lists the part names in build order.
func (a *Assembly) Names() []string {
	names := make([]string, len(a.Parts))
	for i, p := range a.Parts {
		names[i] = p.Name
	}
	return names
}

// BoundingBox encloses every part.
func (a *Assembly) BoundingBox() sdf.Box3 {
	if len(a.Parts) == 0 {
		return sdf.Box3{}
	}
	bb := a.Parts[0].BoundingBox()
	for _, p := range a.Parts[1:] {
		bb = bb.Extend(p.BoundingBox())
	}
	return bb
}

// Release releases every part. Later color writes on them become no-ops.
func (a *Assembly) Release() {
	for _, p := range a.Parts {
		p.Release()
	}
}
