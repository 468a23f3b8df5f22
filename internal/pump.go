package internal

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	pumpBodyRadius   = 1.0
	pumpBodyLength   = 4.0
	pumpChamberX     = 2.0 // Distance of each chamber's center from the body's center
	pumpBoltRadius   = 0.15
	pumpBoltLength   = 0.2
	pumpBoltOffset   = 0.8 // Distance from the chamber's center to its outer face
	pumpBoltsPerSide = 4
)

var (
	pumpChamberSize = v3.Vec{X: 1.5, Y: 2.5, Z: 2.5}
	// (Y, Z) of each bolt on a chamber's outer face
	pumpBoltPattern = [pumpBoltsPerSide][2]float64{{0.8, 0.8}, {0.8, -0.8}, {-0.8, 0.8}, {-0.8, -0.8}}
)

// buildPump adds a horizontal pressure cylinder along X, an inlet and outlet chamber at both ends
// and four fastener bolts on each chamber's outer face.
func buildPump(a *Assembly) error {
	body, err := a.add("Cilindro de Pressão",
		Primitive{Shape: ShapeCylinder, Radius: pumpBodyRadius, Height: pumpBodyLength, Axis: AxisX},
		v3.Vec{}, 0, a.Primary)
	if err != nil {
		return err
	}
	body.CastShadow, body.ReceiveShadow = true, true

	chamber := Primitive{Shape: ShapeBox, Size: pumpChamberSize}
	inlet, err := a.add("Câmara de Entrada", chamber, v3.Vec{X: -pumpChamberX}, 0, a.Primary)
	if err != nil {
		return err
	}
	inlet.CastShadow = true
	outlet, err := a.add("Câmara de Saída", chamber, v3.Vec{X: pumpChamberX}, 0, a.Primary)
	if err != nil {
		return err
	}
	outlet.CastShadow = true

	for _, side := range []struct {
		x     float64
		label string
	}{{pumpChamberX + pumpBoltOffset, "Dir"}, {-pumpChamberX - pumpBoltOffset, "Esq"}} {
		for i, yz := range pumpBoltPattern {
			_, err = a.add(fmt.Sprintf("Parafuso de Fixação %s #%d", side.label, i+1),
				Primitive{Shape: ShapeCylinder, Radius: pumpBoltRadius, Height: pumpBoltLength, Axis: AxisX},
				v3.Vec{X: side.x, Y: yz[0], Z: yz[1]}, 0, a.Neutral)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
