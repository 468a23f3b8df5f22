package internal

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	gearDiskRadius    = 2.0
	gearDiskThickness = 0.5
	gearAxleRadius    = 0.5
	gearAxleLength    = 3.0
	gearTeeth         = 12
	gearToothRadius   = 2.1 // Distance from the axis to each tooth's center
)

var gearToothSize = v3.Vec{X: 0.6, Y: 0.6, Z: 0.5}

// buildGear adds a friction disk facing Z, a coaxial axle and the teeth around the rim.
func buildGear(a *Assembly) error {
	disk, err := a.add("Disco de Fricção",
		Primitive{Shape: ShapeCylinder, Radius: gearDiskRadius, Height: gearDiskThickness, Axis: AxisZ},
		v3.Vec{}, 0, a.Primary)
	if err != nil {
		return err
	}
	disk.CastShadow = true

	_, err = a.add("Eixo Principal",
		Primitive{Shape: ShapeCylinder, Radius: gearAxleRadius, Height: gearAxleLength, Axis: AxisZ},
		v3.Vec{}, 0, a.Neutral)
	if err != nil {
		return err
	}

	tooth := Primitive{Shape: ShapeBox, Size: gearToothSize}
	for i := 0; i < gearTeeth; i++ {
		angle := float64(i) / gearTeeth * 2 * math.Pi
		pos := v3.Vec{X: math.Cos(angle) * gearToothRadius, Y: math.Sin(angle) * gearToothRadius}
		t, err := a.add(fmt.Sprintf("Dente da Engrenagem #%d", i+1), tooth, pos, angle, a.Primary)
		if err != nil {
			return err
		}
		t.CastShadow = true
	}
	return nil
}
