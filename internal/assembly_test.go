package internal

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPump(t *testing.T) {
	a, err := Build(ModelPump)
	require.NoError(t, err)
	assert.Equal(t, AssemblyName, a.Name)
	assert.Equal(t, ModelPump, a.Model)

	want := []string{"Cilindro de Pressão", "Câmara de Entrada", "Câmara de Saída"}
	for _, side := range []string{"Dir", "Esq"} {
		for i := 1; i <= 4; i++ {
			want = append(want, fmt.Sprintf("Parafuso de Fixação %s #%d", side, i))
		}
	}
	if diff := cmp.Diff(want, a.Names()); diff != "" {
		t.Fatalf("pump part names mismatch (-want +got):\n%s", diff)
	}

	body := a.Part("Cilindro de Pressão")
	require.NotNil(t, body)
	assert.True(t, body.CastShadow)
	assert.True(t, body.ReceiveShadow)
	assert.Same(t, a.Primary, body.Material)
	assert.Same(t, a.Neutral, a.Part("Parafuso de Fixação Esq #3").Material)

	bb := body.BoundingBox() // Along X
	assert.InDelta(t, -2, bb.Min.X, 1e-9)
	assert.InDelta(t, 2, bb.Max.X, 1e-9)
	assert.InDelta(t, 1, bb.Max.Y, 1e-9)
	assert.InDelta(t, 1, bb.Max.Z, 1e-9)

	whole := a.BoundingBox()
	assert.InDelta(t, -2.9, whole.Min.X, 1e-9) // Outer bolt faces
	assert.InDelta(t, 2.9, whole.Max.X, 1e-9)
	assert.InDelta(t, 1.25, whole.Max.Y, 1e-9)
}

func TestBuildGear(t *testing.T) {
	a, err := Build(ModelGear)
	require.NoError(t, err)
	require.Len(t, a.Parts, 14)
	assert.Equal(t, "Disco de Fricção", a.Parts[0].Name)
	assert.Equal(t, "Eixo Principal", a.Parts[1].Name)
	for i := 1; i <= 12; i++ {
		tooth := a.Part(fmt.Sprintf("Dente da Engrenagem #%d", i))
		require.NotNil(t, tooth, "tooth %d", i)
		assert.InDelta(t, 2.1, tooth.Position.Length(), 1e-9)
		assert.True(t, tooth.CastShadow)
	}

	axle := a.Part("Eixo Principal").BoundingBox() // Along Z
	assert.InDelta(t, -1.5, axle.Min.Z, 1e-9)
	assert.InDelta(t, 1.5, axle.Max.Z, 1e-9)
	assert.InDelta(t, 0.5, axle.Max.X, 1e-9)
}

func TestBuildRepeatable(t *testing.T) {
	for _, model := range []ModelType{ModelPump, ModelGear} {
		first, err := Build(model)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := Build(model)
			require.NoError(t, err)
			if diff := cmp.Diff(first.Names(), again.Names()); diff != "" {
				t.Fatalf("%s rebuild %d changed the part names (-first +again):\n%s", model, i, diff)
			}
		}
	}
}

func TestBuildUnknown(t *testing.T) {
	_, err := Build(ModelType(7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownModel))
}

func TestBuildIsFresh(t *testing.T) {
	a1, err := Build(ModelPump)
	require.NoError(t, err)
	a2, err := Build(ModelPump)
	require.NoError(t, err)
	assert.NotSame(t, a1.Parts[0], a2.Parts[0])
	assert.NotSame(t, a1.Primary, a2.Primary)

	a1.Release()
	assert.True(t, a1.Parts[0].Released())
	assert.False(t, a2.Parts[0].Released())
}

func TestAssemblyDuplicateName(t *testing.T) {
	a, err := Build(ModelGear)
	require.NoError(t, err)
	_, err = a.add("Eixo Principal", Primitive{Shape: ShapeBox, Size: gearToothSize}, gearToothSize, 0, a.Neutral)
	require.Error(t, err)
	assert.Len(t, a.Parts, 14)
}

func TestPartColor(t *testing.T) {
	a, err := Build(ModelPump)
	require.NoError(t, err)
	p := a.Parts[0]
	orange := color.RGBA{R: 0xFF, G: 0x66, A: 0xFF}
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	assert.Equal(t, orange, p.Color())

	require.True(t, p.SetColor(white))
	assert.Equal(t, white, p.Color())
	assert.Equal(t, orange, a.Parts[1].Color(), "materials are shared, overrides are not")

	require.True(t, p.SetColor(orange))
	assert.Equal(t, orange, p.Color())

	p.SetColor(white)
	p.Release()
	assert.False(t, p.SetColor(white))
	assert.Equal(t, orange, p.Color())
}

func TestParseModelType(t *testing.T) {
	for in, want := range map[string]ModelType{"pump": ModelPump, " Gear\n": ModelGear, "PUMP": ModelPump} {
		got, err := ParseModelType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseModelType("turbine")
	assert.ErrorIs(t, err, ErrUnknownModel)

	var m ModelType
	require.NoError(t, m.UnmarshalText([]byte("gear")))
	assert.Equal(t, ModelGear, m)
	text, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "gear", string(text))
	_, err = ModelType(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownModel)
}
