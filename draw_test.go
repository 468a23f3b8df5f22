package ui

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/Yeicor/assembly-ui/internal"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t testing.TB, model ModelType) (*scene, *Camera) {
	t.Helper()
	sc := newScene()
	a, err := internal.Build(model)
	require.NoError(t, err)
	sc.attach(a)
	return sc, newCamera(v3.Vec{Z: 10}, v3.Vec{}, 45)
}

func TestRasterizerDraw(t *testing.T) {
	sc, cam := newTestScene(t, ModelPump)
	bg := color.RGBA{B: 255, A: 255}
	rz := newRasterizer(8, bg)
	state := &internal.ViewState{}

	img := rz.draw(sc, cam, state, image.Pt(64, 64))
	assert.Equal(t, image.Pt(64, 64), img.Rect.Size())
	assert.NotEqual(t, color.NRGBA(bg), img.NRGBAAt(32, 32), "the body covers the center")
	assert.Equal(t, color.NRGBA(bg), img.NRGBAAt(1, 1), "the corners are empty")
	assert.Len(t, rz.meshes, 11)

	state.ColorMode = 1
	state.DrawBbs = true
	img = rz.draw(sc, cam, state, image.Pt(32, 16))
	assert.Equal(t, image.Pt(32, 16), img.Rect.Size())

	prev := sc.detach()
	rz.release(prev.Parts)
	assert.Empty(t, rz.meshes)
	rz.dispose()
	assert.Nil(t, rz.lastContext)
}

func TestRasterizerFlashColor(t *testing.T) {
	sc, cam := newTestScene(t, ModelPump)
	rz := newRasterizer(8, color.RGBA{A: 255})
	state := &internal.ViewState{}
	before := rz.draw(sc, cam, state, image.Pt(64, 64)).NRGBAAt(32, 32)
	sc.active.Parts[0].SetColor(flashColor)
	after := rz.draw(sc, cam, state, image.Pt(64, 64)).NRGBAAt(32, 32)
	assert.Greater(t, after.B, before.B, "a white part reflects more blue than an orange one")
}

func BenchmarkRasterizerDraw(b *testing.B) {
	sc, cam := newTestScene(b, ModelGear)
	rz := newRasterizer(32, color.RGBA{A: 255})
	state := &internal.ViewState{ResInv: 8}
	size := image.Pt(1920/state.ResInv, 1080/state.ResInv)
	rz.draw(sc, cam, state, size) // Tessellate
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		rz.draw(sc, cam, state, size)
	}
}

func BenchmarkViewerDoubleClick(b *testing.B) {
	c := &fakeContainer{rect: image.Rect(0, 0, 1920, 1080)}
	v, err := NewViewer(c, Opt3Cam(v3.Vec{Z: 10}, v3.Vec{}), OptMFrameSource(make(chan time.Time)))
	if err != nil {
		b.Fatal(err)
	}
	defer v.Close()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		v.DoubleClick(960, 540)
	}
}
