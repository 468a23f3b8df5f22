package ui

import (
	"errors"
	"image"
	"log"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// windowContainer is the Container backed by the ebiten window: its bounds follow the window's layout size.
type windowContainer struct {
	lock    sync.RWMutex
	bounds  image.Rectangle
	surface Surface
}

func (c *windowContainer) Bounds() image.Rectangle {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.bounds
}

func (c *windowContainer) Attach(surface Surface) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.surface != nil {
		return errors.New("window already shows a viewer")
	}
	c.surface = surface
	return nil
}

func (c *windowContainer) Detach(surface Surface) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.surface == surface {
		c.surface = nil
	}
}

// setSize reports whether the size changed.
func (c *windowContainer) setSize(w, h int) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	next := image.Rect(0, 0, w, h)
	if c.bounds == next {
		return false
	}
	c.bounds = next
	return true
}

// viewerEbitenGame hides the private ebiten implementation while behaving like a *Viewer internally
type viewerEbitenGame struct {
	*Viewer
	window    *windowContainer
	ticks     chan time.Time
	quit      <-chan os.Signal
	screenImg *ebiten.Image
	clicks    clickTracker
	drag      dragState

	selectionLock sync.Mutex
	selection     *SelectionEvent
}

func (g *viewerEbitenGame) Update() error {
	select {
	case sig := <-g.quit:
		log.Println("[Viewer] Received", sig, "signal, closing the window")
		return ebiten.Termination
	default:
	}
	select {
	case g.ticks <- time.Now():
	default: // The previous tick was not consumed yet: the loop is still drawing
	}
	g.onUpdateInputs()
	return nil
}

func (g *viewerEbitenGame) Draw(screen *ebiten.Image) {
	g.drawFrame(screen)
	g.drawUI(screen)
}

func (g *viewerEbitenGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if g.window.setSize(outsideWidth, outsideHeight) {
		g.Resize()
	}
	return outsideWidth, outsideHeight // Use all available pixels, the viewer scales down by ResInv itself
}

// drawFrame scales the latest frame of the viewer to the whole screen.
func (g *viewerEbitenGame) drawFrame(screen *ebiten.Image) {
	frame := g.LastFrame()
	if frame == nil {
		return
	}
	size := frame.Rect.Size()
	if g.screenImg == nil || g.screenImg.Bounds().Size() != size {
		if g.screenImg != nil {
			g.screenImg.Deallocate()
		}
		g.screenImg = ebiten.NewImage(size.X, size.Y)
	}
	g.screenImg.WritePixels(frame.Pix) // Frames are opaque, so premultiplying is a no-op
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(screen.Bounds().Dx())/float64(size.X), float64(screen.Bounds().Dy())/float64(size.Y))
	screen.DrawImage(g.screenImg, op)
}

func (g *viewerEbitenGame) onSelection(ev SelectionEvent) {
	g.selectionLock.Lock()
	defer g.selectionLock.Unlock()
	g.selection = &ev
}

func (g *viewerEbitenGame) lastSelection() (SelectionEvent, bool) {
	g.selectionLock.Lock()
	defer g.selectionLock.Unlock()
	if g.selection == nil {
		return SelectionEvent{}, false
	}
	return *g.selection, true
}
