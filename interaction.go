package ui

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	doubleClickSlop     = 4 // Pixels the pointer may move between the two clicks
)

var defaultFont font.Face = basicfont.Face7x13

// clickTracker detects double clicks from a sequence of presses.
type clickTracker struct {
	last time.Time
	x, y int
}

// press records a press and reports whether it completes a double click.
func (c *clickTracker) press(now time.Time, x, y int) bool {
	if !c.last.IsZero() && now.Sub(c.last) <= doubleClickInterval &&
		absInt(x-c.x) <= doubleClickSlop && absInt(y-c.y) <= doubleClickSlop {
		c.last = time.Time{} // A third click starts over
		return true
	}
	c.last, c.x, c.y = now, x, y
	return false
}

// dragState follows a pointer drag that orbits or pans the camera.
type dragState struct {
	active bool
	pan    bool
	x, y   int
}

// onUpdateInputs handles inputs
func (g *viewerEbitenGame) onUpdateInputs() {
	g.onUpdateInputsKeys()
	g.onUpdateInputsPointer()
}

func (g *viewerEbitenGame) onUpdateInputsKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.SetResInv(g.ResInv() / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.SetResInv(g.ResInv() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.ToggleBoundingBoxes()
	}
	// Color
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.CycleColorMode()
	}
	// Reset camera transform
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ResetCamera()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		next := ModelGear
		if g.State().Model == ModelGear {
			next = ModelPump
		}
		if err := g.SetModelType(next); err != nil {
			log.Println("[Viewer] Error switching model:", err)
		}
	}
}

func (g *viewerEbitenGame) onUpdateInputsPointer() {
	// Zooming
	if _, wheelUpDown := ebiten.Wheel(); wheelUpDown != 0 {
		g.Zoom(wheelUpDown)
	}
	cx, cy := getCursor()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		if g.clicks.press(time.Now(), cx, cy) {
			g.DoubleClick(float64(cx), float64(cy))
		}
		g.drag = dragState{active: true, pan: ebiten.IsKeyPressed(ebiten.KeyShift), x: cx, y: cy}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.drag = dragState{active: true, pan: true, x: cx, y: cy}
	}
	if !g.drag.active {
		return
	}
	// Rotation + Translation
	if dx, dy := cx-g.drag.x, cy-g.drag.y; dx != 0 || dy != 0 {
		if g.drag.pan {
			g.Pan(float64(dx), float64(dy))
		} else {
			g.Orbit(float64(dx), float64(dy))
		}
		g.drag.x, g.drag.y = cx, cy
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) &&
		len(ebiten.AppendTouchIDs(nil)) == 0 {
		g.drag.active = false
	}
}

func getCursor() (int, int) {
	cx, cy := ebiten.CursorPosition()
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 { // Override cursor with touch if available
		cx, cy = ebiten.TouchPosition(ids[0])
	}
	return cx, cy
}

// drawUI draws the activity indicator, the current state and the controls help.
func (g *viewerEbitenGame) drawUI(screen *ebiten.Image) {
	// Notify when rendering
	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancelFunc()
	if g.renderingLock.RTryLock(ctx) {
		g.renderingLock.RUnlock()
	} else {
		drawDefaultTextWithShadow(screen, "Rendering...", 5, 5+12, color.RGBA{R: 255, A: 255})
	}

	// Draw current state and controls
	state := g.State()
	msg := fmt.Sprintf("Assembly Viewer\n===============\nTPS: %0.2f/%d\nModel: %s [M]\nResolution: %.2f [+/-]\n"+
		"Color: %d [C]\nBoxes: %t [B]\nReset camera [R]\nRotate cam [LeftMouse]\n"+
		"Translate cam [Shift+LeftMouse/RightMouse]\nZoom cam [MouseWheel]\nSelect part [DoubleClick]",
		ebiten.ActualTPS(), ebiten.TPS(), state.Model, 1/float64(state.ResInv), state.ColorMode, state.DrawBbs)
	if sel, ok := g.lastSelection(); ok {
		msg += "\nSelected: " + sel.PartName
	}
	boundString := text.BoundString(defaultFont, msg)
	drawDefaultTextWithShadow(screen, msg, 5, screen.Bounds().Dy()-boundString.Dy()+10, color.RGBA{G: 255, A: 255})
}

func drawDefaultTextWithShadow(screen *ebiten.Image, msg string, x, y int, c color.Color) {
	text.Draw(screen, msg, defaultFont, x+1, y+1, color.RGBA{A: 255})
	text.Draw(screen, msg, defaultFont, x, y, c)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
