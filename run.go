package ui

import (
	"image"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Window shows a Viewer in a desktop (or browser) window.
type Window struct {
	Viewer *Viewer
	game   *viewerEbitenGame
	title  string
}

// NewWindow mounts a viewer in a new window of the given layout size. The viewer is drawn once per window refresh.
// The window only appears once Run is called.
func NewWindow(title string, width, height int, opts ...Option) (*Window, error) {
	container := &windowContainer{bounds: image.Rect(0, 0, width, height)}
	ticks := make(chan time.Time, 1)
	v, err := NewViewer(container, append(opts, OptMFrameSource(ticks))...)
	if err != nil {
		return nil, err
	}
	game := &viewerEbitenGame{Viewer: v, window: container, ticks: ticks}
	v.Subscribe(game.onSelection)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	return &Window{Viewer: v, game: game, title: title}, nil
}

// Run blocks until the window is closed or the process receives an interrupt, then closes the viewer.
// It must be called from the main goroutine.
func (w *Window) Run() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, signals()...)
	defer signal.Stop(quit)
	w.game.quit = quit
	defer func() {
		_ = w.Viewer.Close()
	}()
	log.Println("[Viewer] Opening window", w.title)
	return ebiten.RunGame(w.game)
}
