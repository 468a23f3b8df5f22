package ui

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Yeicor/assembly-ui/internal"
	"github.com/barkimedes/go-deepcopy"
	"github.com/subchen/go-trylock/v2"
)

// Viewer is the scene host bound to one Container: it owns the scene, the camera, its controls and the render loop,
// and it is the only writer of all of them.
//
// Every method is safe for concurrent use. Selection subscribers are called without holding any viewer lock, so
// they may call back into the viewer (except Close from inside a frame, which can't happen as frames never call
// out).
type Viewer struct {
	cfg       viewerConfig
	container Container

	// mu serializes frames, swaps, picks, flash restores and teardown
	mu         sync.RWMutex
	scene      *scene
	camera     *Camera
	controls   *Controls
	state      *internal.ViewState
	raster     *rasterizer
	bufferSize image.Point
	flashes    map[*internal.Part]*flash
	loop       *renderLoop
	watcher    io.Closer
	attached   bool
	closed     bool
	closeOnce  sync.Once

	// renderingLock is held while a frame is being drawn (the HUD uses it to show activity)
	renderingLock trylock.TryLocker

	cachedRenderLock sync.RWMutex
	cachedRender     *image.NRGBA
	frames           atomic.Uint64

	subsLock sync.Mutex
	subs     map[int]func(SelectionEvent)
	nextSub  int

	now func() time.Time
}

// NewViewer mounts a viewer inside container: it builds the scene with the configured model, attaches the drawing
// surface and starts the render loop. On failure, everything created so far is torn down before returning.
func NewViewer(container Container, opts ...Option) (*Viewer, error) {
	v := &Viewer{
		cfg:           defaultConfig(),
		container:     container,
		flashes:       map[*internal.Part]*flash{},
		subs:          map[int]func(SelectionEvent){},
		renderingLock: trylock.New(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.mount(); err != nil {
		_ = v.Close()
		return nil, err
	}
	return v, nil
}

func (v *Viewer) mount() error {
	if v.container == nil {
		return fmt.Errorf("%w: no container", ErrContainerUnusable)
	}
	rect := v.container.Bounds()
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrContainerUnusable, rect.Dx(), rect.Dy())
	}
	assembly, err := internal.Build(v.cfg.model)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.scene = newScene()
	v.camera = newCamera(v.cfg.camPos, v.cfg.camTarget, v.cfg.camFov)
	v.controls = newControls(v.camera, v.cfg.damping)
	v.state = &internal.ViewState{Model: assembly.Model, ResInv: v.cfg.resInv}
	v.raster = newRasterizer(v.cfg.meshCells, v.cfg.background)
	v.applyBounds(rect)
	v.scene.attach(assembly)
	v.mu.Unlock()

	if err = v.container.Attach(v); err != nil {
		return fmt.Errorf("%w: %v", ErrContainerUnusable, err)
	}
	v.mu.Lock()
	v.attached = true
	v.mu.Unlock()

	for _, fn := range v.cfg.onSelect {
		v.Subscribe(fn)
	}

	if v.cfg.watchFile != "" {
		w, err := watchModelFile(v, v.cfg.watchFile)
		if err != nil {
			return err
		}
		v.mu.Lock()
		v.watcher = w
		v.mu.Unlock()
	}

	v.mu.Lock() // A frame can't run before the loop is visible to it
	v.loop = startRenderLoop(v.cfg.frames, v.cfg.interval, v.renderFrame)
	v.mu.Unlock()
	log.Println("[Viewer] Mounted at", rect.Dx(), "x", rect.Dy(), "showing", assembly.Model)
	return nil
}

// SetModelType rebuilds the assembly for model and swaps it into the scene before returning. The previous parts
// are released first: their meshes are dropped and their pending flashes cancelled. It does nothing once closed.
func (v *Viewer) SetModelType(model ModelType) error {
	next, err := internal.Build(model)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		next.Release()
		return nil
	}
	v.swapAssembly(next)
	return nil
}

// swapAssembly replaces the attached assembly. The caller holds mu.
func (v *Viewer) swapAssembly(next *internal.Assembly) {
	if prev := v.scene.detach(); prev != nil {
		v.cancelFlashes(prev.Parts)
		v.raster.release(prev.Parts)
		prev.Release()
	}
	v.scene.attach(next)
	v.state.Model = next.Model
}

// Resize reads the container's current rectangle and updates the camera aspect and the drawing buffer size.
// Empty rectangles (e.g. a hidden element) are ignored.
func (v *Viewer) Resize() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	rect := v.container.Bounds()
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}
	v.applyBounds(rect)
}

// applyBounds sizes the camera and the buffer for the given layout rectangle. The caller holds mu.
func (v *Viewer) applyBounds(rect image.Rectangle) {
	v.camera.Aspect = float64(rect.Dx()) / float64(rect.Dy())
	v.bufferSize = image.Pt(max(1, rect.Dx()/v.state.ResInv), max(1, rect.Dy()/v.state.ResInv))
}

// renderFrame is the body of the render loop: update the controls, then draw.
func (v *Viewer) renderFrame() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.loop.Cancelled() {
		return
	}
	v.renderingLock.Lock()
	defer v.renderingLock.Unlock()

	v.controls.Update()
	img := v.raster.draw(v.scene, v.camera, v.state, v.bufferSize)

	v.cachedRenderLock.Lock()
	if v.cachedRender == nil || v.cachedRender.Rect != img.Rect {
		v.cachedRender = image.NewNRGBA(img.Rect)
	}
	copy(v.cachedRender.Pix, img.Pix)
	v.cachedRenderLock.Unlock()
	v.frames.Add(1)
}

// Close unmounts the viewer: it stops the render loop (waiting for an in-flight frame), cancels pending flashes,
// detaches the surface from the container and releases every part and mesh. Later calls to any method are no-ops.
func (v *Viewer) Close() error {
	v.closeOnce.Do(func() {
		v.mu.Lock()
		v.closed = true
		loop, watcher := v.loop, v.watcher
		if loop != nil {
			loop.markCancelled()
		}
		v.mu.Unlock()

		if loop != nil {
			loop.Cancel()
		}
		if watcher != nil {
			if err := watcher.Close(); err != nil {
				log.Println("[Viewer] Error closing the model file watcher:", err)
			}
		}

		v.mu.Lock()
		v.cancelFlashes(nil)
		if v.scene != nil {
			if prev := v.scene.detach(); prev != nil {
				prev.Release()
			}
		}
		if v.raster != nil {
			v.raster.dispose()
		}
		attached := v.attached
		v.attached = false
		v.mu.Unlock()

		if attached {
			v.container.Detach(v)
		}
		v.subsLock.Lock()
		v.subs = map[int]func(SelectionEvent){}
		v.subsLock.Unlock()
		log.Println("[Viewer] Unmounted")
	})
	return nil
}

// Subscribe registers fn to receive every later selection event, in pick order.
func (v *Viewer) Subscribe(fn func(SelectionEvent)) (unsubscribe func()) {
	v.subsLock.Lock()
	defer v.subsLock.Unlock()
	id := v.nextSub
	v.nextSub++
	v.subs[id] = fn
	return func() {
		v.subsLock.Lock()
		defer v.subsLock.Unlock()
		delete(v.subs, id)
	}
}

// emit hands ev to every subscriber. The caller must not hold mu.
func (v *Viewer) emit(ev SelectionEvent) {
	v.subsLock.Lock()
	ids := make([]int, 0, len(v.subs))
	for id := range v.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(SelectionEvent), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, v.subs[id])
	}
	v.subsLock.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

//-----------------------------------------------------------------------------
// ACCESSORS
//-----------------------------------------------------------------------------

// LastFrame returns a copy of the latest completed frame (nil before the first one).
func (v *Viewer) LastFrame() *image.NRGBA {
	v.cachedRenderLock.RLock()
	defer v.cachedRenderLock.RUnlock()
	if v.cachedRender == nil {
		return nil
	}
	return deepcopy.MustAnything(v.cachedRender).(*image.NRGBA)
}

// Frames is the number of frames drawn so far.
func (v *Viewer) Frames() uint64 {
	return v.frames.Load()
}

// ResInv is the number of layout pixels per rendered pixel.
func (v *Viewer) ResInv() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state == nil {
		return 1
	}
	return v.state.ResInv
}

// State returns a snapshot of the view settings.
func (v *Viewer) State() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state == nil {
		return ViewState{}
	}
	return *deepcopy.MustAnything(v.state).(*internal.ViewState)
}

// Camera returns a snapshot of the camera.
func (v *Viewer) Camera() Camera {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.camera == nil {
		return Camera{}
	}
	return *deepcopy.MustAnything(v.camera).(*Camera)
}

// Parts lists the part names of the attached assembly in build order (nil once closed).
func (v *Viewer) Parts() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.scene == nil || v.scene.active == nil {
		return nil
	}
	return v.scene.active.Names()
}

// PartColor returns the currently displayed color of the named part of the attached assembly.
func (v *Viewer) PartColor(name string) (color.RGBA, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.scene == nil || v.scene.active == nil {
		return color.RGBA{}, false
	}
	p := v.scene.active.Part(name)
	if p == nil {
		return color.RGBA{}, false
	}
	return p.Color(), true
}

//-----------------------------------------------------------------------------
// VIEW CONTROLS
//-----------------------------------------------------------------------------

// Orbit queues a camera rotation by a pointer displacement in layout pixels.
func (v *Viewer) Orbit(dx, dy float64) {
	v.withControls(func(c *Controls) { c.Rotate(dx, dy) })
}

// Pan queues a camera translation by a pointer displacement in layout pixels.
func (v *Viewer) Pan(dx, dy float64) {
	v.withControls(func(c *Controls) { c.Pan(dx, dy) })
}

// Zoom queues a camera dolly by a wheel displacement (positive moves closer).
func (v *Viewer) Zoom(wheel float64) {
	v.withControls(func(c *Controls) { c.Zoom(wheel) })
}

// ResetCamera moves the camera back to its initial pose.
func (v *Viewer) ResetCamera() {
	v.withControls(func(c *Controls) { c.Reset() })
}

func (v *Viewer) withControls(fn func(c *Controls)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.controls == nil {
		return
	}
	fn(v.controls)
}

// SetResInv changes the rendering resolution divisor (clamped to [1, 64]).
func (v *Viewer) SetResInv(resInv int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.state.ResInv = clampResInv(resInv)
	if rect := v.container.Bounds(); rect.Dx() > 0 && rect.Dy() > 0 {
		v.applyBounds(rect)
	}
}

// ToggleBoundingBoxes shows or hides the bounding box of every part.
func (v *Viewer) ToggleBoundingBoxes() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.state.DrawBbs = !v.state.DrawBbs
}

// CycleColorMode switches between lit, normal and wireframe coloring.
func (v *Viewer) CycleColorMode() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.state.ColorMode = (v.state.ColorMode + 1) % internal.ColorModes
}
