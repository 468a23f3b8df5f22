package ui

import (
	"image/color"
	"time"

	"github.com/Yeicor/assembly-ui/internal"
)

// flashDuration is how long a picked part stays highlighted.
const flashDuration = 150 * time.Millisecond

var flashColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// flash is the pending highlight of one part. Only the timer of the latest generation restores the color, so
// repeated picks extend the highlight and always restore the color the part had before the first of them.
type flash struct {
	gen     uint64
	restore color.RGBA
	timer   *time.Timer
}

// flashPart highlights p and schedules the restore. The caller holds mu.
func (v *Viewer) flashPart(p *internal.Part) {
	f, pending := v.flashes[p]
	if pending {
		f.timer.Stop()
	} else {
		f = &flash{restore: p.Color()}
		v.flashes[p] = f
	}
	f.gen++
	gen := f.gen
	if !p.SetColor(flashColor) {
		delete(v.flashes, p)
		return
	}
	f.timer = time.AfterFunc(flashDuration, func() {
		v.endFlash(p, gen)
	})
}

// endFlash restores the color of p, unless the flash was superseded, cancelled or the part is gone.
func (v *Viewer) endFlash(p *internal.Part, gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	f, ok := v.flashes[p]
	if !ok || f.gen != gen {
		return
	}
	delete(v.flashes, p)
	if v.closed {
		return
	}
	p.SetColor(f.restore) // No-op on released parts
}

// cancelFlashes stops the pending flashes of the given parts (all of them if parts is nil). The caller holds mu.
func (v *Viewer) cancelFlashes(parts []*internal.Part) {
	if parts == nil {
		for p, f := range v.flashes {
			f.timer.Stop()
			delete(v.flashes, p)
		}
		return
	}
	for _, p := range parts {
		if f, ok := v.flashes[p]; ok {
			f.timer.Stop()
			delete(v.flashes, p)
		}
	}
}
