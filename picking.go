package ui

import (
	"math"

	"github.com/Yeicor/assembly-ui/internal"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DoubleClick picks the part under the pointer at client coordinates (x, y), relative to the same origin as the
// container's Bounds. A hit flashes the part and emits a SelectionEvent, which is also returned.
// A miss (or a closed viewer) changes nothing and reports false.
func (v *Viewer) DoubleClick(x, y float64) (SelectionEvent, bool) {
	v.mu.Lock()
	if v.closed || v.scene == nil || v.scene.active == nil {
		v.mu.Unlock()
		return SelectionEvent{}, false
	}
	rect := v.container.Bounds()
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		v.mu.Unlock()
		return SelectionEvent{}, false
	}
	from, dir := v.camera.Ray(pointerToNDC(x, y, rect))
	part := pickNearest(v.scene.active, from, dir, v.camera.Far)
	if part == nil {
		v.mu.Unlock()
		return SelectionEvent{}, false
	}
	v.flashPart(part)
	ev := SelectionEvent{PartName: part.Name, Timestamp: v.now().UnixMilli()}
	v.mu.Unlock()

	v.emit(ev)
	return ev, true
}

// pickNearest returns the part hit first by the ray, or nil. Ties keep the earliest part in build order.
func pickNearest(a *internal.Assembly, from, dir v3.Vec, maxDist float64) *internal.Part {
	var best *internal.Part
	bestDist := math.Inf(1)
	for _, p := range a.Parts {
		if p.Released() {
			continue
		}
		if t, ok := p.Intersect(from, dir, maxDist); ok && t < bestDist {
			best, bestDist = p, t
		}
	}
	return best
}
