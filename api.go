// Package ui is an interactive viewer for procedurally built mechanical assemblies.
//
// A Viewer renders the active assembly inside a host Container, lets the user orbit and zoom the camera,
// and reports which part was double-clicked as a SelectionEvent.
package ui

import (
	"errors"
	"image"

	"github.com/Yeicor/assembly-ui/internal"
)

// ModelType selects the displayed assembly variant.
type ModelType = internal.ModelType

const (
	ModelPump = internal.ModelPump
	ModelGear = internal.ModelGear
)

// ParseModelType maps "pump" or "gear" to a ModelType.
func ParseModelType(s string) (ModelType, error) {
	return internal.ParseModelType(s)
}

// SelectionEvent names the picked part and when it was picked (milliseconds since the Unix epoch).
// Ownership passes to the receiver: the viewer keeps no copy.
type SelectionEvent = internal.Selection

// ViewState is a snapshot of the user-tweakable view settings.
type ViewState = internal.ViewState

var (
	// ErrContainerUnusable is returned when the host container is missing or has no area.
	ErrContainerUnusable = errors.New("container is unusable")
	// ErrUnknownModel is returned for model types other than pump and gear.
	ErrUnknownModel = internal.ErrUnknownModel
)

// Container is the on-screen element granted to a viewer while mounted.
type Container interface {
	// Bounds is the current on-screen rectangle of the element, in layout pixels (not backing-buffer pixels).
	Bounds() image.Rectangle
	// Attach presents the viewer's drawing surface inside the element.
	Attach(surface Surface) error
	// Detach removes the surface again. It is called once, during teardown.
	Detach(surface Surface)
}

// Surface is the drawing surface a viewer renders into.
type Surface interface {
	// LastFrame returns a copy of the latest completed frame (nil before the first one).
	LastFrame() *image.NRGBA
	// ResInv is the number of layout pixels per rendered pixel.
	ResInv() int
}
