package internal

import (
	"errors"
	"fmt"
	"strings"
)

// ModelType selects which assembly variant is displayed.
type ModelType int

const (
	ModelPump ModelType = iota // The pump module (default)
	ModelGear                  // The gear component
)

// ErrUnknownModel is returned when a model type tag is not one of the supported variants.
var ErrUnknownModel = errors.New("unknown model type")

func (m ModelType) String() string {
	switch m {
	case ModelPump:
		return "pump"
	case ModelGear:
		return "gear"
	}
	return fmt.Sprintf("ModelType(%d)", int(m))
}

// ParseModelType maps "pump" or "gear" (ignoring case and surrounding spaces) to a ModelType.
func ParseModelType(s string) (ModelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pump":
		return ModelPump, nil
	case "gear":
		return ModelGear, nil
	}
	return ModelPump, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// MarshalText implements encoding.TextMarshaler (used by config files).
func (m ModelType) MarshalText() ([]byte, error) {
	if m != ModelPump && m != ModelGear {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler (used by config files).
func (m *ModelType) UnmarshalText(text []byte) error {
	parsed, err := ParseModelType(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ViewState holds the user-tweakable view settings. It has to be exported for RPC and snapshots.
type ViewState struct {
	Model     ModelType // The displayed variant
	ResInv    int       // Number of screen pixels for each rendered pixel (1 is full resolution)
	DrawBbs   bool      // Whether to draw the bounding box of every part
	ColorMode int       // 0: lit, 1: normals, 2: normals in wireframe
}

// ColorModes is the number of supported values for ViewState.ColorMode.
const ColorModes = 3

// Selection is the record emitted once per successful pick. It has to be exported for RPC.
type Selection struct {
	PartName  string // The assembly-scoped name of the picked part
	Timestamp int64  // Milliseconds since the Unix epoch
}
