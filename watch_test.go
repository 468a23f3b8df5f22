package ui

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	require.NoError(t, os.WriteFile(path, []byte("gear\n"), 0o644))

	c := &fakeContainer{rect: image.Rect(0, 0, 200, 200)}
	v, _ := newTestViewer(t, c, OptMWatchModelFile(path))
	require.Equal(t, ModelGear, v.State().Model, "the file is applied when mounting")

	require.NoError(t, os.WriteFile(path, []byte("pump\n"), 0o644))
	require.Eventually(t, func() bool { return v.State().Model == ModelPump }, 10*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("turbine\n"), 0o644)) // Ignored
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, ModelPump, v.State().Model)
}
