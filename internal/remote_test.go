package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSetter struct {
	models []ModelType
}

func (r *recordingSetter) SetModelType(model ModelType) error {
	r.models = append(r.models, model)
	return nil
}

func TestViewerServiceDropsOldest(t *testing.T) {
	_, svc := NewViewerService(&recordingSetter{}, 2)
	svc.Push(Selection{PartName: "a", Timestamp: 1})
	svc.Push(Selection{PartName: "b", Timestamp: 2})
	svc.Push(Selection{PartName: "c", Timestamp: 3})

	var sel Selection
	require.NoError(t, svc.NextSelection(time.Second, &sel))
	assert.Equal(t, "b", sel.PartName)
	require.NoError(t, svc.NextSelection(time.Second, &sel))
	assert.Equal(t, "c", sel.PartName)
	assert.ErrorIs(t, svc.NextSelection(10*time.Millisecond, &sel), ErrNoSelection)
}

func TestViewerServiceClose(t *testing.T) {
	setter := &recordingSetter{}
	_, svc := NewViewerService(setter, 1)
	require.NoError(t, svc.SetModelType(ModelGear, nil))
	assert.Equal(t, []ModelType{ModelGear}, setter.models)

	done := make(chan error, 1)
	go func() {
		var sel Selection
		done <- svc.NextSelection(time.Minute, &sel)
	}()
	svc.Close()
	svc.Close()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrServiceClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("NextSelection did not return after Close")
	}
	assert.ErrorIs(t, svc.SetModelType(ModelPump, nil), ErrServiceClosed)
	assert.Len(t, setter.models, 1)
}
