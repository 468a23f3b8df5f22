package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClickTracker(t *testing.T) {
	var c clickTracker
	t0 := time.Unix(1000, 0)
	assert.False(t, c.press(t0, 10, 10))
	assert.True(t, c.press(t0.Add(200*time.Millisecond), 12, 9))
	assert.False(t, c.press(t0.Add(300*time.Millisecond), 12, 9), "a third click starts over")

	assert.False(t, c.press(t0.Add(time.Second), 50, 50))
	assert.False(t, c.press(t0.Add(time.Second+100*time.Millisecond), 60, 50), "moved too far")
	assert.False(t, c.press(t0.Add(2*time.Second), 60, 50), "too slow")
	assert.True(t, c.press(t0.Add(2*time.Second+doubleClickInterval), 60, 50))
}

func TestWindowContainer(t *testing.T) {
	c := &windowContainer{}
	assert.True(t, c.setSize(640, 480))
	assert.False(t, c.setSize(640, 480))
	assert.Equal(t, 640, c.Bounds().Dx())

	v := &Viewer{}
	assert.NoError(t, c.Attach(v))
	assert.Error(t, c.Attach(&Viewer{}))
	c.Detach(&Viewer{})
	assert.Error(t, c.Attach(&Viewer{}), "detaching another surface changes nothing")
	c.Detach(v)
	assert.NoError(t, c.Attach(v))
}
