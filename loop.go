package ui

import (
	"sync"
	"sync/atomic"
	"time"
)

// liveRenderLoops counts running loop goroutines across every viewer (for leak checks).
var liveRenderLoops atomic.Int64

// renderLoop calls frame once per tick of its frame source until cancelled.
//
// The cancelled flag is written by the owner while holding the same lock frame takes, so a tick that was already
// received when Cancel runs still observes the flag before drawing.
type renderLoop struct {
	frames    <-chan time.Time
	frame     func()
	stop      chan struct{}
	done      chan struct{}
	cancelled atomic.Bool
	once      sync.Once
	ticker    *time.Ticker // Only set when the loop owns its frame source
}

// startRenderLoop runs frame on every value from frames, or at the given interval if frames is nil.
func startRenderLoop(frames <-chan time.Time, interval time.Duration, frame func()) *renderLoop {
	l := &renderLoop{
		frames: frames,
		frame:  frame,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if l.frames == nil {
		l.ticker = time.NewTicker(interval)
		l.frames = l.ticker.C
	}
	liveRenderLoops.Add(1)
	go l.run()
	return l
}

func (l *renderLoop) run() {
	defer func() {
		liveRenderLoops.Add(-1)
		close(l.done)
	}()
	for {
		select {
		case <-l.stop:
			return
		case _, ok := <-l.frames:
			if !ok {
				return
			}
			if l.cancelled.Load() {
				return
			}
			l.frame()
		}
	}
}

// markCancelled sets the flag observed by frames. The caller holds the lock frames take.
func (l *renderLoop) markCancelled() {
	l.cancelled.Store(true)
}

// Cancelled reports whether the loop was cancelled.
func (l *renderLoop) Cancelled() bool {
	return l.cancelled.Load()
}

// Cancel stops the loop and waits for its goroutine to exit. It is idempotent and must not be called from frame.
func (l *renderLoop) Cancel() {
	l.once.Do(func() {
		l.cancelled.Store(true)
		close(l.stop)
		if l.ticker != nil {
			l.ticker.Stop()
		}
	})
	<-l.done
}
