package internal

import (
	"errors"
	"net/rpc"
	"sync"
	"time"
)

// ModelSetter is the inbound half of the viewer's boundary contract.
type ModelSetter interface {
	SetModelType(model ModelType) error
}

// ViewerService is an internal struct that has to be exported for RPC.
// It gives a remote collaborator (e.g. a chat panel in another process) access to the boundary contract of a
// viewer: setting the model type and receiving selections.
type ViewerService struct {
	viewer     ModelSetter
	selections chan Selection
	done       chan struct{}
	closeOnce  sync.Once
	dropLock   sync.Mutex
}

// ErrNoSelection is returned by NextSelection when no part was picked before the timeout.
var ErrNoSelection = errors.New("no selection before timeout")

// ErrServiceClosed is returned once the service was closed.
var ErrServiceClosed = errors.New("viewer service closed")

// NewViewerService see ViewerService. Up to queue selections are buffered, older ones are dropped first.
func NewViewerService(viewer ModelSetter, queue int) (*rpc.Server, *ViewerService) {
	if queue < 1 {
		queue = 1
	}
	srv := &ViewerService{
		viewer:     viewer,
		selections: make(chan Selection, queue),
		done:       make(chan struct{}),
	}
	server := rpc.NewServer()
	err := server.RegisterName("ViewerService", srv)
	if err != nil {
		panic(err) // Shouldn't happen (only on bad implementation)
	}
	return server, srv
}

// Push queues a selection for remote readers without blocking, dropping the oldest one when full.
func (s *ViewerService) Push(sel Selection) {
	s.dropLock.Lock()
	defer s.dropLock.Unlock()
	for {
		select {
		case s.selections <- sel:
			return
		default:
		}
		select {
		case <-s.selections:
		default:
		}
	}
}

// Close makes every pending and future NextSelection call fail with ErrServiceClosed.
func (s *ViewerService) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// SetModelType is an internal method that has to be exported for RPC.
func (s *ViewerService) SetModelType(model ModelType, _ *int) error {
	select {
	case <-s.done:
		return ErrServiceClosed
	default:
	}
	return s.viewer.SetModelType(model)
}

// NextSelection is an internal method that has to be exported for RPC.
// NextSelection waits up to timeout for the next selection.
func (s *ViewerService) NextSelection(timeout time.Duration, out *Selection) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case sel := <-s.selections:
		*out = sel
		return nil
	case <-timer.C:
		return ErrNoSelection
	case <-s.done:
		return ErrServiceClosed
	}
}
