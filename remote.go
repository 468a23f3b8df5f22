package ui

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/rpc"
	"time"

	"github.com/Yeicor/assembly-ui/internal"
	"github.com/cenkalti/backoff/v4"
)

// remoteQueue is how many selections are kept for remote readers that fall behind.
const remoteQueue = 16

// ErrRemoteClosed is returned by RemoteClient calls once the serving side was closed.
var ErrRemoteClosed = errors.New("remote viewer closed")

// RemoteServer exposes a viewer's boundary contract (set the model type, receive selections) over net/rpc, so that
// a collaborator living in another process (e.g. a chat panel) can drive it.
type RemoteServer struct {
	server      *rpc.Server
	service     *internal.ViewerService
	unsubscribe func()
}

// NewRemoteServer subscribes to v's selections right away: events picked before the first connection are queued.
func NewRemoteServer(v *Viewer) *RemoteServer {
	server, service := internal.NewViewerService(v, remoteQueue)
	return &RemoteServer{
		server:      server,
		service:     service,
		unsubscribe: v.Subscribe(service.Push),
	}
}

// Serve accepts connections on l until it is closed.
func (s *RemoteServer) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		log.Println("[Viewer] Remote client connected from", conn.RemoteAddr())
		go s.server.ServeConn(conn)
	}
}

// ServeConn serves a single connection, blocking until the client hangs up.
func (s *RemoteServer) ServeConn(conn io.ReadWriteCloser) {
	s.server.ServeConn(conn)
}

// Close stops forwarding selections and fails pending and future calls with ErrRemoteClosed.
func (s *RemoteServer) Close() error {
	s.unsubscribe()
	s.service.Close()
	return nil
}

// RemoteClient calls a RemoteServer.
type RemoteClient struct {
	cl *rpc.Client
}

// DialRemote connects to a RemoteServer, retrying with exponential backoff until ctx is done.
func DialRemote(ctx context.Context, network, address string) (*RemoteClient, error) {
	var cl *rpc.Client
	err := backoff.Retry(func() error {
		var err error
		cl, err = rpc.Dial(network, address)
		if err != nil {
			log.Println("[Viewer] Remote viewer not reachable yet:", err)
		}
		return err
	}, backoff.WithContext(backoff.NewExponentialBackOff(), ctx))
	if err != nil {
		return nil, err
	}
	return &RemoteClient{cl: cl}, nil
}

// NewRemoteClient wraps an established connection (see RemoteServer.ServeConn).
func NewRemoteClient(conn io.ReadWriteCloser) *RemoteClient {
	return &RemoteClient{cl: rpc.NewClient(conn)}
}

// SetModelType switches the remote viewer's assembly.
func (c *RemoteClient) SetModelType(model ModelType) error {
	var ignoreMe int
	return remoteError(c.cl.Call("ViewerService.SetModelType", model, &ignoreMe))
}

// NextSelection waits up to timeout for the next part picked on the remote viewer. It reports false on timeout.
func (c *RemoteClient) NextSelection(timeout time.Duration) (SelectionEvent, bool, error) {
	var out SelectionEvent
	err := remoteError(c.cl.Call("ViewerService.NextSelection", timeout, &out))
	if errors.Is(err, internal.ErrNoSelection) {
		return SelectionEvent{}, false, nil
	}
	if err != nil {
		return SelectionEvent{}, false, err
	}
	return out, true, nil
}

// Close hangs up.
func (c *RemoteClient) Close() error {
	return c.cl.Close()
}

// remoteError maps the string errors of net/rpc back to the package's sentinel errors.
func remoteError(err error) error {
	var serverErr rpc.ServerError
	if !errors.As(err, &serverErr) {
		return err
	}
	switch string(serverErr) {
	case internal.ErrNoSelection.Error():
		return internal.ErrNoSelection
	case internal.ErrServiceClosed.Error():
		return ErrRemoteClosed
	}
	return err
}
