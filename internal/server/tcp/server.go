package tcp

import (
	"errors"
	"net"
	"sync/atomic"

	"github.com/indigo-web/statik/http/status"
	"github.com/indigo-web/statik/internal/server/pool"
	"github.com/rs/zerolog"
)

// OnConn handles a single accepted connection for its whole lifetime.
type OnConn func(net.Conn)

// Server accepts connections and hands each of them to the worker pool. It never
// spawns goroutines for connections by itself.
type Server struct {
	sock     net.Listener
	workers  *pool.Pool
	onConn   OnConn
	log      zerolog.Logger
	shutdown atomic.Bool
}

func NewServer(sock net.Listener, workers *pool.Pool, onConn OnConn, log zerolog.Logger) *Server {
	return &Server{
		sock:    sock,
		workers: workers,
		onConn:  onConn,
		log:     log,
	}
}

// Start runs the accept loop. It returns only after the listener is closed or broken,
// and not before all the already accepted connections are served. After Stop, the
// returned error is status.ErrShutdown.
func (s *Server) Start() error {
	for {
		conn, err := s.sock.Accept()
		if err != nil {
			s.workers.Wait()

			if s.shutdown.Load() || errors.Is(err, net.ErrClosed) {
				return status.ErrShutdown
			}

			return err
		}

		s.log.Debug().Stringer("remote", conn.RemoteAddr()).Msg("connection accepted")

		// blocks as long as the pool is saturated
		s.workers.Submit(func() {
			s.onConn(conn)
		})
	}
}

// Addr returns the address the listener is bound to.
func (s *Server) Addr() net.Addr {
	return s.sock.Addr()
}

// Stop closes the listener. Connections that are already accepted are served till the end.
func (s *Server) Stop() error {
	s.shutdown.Store(true)

	return s.sock.Close()
}
