package statik

import (
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/indigo-web/statik/config"
	"github.com/indigo-web/statik/internal/server/http"
	"github.com/indigo-web/statik/internal/server/pool"
	"github.com/indigo-web/statik/internal/server/tcp"
	"github.com/indigo-web/statik/router"
	"github.com/indigo-web/statik/router/static"
	"github.com/indigo-web/statik/webroot"
	"github.com/rs/zerolog"
)

// App serves files from the configured webroot.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	router  router.Router
	onStart func()

	mu     sync.Mutex
	server *tcp.Server
}

// New returns a new App instance. If cfg is nil, the default one is used.
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	return &App{
		cfg: cfg,
		log: zerolog.Nop(),
	}
}

// Logger replaces the default logger, which discards everything.
func (a *App) Logger(log zerolog.Logger) *App {
	a.log = log
	return a
}

// Router replaces the default router, which serves files from the webroot.
func (a *App) Router(r router.Router) *App {
	a.router = r
	return a
}

// NotifyOnStart calls the callback at the moment the listener is bound, right before
// accepting the first connection.
func (a *App) NotifyOnStart(cb func()) *App {
	a.onStart = cb
	return a
}

// Serve binds the listener and serves connections until Stop is called. The failure to
// bind is returned immediately. After Stop, status.ErrShutdown is returned once all the
// accepted connections are served.
func (a *App) Serve() error {
	r := a.router
	if r == nil {
		r = static.New(webroot.New(a.cfg.Webroot), a.log)
	}

	sock, err := net.Listen("tcp", ":"+strconv.Itoa(a.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", a.cfg.Port, err)
	}

	server := tcp.NewServer(sock, pool.New(a.cfg.Workers), a.newTCPCallback(r), a.log)
	a.mu.Lock()
	a.server = server
	a.mu.Unlock()

	a.log.Info().
		Stringer("addr", sock.Addr()).
		Str("webroot", a.cfg.Webroot).
		Int("workers", a.cfg.Workers).
		Msg("listening")

	callIfNotNil(a.onStart)
	err = server.Start()
	a.log.Info().Err(err).Msg("stopped")

	return err
}

// Addr returns the bound address, or nil if the App isn't serving yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return nil
	}

	return a.server.Addr()
}

// Stop closes the listener. The call isn't blocking: Serve returns after the connections
// being served are done.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return nil
	}

	return a.server.Stop()
}

func (a *App) newTCPCallback(r router.Router) tcp.OnConn {
	httpServer := http.NewServer(r, a.cfg, a.log)

	return func(conn net.Conn) {
		client := tcp.NewClient(conn, make([]byte, a.cfg.NET.ReadBufferSize))
		httpServer.Run(client)
	}
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
