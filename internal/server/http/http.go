package http

import (
	"errors"
	"fmt"

	"github.com/indigo-web/statik/config"
	"github.com/indigo-web/statik/http"
	"github.com/indigo-web/statik/http/proto"
	"github.com/indigo-web/statik/http/status"
	"github.com/indigo-web/statik/internal/server/tcp"
	"github.com/indigo-web/statik/internal/transport/http1"
	"github.com/indigo-web/statik/router"
	"github.com/rs/zerolog"
)

// fallbackProto is used for responses to requests which failed before their version
// was negotiated.
const fallbackProto = proto.HTTP11

// responseBuffSize is the initial capacity of the serializer's buffer. It grows if needed.
const responseBuffSize = 1024

// Server handles connections one request each. It's safe to use from multiple goroutines.
type Server struct {
	router router.Router
	cfg    *config.Config
	log    zerolog.Logger
}

func NewServer(r router.Router, cfg *config.Config, log zerolog.Logger) *Server {
	return &Server{
		router: r,
		cfg:    cfg,
		log:    log,
	}
}

// Run parses a single request, dispatches it and writes the response back. The client
// is always closed in the end, whatever happened. A request that failed to be parsed
// is answered with an error page, the router isn't involved then.
func (s *Server) Run(client tcp.Client) {
	var written bool

	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug().Err(err).Stringer("remote", client.Remote()).Msg("failed to close connection")
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("panic", fmt.Sprint(r)).
				Stringer("remote", client.Remote()).
				Msg("recovered from panic while handling request")

			if !written {
				s.write(client, http.NewResponse(fallbackProto).Error(status.InternalServerError))
			}
		}
	}()

	request, err := http1.NewParser(client, s.cfg).Parse()
	if err != nil {
		s.onParseError(client, err)
		return
	}

	response := http.NewResponse(request.Proto)
	s.router.OnRequest(request, response)
	written = true

	if err = s.write(client, response); err != nil {
		return
	}

	s.log.Info().
		Stringer("remote", client.Remote()).
		Stringer("method", request.Method).
		Str("target", request.Target).
		Uint16("status", uint16(response.StatusCode())).
		Msg("served")
}

func (s *Server) onParseError(client tcp.Client, err error) {
	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		s.log.Error().Err(err).Stringer("remote", client.Remote()).Msg("failed to read request")
		return
	}

	s.log.Warn().
		Err(err).
		Stringer("remote", client.Remote()).
		Uint16("status", uint16(httpErr.Code)).
		Msg("bad request")

	_ = s.write(client, http.NewResponse(fallbackProto).Error(httpErr.Code))
}

func (s *Server) write(client tcp.Client, response *http.Response) error {
	serializer := http1.NewSerializer(make([]byte, 0, responseBuffSize))
	if err := serializer.Write(response, client); err != nil {
		s.log.Error().Err(err).Stringer("remote", client.Remote()).Msg("failed to write response")
		return err
	}

	return nil
}
