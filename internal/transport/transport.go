package transport

import (
	"github.com/indigo-web/statik/http"
)

// Parser decodes exactly one request from the connection it is bound to. A malformed
// request results in status.HTTPError, any other error comes from the connection itself.
type Parser interface {
	Parse() (*http.Request, error)
}

type Writer interface {
	Write([]byte) error
}

// Serializer converts an HTTP response builder into bytes and writes it
type Serializer interface {
	Write(response *http.Response, writer Writer) error
}
