package http

import (
	"net"
	"strings"

	"github.com/indigo-web/statik/http/method"
	"github.com/indigo-web/statik/http/proto"
	"github.com/indigo-web/statik/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
)

// Request represents a single parsed HTTP request. It's populated by the parser and
// must be treated as read-only afterwards.
type Request struct {
	// Method is always a supported method. Requests with unknown methods are never produced.
	Method method.Method
	// Target is the raw request-target as it came in the request line, the query included.
	Target string
	// Proto is the negotiated protocol version.
	Proto proto.Proto
	// Headers holds header pairs with keys normalized to lower case. Use SetHeader and
	// Header to keep the normalization consistent.
	Headers Headers
	// Body is empty if the request carried no body.
	Body string
	// Remote is the address of the peer, nil if unknown.
	Remote net.Addr
}

func NewRequest() *Request {
	return &Request{
		Headers: kv.NewPrealloc(preallocReqHeaders),
	}
}

// preallocReqHeaders is the number of header seats reserved in advance.
const preallocReqHeaders = 10

// SetHeader stores the header under its normalized name. Later writes for the same name
// overwrite earlier ones, whatever their case is.
func (r *Request) SetHeader(name, value string) {
	r.Headers.Set(NormalizeHeader(name), value)
}

// Header returns the value of the header and whether it is presented.
func (r *Request) Header(name string) (string, bool) {
	return r.Headers.Get(NormalizeHeader(name))
}

// NormalizeHeader trims surrounding whitespace and lower-cases the header name.
func NormalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
