package http

import (
	"strconv"

	"github.com/indigo-web/statik/http/proto"
	"github.com/indigo-web/statik/http/status"
	"github.com/indigo-web/statik/kv"
)

// why 7? There's no theory behind this number. Responses of this server rarely carry
// more than 3 headers anyway.
const preallocRespHeaders = 7

// Response is a builder of the outgoing message. It's bound to a protocol version at
// construction. Header names are matched case-insensitively, but rendered exactly as
// they were set first.
type Response struct {
	proto   proto.Proto
	code    status.Code
	status  status.Status
	headers *kv.Storage
	body    string
}

// NewResponse returns a new instance of the Response object bound to the protocol. The
// status code is left unset (zero) until assigned.
func NewResponse(protocol proto.Proto) *Response {
	return &Response{
		proto:   protocol,
		headers: kv.NewPrealloc(preallocRespHeaders),
	}
}

// Code sets a Response code. The reason phrase isn't implicitly changed, so it must be
// set via Status as well.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// Status sets a reason phrase.
func (r *Response) Status(status status.Status) *Response {
	r.status = status
	return r
}

// Header sets the header value, replacing the previous one if any.
func (r *Response) Header(key, value string) *Response {
	r.headers.Set(key, value)
	return r
}

// NullHeader stores the header without a value. Such headers are skipped when
// the response is rendered.
func (r *Response) NullHeader(key string) *Response {
	r.headers.SetNull(key)
	return r
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	r.body = body
	return r
}

// Error fills the response with the code, its reason phrase from the catalog and a
// small HTML page naming both. Content-Type and Content-Length are set accordingly.
func (r *Response) Error(code status.Code) *Response {
	text, _ := status.Text(code)

	return r.Page(code, text)
}

// Page does the same as Error, but with an explicitly passed reason phrase. Used for codes
// not presented in the catalog.
func (r *Response) Page(code status.Code, text status.Status) *Response {
	body := ErrorPage(code, text)

	return r.
		Code(code).
		Status(text).
		Header("Content-Type", "text/html").
		Header("Content-Length", strconv.Itoa(len(body))).
		String(body)
}

// ErrorPage renders the HTML body of error responses.
func ErrorPage(code status.Code, text status.Status) string {
	return "<html><body><h1>" + strconv.Itoa(int(code)) + " " + string(text) + "</h1></body></html>"
}

func (r *Response) Proto() proto.Proto {
	return r.proto
}

func (r *Response) StatusCode() status.Code {
	return r.code
}

func (r *Response) Reason() status.Status {
	return r.status
}

// Headers exposes the underlying headers storage.
func (r *Response) Headers() *kv.Storage {
	return r.headers
}

func (r *Response) Body() string {
	return r.body
}
