package status

type (
	Code   uint16
	Status string
)

// HTTP status codes produced by the server.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	OK        Code = 200 // RFC 9110, 15.3.1
	NoContent Code = 204 // RFC 9110, 15.3.5

	BadRequest        Code = 400 // RFC 9110, 15.5.1
	NotFound          Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed  Code = 405 // RFC 9110, 15.5.6
	RequestURITooLong Code = 414 // RFC 9110, 15.5.15

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// catalog holds the reason phrases of codes a request can fail with. Codes of ordinary
// outcomes (200, 204, 404) are paired with their phrases by whoever sets them.
var catalog = map[Code]Status{
	BadRequest:              "Bad Request",
	MethodNotAllowed:        "Method Not Allowed",
	RequestURITooLong:       "URI Too Long",
	InternalServerError:     "Internal Server Error",
	NotImplemented:          "Not Implemented",
	HTTPVersionNotSupported: "HTTP Version Not Supported",
}

// KnownCodes lists every code present in the catalog, in ascending order.
var KnownCodes = []Code{
	BadRequest, MethodNotAllowed, RequestURITooLong,
	InternalServerError, NotImplemented, HTTPVersionNotSupported,
}

// Text returns the reason phrase for the code. The bool is false if the code isn't
// registered in the catalog, in which case the phrase is empty.
func Text(code Code) (Status, bool) {
	text, found := catalog[code]
	return text, found
}
