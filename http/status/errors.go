package status

import "errors"

// HTTPError is a failure, which is meant to be reported to the client with the
// carried status code.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	if len(h.Message) == 0 {
		text, _ := Text(h.Code)
		return string(text)
	}

	return h.Message
}

// Is reports whether target is an HTTPError with the same code. Messages are free-form
// diagnostics and aren't compared.
func (h HTTPError) Is(target error) bool {
	var other HTTPError
	if !errors.As(target, &other) {
		return false
	}

	return other.Code == h.Code
}

// ErrShutdown is returned by the listener after it was stopped.
var ErrShutdown = errors.New("graceful shutdown")

var (
	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrMalformedLineEnding     = NewError(BadRequest, "malformed line ending")
	ErrMissingMethod           = NewError(BadRequest, "missing method")
	ErrMissingURI              = NewError(BadRequest, "missing URI")
	ErrExtraSpace              = NewError(BadRequest, "extra space in request line")
	ErrPrematureEnd            = NewError(BadRequest, "premature end of input")
	ErrIncompleteRequestLine   = NewError(BadRequest, "incomplete request line")
	ErrInvalidHeaderLine       = NewError(BadRequest, "invalid header line")
	ErrInvalidContentLength    = NewError(BadRequest, "invalid content length")
	ErrInvalidChunkSizeLine    = NewError(BadRequest, "invalid chunk size line")
	ErrInvalidChunkEnding      = NewError(BadRequest, "invalid chunk ending")
	ErrURIDecoding             = NewError(BadRequest, "invalid urlencoded sequence")
	ErrURITooLong              = NewError(RequestURITooLong, "target too long")
	ErrMethodNotImplemented    = NewError(NotImplemented, "not implemented")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "version not supported")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
)
