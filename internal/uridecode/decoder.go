package uridecode

import (
	"bytes"

	"github.com/indigo-web/statik/http/status"
	"github.com/indigo-web/statik/internal/hexconv"
)

// Decode normalizes the URI by translating escaped characters into their
// true form. The result is appended to buff, unless there was nothing to decode:
// then src is returned as is.
func Decode(src, buff []byte) ([]byte, error) {
	i := bytes.IndexByte(src, '%')
	if i == -1 {
		return src, nil
	}

	for ; i != -1; i = bytes.IndexByte(src, '%') {
		if i > len(src)-3 {
			return nil, status.ErrURIDecoding
		}

		high, low := hexconv.Halfbyte[src[i+1]], hexconv.Halfbyte[src[i+2]]
		if high == hexconv.Invalid || low == hexconv.Invalid {
			return nil, status.ErrURIDecoding
		}

		buff = append(buff, src[:i]...)
		buff = append(buff, high<<4|low)
		src = src[i+3:]
	}

	return append(buff, src...), nil
}
