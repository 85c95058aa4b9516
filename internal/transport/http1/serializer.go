package http1

import (
	"strconv"

	"github.com/indigo-web/statik/http"
	"github.com/indigo-web/statik/internal/transport"
	"github.com/indigo-web/utils/uf"
)

var _ transport.Serializer = new(Serializer)

const (
	crlf    = "\r\n"
	colonsp = ": "
)

// Serializer renders responses exactly as they were built. In particular, no header is
// ever added implicitly, including Content-Length.
type Serializer struct {
	buff []byte
}

func NewSerializer(buff []byte) *Serializer {
	return &Serializer{
		buff: buff[:0],
	}
}

// Write renders the status line, the headers in their insertion order, an empty line and
// the body, if there's any. Null headers are skipped. The whole message is passed to the
// writer at once.
func (s *Serializer) Write(response *http.Response, writer transport.Writer) error {
	defer s.clear()

	s.renderStatusLine(response)

	for key, value := range response.Headers().Pairs() {
		s.buff = append(s.buff, key...)
		s.buff = append(s.buff, colonsp...)
		s.buff = append(s.buff, value...)
		s.crlf()
	}

	s.crlf()
	s.buff = append(s.buff, response.Body()...)

	return writer.Write(s.buff)
}

func (s *Serializer) renderStatusLine(response *http.Response) {
	s.buff = append(s.buff, response.Proto().String()...)
	s.sp()
	s.buff = strconv.AppendUint(s.buff, uint64(response.StatusCode()), 10)
	s.sp()
	s.buff = append(s.buff, uf.S2B(string(response.Reason()))...)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

func (s *Serializer) clear() {
	s.buff = s.buff[:0]
}
