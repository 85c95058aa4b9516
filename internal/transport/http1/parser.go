package http1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/indigo-web/statik/config"
	"github.com/indigo-web/statik/http"
	"github.com/indigo-web/statik/http/method"
	"github.com/indigo-web/statik/http/proto"
	"github.com/indigo-web/statik/http/status"
	"github.com/indigo-web/statik/internal/hexconv"
	"github.com/indigo-web/statik/internal/server/tcp"
	"github.com/indigo-web/statik/internal/transport"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

var _ transport.Parser = new(Parser)

// bodyPrealloc caps the capacity reserved in advance for a body of a known length, so
// a huge Content-Length doesn't result in a huge allocation before any data arrived.
const bodyPrealloc = 64 * 1024

// Parser is a blocking request parser bound to a single connection. It passes through
// the request line, the headers and the body exactly once, never looking back at consumed
// bytes. Everything read past the end of the request is returned to the client via Unread.
type Parser struct {
	client   tcp.Client
	lineBuff *buffer.Buffer
	maxLine  int
	pending  []byte
}

func NewParser(client tcp.Client, cfg *config.Config) *Parser {
	maxLine := cfg.URI.MaxRequestLine

	return &Parser{
		client:   client,
		lineBuff: buffer.New(min(maxLine, 1024), maxLine),
		maxLine:  maxLine,
	}
}

// Parse reads a single request. Malformed input results in status.HTTPError carrying
// the code the client must be answered with. Other errors are transport failures.
func (p *Parser) Parse() (*http.Request, error) {
	request := http.NewRequest()
	request.Remote = p.client.Remote()

	if err := p.parseRequestLine(request); err != nil {
		return nil, err
	}

	if err := p.parseHeaders(request); err != nil {
		return nil, err
	}

	if err := p.parseBody(request); err != nil {
		return nil, err
	}

	if len(p.pending) > 0 {
		p.client.Unread(p.pending)
		p.pending = nil
	}

	return request, nil
}

const (
	eMethod = iota
	eTarget
	eVersion
)

func (p *Parser) parseRequestLine(request *http.Request) error {
	p.lineBuff.Clear()
	stage, length := eMethod, 0

	for {
		if err := p.fill(); err != nil {
			return eofAs(err, status.ErrPrematureEnd)
		}

		data := p.pending
		delim := bytes.IndexAny(data, " \r")
		if delim == -1 {
			if length += len(data); length > p.maxLine || !p.lineBuff.Append(data) {
				return status.ErrURITooLong
			}

			p.pending = nil
			continue
		}

		// spaces are part of the request line, the terminator isn't
		length += delim
		if data[delim] == ' ' {
			length++
		}

		if length > p.maxLine || !p.lineBuff.Append(data[:delim]) {
			return status.ErrURITooLong
		}

		p.pending = data[delim+1:]
		field := p.lineBuff.Finish()

		if data[delim] == '\r' {
			if err := p.expectLF(); err != nil {
				return err
			}

			return finishRequestLine(request, stage, field)
		}

		switch stage {
		case eMethod:
			if len(field) == 0 {
				return status.ErrMissingMethod
			}

			request.Method = method.Parse(uf.B2S(field))
			if request.Method == method.Unknown {
				return status.ErrMethodNotImplemented
			}
		case eTarget:
			if len(field) == 0 {
				return status.ErrMissingURI
			}

			request.Target = string(field)
		default:
			return status.ErrExtraSpace
		}

		stage++
	}
}

func finishRequestLine(request *http.Request, stage int, version []byte) error {
	if stage != eVersion {
		if stage == eMethod && len(version) == 0 {
			return status.ErrMissingMethod
		}

		return status.ErrIncompleteRequestLine
	}

	if len(version) == 0 {
		return status.ErrIncompleteRequestLine
	}

	request.Proto = proto.Negotiate(uf.B2S(version))
	if request.Proto == proto.Unknown {
		return status.ErrHTTPVersionNotSupported
	}

	return nil
}

// parseHeaders reads header lines until an empty one. The end of the stream ends the
// header section as well.
func (p *Parser) parseHeaders(request *http.Request) error {
	var current string

	for {
		line, err := p.readLine()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		case len(line) == 0:
			return nil
		}

		if isWhitespace(line[0]) && len(current) > 0 {
			// folded line continues the value of the previously named header
			value, _ := request.Headers.Get(current)
			request.Headers.Set(current, value+" "+strings.TrimSpace(line))
			continue
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			return status.ErrInvalidHeaderLine
		}

		current = http.NormalizeHeader(name)
		request.Headers.Set(current, strings.TrimSpace(value))
	}
}

func (p *Parser) parseBody(request *http.Request) error {
	if value, found := request.Header("content-length"); found {
		length, err := strconv.Atoi(value)
		if err != nil || length < 0 {
			return status.ErrInvalidContentLength
		}

		body, err := p.readN(make([]byte, 0, min(length, bodyPrealloc)), length)
		if err != nil {
			return err
		}

		if len(body) != length {
			return status.NewError(
				status.BadRequest, fmt.Sprintf("incomplete body: expected %d, got %d", length, len(body)),
			)
		}

		request.Body = uf.B2S(body)
		return nil
	}

	if value, found := request.Header("transfer-encoding"); found && strcomp.EqualFold(value, "chunked") {
		body, err := p.parseChunked()
		if err != nil {
			return err
		}

		request.Body = uf.B2S(body)
	}

	return nil
}

func (p *Parser) parseChunked() ([]byte, error) {
	var body []byte

	for {
		line, err := p.readLine()
		switch {
		case err == io.EOF:
			return nil, status.ErrInvalidChunkSizeLine
		case err != nil:
			return nil, err
		}

		sizeLine := strings.TrimSpace(line)
		if len(sizeLine) == 0 {
			return nil, status.ErrInvalidChunkSizeLine
		}

		size, ok := hexconv.ParseUint(sizeLine, math.MaxInt32)
		if !ok {
			return nil, status.NewError(status.BadRequest, "invalid chunk size: "+sizeLine)
		}

		if size == 0 {
			return body, p.expectChunkEnding()
		}

		before := len(body)
		body, err = p.readN(body, int(size))
		if err != nil {
			return nil, err
		}

		if got := len(body) - before; got != int(size) {
			return nil, status.NewError(
				status.BadRequest, fmt.Sprintf("incomplete chunk: expected %d, got %d", size, got),
			)
		}

		if err = p.expectChunkEnding(); err != nil {
			return nil, err
		}
	}
}

// expectChunkEnding consumes the empty line following chunk data and the last chunk.
func (p *Parser) expectChunkEnding() error {
	line, err := p.readLine()
	switch {
	case err == io.EOF:
		return status.NewError(status.BadRequest, "invalid chunk ending: expected CRLF, got end of input")
	case err != nil:
		return err
	case len(line) > 0:
		return status.NewError(status.BadRequest, fmt.Sprintf("invalid chunk ending: expected CRLF, got %q", line))
	}

	return nil
}

// readLine returns a line without its CRLF. A line cut by the end of the stream is returned
// as it is, io.EOF is returned only if nothing was left to read at all.
func (p *Parser) readLine() (string, error) {
	var line []byte

	for {
		if err := p.fill(); err != nil {
			if err == io.EOF && len(line) > 0 {
				return string(line), nil
			}

			return "", err
		}

		data := p.pending
		cr := bytes.IndexByte(data, '\r')
		if cr == -1 {
			line = append(line, data...)
			p.pending = nil
			continue
		}

		line = append(line, data[:cr]...)
		p.pending = data[cr+1:]

		if err := p.expectLF(); err != nil {
			return "", err
		}

		return string(line), nil
	}
}

// readN appends exactly n bytes to buff. Less is appended only if the stream ended earlier.
func (p *Parser) readN(buff []byte, n int) ([]byte, error) {
	for n > 0 {
		if err := p.fill(); err != nil {
			if err == io.EOF {
				return buff, nil
			}

			return nil, err
		}

		piece := p.pending[:min(n, len(p.pending))]
		buff = append(buff, piece...)
		p.pending = p.pending[len(piece):]
		n -= len(piece)
	}

	return buff, nil
}

// expectLF consumes the byte following CR, which must be LF.
func (p *Parser) expectLF() error {
	if err := p.fill(); err != nil {
		return eofAs(err, status.ErrMalformedLineEnding)
	}

	if p.pending[0] != '\n' {
		return status.ErrMalformedLineEnding
	}

	p.pending = p.pending[1:]
	return nil
}

// fill guarantees there's at least one pending byte, unless an error is returned.
func (p *Parser) fill() error {
	for len(p.pending) == 0 {
		data, err := p.client.Read()
		if err != nil {
			return err
		}

		p.pending = data
	}

	return nil
}

func eofAs(err, replacement error) error {
	if errors.Is(err, io.EOF) {
		return replacement
	}

	return err
}

func isWhitespace(char byte) bool {
	return char == ' ' || char == '\t'
}
