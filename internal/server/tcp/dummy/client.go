package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/statik/internal/server/tcp"
	"github.com/indigo-web/statik/internal/unreader"
)

var _ tcp.Client = new(Client)

// Client is an in-memory client. Every read returns the next piece it was initialised
// with and io.EOF after they are exhausted. Everything written is accumulated.
type Client struct {
	unreader *unreader.Unreader
	data     [][]byte
	pointer  int
	// Written holds everything passed to Write.
	Written []byte
	// Closes counts Close calls.
	Closes int
	// WriteErr, if set, is returned by every Write.
	WriteErr error
	remote   net.Addr
}

func NewClient(data ...[]byte) *Client {
	return &Client{
		unreader: new(unreader.Unreader),
		data:     data,
	}
}

// NewStringClient is the same as NewClient, but accepts strings.
func NewStringClient(data ...string) *Client {
	pieces := make([][]byte, len(data))
	for i, piece := range data {
		pieces[i] = []byte(piece)
	}

	return NewClient(pieces...)
}

// NewNopClient returns a client with nothing to read.
func NewNopClient() *Client {
	return NewClient()
}

// WithRemote sets the address returned by Remote.
func (c *Client) WithRemote(addr net.Addr) *Client {
	c.remote = addr
	return c
}

func (c *Client) Read() ([]byte, error) {
	return c.unreader.PendingOr(func() ([]byte, error) {
		if c.pointer >= len(c.data) {
			return nil, io.EOF
		}

		piece := c.data[c.pointer]
		c.pointer++

		return piece, nil
	})
}

func (c *Client) Unread(takeback []byte) {
	c.unreader.Unread(takeback)
}

func (c *Client) Write(b []byte) error {
	if c.WriteErr != nil {
		return c.WriteErr
	}

	c.Written = append(c.Written, b...)
	return nil
}

func (c *Client) Remote() net.Addr {
	return c.remote
}

func (c *Client) Close() error {
	c.Closes++
	return nil
}
