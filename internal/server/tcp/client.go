package tcp

import (
	"net"
	"sync"

	"github.com/indigo-web/statik/internal/unreader"
)

// Client is the connection as seen by the HTTP layer. Read returns the next piece of
// incoming data, which is valid only until the next call. Bytes that weren't processed
// may be returned back via Unread, so they're returned by the following Read.
type Client interface {
	Read() ([]byte, error)
	Unread([]byte)
	Write([]byte) error
	Remote() net.Addr
	Close() error
}

type client struct {
	unreader  *unreader.Unreader
	buff      []byte
	conn      net.Conn
	closeOnce sync.Once
}

// NewClient wraps the connection. No read deadline is ever set: reads block until data
// arrives or the peer goes away.
func NewClient(conn net.Conn, buff []byte) Client {
	return &client{
		unreader: new(unreader.Unreader),
		buff:     buff,
		conn:     conn,
	}
}

func (c *client) Read() ([]byte, error) {
	return c.unreader.PendingOr(func() ([]byte, error) {
		n, err := c.conn.Read(c.buff)
		if n > 0 {
			// the data is consumed first, the error (if any) is going to be
			// reported by the next call
			return c.buff[:n], nil
		}

		return nil, err
	})
}

func (c *client) Unread(b []byte) {
	c.unreader.Unread(b)
}

func (c *client) Write(b []byte) error {
	_, err := c.conn.Write(b)

	return err
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the underlying connection exactly once. Following calls are no-op.
func (c *client) Close() (err error) {
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})

	return err
}
