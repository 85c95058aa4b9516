package dummy

import (
	"errors"
	"io"
	"net"
	"strings"
	"time"
)

// Conn is a net.Conn reading from a fixed input and recording everything written.
// Closing it more than once returns an error, same as real sockets do.
type Conn struct {
	input   io.Reader
	Written []byte
	Closes  int
}

func NewConn(input string) *Conn {
	return &Conn{input: strings.NewReader(input)}
}

// NewNopConn returns a connection with no input.
func NewNopConn() *Conn {
	return NewConn("")
}

func (c *Conn) Read(b []byte) (n int, err error) {
	return c.input.Read(b)
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.Written = append(c.Written, b...)
	return len(b), nil
}

func (c *Conn) Close() error {
	if c.Closes++; c.Closes > 1 {
		return errors.New("use of closed network connection")
	}

	return nil
}

func (*Conn) LocalAddr() net.Addr {
	return nil
}

func (*Conn) RemoteAddr() net.Addr {
	return nil
}

func (*Conn) SetDeadline(time.Time) error {
	return nil
}

func (*Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (*Conn) SetWriteDeadline(time.Time) error {
	return nil
}
