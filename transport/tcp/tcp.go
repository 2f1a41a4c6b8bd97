// Package tcp adapts the net package's TCP sockets to [transport.Conn].
package tcp

import (
	"bytes"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"tickhttp/transport"

	"github.com/pkg/errors"
)

type Dialer struct {
	// ConnectTimeout bounds Dial. Zero means no bound.
	ConnectTimeout time.Duration
}

var _ transport.Dialer = Dialer{}

func (d Dialer) Dial(host string, port uint16) (transport.Conn, error) {
	addr := net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))

	c, err := net.DialTimeout("tcp", addr, d.ConnectTimeout)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", addr)
	}

	return &conn{c: c, buf: bytes.NewBuffer(nil)}, nil
}

// conn keeps bytes read past a line terminator in buf so they are not
// lost between ReceiveLine and ReceiveAvailable calls.
type conn struct {
	c   net.Conn
	buf *bytes.Buffer
}

var _ transport.Conn = (*conn)(nil)

func (c *conn) Send(p []byte) error {
	if _, err := c.c.Write(p); err != nil {
		return errors.Wrap(mapErr(err), "sending")
	}
	return nil
}

func (c *conn) ReceiveLine(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)

	for {
		if b := c.buf.Bytes(); len(b) > 0 {
			if idx := bytes.IndexByte(b, '\n'); idx >= 0 {
				line := make([]byte, idx+1)
				c.buf.Read(line) // buffer holds at least idx+1 bytes
				return trimLineTerminator(line), nil
			}
		}

		c.c.SetReadDeadline(deadline)

		tmp := make([]byte, 4096)
		n, err := c.c.Read(tmp)
		c.buf.Write(tmp[:n])
		if err != nil {
			return nil, mapErr(err)
		}
	}
}

func (c *conn) ReceiveAvailable(timeout time.Duration) ([]byte, error) {
	if c.buf.Len() > 0 {
		b := make([]byte, c.buf.Len())
		c.buf.Read(b)
		return b, nil
	}

	c.c.SetReadDeadline(time.Now().Add(timeout))

	tmp := make([]byte, 32*1024)
	n, err := c.c.Read(tmp)
	if n > 0 {
		// Deliver the data now; a pending EOF resurfaces on the
		// next call.
		return tmp[:n], nil
	}
	if err != nil {
		return nil, mapErr(err)
	}

	return nil, transport.ErrTimeout
}

func (c *conn) Close() error { return c.c.Close() }

func trimLineTerminator(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded):
		return transport.ErrTimeout
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		return transport.ErrClosed
	}
	return err
}
