package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubConnScript(t *testing.T) {
	conn := &StubConn{
		Lines: []string{"HTTP/1.1 200 OK", ""},
		Reads: []StubRead{
			{Data: []byte("hel")},
			{Err: ErrTimeout},
			{Data: []byte("lo")},
		},
	}

	line, err := conn.ReceiveLine(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK", string(line))

	line, err = conn.ReceiveLine(time.Second)
	require.NoError(t, err)
	assert.Empty(t, line)

	_, err = conn.ReceiveLine(time.Second)
	assert.ErrorIs(t, err, ErrClosed)

	data, err := conn.ReceiveAvailable(0)
	require.NoError(t, err)
	assert.Equal(t, "hel", string(data))

	_, err = conn.ReceiveAvailable(0)
	assert.ErrorIs(t, err, ErrTimeout)

	data, err = conn.ReceiveAvailable(0)
	require.NoError(t, err)
	assert.Equal(t, "lo", string(data))

	_, err = conn.ReceiveAvailable(0)
	assert.ErrorIs(t, err, ErrClosed)

	require.NoError(t, conn.Send([]byte("ping")))
	assert.Equal(t, "ping", conn.Sent.String())

	require.NoError(t, conn.Close())
	assert.Equal(t, 1, conn.Closed)
}

func TestStubDialer(t *testing.T) {
	want := &StubConn{}
	d := &StubDialer{Conn: want}

	conn, err := d.Dial("example.com", 8080)
	require.NoError(t, err)
	assert.Same(t, want, conn)
	assert.Equal(t, "example.com", d.Host)
	assert.Equal(t, uint16(8080), d.Port)
}
