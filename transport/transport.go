// Package transport defines the raw stream-socket boundary the HTTP
// engine is built on. Implementations never block past the timeout
// handed to a receive call.
package transport

import (
	"errors"
	"time"
)

var (
	// ErrTimeout marks an empty read: nothing arrived within the
	// timeout. It is recoverable, unlike every other receive error.
	ErrTimeout = errors.New("receive timed out")

	// ErrClosed marks a stream whose peer is gone.
	ErrClosed = errors.New("connection is closed")
)

// Conn is a stream socket owned by exactly one HTTP transaction.
type Conn interface {
	// Send writes p fully.
	Send(p []byte) error

	// ReceiveLine reads one LF-terminated line, waiting up to timeout.
	// The terminator (CRLF or sole LF) is removed from the result.
	ReceiveLine(timeout time.Duration) ([]byte, error)

	// ReceiveAvailable returns whatever bytes arrive within timeout.
	// It returns ErrTimeout when nothing arrives in time.
	ReceiveAvailable(timeout time.Duration) ([]byte, error)

	Close() error
}

type Dialer interface {
	Dial(host string, port uint16) (Conn, error)
}
