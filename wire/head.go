package wire

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidHeader means the transport produced nothing usable before
// the header block ended.
var ErrInvalidHeader = errors.New("invalid page header")

// LineReceiver is the slice of the transport a head parser needs.
type LineReceiver interface {
	ReceiveLine(timeout time.Duration) ([]byte, error)
}

// BuildRequestHead formats the request line and header block,
// terminated by a blank line. Fields are written in the given order.
func BuildRequestHead(method, target string, fields []Field) []byte {
	buf := bytes.NewBuffer(nil)

	buf.WriteString(method)
	buf.WriteByte(' ')
	buf.WriteString(target)
	buf.WriteString(" HTTP/1.1")
	buf.Write(crlf)

	for _, f := range fields {
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
		buf.Write(crlf)
	}

	buf.Write(crlf)

	return buf.Bytes()
}

// ParseResponseHead reads lines off r until the blank line ending the
// header block, waiting up to timeout for each. The first parsable
// status line and every "Name: Value" line are collected; stray lines
// are skipped, best effort. It fails with ErrInvalidHeader when the
// transport dies before producing a single line.
func ParseResponseHead(r LineReceiver, timeout time.Duration) (StatusLine, Headers, error) {
	var (
		status       StatusLine
		statusParsed bool
		collected    bool
	)
	headers := NewHeaders()

	for {
		line, err := r.ReceiveLine(timeout)
		if err != nil {
			if collected {
				// Tolerate a head cut short after real lines.
				break
			}
			return StatusLine{}, Headers{}, ErrInvalidHeader
		}

		if len(line) == 0 {
			break
		}
		collected = true

		if !statusParsed {
			if s, err := ParseStatusLine(line); err == nil {
				status = s
				statusParsed = true
				continue
			}
		}

		if field, err := ParseField(line); err == nil {
			headers.Set(field.Name, field.Value)
		}
	}

	if !collected {
		return StatusLine{}, Headers{}, ErrInvalidHeader
	}

	return status, headers, nil
}
