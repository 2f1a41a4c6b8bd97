// Package chunked implements an incremental decoder for the HTTP/1.1
// chunked transfer coding.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-7.1
package chunked

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
)

// Decoder consumes arbitrarily-fragmented bytes of a chunked body and
// emits completed chunk payloads. All state lives in the decoder value,
// so every transaction owns exactly one.
type Decoder struct {
	line      []byte // size-line bytes buffered until a LF arrives
	remaining uint   // bytes still owed to the open chunk
	partial   []byte // accumulated data of the open chunk
	open      bool
	done      bool
}

// Done reports whether the terminal zero-size chunk has been seen.
func (d *Decoder) Done() bool { return d.done }

// Feed consumes fragment and returns the payload of every chunk it
// completes. Fragment boundaries may fall anywhere, including inside a
// chunk-size line. Once the terminal chunk is seen no further bytes
// are consumed.
func (d *Decoder) Feed(fragment []byte) (payloads [][]byte, err error) {
	for len(fragment) > 0 && !d.done {
		if !d.open {
			fragment, err = d.openChunk(fragment)
			if err != nil {
				return payloads, err
			}
			continue
		}

		take := uint(len(fragment))
		if take > d.remaining {
			take = d.remaining
		}

		d.partial = append(d.partial, fragment[:take]...)
		d.remaining -= take
		fragment = fragment[take:]

		if d.remaining == 0 {
			payloads = append(payloads, d.partial)
			d.partial = nil
			d.open = false
		}
	}

	return payloads, nil
}

// openChunk buffers size-line bytes until a full line is present, then
// parses the hexadecimal chunk size. It returns the unconsumed rest of
// the fragment.
func (d *Decoder) openChunk(fragment []byte) ([]byte, error) {
	idx := bytes.IndexByte(fragment, '\n')
	if idx < 0 {
		d.line = append(d.line, fragment...)
		return nil, nil
	}

	d.line = append(d.line, fragment[:idx+1]...)
	rest := fragment[idx+1:]

	line := bytes.TrimFunc(d.line, isControlOrSpace)
	d.line = nil

	if len(line) == 0 {
		// The CRLF closing the previous chunk's data.
		return rest, nil
	}

	size, err := parseChunkSize(line)
	if err != nil {
		return nil, errors.Wrap(err, "decoding chunk size")
	}

	if size == 0 {
		// Terminal chunk.
		d.done = true
		return nil, nil
	}

	d.open = true
	d.remaining = size

	return rest, nil
}

func parseChunkSize(line []byte) (uint, error) {
	// Chunk extensions are not interpreted.
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-7.1.1
	sizeRaw, _, _ := bytes.Cut(line, []byte{';'})
	sizeRaw = bytes.TrimFunc(sizeRaw, isControlOrSpace)

	size, err := strconv.ParseUint(string(sizeRaw), 16, 64)
	if err != nil {
		return 0, errors.Errorf("failed to decode hex: %q", string(sizeRaw))
	}

	return uint(size), nil
}

func isControlOrSpace(r rune) bool { return r <= ' ' }
