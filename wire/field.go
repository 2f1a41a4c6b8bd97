// Package wire builds outgoing request heads and parses incoming
// response heads for HTTP/1.1.
package wire

import (
	"bytes"

	"github.com/pkg/errors"
)

var crlf = []byte{'\r', '\n'}

// Field is a single header line. Order matters when building a head, so
// fields travel in slices, not maps.
type Field struct{ Name, Value string }

// ParseField splits a "Name: Value" header line.
func ParseField(line []byte) (Field, error) {
	name, value, found := bytes.Cut(line, []byte{':'})
	if !found {
		return Field{}, errors.Errorf("colon separator not found on header: %q", string(line))
	}

	// No whitespace is allowed between field name and colon.
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-5.1-2
	if n := len(name); n > 0 && (name[n-1] == ' ' || name[n-1] == '\t') {
		return Field{}, errors.New("field name has trailing whitespace")
	}

	value = bytes.Trim(value, " \t")

	return Field{Name: string(name), Value: string(value)}, nil
}
