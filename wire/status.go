package wire

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StatusLine is the first line of an HTTP/1.1 response.
type StatusLine struct {
	Proto  string // e.g. "HTTP/1.1"
	Code   uint
	Reason string
}

func ParseStatusLine(line []byte) (StatusLine, error) {
	parts := bytes.SplitN(line, []byte{' '}, 3)
	if len(parts) < 2 {
		return StatusLine{}, errors.Errorf("status line is malformed: %q", string(line))
	}

	proto := string(parts[0])
	if !strings.HasPrefix(proto, "HTTP/") {
		return StatusLine{}, errors.Errorf("http version prefix not found: %q", proto)
	}

	codeRaw := string(parts[1])
	code, err := strconv.ParseUint(codeRaw, 10, 64)
	if err != nil || len(codeRaw) != 3 {
		return StatusLine{}, errors.Errorf("status code is malformed: %q", codeRaw)
	}

	// reason-phrase is optional.
	reason := ""
	if len(parts) == 3 {
		reason = string(parts[2])
	}

	return StatusLine{Proto: proto, Code: uint(code), Reason: reason}, nil
}
