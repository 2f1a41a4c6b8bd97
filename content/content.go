// Package content dispatches an assembled response body to a
// format-specific decoder chosen by the configured data type.
package content

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// DataType selects the decoding strategy for a response body.
type DataType string

const (
	TypeText DataType = "text"
	TypeJSON DataType = "json"
	TypeXML  DataType = "xml"
	// TypeRaw hands the body bytes back untouched, for callers that
	// already know their shape.
	TypeRaw DataType = "raw"

	// Accepted for configuration compatibility; decoded as raw bytes.
	TypeOSC    DataType = "osc"
	TypeScript DataType = "script"
	TypeHTML   DataType = "html"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode parses raw according to dt. Parser failures come back as
// errors; nothing panics across this boundary.
func Decode(raw []byte, dt DataType) (any, error) {
	switch dt {
	case TypeText:
		return string(raw), nil
	case TypeJSON:
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.Wrap(err, "parsing json body")
		}
		return v, nil
	case TypeXML:
		node, err := parseXML(raw)
		if err != nil {
			return nil, errors.Wrap(err, "parsing xml body")
		}
		return node, nil
	default:
		// TypeRaw and the unimplemented types pass through.
		return raw, nil
	}
}
