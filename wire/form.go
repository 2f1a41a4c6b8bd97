package wire

import (
	"net/url"
	"sort"
	"strings"
)

// EncodeForm url-encodes a key/value payload. With traditional
// serialization off, keys holding more than one value gain a "[]"
// suffix; with it on, the key simply repeats. A single-value key stays
// bare either way: the map form cannot tell a scalar from a
// one-element array.
func EncodeForm(data map[string][]string, traditional bool) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, k := range keys {
		values := data[k]

		name := url.QueryEscape(k)
		if !traditional && len(values) > 1 {
			name += "%5B%5D" // "[]"
		}

		for _, v := range values {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(name)
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(v))
		}
	}

	return buf.String()
}
