package wire

// Headers maps canonicalized field names to values. Repeated fields
// keep the last value; the engine interprets only Content-Length and
// Transfer-Encoding anyway.
type Headers struct{ underlying map[string]string }

func NewHeaders() Headers {
	return Headers{underlying: make(map[string]string)}
}

func (h Headers) Get(key string) (value string, ok bool) {
	value, ok = h.underlying[canonicalFieldName(key)]
	return
}

func (h Headers) Set(key, value string) {
	h.underlying[canonicalFieldName(key)] = value
}

func (h Headers) Del(key string) {
	delete(h.underlying, canonicalFieldName(key))
}

func (h Headers) Len() int { return len(h.underlying) }

// Fields returns a copy of all key-values in the header.
func (h Headers) Fields() map[string]string {
	clone := make(map[string]string, len(h.underlying))
	for k, v := range h.underlying {
		clone[k] = v
	}
	return clone
}

// canonicalFieldName uppercases the first letter of each dash-separated
// word: "content-length" becomes "Content-Length".
func canonicalFieldName(s string) string {
	const capitalDiff = 'a' - 'A'

	b := []byte(s)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			c -= capitalDiff
		} else if !upper && 'A' <= c && c <= 'Z' {
			c += capitalDiff
		}
		b[i] = c
		upper = c == '-'
	}

	return string(b)
}
