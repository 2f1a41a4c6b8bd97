package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadersCanonicalization(t *testing.T) {
	h := NewHeaders()
	h.Set("content-length", "5")

	v, ok := h.Get("Content-Length")
	assert.True(t, ok)
	assert.Equal(t, "5", v)

	v, ok = h.Get("CONTENT-LENGTH")
	assert.True(t, ok)
	assert.Equal(t, "5", v)

	h.Set("Content-Length", "6")
	assert.Equal(t, 1, h.Len())

	h.Del("content-LENGTH")
	_, ok = h.Get("Content-Length")
	assert.False(t, ok)
}

func TestHeadersFieldsIsAClone(t *testing.T) {
	h := NewHeaders()
	h.Set("Hello", "World")

	fields := h.Fields()
	fields["Hello"] = "mutated"

	v, _ := h.Get("Hello")
	assert.Equal(t, "World", v)
}

func TestCanonicalFieldName(t *testing.T) {
	testcases := []struct {
		input    string
		expected string
	}{
		{"content-length", "Content-Length"},
		{"TRANSFER-ENCODING", "Transfer-Encoding"},
		{"host", "Host"},
		{"x-reQUEST-id", "X-Request-Id"},
	}

	for _, tc := range testcases {
		assert.Equal(t, tc.expected, canonicalFieldName(tc.input))
	}
}
