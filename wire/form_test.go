package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeForm(t *testing.T) {
	testcases := []struct {
		desc        string
		data        map[string][]string
		traditional bool
		expected    string
	}{
		{
			desc:     "empty",
			data:     nil,
			expected: "",
		},
		{
			desc:     "single values sorted by key",
			data:     map[string][]string{"b": {"2"}, "a": {"1"}},
			expected: "a=1&b=2",
		},
		{
			desc:     "values escaped",
			data:     map[string][]string{"q": {"hello world&more"}},
			expected: "q=hello+world%26more",
		},
		{
			desc:     "single value stays bare",
			data:     map[string][]string{"k": {"1"}},
			expected: "k=1",
		},
		{
			desc:     "multi value",
			data:     map[string][]string{"k": {"1", "2"}},
			expected: "k%5B%5D=1&k%5B%5D=2",
		},
		{
			desc:        "multi value traditional",
			data:        map[string][]string{"k": {"1", "2"}},
			traditional: true,
			expected:    "k=1&k=2",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, EncodeForm(tc.data, tc.traditional))
		})
	}
}
