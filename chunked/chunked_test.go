package chunked

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DecoderTestSuite struct {
	suite.Suite
}

func TestDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(DecoderTestSuite))
}

func (s *DecoderTestSuite) feedAll(d *Decoder, fragments ...[]byte) []byte {
	body := bytes.NewBuffer(nil)
	for _, f := range fragments {
		payloads, err := d.Feed(f)
		s.Require().NoError(err)
		for _, p := range payloads {
			body.Write(p)
		}
	}
	return body.Bytes()
}

func (s *DecoderTestSuite) TestSingleFragment() {
	d := &Decoder{}

	body := s.feedAll(d, []byte("4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"))

	s.Equal("Wikipedia", string(body))
	s.True(d.Done())
}

func (s *DecoderTestSuite) TestByteByByte() {
	input := []byte("4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")

	d := &Decoder{}
	body := bytes.NewBuffer(nil)
	for _, b := range input {
		payloads, err := d.Feed([]byte{b})
		s.Require().NoError(err)
		for _, p := range payloads {
			body.Write(p)
		}
	}

	s.Equal("Wikipedia", body.String())
	s.True(d.Done())
}

// Any fragmentation yields the same body, even when the split lands
// inside a size line.
func (s *DecoderTestSuite) TestEverySplitPoint() {
	input := []byte("4\r\nWiki\r\nc\r\npedia rocks!\r\n0\r\n\r\n")

	for split := 1; split < len(input); split++ {
		d := &Decoder{}

		body := s.feedAll(d, input[:split], input[split:])

		s.Equal("Wikipedia rocks!", string(body), "split at %d", split)
		s.True(d.Done(), "split at %d", split)
	}
}

func (s *DecoderTestSuite) TestMultipleChunksInOneFragment() {
	d := &Decoder{}

	payloads, err := d.Feed([]byte("3\r\nABC\r\n3\r\nDEF\r\n"))
	s.Require().NoError(err)

	s.Require().Len(payloads, 2)
	s.Equal([]byte("ABC"), payloads[0])
	s.Equal([]byte("DEF"), payloads[1])
	s.False(d.Done())
}

func (s *DecoderTestSuite) TestChunkBoundaryAcrossFeeds() {
	d := &Decoder{}

	payloads, err := d.Feed([]byte("a\r\nFGHIJ"))
	s.Require().NoError(err)
	s.Empty(payloads)

	payloads, err = d.Feed([]byte("KLNMO\r\n"))
	s.Require().NoError(err)
	s.Require().Len(payloads, 1)
	s.Equal([]byte("FGHIJKLNMO"), payloads[0])
}

func (s *DecoderTestSuite) TestExtensionsIgnored() {
	d := &Decoder{}

	body := s.feedAll(d, []byte("4;ext=foo\r\nWiki\r\n0\r\n\r\n"))

	s.Equal("Wiki", string(body))
	s.True(d.Done())
}

func (s *DecoderTestSuite) TestNoBytesConsumedAfterDone() {
	d := &Decoder{}
	s.feedAll(d, []byte("0\r\n\r\n"))
	s.True(d.Done())

	payloads, err := d.Feed([]byte("4\r\nWiki\r\n"))
	s.NoError(err)
	s.Empty(payloads)
}

func (s *DecoderTestSuite) TestMalformedSizeLine() {
	d := &Decoder{}

	_, err := d.Feed([]byte("zz\r\nWiki\r\n"))
	s.Error(err)
}

func TestParseChunkSize(t *testing.T) {
	testcases := []struct {
		desc     string
		input    []byte
		expected uint
		wantErr  bool
	}{
		{
			desc:     "normal hex",
			input:    []byte("FF"),
			expected: 0xFF,
		},
		{
			desc:     "with extension",
			input:    []byte("5;ext=foo"),
			expected: 5,
		},
		{
			desc:    "invalid hex",
			input:   []byte("haha this aint hex"),
			wantErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			size, err := parseChunkSize(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, size)
		})
	}
}
