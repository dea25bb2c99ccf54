package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/jmgilman/go/gscript/errors"
)

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"", "default", "UTF-8", "utf8"} {
		enc, err := LookupEncoding(name)
		require.NoError(t, err, name)
		assert.Equal(t, unicode.UTF8, enc, name)
	}

	enc, err := LookupEncoding("latin1")
	require.NoError(t, err)
	assert.Equal(t, charmap.ISO8859_1, enc)

	enc, err = LookupEncoding("windows-1252")
	require.NoError(t, err)
	assert.Equal(t, charmap.Windows1252, enc)

	_, err = LookupEncoding("klingon")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnknownEncoding, errors.GetCode(err))
}

func TestDecodeEncode(t *testing.T) {
	b, err := encode(charmap.ISO8859_1, "été")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe9, 't', 0xe9}, b)

	s, err := decode(charmap.ISO8859_1, b)
	require.NoError(t, err)
	assert.Equal(t, "été", s)
}

func TestParseStreamMode(t *testing.T) {
	tests := []struct {
		in   string
		want StreamMode
	}{
		{"", AutoText},
		{"auto", AutoText},
		{"TEXT", Text},
		{"bytes", Bytes},
		{"binary", Bytes},
	}
	for _, tt := range tests {
		got, err := ParseStreamMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.NotEmpty(t, got.String())
	}

	_, err := ParseStreamMode("utf-16")
	require.Error(t, err)
	assert.True(t, errors.IsUsage(err))
}
