package charset_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-imapmsg/charset"
)

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
		known bool
	}{
		{"UTF8", "utf-8", true},
		{" \"Latin1\" ", "iso-8859-1", true},
		{"cp1252", "windows-1252", true},
		{"ks_c_5601-1987", "euc-kr", true},
		{"x-sjis", "shift_jis", true},
		{"ANSI_X3.4-1968", "us-ascii", true},
		{"X-Made-Up", "x-made-up", false},
	}

	for _, tt := range tests {
		got, known := charset.Canonical(tt.label)
		assert.Equal(t, tt.want, got, tt.label)
		assert.Equal(t, tt.known, known, tt.label)
	}

	assert.True(t, charset.IsKnown("GB2312"))
	assert.False(t, charset.IsKnown("klingon"))
}

func TestToUTF8(t *testing.T) {
	t.Parallel()

	s, err := charset.ToUTF8([]byte("caf\xe9"), "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "café", s)

	s, err = charset.ToUTF8([]byte("\x93quoted\x94"), "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "“quoted”", s)

	s, err = charset.ToUTF8([]byte("\xd0\xd2\xc9\xd7\xc5\xd4"), "koi8-r")
	require.NoError(t, err)
	assert.Equal(t, "привет", s)

	s, err = charset.ToUTF8([]byte("\x82\xb1\x82\xf1\x82\xc9\x82\xbf\x82\xcd"), "Shift_JIS")
	require.NoError(t, err)
	assert.Equal(t, "こんにちは", s)
}

func TestToUTF8_SkipsASCII(t *testing.T) {
	t.Parallel()

	s, err := charset.ToUTF8([]byte("plain text"), "us-ascii")
	require.NoError(t, err)
	assert.Equal(t, "plain text", s)

	// mislabelled UTF-8 survives, stray high bytes are dropped
	s, err = charset.ToUTF8([]byte("café \xff"), "ascii")
	require.NoError(t, err)
	assert.Equal(t, "café ", s)
}

func TestToUTF8_Unknown(t *testing.T) {
	t.Parallel()

	s, err := charset.ToUTF8([]byte("hello\xff"), "x-nonsense")
	assert.ErrorIs(t, err, charset.ErrUnknownCharset)
	assert.Equal(t, "hello", s)
}

func TestNewReader(t *testing.T) {
	t.Parallel()

	r, err := charset.NewReader("latin1", strings.NewReader("na\xefve"))
	require.NoError(t, err)

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "naïve", string(b))

	_, err = charset.NewReader("x-nonsense", strings.NewReader(""))
	assert.ErrorIs(t, err, charset.ErrUnknownCharset)
}

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "utf-8", charset.Detect([]byte("just ascii")))
	assert.Equal(t, "utf-8", charset.Detect([]byte("déjà vu")))
	assert.Equal(t, "windows-1252", charset.Detect([]byte("d\xe9j\xe0 vu")))
}
