package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-imapmsg/header"
)

func TestDecodeWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"=?UTF-8?B?VGVzdGluZyAxMjM=?=", "Testing 123"},
		{"=?iso-8859-1?q?caf=E9_au_lait?=", "café au lait"},
		{"=?UTF-8?Q?a?= =?UTF-8?Q?b?=", "ab"},
		{"=?UTF-8?Q?a?=\t =?ISO-8859-1?Q?=E9?=", "aé"},
		{"x =?UTF-8?Q?a?= y", "x a y"},
		{"=?UTF-8?B?ww==?= =?UTF-8?B?vA==?=", "ü"},
		{"=?utf-8*en?Q?hello?=", "hello"},
		{"=?UTF-8?B?VGVzdGluZyAxMjM?=", "Testing 123"},
		{"=?x-klingon?Q?abc?=", "=?x-klingon?Q?abc?="},
		{"=?UTF-8?X?abc?=", "=?UTF-8?X?abc?="},
		{"=?UTF-8?B?not base64!?=", "=?UTF-8?B?not base64!?="},
		{"broken =?UTF-8?Q?never closed", "broken =?UTF-8?Q?never closed"},
		{"=?UTF-8?Q?100=ZZ?=", "100=ZZ"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, header.DecodeWords(tt.in), tt.in)
	}
}

func TestHasEncodedWords(t *testing.T) {
	t.Parallel()

	assert.True(t, header.HasEncodedWords("x =?UTF-8?Q?a?="))
	assert.True(t, header.HasEncodedWords("=? nope =?UTF-8?Q?a?="))
	assert.False(t, header.HasEncodedWords("=?x-klingon?Q?abc?="))
	assert.False(t, header.HasEncodedWords("no words"))
}
