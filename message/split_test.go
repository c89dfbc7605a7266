package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitHeader(t *testing.T) {
	t.Parallel()

	h, b := SplitHeader("Subject: x\r\n\r\nbody\n\nmore")
	assert.Equal(t, "Subject: x\r\n\r\n", h)
	assert.Equal(t, "body\n\nmore", b)

	h, b = SplitHeader("Subject: x\n\nbody")
	assert.Equal(t, "Subject: x\n\n", h)
	assert.Equal(t, "body", b)

	h, b = SplitHeader("Subject: x")
	assert.Equal(t, "Subject: x", h)
	assert.Equal(t, "", b)
}

func TestSplitPart(t *testing.T) {
	t.Parallel()

	h, b := splitPart("\r\nbody: with a colon")
	assert.Equal(t, "\r\n", h)
	assert.Equal(t, "body: with a colon", b)

	h, b = splitPart("Content-Type: text/plain")
	assert.Equal(t, "Content-Type: text/plain", h)
	assert.Equal(t, "", b)

	h, b = splitPart("just some text")
	assert.Equal(t, "", h)
	assert.Equal(t, "just some text", b)
}

func TestBoundaryCandidates(t *testing.T) {
	t.Parallel()

	body := "Content-Type: multipart/alternative; BOUNDARY=\"alt\"\r\n" +
		"Content-Type: multipart/related; boundary=rel; type=text/html\r\n" +
		"boundary=alt\r\n" +
		"boundary=outer\r\n"

	assert.Equal(t, []string{"alt", "rel"}, boundaryCandidates(body, "outer", 16))
	assert.Equal(t, []string{"alt"}, boundaryCandidates(body, "outer", 1))
	assert.Empty(t, boundaryCandidates(body, "outer", 0))
}

func TestNormalizeBoundaries(t *testing.T) {
	t.Parallel()

	body := "--ab\r\n--abc\r\n--abc--\r\n--abcd is text\r\n x --abc\r\n"
	got := normalizeBoundaries(body, "P", []string{"ab", "abc"})
	assert.Equal(t, "--P\r\n--P\r\n--P\r\n--abcd is text\r\n x --abc\r\n", got)
}
