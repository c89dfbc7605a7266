package message_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/header"
	"github.com/zostay/go-imapmsg/message"
)

func multipartHeader(boundary string) *header.Header {
	return header.Parse(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary), nil)
}

func TestParseStructure_SinglePart(t *testing.T) {
	t.Parallel()

	h := header.Parse("Content-Type: text/plain\r\n\r\n", nil)
	s, err := message.ParseStructure("Hello World\r\n", h, nil)
	require.NoError(t, err)

	assert.Equal(t, message.TypeText, s.Type())
	require.Equal(t, 1, s.Len())

	p := s.Parts()[0]
	assert.Same(t, h, p.Header())
	assert.Equal(t, "Hello World", p.Content())
}

func TestParseStructure_NoBoundaryParameter(t *testing.T) {
	t.Parallel()

	h := header.Parse("Content-Type: multipart/mixed\r\n\r\n", nil)
	_, err := message.ParseStructure("--x\r\n\r\nhi\r\n--x--\r\n", h, nil)
	assert.ErrorIs(t, err, message.ErrMissingBoundary)
}

func TestParseStructure_PreambleAndEpilogue(t *testing.T) {
	t.Parallel()

	body := "preamble\r\n" +
		"--xyz\r\n" +
		"Content-Type: text/plain\r\n\r\none\r\n" +
		"--xyz  \r\n" +
		"\r\ntwo\r\n" +
		"--xyz--\r\n" +
		"epilogue\r\n"

	s, err := message.ParseStructure(body, multipartHeader("xyz"), nil)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	parts := s.Parts()
	assert.Equal(t, "one", parts[0].Content())
	assert.Equal(t, "text/plain", parts[0].ContentType())

	// empty header
	assert.Equal(t, "two", parts[1].Content())
	assert.Equal(t, "", parts[1].ContentType())
	assert.True(t, parts[1].IsBody())
}

func TestParseStructure_NotADelimiter(t *testing.T) {
	t.Parallel()

	body := "--b\r\n" +
		"\r\nsee --b inline and\r\n--bee is not it\r\n" +
		"--b--\r\n"

	s, err := message.ParseStructure(body, multipartHeader("b"), nil)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "see --b inline and\r\n--bee is not it", s.Parts()[0].Content())
}

func TestParseStructure_Unclosed(t *testing.T) {
	t.Parallel()

	body := "--b\r\n\r\nfirst\r\n--b\r\n\r\nsecond, truncated"

	s, err := message.ParseStructure(body, multipartHeader("b"), nil)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "second, truncated", s.Parts()[1].Content())
}

func TestParseStructure_NestedBoundaries(t *testing.T) {
	t.Parallel()

	body := "--outer\r\n" +
		"Content-Type: multipart/alternative; boundary=inner\r\n\r\n" +
		"--inner\r\n" +
		"Content-Type: text/plain\r\n\r\nplain\r\n" +
		"--inner\r\n" +
		"Content-Type: text/html\r\n\r\n<b>html</b>\r\n" +
		"--inner--\r\n" +
		"--outer\r\n" +
		"Content-Type: application/pdf; name=a.pdf\r\n\r\n%PDF\r\n" +
		"--outer--\r\n"

	s, err := message.ParseStructure(body, multipartHeader("outer"), nil)
	require.NoError(t, err)

	types := []string{}
	for _, p := range s.Parts() {
		types = append(types, p.ContentType())
	}
	assert.Equal(t, []string{
		"multipart/alternative",
		"text/plain",
		"text/html",
		"application/pdf",
	}, types)

	// with secondary scanning turned off, the nested parts stay inside the
	// container
	cfg := config.New(config.WithMaxBoundaryCandidates(0))
	s, err = message.ParseStructure(body, multipartHeader("outer"), cfg)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.True(t, s.Parts()[0].IsMultipart())
}

func TestParseStructure_Count(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		boundary := rapid.StringMatching(`[A-Za-z0-9'()+_,./=-]{1,40}`).Draw(t, "boundary")
		contents := rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z ]{0,30}[a-z]`), 1, 10).Draw(t, "contents")

		var b strings.Builder
		b.WriteString("preamble\r\n")
		for _, c := range contents {
			b.WriteString("--" + boundary + "\r\n")
			b.WriteString("Content-Type: text/plain\r\n\r\n")
			b.WriteString(c + "\r\n")
		}
		b.WriteString("--" + boundary + "--\r\n")

		s, err := message.ParseStructure(b.String(), multipartHeader(boundary), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.Len() != len(contents) {
			t.Fatalf("got %d parts, want %d", s.Len(), len(contents))
		}

		for i, p := range s.Parts() {
			if p.Index() != i {
				t.Fatalf("part %d has index %d", i, p.Index())
			}
			if p.Content() != contents[i] {
				t.Fatalf("part %d content %q, want %q", i, p.Content(), contents[i])
			}
			if strings.Contains(p.Raw(), "--"+boundary+"--") {
				t.Fatalf("part %d holds the close delimiter", i)
			}
		}
	})
}
