package mask_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-imapmsg/mask"
	"github.com/zostay/go-imapmsg/message"
)

func TestHTMLBodyWithEmbeddedImages(t *testing.T) {
	t.Parallel()

	m, err := message.ParseFile(filepath.Join("..", "test", "data", "mixed.eml"), nil)
	require.NoError(t, err)

	raw, ok := mask.HTMLBody(m)
	require.True(t, ok)
	assert.Contains(t, raw, "cid:logo@example.com")

	body, ok := mask.HTMLBodyWithEmbeddedImages(m)
	require.True(t, ok)
	assert.NotContains(t, body, "cid:")
	assert.Contains(t, body, `src="data:image/png;base64,iVBORw0KGgo`)
}

func TestCustomHTMLBody(t *testing.T) {
	t.Parallel()

	m, err := message.ParseFile(filepath.Join("..", "test", "data", "mixed.eml"), nil)
	require.NoError(t, err)

	seen := []string{}
	_, ok := mask.CustomHTMLBody(m, func(body string, a *message.Attachment) string {
		seen = append(seen, a.Name())
		return body
	})
	assert.True(t, ok)
	assert.Equal(t, []string{"logo.png", "a.pdf"}, seen)
}

func TestSanitizedHTMLBody(t *testing.T) {
	t.Parallel()

	m, err := message.Make(
		"Content-Type: text/html\r\n\r\n",
		`<p onclick="steal()">Hi</p><script>alert(1)</script>`,
		nil, nil)
	require.NoError(t, err)

	body, ok := mask.SanitizedHTMLBody(m)
	require.True(t, ok)
	assert.Equal(t, "<p>Hi</p>", body)
}

func TestHTMLBody_Missing(t *testing.T) {
	t.Parallel()

	m, err := message.Make("Content-Type: text/plain\r\n\r\n", "plain", nil, nil)
	require.NoError(t, err)

	_, ok := mask.HTMLBodyWithEmbeddedImages(m)
	assert.False(t, ok)

	_, ok = mask.SanitizedHTMLBody(m)
	assert.False(t, ok)
}
