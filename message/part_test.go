package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/message"
	"github.com/zostay/go-imapmsg/transfer"
)

func TestNewPart(t *testing.T) {
	t.Parallel()

	p := message.NewPart(
		"Content-Type: Text/HTML; charset=\"ISO-8859-1\"\r\n"+
			"Content-Transfer-Encoding: Quoted-Printable\r\n"+
			"Content-Description: =?UTF-8?Q?caf=C3=A9?=\r\n"+
			"Content-ID: <part-1@example.com>\r\n"+
			"\r\n"+
			"<p>K=F6ln</p>\r\n\r\n",
		nil, 3, nil)

	assert.Equal(t, 3, p.Index())
	assert.Equal(t, "text", p.Type())
	assert.Equal(t, "html", p.Subtype())
	assert.Equal(t, "text/html", p.ContentType())
	assert.Equal(t, "ISO-8859-1", p.Charset())
	assert.Equal(t, transfer.QuotedPrintable, p.Encoding())
	assert.True(t, p.HasDescription())
	assert.Equal(t, "café", p.Description())
	assert.False(t, p.HasDisposition())
	assert.Equal(t, "part-1@example.com", p.ID())
	assert.Equal(t, "<p>K=F6ln</p>", p.Content())
	assert.Equal(t, len("<p>K=F6ln</p>"), p.Bytes())
	assert.Equal(t, "<p>K\xf6ln</p>", string(p.Decoded()))
	assert.Equal(t, "<p>Köln</p>", p.Text())
	assert.True(t, p.IsBody())
	assert.False(t, p.IsAttachment())
}

func TestNewPart_XAttachmentID(t *testing.T) {
	t.Parallel()

	p := message.NewPart("Content-Type: image/gif\r\nX-Attachment-Id: f_abc\r\n\r\nGIF89a", nil, 0, nil)
	assert.Equal(t, "f_abc", p.ID())
	assert.True(t, p.IsAttachment())
}

func TestPart_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		attachment bool
		body       bool
	}{
		{"plain", "Content-Type: text/plain\r\n\r\nx", false, true},
		{"html", "Content-Type: text/html\r\n\r\nx", false, true},
		{"untyped", "\r\nx", false, true},
		{"container", "Content-Type: multipart/related; boundary=z\r\n\r\nx", false, false},
		{"attached text", "Content-Type: text/plain\r\nContent-Disposition: attachment\r\n\r\nx", true, false},
		{"calendar", "Content-Type: text/calendar\r\n\r\nx", true, false},
		{"inline image", "Content-Type: image/png\r\nContent-Disposition: inline\r\n\r\nx", true, false},
		{"message", "Content-Type: message/rfc822\r\n\r\nx", true, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := message.NewPart(tt.raw, nil, 0, nil)
			assert.Equal(t, tt.attachment, p.IsAttachment())
			assert.Equal(t, tt.body, p.IsBody())
		})
	}
}

func TestPart_Text_UndeclaredCharset(t *testing.T) {
	t.Parallel()

	raw := "Content-Type: text/plain\r\n\r\nK\xf6ln"

	p := message.NewPart(raw, nil, 0, nil)
	assert.Equal(t, "Kln", p.Text())

	latin := config.New(config.WithDefaultCharset("latin1"))
	p = message.NewPart(raw, nil, 0, latin)
	assert.Equal(t, "Köln", p.Text())

	detect := config.New(config.WithCharsetDetection(func([]byte) string { return "windows-1252" }))
	p = message.NewPart(raw, nil, 0, detect)
	assert.Equal(t, "Köln", p.Text())
}

func TestPart_Text_UnknownCharset(t *testing.T) {
	t.Parallel()

	p := message.NewPart("Content-Type: text/plain; charset=x-no-such\r\n\r\nplain ascii", nil, 0, nil)
	assert.Equal(t, "plain ascii", p.Text())
}
