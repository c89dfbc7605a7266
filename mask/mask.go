// Package mask derives presentable HTML from a parsed message, such as an HTML
// body with its cid: images inlined as data URIs.
package mask

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/zostay/go-imapmsg/message"
)

// Filter rewrites an HTML body once per attachment.
type Filter func(body string, a *message.Attachment) string

// HTMLBody returns the HTML body of m. The boolean is false when there is
// none.
func HTMLBody(m *message.Message) (string, bool) {
	return m.Body("html")
}

// CustomHTMLBody returns the HTML body passed through f for every attachment
// in order. A nil filter returns the body unchanged.
func CustomHTMLBody(m *message.Message, f Filter) (string, bool) {
	body, ok := HTMLBody(m)
	if !ok || f == nil {
		return body, ok
	}

	for _, a := range m.Attachments().All() {
		body = f(body, a)
	}

	return body, true
}

// EmbedImages replaces cid: references to image attachments with data URIs.
func EmbedImages(body string, a *message.Attachment) string {
	if a.ID() == "" || a.Type() != "image" {
		return body
	}
	return strings.ReplaceAll(body, "cid:"+a.ID(), a.ImgSrc())
}

// HTMLBodyWithEmbeddedImages returns the HTML body with images referenced by
// Content-ID inlined, so it renders without access to the attachments.
func HTMLBodyWithEmbeddedImages(m *message.Message) (string, bool) {
	return CustomHTMLBody(m, EmbedImages)
}

// Policy returns the sanitizer policy used by SanitizedHTMLBody. It allows
// user generated content plus inlined images.
func Policy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowAttrs("align", "valign", "bgcolor", "color").Globally()
	p.AllowAttrs("colspan", "rowspan", "border", "cellpadding", "cellspacing").OnElements("table", "td", "th")
	return p
}

// SanitizedHTMLBody returns the HTML body with embedded images and anything
// unsafe, such as scripts and event handlers, removed.
func SanitizedHTMLBody(m *message.Message) (string, bool) {
	body, ok := HTMLBodyWithEmbeddedImages(m)
	if !ok {
		return "", false
	}
	return Policy().Sanitize(body), true
}
