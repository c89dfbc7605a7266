package message

import (
	"strings"

	"github.com/zostay/go-imapmsg/charset"
	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/header"
	"github.com/zostay/go-imapmsg/transfer"
)

// Part is a single part of a message body: either the whole body of a single
// part message or one segment of a multipart body.
type Part struct {
	cfg    *config.Config
	raw    string
	header *header.Header
	index  int

	typ     string
	subtype string
	charset string

	encoding transfer.Encoding

	disposition    string
	hasDisposition bool
	description    string
	hasDescription bool

	name     string
	filename string
	id       string

	content string
}

// NewPart builds a part. When h is nil, raw is a multipart segment and is
// split into its own header and body. Otherwise raw is the body and h its
// header. The index is the position of the part within its structure.
func NewPart(raw string, h *header.Header, index int, cfg *config.Config) *Part {
	cfg = config.OrDefault(cfg)

	p := &Part{cfg: cfg, raw: raw, index: index}

	content := raw
	if h == nil {
		var hdr string
		hdr, content = splitPart(raw)
		h = header.Parse(hdr, cfg)
	}
	p.header = h

	ct := strings.ToLower(strings.TrimSpace(h.ContentType()))
	if ct != "" {
		p.typ, p.subtype, _ = strings.Cut(ct, "/")
		p.typ = strings.TrimSpace(p.typ)
		p.subtype = strings.TrimSpace(p.subtype)
	}

	p.charset, _ = h.Parameter(header.ContentType, header.Charset)
	p.encoding = transfer.ParseEncoding(h.First(header.ContentTransferEncoding))

	if h.Has(header.ContentDisposition) {
		p.hasDisposition = true
		p.disposition = strings.ToLower(strings.TrimSpace(h.First(header.ContentDisposition)))
	}

	if h.Has(header.ContentDescription) {
		p.hasDescription = true
		p.description = h.First(header.ContentDescription)
	}

	var ok bool
	if p.name, ok = h.Parameter(header.ContentType, header.Name); !ok {
		p.name, _ = h.Parameter(header.ContentDisposition, header.Name)
	}
	if p.filename, ok = h.Parameter(header.ContentDisposition, header.Filename); !ok {
		p.filename, _ = h.Parameter(header.ContentType, header.Filename)
	}

	p.id = header.StripAngles(h.First(header.ContentID))
	if p.id == "" {
		p.id = header.StripAngles(h.First(header.XAttachmentID))
	}

	p.content = strings.TrimRight(content, " \t\r\n")

	return p
}

// Raw returns the text the part was built from.
func (p *Part) Raw() string { return p.raw }

// Header returns the part header. For a single part message this is the
// message header.
func (p *Part) Header() *header.Header { return p.header }

// Index returns the position of the part in its structure.
func (p *Part) Index() int { return p.index }

// Type returns the lowercased major media type, e.g. "text". It is empty when
// the part has no Content-Type.
func (p *Part) Type() string { return p.typ }

// Subtype returns the lowercased media subtype, e.g. "plain".
func (p *Part) Subtype() string { return p.subtype }

// ContentType returns the lowercased media type, e.g. "text/plain".
func (p *Part) ContentType() string {
	if p.subtype == "" {
		return p.typ
	}
	return p.typ + "/" + p.subtype
}

// Charset returns the declared charset parameter, if any.
func (p *Part) Charset() string { return p.charset }

// Encoding returns the declared transfer encoding.
func (p *Part) Encoding() transfer.Encoding { return p.encoding }

// Disposition returns the lowercased disposition, e.g. "attachment".
func (p *Part) Disposition() string { return p.disposition }

// HasDisposition is true when the part has a Content-Disposition field.
func (p *Part) HasDisposition() bool { return p.hasDisposition }

// Description returns the decoded Content-Description.
func (p *Part) Description() string { return p.description }

// HasDescription is true when the part has a Content-Description field.
func (p *Part) HasDescription() bool { return p.hasDescription }

// Name returns the raw name parameter.
func (p *Part) Name() string { return p.name }

// Filename returns the raw filename parameter.
func (p *Part) Filename() string { return p.filename }

// ID returns the Content-ID, or failing that the X-Attachment-Id, without
// angle brackets.
func (p *Part) ID() string { return p.id }

// Content returns the still encoded body of the part with trailing whitespace
// removed.
func (p *Part) Content() string { return p.content }

// Bytes returns the length of the encoded body.
func (p *Part) Bytes() int { return len(p.content) }

// IsMultipart is true for a multipart container part.
func (p *Part) IsMultipart() bool { return p.typ == "multipart" }

// IsAttachment reports whether the part is an attachment rather than a body.
// Containers are neither. A Content-Disposition of attachment always makes an
// attachment. Otherwise plain text, HTML and untyped parts are bodies and
// everything else is an attachment.
func (p *Part) IsAttachment() bool {
	switch {
	case p.IsMultipart():
		return false
	case p.disposition == "attachment":
		return true
	case p.typ == "":
		return false
	case p.typ == "text":
		switch p.subtype {
		case "", "plain", "html":
			return false
		}
	}
	return true
}

// IsBody is true for parts that hold a text or HTML body.
func (p *Part) IsBody() bool {
	return !p.IsMultipart() && !p.IsAttachment()
}

// Decoded returns the body with the transfer encoding removed. Decoding is
// lenient and never fails.
func (p *Part) Decoded() []byte {
	return transfer.Decode(p.encoding, []byte(p.content))
}

// Text returns the decoded body converted to UTF-8. Bytes that cannot be
// converted are dropped.
func (p *Part) Text() string {
	b := p.Decoded()
	cs := p.cfg.CharsetFor(p.charset, b)

	s, err := charset.ToUTF8(b, cs)
	if err != nil {
		p.cfg.Log().Debug("charset conversion degraded",
			"charset", cs,
			"part", p.index,
			"err", err)
	}

	return s
}
