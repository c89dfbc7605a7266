package message

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/zostay/go-imapmsg/address"
	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/header"
)

// Message is a fully parsed message. It is immutable once returned.
type Message struct {
	cfg   *config.Config
	state State

	rawHeader string
	rawBody   string

	header      *header.Header
	structure   *Structure
	bodies      map[string]string
	bodyOrder   []string
	attachments *Attachments
	flags       Flags
}

// Make parses a message from its raw header, raw body and the IMAP flags
// reported for it, as fetched separately from a server. A nil cfg selects
// config.Default().
//
// Structural failures are returned as a *ParseError naming the stage. An
// empty header fails with ErrNoHeaders and a multipart body without a usable
// boundary fails with ErrMissingBoundary. Everything else degrades gracefully.
func Make(rawHeader, rawBody string, rawFlags []string, cfg *config.Config) (*Message, error) {
	m := &Message{
		cfg:         config.OrDefault(cfg),
		rawHeader:   rawHeader,
		rawBody:     rawBody,
		bodies:      map[string]string{},
		attachments: newAttachments(),
		flags:       ParseFlags(rawFlags),
	}

	if err := m.parseHeader(); err != nil {
		return nil, err
	}

	if err := m.parseStructure(); err != nil {
		return nil, err
	}

	m.resolveBodies()
	m.state = Complete

	return m, nil
}

// Parse reads a complete message, header and body together, and parses it
// with Make. Input with nothing but whitespace fails with ErrNoContent.
func Parse(r io.Reader, cfg *config.Config) (*Message, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}

	raw := string(b)
	if strings.TrimSpace(raw) == "" {
		return nil, stageError(StageHeader, ErrNoContent)
	}

	h, body := SplitHeader(raw)
	return Make(h, body, nil, cfg)
}

// ParseFile parses the message stored in the named file, such as a .eml file.
func ParseFile(path string, cfg *config.Config) (*Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening message file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, cfg)
}

func (m *Message) parseHeader() error {
	if strings.TrimSpace(m.rawHeader) == "" {
		return stageError(StageHeader, ErrNoHeaders)
	}

	m.header = header.Parse(m.rawHeader, m.cfg)
	m.state = HeaderParsed

	for _, p := range m.header.Problems() {
		m.cfg.Log().Debug("header problem", "err", p)
	}

	return nil
}

func (m *Message) parseStructure() error {
	s, err := ParseStructure(m.rawBody, m.header, m.cfg)
	if err != nil {
		return stageError(StageStructure, err)
	}

	m.structure = s
	m.state = StructureParsed
	return nil
}

// bodyKey names a body by its subtype. Plain text and untyped bodies are
// "text".
func bodyKey(subtype string) string {
	switch subtype {
	case "", "plain":
		return "text"
	}
	return subtype
}

func (m *Message) resolveBodies() {
	for _, p := range m.structure.parts {
		switch {
		case p.IsMultipart():
			continue

		case p.IsAttachment():
			a := newAttachment(p, m.cfg)
			if !a.retained() {
				m.cfg.Log().Debug("dropping unnamed or empty attachment",
					"part", p.Index(),
					"content_type", p.ContentType())
				continue
			}
			m.attachments.add(a)

		default:
			key := bodyKey(p.Subtype())
			if _, seen := m.bodies[key]; !seen {
				m.bodyOrder = append(m.bodyOrder, key)
			}
			m.bodies[key] = p.Text()
		}
	}

	m.state = BodyResolved
}

// State returns the parse state, which is Complete for any message returned
// without error.
func (m *Message) State() State { return m.state }

// Header returns the message header.
func (m *Message) Header() *header.Header { return m.header }

// Get returns the named header attribute or nil.
func (m *Message) Get(name string) *header.Attribute { return m.header.Get(name) }

// Subject returns the decoded subject.
func (m *Message) Subject() string { return m.header.Subject() }

// MessageID returns the Message-ID without angle brackets.
func (m *Message) MessageID() string { return m.header.MessageID() }

// Date returns the parsed Date field.
func (m *Message) Date() (time.Time, error) { return m.header.Date() }

// From returns the From addresses.
func (m *Message) From() []address.Address { return m.header.Addresses(header.From) }

// To returns the To addresses.
func (m *Message) To() []address.Address { return m.header.Addresses(header.To) }

// Cc returns the Cc addresses.
func (m *Message) Cc() []address.Address { return m.header.Addresses(header.Cc) }

// Bcc returns the Bcc addresses.
func (m *Message) Bcc() []address.Address { return m.header.Addresses(header.Bcc) }

// ReplyTo returns the Reply-To addresses.
func (m *Message) ReplyTo() []address.Address { return m.header.Addresses(header.ReplyTo) }

// Sender returns the Sender addresses.
func (m *Message) Sender() []address.Address { return m.header.Addresses(header.Sender) }

// Structure returns the parsed body structure.
func (m *Message) Structure() *Structure { return m.structure }

// Bodies returns the decoded bodies keyed by subtype, with plain text under
// "text". When several parts share a subtype, the last one wins.
func (m *Message) Bodies() map[string]string {
	out := make(map[string]string, len(m.bodies))
	for k, v := range m.bodies {
		out[k] = v
	}
	return out
}

// BodyKeys returns the body keys in the order first seen.
func (m *Message) BodyKeys() []string {
	return append([]string(nil), m.bodyOrder...)
}

// Body returns the body stored under key.
func (m *Message) Body(key string) (string, bool) {
	b, ok := m.bodies[strings.ToLower(key)]
	return b, ok
}

// HasTextBody is true when the message has a plain text body.
func (m *Message) HasTextBody() bool {
	_, ok := m.bodies["text"]
	return ok
}

// TextBody returns the plain text body or the empty string.
func (m *Message) TextBody() string { return m.bodies["text"] }

// HasHTMLBody is true when the message has an HTML body.
func (m *Message) HasHTMLBody() bool {
	_, ok := m.bodies["html"]
	return ok
}

// HTMLBody returns the HTML body or the empty string.
func (m *Message) HTMLBody() string { return m.bodies["html"] }

// Attachments returns the retained attachments.
func (m *Message) Attachments() *Attachments { return m.attachments }

// HasAttachments is true when at least one attachment was retained.
func (m *Message) HasAttachments() bool { return m.attachments.Len() > 0 }

// Flags returns the system flags.
func (m *Message) Flags() Flags { return m.flags }

// RawHeader returns the header exactly as given.
func (m *Message) RawHeader() string { return m.rawHeader }

// RawBody returns the body exactly as given.
func (m *Message) RawBody() string { return m.rawBody }

// Config returns the configuration the message was parsed with.
func (m *Message) Config() *config.Config { return m.cfg }

// Is reports whether other is the same message: both carry the same
// Message-ID, or lacking one, the same subject, date and sender.
func (m *Message) Is(other *Message) bool {
	if other == nil {
		return false
	}

	if id := m.MessageID(); id != "" || other.MessageID() != "" {
		return id == other.MessageID()
	}

	return m.Subject() == other.Subject() &&
		m.header.First(header.Date) == other.header.First(header.Date) &&
		m.header.First(header.From) == other.header.First(header.From)
}

// WriteTo writes the raw header and body back out. A message read with Parse
// is reproduced byte for byte. When the header does not end in a blank line,
// as can happen with Make, one is added using the header's line break.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	var total int64

	n, err := io.WriteString(w, m.rawHeader)
	total += int64(n)
	if err != nil {
		return total, err
	}

	if sep := m.separator(); sep != "" {
		n, err = io.WriteString(w, sep)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	n, err = io.WriteString(w, m.rawBody)
	total += int64(n)
	return total, err
}

// separator returns what must go between the raw header and raw body to make
// a well formed message.
func (m *Message) separator() string {
	if m.rawBody == "" {
		return ""
	}

	for _, s := range splits {
		if strings.HasSuffix(m.rawHeader, s) {
			return ""
		}
	}

	lbr := m.header.Break().String()
	if lbr == "" {
		lbr = header.CRLF.String()
	}
	if strings.HasSuffix(m.rawHeader, lbr) {
		return lbr
	}
	return lbr + lbr
}
