package header

import (
	"errors"
	"time"

	"github.com/zostay/go-imapmsg/address"
)

// Errors returned by Header methods.
var (
	// ErrNoSuchField is returned when the named field is not in the header.
	ErrNoSuchField = errors.New("no such header field")
)

// Normalized names of the fields this module gives special treatment.
const (
	Bcc                     = "bcc"
	Cc                      = "cc"
	ContentDescription      = "content_description"
	ContentDisposition      = "content_disposition"
	ContentID               = "content_id"
	ContentTransferEncoding = "content_transfer_encoding"
	ContentType             = "content_type"
	Date                    = "date"
	From                    = "from"
	InReplyTo               = "in_reply_to"
	MessageID               = "message_id"
	References              = "references"
	ReplyTo                 = "reply_to"
	Sender                  = "sender"
	Subject                 = "subject"
	To                      = "to"
	XAttachmentID           = "x_attachment_id"
)

// Parameters of Content-Type and Content-Disposition that are lifted into
// attributes of their own.
const (
	Boundary = "boundary"
	Charset  = "charset"
	Filename = "filename"
	Name     = "name"
)

// addressFields are parsed into address lists.
var addressFields = map[string]bool{
	From:    true,
	To:      true,
	Cc:      true,
	Bcc:     true,
	ReplyTo: true,
	Sender:  true,
}

// structuredFields carry parameters.
var structuredFields = []string{ContentType, ContentDisposition}

// Header is a parsed header. It is immutable once Parse returns.
type Header struct {
	raw   string
	lbr   Break
	attrs map[string]*Attribute
	order []string

	params    map[string][]Param
	addresses map[string][]address.Address

	date     time.Time
	dateErr  error
	problems []error
}

// Raw returns the header text exactly as given to Parse.
func (h *Header) Raw() string {
	return h.raw
}

// Break returns the line break detected in the raw header.
func (h *Header) Break() Break {
	return h.lbr
}

// Len returns the number of attributes, including lifted parameters.
func (h *Header) Len() int {
	return len(h.order)
}

// Names returns the normalized attribute names in the order they were found.
// Lifted parameters come after the fields.
func (h *Header) Names() []string {
	return append([]string(nil), h.order...)
}

// Attributes returns the attributes in the same order as Names.
func (h *Header) Attributes() []*Attribute {
	as := make([]*Attribute, len(h.order))
	for i, k := range h.order {
		as[i] = h.attrs[k]
	}
	return as
}

// Has is true if the named attribute exists, even with an empty value.
func (h *Header) Has(name string) bool {
	_, ok := h.attrs[Normalize(name)]
	return ok
}

// Get returns the named attribute or nil. The name may be given in any case
// and with dashes or underscores.
func (h *Header) Get(name string) *Attribute {
	return h.attrs[Normalize(name)]
}

// First returns the first value of the named attribute or the empty string.
func (h *Header) First(name string) string {
	return h.Get(name).First()
}

// Parameters returns the parameters of the named structured field in the
// order found, after RFC 2231 reassembly and decoding.
func (h *Header) Parameters(name string) []Param {
	return append([]Param(nil), h.params[Normalize(name)]...)
}

// Parameter returns a single parameter of a structured field.
func (h *Header) Parameter(name, param string) (string, bool) {
	param = Normalize(param)
	for _, p := range h.params[Normalize(name)] {
		if Normalize(p.Name) == param {
			return p.Value, true
		}
	}
	return "", false
}

// Addresses returns the parsed addresses of an address field, such as From or
// To. Repeated fields are concatenated.
func (h *Header) Addresses(name string) []address.Address {
	return append([]address.Address(nil), h.addresses[Normalize(name)]...)
}

// Date returns the parsed Date field. When the field is missing the error is
// ErrNoSuchField. When it cannot be parsed the zero time is returned along
// with the *DateError recorded during parsing.
func (h *Header) Date() (time.Time, error) {
	if !h.Has(Date) {
		return time.Time{}, ErrNoSuchField
	}
	return h.date, h.dateErr
}

// Problems returns the recoverable problems found while parsing.
func (h *Header) Problems() []error {
	return append([]error(nil), h.problems...)
}

// Subject returns the decoded subject.
func (h *Header) Subject() string {
	return h.First(Subject)
}

// MessageID returns the Message-ID without angle brackets.
func (h *Header) MessageID() string {
	return StripAngles(h.First(MessageID))
}

// ContentType returns the principal value of Content-Type, e.g. "text/plain",
// as written.
func (h *Header) ContentType() string {
	return h.First(ContentType)
}

// Boundary returns the multipart boundary parameter of Content-Type.
func (h *Header) Boundary() string {
	b, _ := h.Parameter(ContentType, Boundary)
	return b
}
