package header

import (
	"strings"

	"github.com/zostay/go-imapmsg/address"
	"github.com/zostay/go-imapmsg/config"
)

// BadStartError is recorded when the header begins with text that does not
// look like a field. The text is kept rather than thrown away.
type BadStartError struct {
	BadStart string // the text found before the first field
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// field is an unfolded header field before any decoding.
type field struct {
	name string
	body string
}

// splitFields breaks a header into unfolded fields.
//
// A line starts a new field unless it starts with a space or tab or has no
// colon, in which case it continues the previous field. Unfolding removes the
// line breaks only, so the folding whitespace is kept. Lines before the first
// field are returned as junk. Parsing stops at the first empty line.
func splitFields(raw string, lbr Break) ([]field, string) {
	var (
		fields []field
		junk   []string
	)

	for _, line := range splitLines(raw, lbr) {
		if line == "" {
			break
		}

		if line[0] == ' ' || line[0] == '\t' || !strings.Contains(line, ":") {
			if len(fields) == 0 {
				junk = append(junk, line)
				continue
			}

			fields[len(fields)-1].body += line
			continue
		}

		ix := strings.Index(line, ":")
		fields = append(fields, field{
			name: strings.TrimSpace(line[:ix]),
			body: line[ix+1:],
		})
	}

	return fields, strings.Join(junk, string(lbr))
}

// Parse parses a raw header block. The raw text may or may not include the
// blank line that ends a header. A nil cfg means config.Default().
func Parse(raw string, cfg *config.Config) *Header {
	cfg = config.OrDefault(cfg)
	lbr := DetectBreak(raw)

	h := &Header{
		raw:       raw,
		lbr:       lbr,
		attrs:     map[string]*Attribute{},
		params:    map[string][]Param{},
		addresses: map[string][]address.Address{},
	}

	fields, junk := splitFields(raw, lbr)
	if junk != "" {
		h.problems = append(h.problems, &BadStartError{junk})
		cfg.Log().Debug("header starts with junk", "junk", junk)
	}

	for _, f := range fields {
		h.addField(f, cfg)
	}

	h.liftParameters()
	h.parseDate(cfg)

	return h
}

// attribute returns the attribute for key, creating it if needed.
func (h *Header) attribute(name, key string, param bool) *Attribute {
	if a, ok := h.attrs[key]; ok {
		return a
	}

	a := &Attribute{name: name, key: key, param: param}
	h.attrs[key] = a
	h.order = append(h.order, key)
	return a
}

// addField decodes one field and records it.
func (h *Header) addField(f field, cfg *config.Config) {
	key := Normalize(f.name)
	body := strings.TrimSpace(f.body)

	a := h.attribute(f.name, key, false)
	switch {
	case isStructured(key):
		primary, params := ParseParams(body)
		a.add(primary, false)
		h.params[key] = append(h.params[key], params...)
	default:
		decoded := DecodeWords(body)
		if decoded == body && strings.Contains(body, "=?") {
			cfg.Log().Debug("encoded words left undecoded", "field", f.name)
		}
		a.add(decoded, false)
	}

	if addressFields[key] {
		h.addresses[key] = append(h.addresses[key], address.ParseList(body, DecodeWords)...)
	}
}

func isStructured(key string) bool {
	for _, s := range structuredFields {
		if s == key {
			return true
		}
	}
	return false
}

// liftParameters copies the parameters of the structured fields into
// attributes of their own. A parameter never replaces a real field.
func (h *Header) liftParameters() {
	for _, sf := range structuredFields {
		for _, p := range h.params[sf] {
			key := Normalize(p.Name)
			if a, ok := h.attrs[key]; ok && !a.param {
				continue
			}
			h.attribute(p.Name, key, true).add(p.Value, true)
		}
	}
}

// StripAngles trims whitespace and one pair of surrounding angle brackets,
// as found around Message-ID and Content-ID values.
func StripAngles(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<")
	s = strings.TrimSuffix(s, ">")
	return strings.TrimSpace(s)
}
