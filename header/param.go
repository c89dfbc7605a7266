package header

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zostay/go-imapmsg/charset"
)

// Param is a parameter of a structured field, e.g. the charset in
// "text/plain; charset=utf-8".
type Param struct {
	Name  string
	Value string
}

// rawParam is a parameter exactly as tokenized.
type rawParam struct {
	name  string
	value string
}

// paramScanner tokenizes the parameter list of a structured field following
// the RFC 2045 grammar, with some slack: unquoted values may contain spaces
// and an unterminated quoted string runs to the end of input.
type paramScanner struct {
	s   string
	pos int
}

func (ps *paramScanner) done() bool {
	return ps.pos >= len(ps.s)
}

func (ps *paramScanner) skipSpace() {
	for !ps.done() && (ps.s[ps.pos] == ' ' || ps.s[ps.pos] == '\t') {
		ps.pos++
	}
}

// until consumes up to (not including) the first byte in stops.
func (ps *paramScanner) until(stops string) string {
	start := ps.pos
	for !ps.done() && !strings.ContainsRune(stops, rune(ps.s[ps.pos])) {
		ps.pos++
	}
	return ps.s[start:ps.pos]
}

// quoted consumes a quoted string, the opening quote already skipped.
func (ps *paramScanner) quoted() string {
	var b strings.Builder
	for !ps.done() {
		c := ps.s[ps.pos]
		ps.pos++
		switch {
		case c == '\\' && !ps.done():
			b.WriteByte(ps.s[ps.pos])
			ps.pos++
		case c == '"':
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// next returns the next parameter. ok is false at the end of input.
func (ps *paramScanner) next() (rawParam, bool) {
	for {
		ps.skipSpace()
		if ps.done() {
			return rawParam{}, false
		}
		if ps.s[ps.pos] != ';' {
			break
		}
		ps.pos++
	}

	name := strings.TrimSpace(ps.until("=;"))
	if ps.done() || ps.s[ps.pos] == ';' {
		return rawParam{name: name}, name != "" || !ps.done()
	}

	ps.pos++ // =
	ps.skipSpace()

	var value string
	if !ps.done() && ps.s[ps.pos] == '"' {
		ps.pos++
		value = ps.quoted()
		ps.until(";") // anything after the closing quote is junk
	} else {
		value = strings.TrimSpace(ps.until(";"))
	}

	return rawParam{name: name, value: value}, true
}

// ParseParams splits the body of a structured field into its principal value
// and parameters. RFC 2231 continuations (name*0, name*1*, ...) and extended
// values (name*=charset'lang'value) are put back together, and RFC 2047
// encoded words in plain values are decoded. Parameter names are lower-cased.
func ParseParams(body string) (string, []Param) {
	ps := &paramScanner{s: body}
	primary := strings.TrimSpace(ps.until(";"))

	var raws []rawParam
	for {
		p, ok := ps.next()
		if !ok {
			break
		}
		if p.name == "" {
			continue
		}
		p.name = strings.ToLower(p.name)
		raws = append(raws, p)
	}

	return primary, reassemble(raws)
}

// section is one piece of an RFC 2231 parameter.
type section struct {
	index    int
	value    string
	extended bool
}

// splitSectionName takes apart "name*2*" into name, index 2 and extended.
// Plain names are reported with ok false.
func splitSectionName(n string) (base string, index int, extended bool, ok bool) {
	star := strings.Index(n, "*")
	if star < 0 {
		return n, 0, false, false
	}

	base, rest := n[:star], n[star+1:]
	if rest == "" {
		return base, 0, true, true
	}

	if strings.HasSuffix(rest, "*") {
		extended = true
		rest = rest[:len(rest)-1]
	}

	index, err := strconv.Atoi(rest)
	if err != nil {
		return n, 0, false, false
	}

	return base, index, extended, true
}

// reassemble merges RFC 2231 sections into single parameters. When a
// parameter appears both plain and in RFC 2231 form, the RFC 2231 value wins.
// Output is in order of first appearance.
func reassemble(raws []rawParam) []Param {
	var (
		order    []string
		plain    = map[string]string{}
		sections = map[string][]section{}
	)

	seen := func(base string) {
		if _, ok := plain[base]; ok {
			return
		}
		if _, ok := sections[base]; ok {
			return
		}
		order = append(order, base)
	}

	for _, r := range raws {
		base, index, extended, ok := splitSectionName(r.name)
		seen(base)
		if !ok {
			if _, dup := plain[base]; !dup {
				plain[base] = r.value
			}
			continue
		}
		sections[base] = append(sections[base], section{index, r.value, extended})
	}

	params := make([]Param, 0, len(order))
	for _, base := range order {
		if secs, ok := sections[base]; ok {
			params = append(params, Param{base, joinSections(secs)})
			continue
		}
		params = append(params, Param{base, DecodeWords(plain[base])})
	}

	return params
}

// joinSections concatenates sections in index order. The charset named by the
// first section applies to the whole value.
func joinSections(secs []section) string {
	sort.SliceStable(secs, func(i, j int) bool { return secs[i].index < secs[j].index })

	var (
		buf []byte
		cs  string
	)
	for i, s := range secs {
		v := s.value
		if s.extended {
			if i == 0 {
				cs, v = splitCharsetPrefix(v)
			}
			buf = append(buf, percentDecode(v)...)
			continue
		}
		buf = append(buf, v...)
	}

	if cs == "" {
		return DecodeWords(strings.ToValidUTF8(string(buf), ""))
	}

	out, _ := charset.ToUTF8(buf, cs)
	return out
}

// splitCharsetPrefix splits "utf-8'en'value" into "utf-8" and "value". A
// value without two quotes is returned whole with no charset.
func splitCharsetPrefix(v string) (string, string) {
	first := strings.Index(v, "'")
	if first < 0 {
		return "", v
	}
	second := strings.Index(v[first+1:], "'")
	if second < 0 {
		return "", v
	}
	return v[:first], v[first+1+second+1:]
}

// percentDecode decodes %XX escapes. A % not followed by two hex digits is
// kept as is.
func percentDecode(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return out
}

// PercentDecode decodes %XX escapes in s, leaving anything else alone.
func PercentDecode(s string) string {
	return string(percentDecode(s))
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
