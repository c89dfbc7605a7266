package header

import (
	"encoding/base64"
	"strings"

	"github.com/zostay/go-imapmsg/charset"
)

// word is either literal text or the decoded bytes of one encoded word.
type word struct {
	text    string
	charset string
	data    []byte
	encoded bool
}

// parseWord tries to read an encoded word (=?charset?X?text?=) at the start
// of s. It returns the word and its length in s.
func parseWord(s string) (word, int, bool) {
	if !strings.HasPrefix(s, "=?") {
		return word{}, 0, false
	}

	rest := s[2:]
	q1 := strings.IndexByte(rest, '?')
	if q1 <= 0 || strings.ContainsAny(rest[:q1], " \t\r\n") {
		return word{}, 0, false
	}
	cs := rest[:q1]

	// RFC 2231 allows a language suffix: =?utf-8*en?Q?...?=
	if star := strings.IndexByte(cs, '*'); star > -1 {
		cs = cs[:star]
	}

	rest = rest[q1+1:]
	if len(rest) < 2 || rest[1] != '?' {
		return word{}, 0, false
	}
	enc := rest[0]

	rest = rest[2:]
	end := strings.Index(rest, "?=")
	if end < 0 {
		return word{}, 0, false
	}
	text := rest[:end]

	if _, err := charset.Lookup(cs); err != nil {
		return word{}, 0, false
	}

	var (
		data []byte
		ok   bool
	)
	switch enc {
	case 'B', 'b':
		data, ok = decodeB(text)
	case 'Q', 'q':
		data, ok = decodeQ(text), true
	}
	if !ok {
		return word{}, 0, false
	}

	n := 2 + q1 + 1 + 2 + end + 2
	return word{charset: cs, data: data, encoded: true}, n, true
}

// decodeB decodes the text of a B word, tolerating missing padding and stray
// whitespace.
func decodeB(text string) ([]byte, bool) {
	text = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, text)

	if b, err := base64.StdEncoding.DecodeString(text); err == nil {
		return b, true
	}

	if b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(text, "=")); err == nil {
		return b, true
	}

	return nil, false
}

// decodeQ decodes the text of a Q word. Bad escapes are kept literally.
func decodeQ(text string) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '_':
			out = append(out, ' ')
		case c == '=' && i+2 < len(text) && isHex(text[i+1]) && isHex(text[i+2]):
			out = append(out, unhex(text[i+1])<<4|unhex(text[i+2]))
			i += 2
		default:
			out = append(out, c)
		}
	}
	return out
}

// scanWords splits s into literal text and encoded words. Whitespace between
// two encoded words is dropped as RFC 2047 requires.
func scanWords(s string) []word {
	var (
		words []word
		lit   strings.Builder
	)

	flush := func(beforeWord bool) {
		if lit.Len() == 0 {
			return
		}
		text := lit.String()
		lit.Reset()
		if beforeWord && len(words) > 0 && words[len(words)-1].encoded && strings.TrimSpace(text) == "" {
			return
		}
		words = append(words, word{text: text})
	}

	for i := 0; i < len(s); {
		j := strings.Index(s[i:], "=?")
		if j < 0 {
			lit.WriteString(s[i:])
			break
		}

		lit.WriteString(s[i : i+j])
		i += j

		w, n, ok := parseWord(s[i:])
		if !ok {
			lit.WriteString("=?")
			i += 2
			continue
		}

		flush(true)
		words = append(words, w)
		i += n
	}
	flush(false)

	return words
}

// DecodeWords decodes the RFC 2047 encoded words in s into UTF-8. Adjacent
// words in the same charset are joined before conversion, so a multibyte
// character split across two words comes out whole. Anything that does not
// parse as an encoded word, including words in an unknown charset, is left
// as it is.
func DecodeWords(s string) string {
	if !strings.Contains(s, "=?") {
		return s
	}

	words := scanWords(s)

	var out strings.Builder
	for i := 0; i < len(words); i++ {
		w := words[i]
		if !w.encoded {
			out.WriteString(w.text)
			continue
		}

		data := w.data
		cs, _ := charset.Canonical(w.charset)
		for i+1 < len(words) && words[i+1].encoded {
			next, _ := charset.Canonical(words[i+1].charset)
			if next != cs {
				break
			}
			data = append(data, words[i+1].data...)
			i++
		}

		decoded, _ := charset.ToUTF8(data, cs)
		out.WriteString(decoded)
	}

	return out.String()
}

// HasEncodedWords reports whether s contains at least one decodable encoded
// word.
func HasEncodedWords(s string) bool {
	for i := strings.Index(s, "=?"); i > -1; {
		if _, _, ok := parseWord(s[i:]); ok {
			return true
		}
		j := strings.Index(s[i+2:], "=?")
		if j < 0 {
			return false
		}
		i += 2 + j
	}
	return false
}
