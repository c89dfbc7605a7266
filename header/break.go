package header

import "strings"

// Break represents the line break used by a message.
type Break string

// Line breaks found in the wild.
const (
	Meh  Break = ""         // no break found, e.g. a single line header
	CRLF Break = "\x0d\x0a" // \r\n - Network linebreak
	LF   Break = "\x0a"     // \n - Unix/Linux/BSD linebreak
	CR   Break = "\x0d"     // \r - Commodores/old Macs linebreak
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}

// DetectBreak returns the first line break used in s.
func DetectBreak(s string) Break {
	i := strings.IndexAny(s, "\r\n")
	switch {
	case i < 0:
		return Meh
	case s[i] == '\n':
		return LF
	case i+1 < len(s) && s[i+1] == '\n':
		return CRLF
	default:
		return CR
	}
}

// splitLines splits s into lines using the given break. The breaks are
// removed. A CRLF message with stray bare LFs is still split on the LFs.
func splitLines(s string, lbr Break) []string {
	if lbr == CR {
		return strings.Split(s, "\r")
	}

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
