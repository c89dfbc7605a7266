package message

import "strings"

var splits = []string{
	"\x0d\x0a\x0d\x0a", // \r\n\r\n
	"\x0a\x0d\x0a\x0d", // \n\r\n\r, extremely unlikely, possibly never
	"\x0a\x0a",         // \n\n
	"\x0d\x0d",         // \r\r
}

// searchForSplit looks for a header/body split. Returns -1 if none is found.
// If the header/body split is found, it returns the location just past the
// split and the line break in use.
func searchForSplit(buf string, subpart bool) (pos int, crlf string) {
	if subpart {
		// if the header is empty, the first char might be a line break, indicating
		// an empty header, right? It happens.
		for _, s := range splits {
			if strings.HasPrefix(buf, s[0:len(s)/2]) {
				return len(s) / 2, s[0 : len(s)/2]
			}
		}
	}

	// the earliest split wins, so a \n\n in the body cannot beat a \r\n\r\n
	// that ends the header
	pos = -1
	for _, s := range splits {
		if testPos := strings.Index(buf, s); testPos > -1 && (pos < 0 || testPos+len(s) < pos) {
			pos = testPos + len(s)
			crlf = s[0 : len(s)/2]
		}
	}
	return
}

// looksLikeHeader is true when the first line of s reads like a header
// field: a name without spaces followed by a colon.
func looksLikeHeader(s string) bool {
	line := s
	if i := strings.IndexAny(s, "\r\n"); i > -1 {
		line = s[:i]
	}

	colon := strings.Index(line, ":")
	return colon > 0 && !strings.ContainsAny(line[:colon], " \t")
}

// SplitHeader splits a complete message into its header and body. The header
// keeps the blank line that ends it, so header+body is always the input. A
// message with no blank line is all header.
func SplitHeader(raw string) (string, string) {
	pos, _ := searchForSplit(raw, false)
	if pos < 0 {
		return raw, ""
	}
	return raw[:pos], raw[pos:]
}

// splitPart splits a part segment into header and body. A segment that starts
// with a blank line has an empty header. A segment with no blank line is all
// header if it looks like one, and all body otherwise.
func splitPart(raw string) (string, string) {
	pos, _ := searchForSplit(raw, true)
	if pos < 0 {
		if looksLikeHeader(raw) {
			return raw, ""
		}
		return "", raw
	}
	return raw[:pos], raw[pos:]
}
