package message

import (
	"sort"
	"strings"
)

// readBoundaryValue reads a boundary parameter value, quoted or not, from the
// start of s.
func readBoundaryValue(s string) string {
	if strings.HasPrefix(s, `"`) {
		if end := strings.Index(s[1:], `"`); end > -1 {
			return s[1 : end+1]
		}
		return ""
	}

	end := strings.IndexAny(s, "; \t\r\n")
	if end < 0 {
		return s
	}
	return s[:end]
}

// boundaryCandidates collects the boundaries declared inside a multipart body,
// e.g. by a nested multipart/alternative part. The primary boundary is not
// included. At most limit candidates are returned.
func boundaryCandidates(body, primary string, limit int) []string {
	var found []string
	lower := asciiLower(body)
	const param = "boundary="

	for at := 0; len(found) < limit; {
		i := strings.Index(lower[at:], param)
		if i < 0 {
			break
		}
		at += i + len(param)

		b := readBoundaryValue(body[at:])
		if b == "" || b == primary {
			continue
		}

		dup := false
		for _, f := range found {
			if f == b {
				dup = true
				break
			}
		}
		if !dup {
			found = append(found, b)
		}
	}

	return found
}

// asciiLower lowercases ASCII letters only, so byte offsets are preserved.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// delimiterRest reports whether rest, the remainder of a line after a
// delimiter, makes the line a delimiter line, and whether it is a close
// delimiter.
func delimiterRest(rest string) (ok, closing bool) {
	switch strings.TrimRight(rest, " \t\r\n") {
	case "":
		return true, false
	case "--":
		return true, true
	}
	return false, false
}

// normalizeBoundaries rewrites delimiter lines of the candidate boundaries as
// delimiter lines of the primary boundary. Close delimiters of a candidate
// become plain delimiters, so a nested part closing does not close the
// message. This flattens nested multiparts into a single list of parts.
func normalizeBoundaries(body, primary string, candidates []string) string {
	if len(candidates) == 0 {
		return body
	}

	// longest first, so a candidate that is a prefix of another cannot steal
	// its lines
	cands := append([]string(nil), candidates...)
	sort.SliceStable(cands, func(i, j int) bool { return len(cands[i]) > len(cands[j]) })

	var b strings.Builder
	b.Grow(len(body))
	for _, line := range strings.SplitAfter(body, "\n") {
		if strings.HasPrefix(line, "--") {
			for _, c := range cands {
				rest, found := strings.CutPrefix(line, "--"+c)
				if !found {
					continue
				}
				if ok, closing := delimiterRest(rest); ok {
					if closing {
						rest = strings.TrimPrefix(strings.TrimLeft(rest, " \t"), "--")
					}
					line = "--" + primary + rest
					break
				}
			}
		}
		b.WriteString(line)
	}

	return b.String()
}
