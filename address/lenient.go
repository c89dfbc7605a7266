package address

import "strings"

// scanState tracks quoting while walking an address list.
type scanState struct {
	quoted  bool
	escaped bool
	angle   int
	comment int
}

// step updates the state for c and reports whether c sits at the top level,
// i.e. outside quotes, angle brackets and comments.
func (s *scanState) step(c rune) bool {
	switch {
	case s.escaped:
		s.escaped = false
		return false
	case c == '\\' && (s.quoted || s.comment > 0):
		s.escaped = true
		return false
	case s.quoted:
		if c == '"' {
			s.quoted = false
		}
		return false
	case s.comment > 0:
		switch c {
		case '(':
			s.comment++
		case ')':
			s.comment--
		}
		return false
	case c == '"':
		s.quoted = true
		return false
	case c == '(':
		s.comment++
		return false
	case c == '<':
		s.angle++
		return false
	case c == '>' && s.angle > 0:
		s.angle--
		return false
	case s.angle > 0:
		return false
	}
	return true
}

// hasTopLevel reports whether r occurs outside quotes, brackets and comments.
func hasTopLevel(s string, r rune) bool {
	var st scanState
	for _, c := range s {
		if st.step(c) && c == r {
			return true
		}
	}
	return false
}

// splitTopLevel splits s at top level commas. Group syntax is unwrapped so
// that "Team: a@b, c@d;" yields the members a@b and c@d.
func splitTopLevel(s string) []string {
	var (
		st     scanState
		tokens []string
		cur    strings.Builder
	)

	flush := func() {
		if t := strings.TrimSpace(cur.String()); t != "" {
			tokens = append(tokens, t)
		}
		cur.Reset()
	}

	for _, c := range s {
		top := st.step(c)
		switch {
		case top && c == ',':
			flush()
		case top && c == ':':
			// group display name, drop it
			cur.Reset()
		case top && c == ';':
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()

	return tokens
}

// extractComments separates the comments in s from everything else. Nested
// comments are kept inside the outer one.
func extractComments(s string) (string, string) {
	var clean, comment strings.Builder
	nestLevel := 0
	quoted := false
	for _, c := range s {
		switch {
		case c == '"' && nestLevel == 0:
			quoted = !quoted
			clean.WriteRune(c)
		case quoted:
			clean.WriteRune(c)
		case c == '(':
			nestLevel++
			if nestLevel > 1 {
				comment.WriteRune(c)
			}
		case c == ')':
			nestLevel--
			switch {
			case nestLevel == 0:
			case nestLevel < 0:
				nestLevel = 0
				clean.WriteRune(c)
			default:
				comment.WriteRune(c)
			}
		case nestLevel > 0:
			comment.WriteRune(c)
		default:
			clean.WriteRune(c)
		}
	}

	return clean.String(), comment.String()
}

// unquote strips one level of double quotes and backslash escapes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}

	s = s[1 : len(s)-1]
	var b strings.Builder
	escaped := false
	for _, c := range s {
		if !escaped && c == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(c)
	}
	return b.String()
}

// parseToken turns a single list entry into an Address.
func parseToken(tok string, decode func(string) string) (Address, bool) {
	clean, comment := extractComments(tok)
	clean = strings.TrimSpace(clean)
	comment = strings.TrimSpace(comment)

	var personal, mail string
	if lt := strings.LastIndex(clean, "<"); lt > -1 {
		personal = unquote(clean[:lt])
		mail = clean[lt+1:]
		if gt := strings.Index(mail, ">"); gt > -1 {
			mail = mail[:gt]
		}
	} else if strings.Contains(clean, "@") {
		parts := strings.Fields(clean)
		mail = parts[len(parts)-1]
		personal = unquote(strings.Join(parts[:len(parts)-1], " "))
	} else {
		mail = unquote(clean)
	}

	mail = strings.TrimSpace(mail)
	if personal == "" {
		personal = comment
	}

	if personal == "" && mail == "" {
		return Address{}, false
	}

	return fromMail(decode(personal), mail), true
}

// parseLenient is the fallback for lists the strict parser rejects.
func parseLenient(raw string, decode func(string) string) []Address {
	toks := splitTopLevel(raw)
	as := make([]Address, 0, len(toks))
	for _, tok := range toks {
		if a, ok := parseToken(tok, decode); ok {
			as = append(as, a)
		}
	}
	return as
}
