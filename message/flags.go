package message

import "strings"

// The IMAP system flags kept by ParseFlags, in their normalized form.
const (
	FlagRecent   = "recent"
	FlagFlagged  = "flagged"
	FlagAnswered = "answered"
	FlagDeleted  = "deleted"
	FlagSeen     = "seen"
	FlagDraft    = "draft"
)

var knownFlags = map[string]bool{
	FlagRecent:   true,
	FlagFlagged:  true,
	FlagAnswered: true,
	FlagDeleted:  true,
	FlagSeen:     true,
	FlagDraft:    true,
}

// Flags is the set of system flags on a message. The zero value is empty.
type Flags struct {
	keys   []string
	tokens map[string]string
}

// ParseFlags normalizes raw IMAP flags such as `\Seen`. The backslash is
// dropped and the name lowercased. Keywords and unknown flags are ignored. An
// element holding several space separated flags is split.
func ParseFlags(raw []string) Flags {
	var f Flags
	for _, r := range raw {
		for _, tok := range strings.Fields(strings.Trim(r, "()")) {
			key := strings.ToLower(strings.TrimPrefix(tok, `\`))
			if !knownFlags[key] {
				continue
			}

			if f.tokens == nil {
				f.tokens = map[string]string{}
			}
			if _, dup := f.tokens[key]; !dup {
				f.keys = append(f.keys, key)
			}
			f.tokens[key] = tok
		}
	}
	return f
}

// Has is true when the flag, in normalized form, is set.
func (f Flags) Has(name string) bool {
	_, ok := f.tokens[strings.ToLower(strings.TrimPrefix(name, `\`))]
	return ok
}

// Token returns the flag as the server sent it.
func (f Flags) Token(name string) string {
	return f.tokens[strings.ToLower(strings.TrimPrefix(name, `\`))]
}

// Keys returns the normalized flags in the order found.
func (f Flags) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Len returns the number of flags set.
func (f Flags) Len() int {
	return len(f.keys)
}
