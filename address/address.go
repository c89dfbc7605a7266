// Package address parses the address lists found in From, To, Cc and similar
// header fields. Parsing never fails. A strict RFC 5322 parse is tried first
// and anything it rejects goes through a forgiving tokenizer that accepts the
// sort of thing real mail clients send.
package address

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// Address is a single parsed mailbox. Every field may be empty.
type Address struct {
	Personal string // display name, RFC 2047 decoded
	Mailbox  string // local part
	Host     string // domain
	Mail     string // mailbox@host, or just mailbox when there is no host
	Full     string // "Personal" <mailbox@host>, or Mail when there is no personal name
}

// New builds an Address and fills in Mail and Full from the parts.
func New(personal, mailbox, host string) Address {
	a := Address{
		Personal: personal,
		Mailbox:  mailbox,
		Host:     host,
		Mail:     mailbox,
	}

	if host != "" {
		a.Mail = mailbox + "@" + host
	}

	a.Full = a.Mail
	if personal != "" {
		a.Full = `"` + strings.ReplaceAll(personal, `"`, `\"`) + `" <` + a.Mail + ">"
	}

	return a
}

// String returns Full.
func (a Address) String() string {
	return a.Full
}

// IsZero is true when the address carries no information at all.
func (a Address) IsZero() bool {
	return a.Personal == "" && a.Mailbox == "" && a.Host == ""
}

// fromMail splits an addr-spec at the last @.
func fromMail(personal, mail string) Address {
	if i := strings.LastIndex(mail, "@"); i > -1 {
		return New(personal, mail[:i], mail[i+1:])
	}
	return New(personal, mail, "")
}

// ParseList parses an address field body into addresses in order. The
// decode function is applied to every personal name and is meant for RFC
// 2047 decoding. It may be nil.
func ParseList(raw string, decode func(string) string) []Address {
	if decode == nil {
		decode = func(s string) string { return s }
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	// groups are left to the lenient tokenizer, which flattens them
	if !hasTopLevel(raw, ':') {
		if al, err := addr.ParseEmailAddressList(raw); err == nil && len(al) > 0 {
			as := make([]Address, 0, len(al))
			for _, a := range al {
				as = append(as, fromMail(decode(unquote(a.DisplayName())), a.Address()))
			}
			return as
		}
	}

	return parseLenient(raw, decode)
}
