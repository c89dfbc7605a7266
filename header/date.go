package header

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-imapmsg/config"
)

// ErrInvalidDate is wrapped by every *DateError.
var ErrInvalidDate = errors.New("invalid date")

// DateError is recorded when the Date field cannot be parsed.
type DateError struct {
	Value string // the field body
}

// Error returns the error message.
func (err *DateError) Error() string {
	return fmt.Sprintf("date %q cannot be parsed", err.Value)
}

// Unwrap returns ErrInvalidDate.
func (err *DateError) Unwrap() error {
	return ErrInvalidDate
}

// Even more custom date formats, built from those seen in the wild that the
// usual parsers have trouble with.
const (
	// UnixDateWithEarlyYear is a weird one, eh?
	UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

	// NoDayNoSeconds shows up in mail from some mobile clients.
	NoDayNoSeconds = "2 Jan 2006 15:04 -0700"
)

// cleanDate strips comments, collapses whitespace, drops a zone name that
// follows a numeric offset and upper-cases a trailing "ut".
func cleanDate(s string) string {
	var b strings.Builder
	depth := 0
	for _, c := range s {
		switch {
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case depth > 0:
		default:
			b.WriteRune(c)
		}
	}

	fields := strings.Fields(b.String())
	if n := len(fields); n >= 2 && isOffset(fields[n-2]) && isAlpha(fields[n-1]) {
		fields = fields[:n-1]
	}
	if n := len(fields); n >= 1 && strings.EqualFold(fields[n-1], "ut") {
		fields[n-1] = "UT"
	}

	return strings.Join(fields, " ")
}

func isOffset(s string) bool {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return s != ""
}

// ParseTime parses a date in many formats, trying the RFC 5322 format first.
func ParseTime(body string) (time.Time, error) {
	for _, s := range []string{body, cleanDate(body)} {
		if t, err := mail.ParseDate(s); err == nil {
			return t, nil
		}

		if t, err := dateparse.ParseAny(s); err == nil {
			return t, nil
		}

		for _, layout := range []string{UnixDateWithEarlyYear, NoDayNoSeconds} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, &DateError{Value: body}
}

// parseDate parses the first Date field and records a failure.
func (h *Header) parseDate(cfg *config.Config) {
	if !h.Has(Date) {
		return
	}

	body := h.First(Date)
	t, err := ParseTime(body)
	if err != nil {
		h.dateErr = err
		h.problems = append(h.problems, err)
		cfg.Log().Debug("unparseable date", "date", body)
		return
	}

	h.date = t
}
