package charset

import (
	"unicode/utf8"

	htmlcharset "golang.org/x/net/html/charset"
)

// Detector guesses the charset of undeclared content. It returns a charset
// label suitable for ToUTF8.
type Detector func(b []byte) string

// Detect is the default Detector. Valid UTF-8 (which includes plain ASCII) is
// reported as utf-8. Anything else is handed to the WHATWG sniffing algorithm,
// which looks for a BOM or a meta charset declaration and otherwise falls
// back to windows-1252.
func Detect(b []byte) string {
	if utf8.Valid(b) {
		return UTF8
	}

	_, name, _ := htmlcharset.DetermineEncoding(b, "text/plain")
	if name == "" {
		return UTF8
	}

	return name
}
