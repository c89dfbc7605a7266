package charset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned when no decoder can be found for a charset
// label.
var ErrUnknownCharset = errors.New("unknown charset")

// replacement is the UTF-8 encoding of U+FFFD, which the x/text decoders emit
// for bytes they cannot map.
var replacement = []byte("\uFFFD")

// Lookup returns the encoding for the given charset label. Labels are first
// canonicalized through the alias table and then resolved with the IANA MIME
// index, the full IANA index and finally the WHATWG index.
func Lookup(name string) (encoding.Encoding, error) {
	c, _ := Canonical(name)
	switch c {
	case "":
		return nil, fmt.Errorf("%w: empty label", ErrUnknownCharset)
	case USASCII, UTF8:
		return unicode.UTF8, nil
	}

	if e, err := ianaindex.MIME.Encoding(c); err == nil && e != nil {
		return e, nil
	}

	if e, err := ianaindex.IANA.Encoding(c); err == nil && e != nil {
		return e, nil
	}

	if e, err := htmlindex.Get(c); err == nil && e != nil {
		return e, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}

// ToUTF8 converts b from the named charset into a UTF-8 string. Conversion
// is skipped for US-ASCII. Bytes that cannot be mapped are dropped rather than
// replaced.
//
// If the charset is unknown, the bytes are returned as UTF-8 with invalid
// sequences removed along with an error wrapping ErrUnknownCharset. Callers
// that want best effort decoding can ignore the error.
func ToUTF8(b []byte, name string) (string, error) {
	c, _ := Canonical(name)
	if c == USASCII || c == UTF8 || c == "" {
		return strings.ToValidUTF8(string(b), ""), nil
	}

	e, err := Lookup(c)
	if err != nil {
		return strings.ToValidUTF8(string(b), ""), err
	}

	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), ""), fmt.Errorf("decoding %s: %w", c, err)
	}

	if !bytes.Contains(b, replacement) {
		out = bytes.ReplaceAll(out, replacement, nil)
	}

	return strings.ToValidUTF8(string(out), ""), nil
}

// NewReader returns a reader that converts the named charset to UTF-8 as it
// is read. The signature matches mime.WordDecoder.CharsetReader.
func NewReader(name string, r io.Reader) (io.Reader, error) {
	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return transform.NewReader(r, e.NewDecoder()), nil
}
