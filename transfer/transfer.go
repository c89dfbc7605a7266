package transfer

import (
	"bytes"
	"io"
	"strings"
)

// Encoding is a Content-Transfer-Encoding.
type Encoding int

// The transfer encodings. Other covers a missing header and any value not
// listed here.
const (
	Other Encoding = iota
	Bit7
	Bit8
	Binary
	Base64
	QuotedPrintable
)

// ParseEncoding maps a Content-Transfer-Encoding value to an Encoding. It is
// case-insensitive and ignores surrounding whitespace.
func ParseEncoding(s string) Encoding {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "7bit":
		return Bit7
	case "8bit":
		return Bit8
	case "binary":
		return Binary
	case "base64":
		return Base64
	case "quoted-printable":
		return QuotedPrintable
	default:
		return Other
	}
}

// String returns the header value for the encoding.
func (e Encoding) String() string {
	switch e {
	case Bit7:
		return "7bit"
	case Bit8:
		return "8bit"
	case Binary:
		return "binary"
	case Base64:
		return "base64"
	case QuotedPrintable:
		return "quoted-printable"
	default:
		return "other"
	}
}

// Transcoding is a pair of functions that can be used to transform to and from
// a transfer encoding.
type Transcoding struct {
	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader, which decodes the encoded data read from
	// the given io.Reader.
	Decoder func(io.Reader) io.Reader

	// Lenient decodes a whole buffer, salvaging what it can from bad input.
	Lenient func([]byte) []byte
}

// AsIsTranscoder is just a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder, asIs}

// Transcodings defines how each Encoding is handled.
var Transcodings = map[Encoding]Transcoding{
	Other:           AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder, DecodeQuotedPrintable},
	Base64:          {NewBase64Encoder, NewBase64Decoder, DecodeBase64},
}

func transcoding(e Encoding) Transcoding {
	if tc, ok := Transcodings[e]; ok {
		return tc
	}
	return AsIsTranscoder
}

// Decode decodes content in the given encoding. It never fails.
func Decode(e Encoding, content []byte) []byte {
	return transcoding(e).Lenient(content)
}

// NewDecoder returns a streaming decoder for the given encoding.
func NewDecoder(e Encoding, r io.Reader) io.Reader {
	return transcoding(e).Decoder(r)
}

// NewEncoder returns a streaming encoder for the given encoding. You must call
// Close() on the returned io.WriteCloser when you are finished writing.
func NewEncoder(e Encoding, w io.Writer) io.WriteCloser {
	return transcoding(e).Encoder(w)
}

// Encode encodes content in the given encoding.
func Encode(e Encoding, content []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := NewEncoder(e, buf)
	if _, err := w.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func asIs(b []byte) []byte {
	return b
}
