package transfer

import (
	"encoding/base64"
	"io"
)

const defaultBase64LineLength = 76

var defaultBase64LineBreak = []byte{'\n'}

// newlineWriter inserts a line break every so many bytes.
type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	n := 0
	for len(b)+nw.acc > nw.every {
		ln, err := nw.w.Write(b[:nw.every-nw.acc])
		n += ln
		if err != nil {
			return n, err
		}

		if _, err = nw.w.Write(nw.lbr); err != nil {
			return n, err
		}

		b = b[nw.every-nw.acc:]
		nw.acc = 0
	}

	ln, err := nw.w.Write(b)
	n += ln
	nw.acc += ln
	return n, err
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding and write those to the give io.Writer.
// Lines are wrapped at 76 characters.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	enc := base64.NewEncoder(base64.StdEncoding, &newlineWriter{
		every: defaultBase64LineLength,
		lbr:   defaultBase64LineBreak,
		w:     w,
	})
	return &writer{enc, enc}
}

// NewBase64Decoder will translate all bytes read from the given io.Reader as
// base64 and return the binary data to the returned io.Reader.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}

func isBase64Char(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') || c == '+' || c == '/'
}

// DecodeBase64 decodes base64 content, ignoring line breaks and any other
// character outside the base64 alphabet. Padding ends a block, and blocks
// that some mailers glue together are each decoded in turn.
func DecodeBase64(b []byte) []byte {
	out := make([]byte, 0, base64.StdEncoding.DecodedLen(len(b)))
	chunk := make([]byte, 0, len(b))

	flush := func() {
		// a lone trailing character cannot hold a whole byte
		if len(chunk)%4 == 1 {
			chunk = chunk[:len(chunk)-1]
		}
		buf := make([]byte, base64.RawStdEncoding.DecodedLen(len(chunk)))
		n, _ := base64.RawStdEncoding.Decode(buf, chunk)
		out = append(out, buf[:n]...)
		chunk = chunk[:0]
	}

	for _, c := range b {
		switch {
		case isBase64Char(c):
			chunk = append(chunk, c)
		case c == '=':
			flush()
		}
	}
	flush()

	return out
}
