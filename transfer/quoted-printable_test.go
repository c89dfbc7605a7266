package transfer_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-imapmsg/transfer"
)

var qpEnc = []byte("=3D>?")
var qpDec = []byte{0x3d, 0x3e, 0x3f}

func TestNewQuotedPrintableDecoder(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader(qpEnc)
	qpdr := transfer.NewQuotedPrintableDecoder(r)
	db, err := io.ReadAll(qpdr)
	assert.NoError(t, err)
	assert.Equal(t, qpDec, db)
}

func TestNewQuotedPrintableEncoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	qpewc := transfer.NewQuotedPrintableEncoder(w)
	n, err := qpewc.Write(qpDec)
	assert.Equal(t, len(qpDec), n)
	assert.NoError(t, err)

	err = qpewc.Close()
	assert.NoError(t, err)

	assert.Equal(t, qpEnc, w.Bytes())
}

func TestDecodeQuotedPrintable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("caf\xe9 soft break"),
		transfer.DecodeQuotedPrintable([]byte("caf=E9 soft=\r\n break")))

	// a bogus escape does not cost us the rest of the text
	assert.Equal(t, []byte("100=ZZ percent = yes\n"),
		transfer.DecodeQuotedPrintable([]byte("100=ZZ percent =3D yes\n")))
}
