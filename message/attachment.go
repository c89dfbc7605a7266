package message

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/zostay/go-imapmsg/charset"
	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/header"
)

// ErrNoFilename is returned by Save when neither the caller nor the
// attachment supplies a file name.
var ErrNoFilename = errors.New("attachment has no file name")

// Attachment is a non-body part of a message with its content decoded.
type Attachment struct {
	part *Part

	id          string
	name        string
	filename    string
	description string
	content     []byte
}

// newAttachment builds the attachment for p. The returned attachment may fail
// retained, in which case the caller drops it.
func newAttachment(p *Part, cfg *config.Config) *Attachment {
	a := &Attachment{
		part:        p,
		description: p.Description(),
		content:     p.Decoded(),
	}

	a.name = decodeName(p.Name())
	a.filename = decodeName(p.Filename())
	if a.name == "" {
		a.name = a.filename
	}

	if p.Type() == "message" && a.name == "" {
		if p.HasDescription() && a.description != "" {
			a.name = a.description
		} else {
			a.name = p.Subtype()
		}
	}

	if a.filename == "" {
		a.filename = a.name
	}

	a.id = p.ID()
	if a.id == "" {
		a.id = makeID(cfg.AttachmentIDs, p.Index(), a.content)
	}

	return a
}

// retained is true when the attachment has a name and some content.
func (a *Attachment) retained() bool {
	return a.name != "" && len(a.content) > 0
}

// makeID returns a hex sha256 id for an attachment without a Content-ID.
func makeID(s config.IDStrategy, index int, content []byte) string {
	h := sha256.New()
	switch s {
	case config.ContentHashIDs:
		h.Write([]byte(strconv.Itoa(index) + ":"))
		h.Write(content)
	default:
		h.Write([]byte(uuid.NewString()))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// decodeName decodes an attachment name. Mail clients send names as RFC 2231
// values stuffed into plain parameters, as RFC 2047 encoded words and as
// percent escaped text, sometimes in combination.
func decodeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if cs, v, ok := strings.Cut(s, "''"); ok && charset.IsKnown(cs) {
		if u, err := charset.ToUTF8([]byte(header.PercentDecode(v)), cs); err == nil {
			s = u
		}
	}

	if header.HasEncodedWords(s) {
		s = header.DecodeWords(s)
	}

	if strings.Contains(s, "%") {
		s = header.PercentDecode(s)
	}

	return s
}

// ID returns the Content-ID of the attachment or a generated id.
func (a *Attachment) ID() string { return a.id }

// Name returns the decoded name.
func (a *Attachment) Name() string { return a.name }

// Filename returns the decoded file name, which falls back to the name.
func (a *Attachment) Filename() string { return a.filename }

// Description returns the decoded Content-Description.
func (a *Attachment) Description() string { return a.description }

// Disposition returns the lowercased Content-Disposition, e.g. "inline".
func (a *Attachment) Disposition() string { return a.part.Disposition() }

// ContentType returns the declared media type, e.g. "application/pdf".
func (a *Attachment) ContentType() string { return a.part.ContentType() }

// Type returns the major media type, e.g. "image".
func (a *Attachment) Type() string { return a.part.Type() }

// Size returns the length of the decoded content.
func (a *Attachment) Size() int { return len(a.content) }

// Content returns the decoded content.
func (a *Attachment) Content() []byte { return a.content }

// Index returns the index of the part the attachment came from.
func (a *Attachment) Index() int { return a.part.Index() }

// Part returns the part the attachment came from.
func (a *Attachment) Part() *Part { return a.part }

// Header returns the header of the part.
func (a *Attachment) Header() *header.Header { return a.part.Header() }

// MimeType returns the media type detected from the content itself, which
// may differ from the declared ContentType.
func (a *Attachment) MimeType() string {
	return mimetype.Detect(a.content).String()
}

// Extension returns the file extension, without the dot, of the detected
// media type. When detection yields nothing it falls back to the extension
// of the file name.
func (a *Attachment) Extension() string {
	if ext := mimetype.Detect(a.content).Extension(); ext != "" {
		return strings.TrimPrefix(ext, ".")
	}
	return strings.TrimPrefix(filepath.Ext(a.filename), ".")
}

// ImgSrc returns the content as a data URI suitable for an img src
// attribute.
func (a *Attachment) ImgSrc() string {
	ct := a.ContentType()
	if ct == "" || !strings.Contains(ct, "/") {
		ct = a.MimeType()
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(a.content)
}

// Save writes the content into dir. An empty filename selects the
// attachment's own file name. Directory components of the name are dropped so
// the file always lands in dir. It returns the path written.
func (a *Attachment) Save(dir, filename string) (string, error) {
	if filename == "" {
		filename = a.filename
	}

	filename = filepath.Base(filepath.Clean("/" + filename))
	if filename == "/" || filename == "." {
		return "", ErrNoFilename
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, a.content, 0o644); err != nil {
		return "", fmt.Errorf("saving attachment %q: %w", a.id, err)
	}

	return path, nil
}
