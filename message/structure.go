package message

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/header"
	"github.com/zostay/go-imapmsg/internal/scanner"
)

// Type says whether a Structure is multipart.
type Type int

// Structure types.
const (
	TypeText Type = iota
	TypeMultipart
)

// String returns "text" or "multipart".
func (t Type) String() string {
	if t == TypeMultipart {
		return "multipart"
	}
	return "text"
}

// Structure is the body of a message split into parts. A single part message
// has exactly one part, built with the message header.
type Structure struct {
	raw   string
	typ   Type
	parts []*Part
}

// Raw returns the body the structure was parsed from.
func (s *Structure) Raw() string {
	return s.raw
}

// Type returns TypeMultipart or TypeText.
func (s *Structure) Type() Type {
	return s.typ
}

// IsMultipart is true for multipart structures.
func (s *Structure) IsMultipart() bool {
	return s.typ == TypeMultipart
}

// Parts returns the parts in the order they appear.
func (s *Structure) Parts() []*Part {
	return append([]*Part(nil), s.parts...)
}

// Len returns the number of parts.
func (s *Structure) Len() int {
	return len(s.parts)
}

// ParseStructure splits a message body into parts according to the message
// header. A Content-Type starting with "multipart" selects multipart parsing,
// which requires a boundary parameter that actually appears in the body as a
// delimiter line; otherwise the error wraps ErrMissingBoundary.
//
// Boundaries declared by nested parts are normalized to the primary boundary
// before splitting, so nested multiparts come out as one flat list of parts.
// The multipart containers themselves are kept as parts of their own.
func ParseStructure(raw string, h *header.Header, cfg *config.Config) (*Structure, error) {
	cfg = config.OrDefault(cfg)

	if !strings.HasPrefix(strings.ToLower(h.ContentType()), "multipart") {
		return &Structure{
			raw:   raw,
			typ:   TypeText,
			parts: []*Part{NewPart(raw, h, 0, cfg)},
		}, nil
	}

	boundary := h.Boundary()
	if boundary == "" {
		return nil, fmt.Errorf("%w: no boundary parameter", ErrMissingBoundary)
	}

	cands := boundaryCandidates(raw, boundary, cfg.MaxBoundaryCandidates)
	if len(cands) > 0 {
		cfg.Log().Debug("normalizing nested boundaries", "boundary", boundary, "candidates", cands)
	}
	body := normalizeBoundaries(raw, boundary, cands)

	d := scanner.NewDelimited("--" + boundary)
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 4096), len(body)+bufio.MaxScanTokenSize)
	sc.Split(d.SplitFunc())

	s := &Structure{raw: raw, typ: TypeMultipart}
	for sc.Scan() {
		// leading line breaks stay, they mark a part with an empty header
		seg := strings.TrimRight(sc.Text(), " \t\r\n")
		if strings.TrimSpace(seg) == "" {
			continue
		}
		s.parts = append(s.parts, NewPart(seg, nil, len(s.parts), cfg))
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("splitting multipart body: %w", err)
	}

	if !d.Found {
		return nil, fmt.Errorf("%w: boundary %q not found in body", ErrMissingBoundary, boundary)
	}

	if !d.Closed {
		cfg.Log().Debug("multipart body is not closed", "boundary", boundary)
	}

	return s, nil
}
