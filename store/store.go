// Package store saves extracted attachments somewhere durable: a directory on
// disk or an S3 compatible bucket.
package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/message"
)

// ErrNoAttachments is returned by SaveAll for a message without attachments.
var ErrNoAttachments = errors.New("message has no attachments")

// Store puts an attachment under a key and returns where it went.
type Store interface {
	Put(ctx context.Context, key string, a *message.Attachment) (string, error)
}

// New returns the store selected by the settings: S3 when a bucket is named,
// otherwise a directory.
func New(s config.StoreSettings) (Store, error) {
	if s.S3.Bucket != "" {
		return NewS3(s.S3)
	}
	return NewDir(s.Dir), nil
}

// safe makes s usable as a single key segment.
func safe(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '<', '>', ':', '"', '|', '?', '*':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

// Key returns the key an attachment is stored under: a directory named for
// the message id holding a file named by attachment id and file name.
func Key(m *message.Message, a *message.Attachment) string {
	dir := m.MessageID()
	if dir == "" {
		dir = "no-message-id"
	}

	name := a.ID()
	if fn := a.Filename(); fn != "" {
		name += "-" + fn
	}

	return path.Join(safe(dir), safe(name))
}

// SaveAll puts every attachment of m into st and returns the locations in
// attachment order.
func SaveAll(ctx context.Context, st Store, m *message.Message) ([]string, error) {
	as := m.Attachments().All()
	if len(as) == 0 {
		return nil, ErrNoAttachments
	}

	locs := make([]string, 0, len(as))
	for _, a := range as {
		loc, err := st.Put(ctx, Key(m, a), a)
		if err != nil {
			return locs, fmt.Errorf("storing attachment %q: %w", a.Name(), err)
		}
		locs = append(locs, loc)
	}

	return locs, nil
}
