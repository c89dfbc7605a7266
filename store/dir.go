package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zostay/go-imapmsg/message"
)

// Dir stores attachments as files below Root.
type Dir struct {
	Root string
}

// NewDir returns a store rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// Put writes the attachment to Root/key, creating directories as needed.
func (d *Dir) Put(ctx context.Context, key string, a *message.Attachment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := filepath.Join(d.Root, filepath.FromSlash(key))
	dir, name := filepath.Split(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	return a.Save(dir, name)
}
