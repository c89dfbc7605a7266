package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-imapmsg/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	c := config.New()
	assert.Equal(t, config.DefaultMaxBoundaryCandidates, c.MaxBoundaryCandidates)
	assert.Equal(t, "utf-8", c.DefaultCharset)
	assert.Equal(t, config.RandomIDs, c.AttachmentIDs)
	assert.False(t, c.DetectCharset)
	assert.NotNil(t, c.Log())

	c = config.New(
		config.WithMaxBoundaryCandidates(2),
		config.WithDefaultCharset("latin1"),
		config.WithAttachmentIDs(config.ContentHashIDs),
	)
	assert.Equal(t, 2, c.MaxBoundaryCandidates)
	assert.Equal(t, "latin1", c.DefaultCharset)
	assert.Equal(t, config.ContentHashIDs, c.AttachmentIDs)

	// defaults are not shared
	c.MaxBoundaryCandidates = 99
	assert.Equal(t, config.DefaultMaxBoundaryCandidates, config.Default().MaxBoundaryCandidates)
}

func TestOrDefault(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, config.OrDefault(nil))

	c := config.New(config.WithMaxBoundaryCandidates(3))
	assert.Same(t, c, config.OrDefault(c))
}

func TestCharsetFor(t *testing.T) {
	t.Parallel()

	c := config.New()
	assert.Equal(t, "koi8-r", c.CharsetFor(" koi8-r ", nil))
	assert.Equal(t, "utf-8", c.CharsetFor("", []byte("caf\xe9")))

	c = config.New(config.WithCharsetDetection(nil))
	assert.Equal(t, "windows-1252", c.CharsetFor("", []byte("caf\xe9")))

	c = config.New(config.WithCharsetDetection(func([]byte) string { return "euc-kr" }))
	assert.Equal(t, "euc-kr", c.CharsetFor("", []byte("anything")))

	c = config.New(config.WithCharsetDetection(func([]byte) string { return "" }))
	assert.Equal(t, "utf-8", c.CharsetFor("", nil))
}

func TestParseIDStrategy(t *testing.T) {
	t.Parallel()

	s, err := config.ParseIDStrategy("Content-Hash")
	require.NoError(t, err)
	assert.Equal(t, config.ContentHashIDs, s)
	assert.Equal(t, "content-hash", s.String())

	s, err = config.ParseIDStrategy("")
	require.NoError(t, err)
	assert.Equal(t, config.RandomIDs, s)

	_, err = config.ParseIDStrategy("sequential")
	assert.ErrorIs(t, err, config.ErrUnknownIDStrategy)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "imapmsg.yaml")
	err := os.WriteFile(path, []byte(`
log:
  level: debug
parse:
  max_boundary_candidates: 4
  detect_charset: true
  attachment_ids: content-hash
imap:
  addr: imap.example.com:993
  username: me
store:
  s3:
    bucket: attachments
`), 0o644)
	require.NoError(t, err)

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, 4, s.Parse.MaxBoundaryCandidates)
	assert.Equal(t, "utf-8", s.Parse.DefaultCharset)
	assert.Equal(t, "imap.example.com:993", s.IMAP.Addr)
	assert.True(t, s.IMAP.TLS)
	assert.Equal(t, "INBOX", s.IMAP.Mailbox)
	assert.Equal(t, "attachments", s.Store.S3.Bucket)
	assert.Equal(t, "us-east-1", s.Store.S3.Region)

	c, err := s.Parser()
	require.NoError(t, err)
	assert.Equal(t, 4, c.MaxBoundaryCandidates)
	assert.True(t, c.DetectCharset)
	assert.Equal(t, config.ContentHashIDs, c.AttachmentIDs)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	s, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxBoundaryCandidates, s.Parse.MaxBoundaryCandidates)
	assert.Equal(t, "random", s.Parse.AttachmentIDs)
}
