// Package config holds the settings that steer message parsing. A *Config is
// passed explicitly to every parsing entry point. Nothing in this module reads
// global state, so two parsers with different settings can run side by side.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zostay/go-imapmsg/charset"
	"github.com/zostay/go-imapmsg/internal/logger"
)

// Defaults used by Default and New.
const (
	// DefaultMaxBoundaryCandidates caps how many secondary boundary
	// declarations are collected from a multipart body before splitting.
	DefaultMaxBoundaryCandidates = 16

	// DefaultCharset is assumed for text parts that declare no charset when
	// charset detection is off.
	DefaultCharset = charset.UTF8
)

// ErrUnknownIDStrategy is returned by ParseIDStrategy for an unrecognized
// name.
var ErrUnknownIDStrategy = errors.New("unknown attachment id strategy")

// IDStrategy selects how attachment ids are made for parts that carry no
// Content-ID.
type IDStrategy int

const (
	// RandomIDs hashes a random seed, so the same message parsed twice gets
	// different ids.
	RandomIDs IDStrategy = iota

	// ContentHashIDs hashes the part index and decoded content, so ids are
	// stable across parses.
	ContentHashIDs
)

// String returns the configuration name of the strategy.
func (s IDStrategy) String() string {
	switch s {
	case ContentHashIDs:
		return "content-hash"
	default:
		return "random"
	}
}

// ParseIDStrategy is the inverse of IDStrategy.String.
func ParseIDStrategy(s string) (IDStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return RandomIDs, nil
	case "content-hash", "content_hash", "hash":
		return ContentHashIDs, nil
	}
	return RandomIDs, fmt.Errorf("%w: %q", ErrUnknownIDStrategy, s)
}

// Config steers the parsers. The zero value is not useful; start from Default
// or New. A Config must not be modified while a parse that uses it is running.
type Config struct {
	// Logger receives debug messages about degraded decoding. Nil discards.
	Logger *slog.Logger

	// MaxBoundaryCandidates caps secondary boundary scanning.
	MaxBoundaryCandidates int

	// DetectCharset turns on charset sniffing for text parts with no declared
	// charset.
	DetectCharset bool

	// Detector is used when DetectCharset is set. Nil means charset.Detect.
	Detector charset.Detector

	// DefaultCharset is assumed for undeclared text when detection is off.
	DefaultCharset string

	// AttachmentIDs picks the id strategy for parts without a Content-ID.
	AttachmentIDs IDStrategy
}

// Option modifies a Config under construction.
type Option func(c *Config)

var defaultConfig = Config{
	MaxBoundaryCandidates: DefaultMaxBoundaryCandidates,
	DefaultCharset:        DefaultCharset,
	AttachmentIDs:         RandomIDs,
}

// Default returns a fresh copy of the default configuration.
func Default() *Config {
	c := defaultConfig
	return &c
}

// New returns the default configuration modified by the given options.
func New(opts ...Option) *Config {
	c := Default()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OrDefault returns c, or Default() when c is nil.
func OrDefault(c *Config) *Config {
	if c == nil {
		return Default()
	}
	return c
}

// Clone returns a shallow copy of the configuration.
func (c *Config) Clone() *Config {
	cc := *c
	return &cc
}

// WithLogger sets the logger for degraded decoding messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMaxBoundaryCandidates caps secondary boundary scanning. Values below one
// disable secondary boundary scanning entirely.
func WithMaxBoundaryCandidates(n int) Option {
	return func(c *Config) { c.MaxBoundaryCandidates = n }
}

// WithCharsetDetection turns on charset sniffing using the given detector. A
// nil detector selects charset.Detect.
func WithCharsetDetection(d charset.Detector) Option {
	return func(c *Config) {
		c.DetectCharset = true
		c.Detector = d
	}
}

// WithDefaultCharset sets the charset assumed for undeclared text.
func WithDefaultCharset(name string) Option {
	return func(c *Config) { c.DefaultCharset = name }
}

// WithAttachmentIDs sets the attachment id strategy.
func WithAttachmentIDs(s IDStrategy) Option {
	return func(c *Config) { c.AttachmentIDs = s }
}

// Log returns the configured logger or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return logger.Discard()
	}
	return c.Logger
}

// CharsetFor picks the charset to decode content with. A declared charset
// wins. Otherwise the detector runs when detection is enabled, and failing
// that DefaultCharset (or utf-8) is used.
func (c *Config) CharsetFor(declared string, content []byte) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}

	if c.DetectCharset {
		d := c.Detector
		if d == nil {
			d = charset.Detect
		}
		if name := d(content); name != "" {
			return name
		}
	}

	if c.DefaultCharset != "" {
		return c.DefaultCharset
	}

	return DefaultCharset
}
