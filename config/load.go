package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/zostay/go-imapmsg/internal/logger"
)

// EnvPrefix is the prefix for environment variables read by Load. A key such
// as parse.detect_charset becomes IMAPMSG_PARSE_DETECT_CHARSET.
const EnvPrefix = "IMAPMSG"

// ParseSettings is the file form of Config.
type ParseSettings struct {
	MaxBoundaryCandidates int    `mapstructure:"max_boundary_candidates"`
	DetectCharset         bool   `mapstructure:"detect_charset"`
	DefaultCharset        string `mapstructure:"default_charset"`
	AttachmentIDs         string `mapstructure:"attachment_ids"`
}

// IMAPSettings tells the fetch tool where to find mail.
type IMAPSettings struct {
	Addr     string `mapstructure:"addr"`
	TLS      bool   `mapstructure:"tls"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Mailbox  string `mapstructure:"mailbox"`
}

// S3Settings configures the S3 attachment store.
type S3Settings struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// StoreSettings configures where extracted attachments go. S3 is used when a
// bucket is named, otherwise Dir.
type StoreSettings struct {
	Dir string     `mapstructure:"dir"`
	S3  S3Settings `mapstructure:"s3"`
}

// Settings is everything Load reads.
type Settings struct {
	Log   logger.Config `mapstructure:"log"`
	Parse ParseSettings `mapstructure:"parse"`
	IMAP  IMAPSettings  `mapstructure:"imap"`
	Store StoreSettings `mapstructure:"store"`
}

func setDefaults(v *viper.Viper) {
	lc := logger.DefaultConfig()
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.format", lc.Format)
	v.SetDefault("log.output", lc.Output)
	v.SetDefault("log.add_source", lc.AddSource)
	v.SetDefault("parse.max_boundary_candidates", DefaultMaxBoundaryCandidates)
	v.SetDefault("parse.detect_charset", false)
	v.SetDefault("parse.default_charset", DefaultCharset)
	v.SetDefault("parse.attachment_ids", RandomIDs.String())
	v.SetDefault("imap.tls", true)
	v.SetDefault("imap.mailbox", "INBOX")
	v.SetDefault("store.dir", ".")
	v.SetDefault("store.s3.region", "us-east-1")

	// AutomaticEnv only applies to keys viper already knows about
	v.SetDefault("imap.addr", "")
	v.SetDefault("imap.username", "")
	v.SetDefault("imap.password", "")
	v.SetDefault("store.s3.bucket", "")
	v.SetDefault("store.s3.endpoint", "")
	v.SetDefault("store.s3.access_key", "")
	v.SetDefault("store.s3.secret_key", "")
	v.SetDefault("store.s3.prefix", "")
}

// Load reads settings from the given file (YAML, TOML or JSON, chosen by
// extension) and from IMAPMSG_* environment variables, which win over the
// file. An empty path or a missing file yields the defaults plus environment.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			var pathErr *os.PathError
			if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return s, nil
}

// Parser converts the parse settings into a Config that logs to log.
func (s *Settings) Parser() (*Config, error) {
	ids, err := ParseIDStrategy(s.Parse.AttachmentIDs)
	if err != nil {
		return nil, err
	}

	c := New(
		WithLogger(logger.New(s.Log)),
		WithMaxBoundaryCandidates(s.Parse.MaxBoundaryCandidates),
		WithDefaultCharset(s.Parse.DefaultCharset),
		WithAttachmentIDs(ids),
	)
	if s.Parse.DetectCharset {
		WithCharsetDetection(nil)(c)
	}

	return c, nil
}
