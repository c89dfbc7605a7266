// Package imapfetch fetches messages from an IMAP server and hands the raw
// header, text and flags of each one to message.Make.
package imapfetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/message"
)

// ErrNoAddress is returned by Dial when no server address is configured.
var ErrNoAddress = errors.New("no IMAP server address configured")

var (
	headerSection = &imap.FetchItemBodySection{Specifier: imap.PartSpecifierHeader, Peek: true}
	textSection   = &imap.FetchItemBodySection{Specifier: imap.PartSpecifierText, Peek: true}
)

// Raw is a message as fetched, before parsing.
type Raw struct {
	UID    uint32
	Header []byte
	Text   []byte
	Flags  []string
}

// Message parses the raw message. A missing header section fails with
// message.ErrNoHeaders and a missing text section with message.ErrNoContent.
func (r Raw) Message(cfg *config.Config) (*message.Message, error) {
	if r.Header == nil {
		return nil, &message.ParseError{Stage: message.StageHeader, Err: message.ErrNoHeaders}
	}
	if r.Text == nil {
		return nil, &message.ParseError{Stage: message.StageBody, Err: message.ErrNoContent}
	}

	return message.Make(string(r.Header), string(r.Text), r.Flags, cfg)
}

// Result pairs a UID with its parsed message or the error that stopped it.
type Result struct {
	UID     uint32
	Message *message.Message
	Err     error
}

// Client is a logged in IMAP connection.
type Client struct {
	c   *imapclient.Client
	cfg *config.Config
}

// Dial connects and logs in. TLS is used unless the settings turn it off.
func Dial(s config.IMAPSettings, cfg *config.Config) (*Client, error) {
	cfg = config.OrDefault(cfg)
	if s.Addr == "" {
		return nil, ErrNoAddress
	}

	var (
		c   *imapclient.Client
		err error
	)
	if s.TLS {
		c, err = imapclient.DialTLS(s.Addr, nil)
	} else {
		c, err = imapclient.DialInsecure(s.Addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", s.Addr, err)
	}

	if err := c.Login(s.Username, s.Password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("logging in to %s as %s: %w", s.Addr, s.Username, err)
	}

	cfg.Log().Debug("logged in", "addr", s.Addr, "username", s.Username)

	return &Client{c: c, cfg: cfg}, nil
}

// Close logs out and closes the connection.
func (c *Client) Close() error {
	if err := c.c.Logout().Wait(); err != nil {
		_ = c.c.Close()
		return err
	}
	return c.c.Close()
}

// Select opens a mailbox read only and returns its message count.
func (c *Client) Select(mailbox string) (uint32, error) {
	data, err := c.c.Select(mailbox, &imap.SelectOptions{ReadOnly: true}).Wait()
	if err != nil {
		return 0, fmt.Errorf("selecting %s: %w", mailbox, err)
	}
	return data.NumMessages, nil
}

// Since returns the UIDs of the messages received since the given time.
func (c *Client) Since(since time.Time) ([]uint32, error) {
	data, err := c.c.UIDSearch(&imap.SearchCriteria{Since: since}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching since %s: %w", since.Format(time.DateOnly), err)
	}

	uids := data.AllUIDs()
	out := make([]uint32, len(uids))
	for i, u := range uids {
		out[i] = uint32(u)
	}
	return out, nil
}

// FetchRaw fetches the header, text and flags of the given messages from the
// selected mailbox without marking them seen.
func (c *Client) FetchRaw(ctx context.Context, uids []uint32) ([]Raw, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	set := make([]imap.UID, len(uids))
	for i, u := range uids {
		set[i] = imap.UID(u)
	}

	cmd := c.c.Fetch(imap.UIDSetNum(set...), &imap.FetchOptions{
		UID:         true,
		Flags:       true,
		BodySection: []*imap.FetchItemBodySection{headerSection, textSection},
	})
	defer func() { _ = cmd.Close() }()

	var raws []Raw
	for {
		if err := ctx.Err(); err != nil {
			return raws, err
		}

		msg := cmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			return raws, fmt.Errorf("reading fetched message: %w", err)
		}

		raws = append(raws, fromBuffer(buf))
	}

	if err := cmd.Close(); err != nil {
		return raws, fmt.Errorf("fetching messages: %w", err)
	}

	return raws, nil
}

func fromBuffer(buf *imapclient.FetchMessageBuffer) Raw {
	r := Raw{
		UID:    uint32(buf.UID),
		Header: buf.FindBodySection(headerSection),
		Text:   buf.FindBodySection(textSection),
	}
	for _, f := range buf.Flags {
		r.Flags = append(r.Flags, string(f))
	}
	return r
}

// Fetch fetches and parses the given messages. A message that fails to parse
// is reported in its Result and does not stop the others.
func (c *Client) Fetch(ctx context.Context, uids []uint32) ([]Result, error) {
	raws, err := c.FetchRaw(ctx, uids)
	return Parse(raws, c.cfg), err
}

// Parse turns fetched messages into results, in order.
func Parse(raws []Raw, cfg *config.Config) []Result {
	cfg = config.OrDefault(cfg)

	rs := make([]Result, len(raws))
	for i, r := range raws {
		m, err := r.Message(cfg)
		if err != nil {
			cfg.Log().Debug("message failed to parse", "uid", r.UID, "err", err)
		}
		rs[i] = Result{UID: r.UID, Message: m, Err: err}
	}
	return rs
}
