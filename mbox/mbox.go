// Package mbox parses every message of an mbox file, fanning the parsing out
// over a bounded number of goroutines.
package mbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/emersion/go-mbox"
	"golang.org/x/sync/errgroup"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/message"
)

// Result is the outcome of parsing one message. Index is the position of the
// message in the mbox, counting from zero.
type Result struct {
	Index   int
	Message *message.Message
	Err     error
}

// Parse reads all messages from r and parses them with up to workers
// goroutines. A workers value below one uses GOMAXPROCS. Results come back in
// mbox order. A message that fails to parse is reported in its Result; only
// a failure to read the mbox itself, or ctx ending, is returned as an error.
func Parse(ctx context.Context, r io.Reader, cfg *config.Config, workers int) ([]Result, error) {
	cfg = config.OrDefault(cfg)
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		rs      []*Result
		readErr error
	)

	mr := mbox.NewReader(r)
	for i := 0; gctx.Err() == nil; i++ {
		msg, err := mr.NextMessage()
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = fmt.Errorf("reading message %d: %w", i, err)
			break
		}

		raw, err := io.ReadAll(msg)
		if err != nil {
			readErr = fmt.Errorf("reading message %d: %w", i, err)
			break
		}

		res := &Result{Index: i}
		rs = append(rs, res)

		g.Go(func() error {
			res.Message, res.Err = message.Parse(bytes.NewReader(raw), cfg)
			if res.Err != nil {
				cfg.Log().Debug("mbox message failed to parse", "index", res.Index, "err", res.Err)
			}
			return nil
		})
	}

	_ = g.Wait()

	out := make([]Result, len(rs))
	for i, res := range rs {
		out[i] = *res
	}

	if readErr != nil {
		return out, readErr
	}

	return out, ctx.Err()
}
