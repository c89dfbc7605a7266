package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zostay/go-imapmsg/imapfetch"
	"github.com/zostay/go-imapmsg/store"
)

var (
	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "fetch recent messages from the configured IMAP server and summarize them",
		Args:  cobra.NoArgs,
		Run:   Fetch,
	}

	since     time.Duration
	limit     int
	doExtract bool
)

func init() {
	fetchCmd.Flags().DurationVar(&since, "since", 7*24*time.Hour, "how far back to look")
	fetchCmd.Flags().IntVarP(&limit, "limit", "n", 20, "fetch at most this many of the newest messages")
	fetchCmd.Flags().BoolVarP(&doExtract, "extract", "x", false, "save attachments to the configured store")
}

func Fetch(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := imapfetch.Dial(settings.IMAP, parseCfg)
	if err != nil {
		die("Failed to connect: %v", err)
	}
	defer func() { _ = c.Close() }()

	if _, err := c.Select(settings.IMAP.Mailbox); err != nil {
		die("%v", err)
	}

	uids, err := c.Since(time.Now().Add(-since))
	if err != nil {
		die("%v", err)
	}
	if limit > 0 && len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	rs, err := c.Fetch(ctx, uids)
	if err != nil {
		die("%v", err)
	}

	var st store.Store
	if doExtract {
		if st, err = store.New(settings.Store); err != nil {
			die("Failed to open attachment store: %v", err)
		}
	}

	for _, r := range rs {
		if r.Err != nil {
			fmt.Printf("UID %d: %v\n", r.UID, r.Err)
			continue
		}

		fmt.Printf("\nUID %d\n", r.UID)
		summarize(os.Stdout, r.Message)

		if st != nil {
			if err := saveAttachments(ctx, st, r.Message); err != nil {
				die("Failed to save attachments of UID %d: %v", r.UID, err)
			}
		}
	}
}
