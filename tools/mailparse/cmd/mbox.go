package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-imapmsg/mbox"
	"github.com/zostay/go-imapmsg/metrics"
)

var (
	mboxCmd = &cobra.Command{
		Use:   "mbox <file.mbox>",
		Short: "parse every message of an mbox file and report failures",
		Args:  cobra.ExactArgs(1),
		Run:   Mbox,
	}

	workers     int
	metricsFile string
)

func init() {
	mboxCmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of parsing goroutines (default GOMAXPROCS)")
	mboxCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
}

func Mbox(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		die("Failed to open %s: %v", args[0], err)
	}
	defer func() { _ = f.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rs, err := mbox.Parse(ctx, f, parseCfg, workers)
	if err != nil {
		die("Failed to read %s: %v", args[0], err)
	}

	mc := metrics.New()
	failed := 0
	for _, r := range rs {
		mc.Observe(r.Message, r.Err)
		if r.Err != nil {
			failed++
			fmt.Printf("message %d: %v\n", r.Index, r.Err)
			continue
		}
		fmt.Printf("message %d: %s (%d attachments)\n", r.Index, r.Message.Subject(), r.Message.Attachments().Len())
	}

	fmt.Printf("%d messages, %d failed\n", len(rs), failed)

	if metricsFile != "" {
		if err := mc.WriteToTextfile(metricsFile); err != nil {
			die("Failed to write metrics: %v", err)
		}
	}
}
