package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/go-imapmsg/message"
	"github.com/zostay/go-imapmsg/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.eml>...",
	Short: "save the attachments of messages to the configured store",
	Args:  cobra.MinimumNArgs(1),
	Run:   Extract,
}

func Extract(cmd *cobra.Command, args []string) {
	st, err := store.New(settings.Store)
	if err != nil {
		die("Failed to open attachment store: %v", err)
	}

	for _, path := range args {
		m, err := message.ParseFile(path, parseCfg)
		if err != nil {
			die("Failed to parse %s: %v", path, err)
		}

		if err := saveAttachments(cmd.Context(), st, m); err != nil {
			die("Failed to save attachments of %s: %v", path, err)
		}
	}
}

func saveAttachments(ctx context.Context, st store.Store, m *message.Message) error {
	if ctx == nil {
		ctx = context.Background()
	}

	locs, err := store.SaveAll(ctx, st, m)
	if errors.Is(err, store.ErrNoAttachments) {
		return nil
	}

	for _, loc := range locs {
		fmt.Println(loc)
	}
	return err
}
