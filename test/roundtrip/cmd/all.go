package cmd

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all dir",
	Short: "Round-trips every .eml file below a directory and lists failures",
	Args:  cobra.ExactArgs(1),
	Run:   RunAll,
}

var showDiff bool

func init() {
	allCmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "show the diff of each failure")
	rootCmd.AddCommand(allCmd)
}

func RunAll(_ *cobra.Command, args []string) {
	var total, failed int
	err := filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".eml") {
			return nil
		}

		total++
		orig, rt, err := roundTrip(path)
		switch {
		case err != nil:
			failed++
			fmt.Printf("ERROR %s: %v\n", path, err)
		case !bytes.Equal(orig, rt):
			failed++
			fmt.Printf("DIFF  %s\n", path)
			if showDiff {
				fmt.Println(prettyDiff(orig, rt))
			}
		}
		return nil
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d of %d messages round-tripped\n", total-failed, total)
	if failed > 0 {
		os.Exit(1)
	}
}
