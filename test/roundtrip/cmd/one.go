package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var oneCmd = &cobra.Command{
	Use:   "one message",
	Short: "Shows the diff of a single message round-trip",
	Args:  cobra.ExactArgs(1),
	Run:   RunOne,
}

func init() {
	rootCmd.AddCommand(oneCmd)
}

func RunOne(_ *cobra.Command, args []string) {
	path := args[0]

	orig, rt, err := roundTrip(path)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("path = %s\n", path)
	if bytes.Equal(orig, rt) {
		fmt.Println("round-trip OK")
		return
	}

	fmt.Println(prettyDiff(orig, rt))
	os.Exit(1)
}
