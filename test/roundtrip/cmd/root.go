package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-imapmsg/message"
)

var rootCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Tools for testing message round-tripping",
}

func Execute() error {
	return rootCmd.Execute()
}

// roundTrip parses the message at path and writes it back out. It returns
// the original and the rewritten bytes.
func roundTrip(path string) ([]byte, []byte, error) {
	orig, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	m, err := message.Parse(bytes.NewReader(orig), nil)
	if err != nil {
		return orig, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	buf := &bytes.Buffer{}
	if _, err := m.WriteTo(buf); err != nil {
		return orig, nil, fmt.Errorf("writing %s: %w", path, err)
	}

	return orig, buf.Bytes(), nil
}

// prettyDiff renders the differences between a and b for a terminal.
func prettyDiff(a, b []byte) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(a), string(b), false)
	return dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs))
}
