package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-imapmsg/config"
)

var (
	configFile string

	settings *config.Settings
	parseCfg *config.Config

	rootCmd = &cobra.Command{
		Use:              "mailparse",
		Short:            "Parse messages from files, mbox archives and IMAP servers",
		PersistentPreRun: loadSettings,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "settings file (YAML, TOML or JSON)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(mboxCmd)
	rootCmd.AddCommand(fetchCmd)
}

func Execute() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}

func loadSettings(_ *cobra.Command, _ []string) {
	var err error
	settings, err = config.Load(configFile)
	if err != nil {
		die("Failed to load settings: %v", err)
	}

	parseCfg, err = settings.Parser()
	if err != nil {
		die("Invalid parse settings: %v", err)
	}

	slog.SetDefault(parseCfg.Log())
}

func die(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
