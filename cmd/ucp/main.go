package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ucp/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	store     string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "ucp",
	Short: "Keyword-driven text scoring and template-based solution planning",
	Long: "ucp scores text against fixed keyword and regex tables: bias-pattern\n" +
		"counting, compression by pattern removal, problem detection, and\n" +
		"template-based solution plans recombined from a pattern store.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.store, "store", "", "Pattern store path (default $UCP_STORE or .ucp/patterns.json; .db selects sqlite)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(loopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
