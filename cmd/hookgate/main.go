package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hgerrors "github.com/lightfastai/hookgate/internal/errors"
	"github.com/lightfastai/hookgate/internal/logger"
)

// CLI entry point for the hookgate tool

var (
	// Version information - will be set via ldflags during build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagVerbose bool
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "hookgate",
	Short: "Manage lifecycle hooks for agent sessions",
	Long: `hookgate is a CLI tool that manages lifecycle hooks: external commands
bound to agent lifecycle events such as PreToolUse, PostToolUse and
UserPromptSubmit. Hooks are security-classified at registration, gated by a
permission level and user consent, and executed concurrently with timeouts
when their event fires.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(flagVerbose, flagDebug)
	},
}

func init() {
	// Custom version template that includes commit and build date
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Commit: {{.Annotations.commit}}
Built: {{.Annotations.date}}
`)

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["commit"] = commit
	rootCmd.Annotations["date"] = date

	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var hgErr *hgerrors.Error
		if errors.As(err, &hgErr) {
			fmt.Fprint(os.Stderr, hgErr.Format())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
