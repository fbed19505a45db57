package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/hooks"
)

var (
	updateEvent   string
	updateMatcher string
	updateCommand string
	updateTimeout int
)

var updateCmd = &cobra.Command{
	Use:   "update <hook-id>",
	Short: "Update an existing hook",
	Long: `Apply a partial update to a registered hook. Only the flags you pass
change; everything else is preserved. The merged hook is re-classified, and
changing the command voids any consent previously granted for the hook.

Examples:
  hookgate update 3f1a... --command 'golangci-lint run'
  hookgate update 3f1a... --matcher 'Edit|Write|MultiEdit'
  hookgate update 3f1a... --timeout 30`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: hookIDCompletion,
	RunE:              runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateEvent, "event", "", "New lifecycle event")
	updateCmd.Flags().StringVar(&updateMatcher, "matcher", "", "New tool name pattern")
	updateCmd.Flags().StringVar(&updateCommand, "command", "", "New shell command")
	updateCmd.Flags().IntVar(&updateTimeout, "timeout", 0, "New timeout in seconds")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	var patch hooks.Patch

	if cmd.Flags().Changed("event") {
		event, err := parseEventArg(updateEvent)
		if err != nil {
			return err
		}
		patch.Event = &event
	}
	if cmd.Flags().Changed("matcher") {
		patch.Matcher = &updateMatcher
	}
	if cmd.Flags().Changed("command") {
		patch.Command = &updateCommand
	}
	if cmd.Flags().Changed("timeout") {
		patch.TimeoutSeconds = &updateTimeout
	}

	if patch.Event == nil && patch.Matcher == nil && patch.Command == nil && patch.TimeoutSeconds == nil {
		return fmt.Errorf("nothing to update: pass at least one of --event, --matcher, --command, --timeout")
	}

	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, terminalConsent{})
	if err != nil {
		return err
	}

	h, err := m.Update(args[0], patch)
	if err != nil {
		return err
	}

	fmt.Printf("[hookgate] Updated hook %s\n", h.ID)
	fmt.Printf("  event:   %s\n", h.Event)
	if h.Matcher != "" {
		fmt.Printf("  matcher: %s\n", h.Matcher)
	}
	fmt.Printf("  command: %s\n", h.Command)
	fmt.Printf("  risk:    %s\n", riskColor(string(h.RiskLevel)))

	return nil
}
