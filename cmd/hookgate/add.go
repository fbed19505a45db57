package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/hooks"
)

var (
	addCommand  string
	addMatcher  string
	addTimeout  int
	addDisabled bool
)

var addCmd = &cobra.Command{
	Use:   "add <event>",
	Short: "Register a new hook for a lifecycle event",
	Long: `Register an external command as a hook for a lifecycle event.

The command is security-classified at registration time. Under permission
level safeOnly only low-risk commands can be registered; under withWarning
any command registers, but high and critical commands require consent at
execution time.

Examples:
  # Run gofmt after every file edit
  hookgate add PostToolUse --matcher 'Edit|Write' --command 'gofmt -w "$HOOKGATE_FILE_PATH"'

  # Log every prompt
  hookgate add UserPromptSubmit --command 'cat >> ~/.prompts.log'

  # Guard Bash invocations, with a 10 second timeout
  hookgate add PreToolUse --matcher Bash --command './check.sh' --timeout 10`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: eventCompletion,
	RunE:              runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addCommand, "command", "", "Shell command to execute (required)")
	addCmd.Flags().StringVar(&addMatcher, "matcher", "", "Tool name pattern (regex, or pipe-separated names)")
	addCmd.Flags().IntVar(&addTimeout, "timeout", 0, "Timeout in seconds (0 uses the configured default)")
	addCmd.Flags().BoolVar(&addDisabled, "disabled", false, "Register the hook disabled")
	_ = addCmd.MarkFlagRequired("command")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	event, err := parseEventArg(args[0])
	if err != nil {
		return err
	}

	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, terminalConsent{})
	if err != nil {
		return err
	}

	h, err := m.Register(hooks.Hook{
		Event:          event,
		Matcher:        addMatcher,
		Command:        addCommand,
		Enabled:        !addDisabled,
		TimeoutSeconds: addTimeout,
	})
	if err != nil {
		return err
	}

	fmt.Printf("[hookgate] Registered hook %s\n", h.ID)
	fmt.Printf("  event:   %s\n", h.Event)
	if h.Matcher != "" {
		fmt.Printf("  matcher: %s\n", h.Matcher)
	}
	fmt.Printf("  command: %s\n", h.Command)
	fmt.Printf("  risk:    %s\n", riskColor(string(h.RiskLevel)))
	if !h.Enabled {
		fmt.Println("  state:   disabled")
	}

	return nil
}
