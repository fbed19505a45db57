package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/hooks"
)

var (
	triggerTool    string
	triggerSession string
	triggerUser    string
	triggerParams  []string
	triggerJSON    bool
)

var triggerCmd = &cobra.Command{
	Use:   "trigger <event>",
	Short: "Fire a lifecycle event and run the matching hooks",
	Long: `Fire a lifecycle event. All enabled hooks registered for the event
whose matcher accepts the tool name run concurrently; each receives a JSON
document on stdin describing the event and HOOKGATE_* environment variables.

Exit codes:
  0 - All hooks succeeded (or none matched)
  1 - At least one hook errored
  2 - At least one hook blocked the operation

Examples:
  hookgate trigger PreToolUse --tool Bash --param command='rm -rf ./build'
  hookgate trigger UserPromptSubmit --param prompt='deploy to prod'
  hookgate trigger SessionStart --session abc123`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: eventCompletion,
	RunE:              runTrigger,
}

func init() {
	triggerCmd.Flags().StringVar(&triggerTool, "tool", "", "Tool name the event concerns")
	triggerCmd.Flags().StringVar(&triggerSession, "session", "", "Session identifier")
	triggerCmd.Flags().StringVar(&triggerUser, "user", "", "User identifier")
	triggerCmd.Flags().StringArrayVar(&triggerParams, "param", nil, "Event parameter as key=value (repeatable)")
	triggerCmd.Flags().BoolVar(&triggerJSON, "json", false, "Output results as JSON")
	rootCmd.AddCommand(triggerCmd)
}

func runTrigger(cmd *cobra.Command, args []string) error {
	event, err := parseEventArg(args[0])
	if err != nil {
		return err
	}

	params := map[string]any{}
	for _, p := range triggerParams {
		key, value, found := strings.Cut(p, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid --param %q: expected key=value", p)
		}
		params[key] = value
	}

	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, terminalConsent{})
	if err != nil {
		return err
	}

	results := m.Execute(cmd.Context(), hooks.ExecutionContext{
		Event:      event,
		ToolName:   triggerTool,
		Parameters: params,
		SessionID:  triggerSession,
		UserID:     triggerUser,
		Timestamp:  time.Now(),
	})

	if triggerJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printResults(event, results)
	}

	os.Exit(triggerExitCode(results))
	return nil
}

func printResults(event hooks.Event, results []hooks.ExecutionResult) {
	if len(results) == 0 {
		fmt.Printf("[hookgate] No hooks ran for %s\n", event)
		return
	}

	for _, r := range results {
		switch {
		case r.Blocked:
			fmt.Printf("%s %s (exit %d, %s)\n",
				color.RedString("✗ blocked"), r.HookID, r.ExitCode, r.Duration.Round(time.Millisecond))
		case r.Success:
			fmt.Printf("%s %s (%s)\n",
				color.GreenString("✓"), r.HookID, r.Duration.Round(time.Millisecond))
		default:
			fmt.Printf("%s %s (exit %d, %s)\n",
				color.YellowString("⚠ error"), r.HookID, r.ExitCode, r.Duration.Round(time.Millisecond))
		}
		if r.Feedback != "" {
			fmt.Printf("  %s\n", r.Feedback)
		}
	}
}

func triggerExitCode(results []hooks.ExecutionResult) int {
	code := 0
	for _, r := range results {
		if r.Blocked {
			return 2
		}
		if !r.Success {
			code = 1
		}
	}
	return code
}
