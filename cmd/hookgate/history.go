package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/hooks"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history <hook-id>",
	Short: "Show the execution history of a hook",
	Long: `Show the recorded executions of a hook, oldest first. The log keeps
the most recent executions up to the configured limit.

Note: history lives in memory for the duration of a process, so this shows
executions recorded by long-running embedders, not past CLI invocations.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: hookIDCompletion,
	RunE:              runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, hooks.DenyAllProvider{})
	if err != nil {
		return err
	}

	// Surface NotFound for unknown IDs before reading history
	if _, err := m.Get(args[0]); err != nil {
		return err
	}

	entries := m.History(args[0])

	if historyJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Printf("No recorded executions for hook %s\n", args[0])
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RESULT\tEXIT\tDURATION\tFEEDBACK")
	for _, e := range entries {
		result := "ok"
		switch {
		case e.Blocked:
			result = "blocked"
		case !e.Success:
			result = "error"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			result, e.ExitCode, e.Duration.Round(time.Millisecond), e.Feedback)
	}
	return w.Flush()
}
