package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/hooks"
)

var (
	listOutputJSON bool
	listEvent      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered hooks",
	Long: `List all registered hooks in registration order.

Use --event to restrict the listing to one lifecycle event.
Use --json for machine-readable output.

Examples:
  hookgate list
  hookgate list --event PreToolUse
  hookgate list --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listOutputJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVar(&listEvent, "event", "", "Only show hooks for this event")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, hooks.DenyAllProvider{})
	if err != nil {
		return err
	}

	all := m.List()

	if listEvent != "" {
		event, err := parseEventArg(listEvent)
		if err != nil {
			return err
		}
		filtered := make([]hooks.Hook, 0, len(all))
		for _, h := range all {
			if h.Event == event {
				filtered = append(filtered, h)
			}
		}
		all = filtered
	}

	if listOutputJSON {
		data, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(all) == 0 {
		fmt.Println("No hooks registered")
		fmt.Println("\nHint: Run 'hookgate add <event> --command <cmd>' to register one")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEVENT\tMATCHER\tRISK\tENABLED\tCOMMAND")
	for _, h := range all {
		enabled := "yes"
		if !h.Enabled {
			enabled = "no"
		}
		matcher := h.Matcher
		if matcher == "" {
			matcher = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			h.ID, h.Event, matcher, h.RiskLevel, enabled, h.Command)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal: %d hook(s), permission level %s\n", len(all), m.PermissionLevel())
	return nil
}
