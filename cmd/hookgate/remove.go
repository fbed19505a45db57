package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/hooks"
)

var removeCmd = &cobra.Command{
	Use:               "remove <hook-id>",
	Short:             "Remove a registered hook",
	Long:              `Remove a hook from the registry along with its execution history and any cached consent.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: hookIDCompletion,
	RunE:              runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, hooks.DenyAllProvider{})
	if err != nil {
		return err
	}

	if err := m.Remove(args[0]); err != nil {
		return err
	}

	fmt.Printf("[hookgate] Removed hook %s\n", args[0])
	return nil
}
