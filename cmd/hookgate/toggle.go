package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/hooks"
)

var enableCmd = &cobra.Command{
	Use:               "enable <hook-id>",
	Short:             "Enable a hook",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: hookIDCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:               "disable <hook-id>",
	Short:             "Disable a hook without removing it",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: hookIDCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func setEnabled(id string, enabled bool) error {
	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, hooks.DenyAllProvider{})
	if err != nil {
		return err
	}

	h, err := m.Update(id, hooks.Patch{Enabled: &enabled})
	if err != nil {
		return err
	}

	state := "enabled"
	if !h.Enabled {
		state = "disabled"
	}
	fmt.Printf("[hookgate] Hook %s is now %s\n", h.ID, state)
	return nil
}
