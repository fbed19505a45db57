package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/config"
	"github.com/lightfastai/hookgate/internal/hooks"
)

var permissionCmd = &cobra.Command{
	Use:   "permission [level]",
	Short: "Show or set the hook permission level",
	Long: `Show or set the permission level that governs hook registration and
execution.

Levels:
  disabled     No hooks register or execute
  safeOnly     Only low-risk hooks register and execute
  withWarning  All hooks register; high and critical risk hooks ask for
               consent before executing

Tightening the level (for example withWarning -> safeOnly) clears all cached
consent decisions. The level is persisted to hookgate.config.yml.

Examples:
  hookgate permission
  hookgate permission safeOnly`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"disabled", "safeOnly", "withWarning"}, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runPermission,
}

func init() {
	rootCmd.AddCommand(permissionCmd)
}

func runPermission(cmd *cobra.Command, args []string) error {
	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("Permission level: %s\n", cfg.Level())
		return nil
	}

	level, err := hooks.ParsePermissionLevel(args[0])
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, hooks.DenyAllProvider{})
	if err != nil {
		return err
	}
	if err := m.SetPermissionLevel(level); err != nil {
		return err
	}

	cfg.PermissionLevel = level.String()
	if err := cfg.Write(filepath.Join(projectRoot, config.ConfigFileName)); err != nil {
		return err
	}

	fmt.Printf("[hookgate] Permission level set to %s\n", level)
	return nil
}
