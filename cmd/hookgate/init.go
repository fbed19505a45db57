package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new hookgate configuration",
	Long: `Creates a new hookgate.config.yml file in the current directory with
sensible defaults: permission level withWarning, a 60 second hook timeout and
the hook store at .hookgate/hooks.json.

If a configuration file already exists, use --force to overwrite it.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite existing configuration file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		if !forceInit {
			return fmt.Errorf("configuration file already exists at %s\nUse --force to overwrite", configPath)
		}
		fmt.Printf("[hookgate] Overwriting existing configuration at %s\n", configPath)
	}

	if err := config.Default().Write(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("[hookgate] Initialized configuration at %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Register a hook with: hookgate add <event> --command <cmd>")
	fmt.Println("  2. Fire an event with: hookgate trigger <event>")
	fmt.Println("  3. Check your setup with: hookgate doctor")

	return nil
}
