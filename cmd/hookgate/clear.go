package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/hooks"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all registered hooks",
	Long: `Remove every hook from the registry, along with all execution history
and cached consent decisions. Asks for confirmation unless --force is given.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "Skip confirmation")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, projectRoot, err := loadProject()
	if err != nil {
		return err
	}

	m, err := buildManager(cfg, projectRoot, hooks.DenyAllProvider{})
	if err != nil {
		return err
	}

	count := len(m.List())
	if count == 0 {
		fmt.Println("No hooks to clear")
		return nil
	}

	if !clearForce {
		fmt.Printf("Remove all %d hook(s)? [y/N]: ", count)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := m.ClearAll(); err != nil {
		return err
	}

	fmt.Printf("[hookgate] Removed %d hook(s)\n", count)
	return nil
}
