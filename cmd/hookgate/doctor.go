package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/health"
	"github.com/lightfastai/hookgate/internal/hooks"
	"github.com/lightfastai/hookgate/internal/logger"
	"github.com/lightfastai/hookgate/internal/security"
)

var (
	doctorJSON    bool
	doctorVerbose bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks and validate hookgate configuration",
	Long: `Run health checks to validate hookgate configuration and detect issues.

The doctor command performs the following checks:
  - Shell availability
  - Configuration file validation
  - Hook store validation
  - Hook registry validation
  - Permission level review
  - Command risk review

Exit codes:
  0 - All checks passed
  1 - Some checks passed with warnings
  2 - Some checks failed with errors

Examples:
  # Run all health checks
  hookgate doctor

  # Output results as JSON for CI/automation
  hookgate doctor --json

  # Verbose output with detailed information
  hookgate doctor --verbose`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output results as JSON")
	doctorCmd.Flags().BoolVarP(&doctorVerbose, "verbose", "v", false, "Show detailed information for each check")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := &health.CheckerContext{
		Validator: security.NewStaticValidator(),
		Verbose:   doctorVerbose,
	}

	cfg, projectRoot, err := loadProject()
	if err == nil {
		ctx.Config = cfg
		ctx.ProjectRoot = projectRoot

		m, err := buildManager(cfg, projectRoot, hooks.DenyAllProvider{})
		if err != nil {
			logger.Warn("failed to load hook registry", "error", err)
		} else {
			ctx.Manager = m
		}
	}

	result := health.RunAll(ctx)

	if doctorJSON {
		jsonOutput, err := result.FormatJSON()
		if err != nil {
			return fmt.Errorf("failed to format JSON output: %w", err)
		}
		fmt.Println(jsonOutput)
	} else {
		fmt.Print(result.Format(doctorVerbose))
	}

	os.Exit(result.ExitCode)
	return nil
}
