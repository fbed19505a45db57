package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lightfastai/hookgate/internal/config"
	"github.com/lightfastai/hookgate/internal/env"
	hgerrors "github.com/lightfastai/hookgate/internal/errors"
	"github.com/lightfastai/hookgate/internal/hooks"
	"github.com/lightfastai/hookgate/internal/store"
)

// loadProject locates and parses the project configuration
func loadProject() (*config.Config, string, error) {
	cfg, projectRoot, err := config.LoadConfig()
	if err != nil {
		return nil, "", hgerrors.ConfigNotFound().WithCause(err)
	}
	return cfg, projectRoot, nil
}

// buildManager wires the file store, validator and consent provider into a
// loaded hook manager
func buildManager(cfg *config.Config, projectRoot string, consent hooks.ConsentProvider) (*hooks.Manager, error) {
	fileStore := store.NewFileStore(cfg.StorePath(projectRoot))

	var extraEnv map[string]string
	if path := cfg.EnvFilePath(projectRoot); path != "" {
		vars, err := env.LoadEnvFile(path)
		if err != nil {
			return nil, err
		}
		extraEnv = vars
	}

	m := hooks.NewManager(hooks.Options{
		Store:          fileStore,
		Consent:        consent,
		Level:          cfg.Level(),
		HistoryLimit:   cfg.HistoryLimit,
		DefaultTimeout: cfg.DefaultTimeout(),
		ExtraEnv:       extraEnv,
		AutoSave:       cfg.AutoSave,
	})
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// terminalConsent asks the user on the terminal before a risky hook runs.
// Without a TTY it fails closed.
type terminalConsent struct{}

func (terminalConsent) Confirm(h hooks.Hook) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, nil
	}

	fmt.Fprintf(os.Stderr, "%s hook %s is classified %s\n",
		color.YellowString("Warning:"), h.ID, color.RedString(string(h.RiskLevel)))
	fmt.Fprintf(os.Stderr, "  command: %s\n", h.Command)
	fmt.Fprint(os.Stderr, "Execute this hook? [y/N]: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// parseEventArg validates a positional event argument
func parseEventArg(arg string) (hooks.Event, error) {
	event := hooks.Event(arg)
	if !event.IsValid() {
		return "", hgerrors.Validation(fmt.Sprintf("unknown event %q", arg)).
			WithFix("Valid events: " + eventNames())
	}
	return event, nil
}

func eventNames() string {
	names := make([]string, 0, len(hooks.Events))
	for _, e := range hooks.Events {
		names = append(names, e.String())
	}
	return strings.Join(names, ", ")
}

// eventCompletion completes event names for positional arguments
func eventCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(hooks.Events))
	for _, e := range hooks.Events {
		names = append(names, e.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// hookIDCompletion completes registered hook IDs from the store
func hookIDCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, projectRoot, err := loadProject()
	if err != nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}

	m, err := buildManager(cfg, projectRoot, hooks.DenyAllProvider{})
	if err != nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}

	ids := []string{}
	for _, h := range m.List() {
		ids = append(ids, h.ID)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// riskColor renders a risk level with the conventional color
func riskColor(risk string) string {
	switch risk {
	case "critical":
		return color.New(color.FgRed, color.Bold).Sprint(risk)
	case "high":
		return color.RedString(risk)
	case "medium":
		return color.YellowString(risk)
	default:
		return color.GreenString(risk)
	}
}
