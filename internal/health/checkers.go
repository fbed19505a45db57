package health

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lightfastai/hookgate/internal/config"
	"github.com/lightfastai/hookgate/internal/hooks"
	"github.com/lightfastai/hookgate/internal/security"
)

// CheckerContext holds the context for running health checks
type CheckerContext struct {
	Config      *config.Config
	ProjectRoot string
	Manager     *hooks.Manager
	Validator   security.Validator
	Verbose     bool
}

// CheckShell validates that a POSIX shell is available for hook execution
func CheckShell() Check {
	check := NewCheck("Shell", StatusPass, "")

	path, err := exec.LookPath("sh")
	if err != nil {
		return check.
			WithStatus(StatusError).
			WithMessage("No 'sh' found on PATH; hooks cannot execute").
			WithError(err).
			WithFixAction("Install a POSIX shell or fix your PATH")
	}

	return check.WithMessage(fmt.Sprintf("POSIX shell available (%s)", path))
}

// CheckConfigFile validates the configuration file
func CheckConfigFile(ctx *CheckerContext) Check {
	check := NewCheck("Configuration File", StatusPass, "")

	if ctx.Config == nil {
		return check.
			WithStatus(StatusError).
			WithMessage(fmt.Sprintf("No %s found", config.ConfigFileName)).
			WithFixAction("Run 'hookgate init' to create a configuration file")
	}

	configPath := filepath.Join(ctx.ProjectRoot, config.ConfigFileName)
	details := []string{
		fmt.Sprintf("Location: %s", configPath),
		fmt.Sprintf("Version: %d", ctx.Config.Version),
		fmt.Sprintf("Permission level: %s", ctx.Config.Level()),
	}

	if ctx.Config.Version != config.SupportedVersion {
		return check.
			WithStatus(StatusError).
			WithMessage(fmt.Sprintf("Unsupported config version %d (expected %d)", ctx.Config.Version, config.SupportedVersion)).
			WithDetails(details...)
	}

	return check.
		WithMessage("Valid configuration").
		WithDetails(details...)
}

// CheckStoreFile validates the hook store file on disk
func CheckStoreFile(ctx *CheckerContext) Check {
	check := NewCheck("Hook Store", StatusPass, "")

	if ctx.Config == nil {
		return check.
			WithStatus(StatusWarn).
			WithMessage("No configuration, store location unknown")
	}

	storePath := ctx.Config.StorePath(ctx.ProjectRoot)
	if _, err := os.Stat(storePath); os.IsNotExist(err) {
		return check.
			WithStatus(StatusWarn).
			WithMessage("Store file does not exist yet").
			WithDetails("Location: " + storePath).
			WithFixAction("Run 'hookgate add' to register your first hook")
	}

	// #nosec G304 - path comes from project config
	data, err := os.ReadFile(storePath)
	if err != nil {
		return check.
			WithStatus(StatusError).
			WithMessage("Failed to read store file").
			WithError(err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return check.
			WithStatus(StatusError).
			WithMessage("Store file is corrupt (invalid JSON)").
			WithError(err).
			WithFixAction("Delete " + storePath + " and re-register your hooks")
	}

	return check.
		WithMessage(fmt.Sprintf("Valid store with %d entr%s", len(entries), plural(len(entries), "y", "ies"))).
		WithDetails("Location: " + storePath)
}

// CheckRegistry validates the loaded hook registry
func CheckRegistry(ctx *CheckerContext) Check {
	check := NewCheck("Hook Registry", StatusPass, "")

	if ctx.Manager == nil {
		return check.
			WithStatus(StatusError).
			WithMessage("Hook registry could not be loaded")
	}

	all := ctx.Manager.List()
	enabled := 0
	perEvent := map[hooks.Event]int{}
	for _, h := range all {
		if h.Enabled {
			enabled++
		}
		perEvent[h.Event]++
	}

	details := []string{
		fmt.Sprintf("Registered: %d", len(all)),
		fmt.Sprintf("Enabled: %d", enabled),
	}
	for _, ev := range hooks.Events {
		if n := perEvent[ev]; n > 0 {
			details = append(details, fmt.Sprintf("%s: %d", ev, n))
		}
	}

	if len(all) == 0 {
		return check.
			WithStatus(StatusWarn).
			WithMessage("No hooks registered").
			WithFixAction("Run 'hookgate add <event> --command <cmd>' to register a hook")
	}

	return check.
		WithMessage(fmt.Sprintf("%d hook(s) registered, %d enabled", len(all), enabled)).
		WithDetails(details...)
}

// CheckPermissionLevel reports the effective permission level
func CheckPermissionLevel(ctx *CheckerContext) Check {
	check := NewCheck("Permission Level", StatusPass, "")

	if ctx.Manager == nil {
		return check.
			WithStatus(StatusWarn).
			WithMessage("Hook registry could not be loaded")
	}

	level := ctx.Manager.PermissionLevel()
	switch level {
	case hooks.PermissionDisabled:
		return check.
			WithStatus(StatusWarn).
			WithMessage("Hooks are disabled; nothing will execute").
			WithFixAction("Run 'hookgate permission safeOnly' or 'hookgate permission withWarning'")
	case hooks.PermissionSafeOnly:
		return check.WithMessage("Level 'safeOnly': only low-risk hooks execute")
	default:
		return check.WithMessage("Level 'withWarning': risky hooks require consent")
	}
}

// CheckHookCommands re-classifies every registered command and flags
// anything the validator considers risky
func CheckHookCommands(ctx *CheckerContext) Check {
	check := NewCheck("Hook Commands", StatusPass, "")

	if ctx.Manager == nil || ctx.Validator == nil {
		return check.
			WithStatus(StatusWarn).
			WithMessage("Registry or validator unavailable, skipping command review")
	}

	all := ctx.Manager.List()
	if len(all) == 0 {
		return check.WithMessage("No commands to review")
	}

	risky := []string{}
	broken := []string{}
	for _, h := range all {
		res := ctx.Validator.Validate(h.Command)
		if !res.Valid {
			broken = append(broken, fmt.Sprintf("%s: %s", h.ID, strings.Join(res.Errors, "; ")))
			continue
		}
		if res.RiskLevel.Rank() >= security.RiskHigh.Rank() {
			risky = append(risky, fmt.Sprintf("%s [%s]: %s", h.ID, res.RiskLevel, h.Command))
		}
	}

	if len(broken) > 0 {
		return check.
			WithStatus(StatusError).
			WithMessage(fmt.Sprintf("%d command(s) failed validation", len(broken))).
			WithDetails(broken...).
			WithFixAction("Run 'hookgate update <id> --command <cmd>' or remove the hook")
	}

	if len(risky) > 0 {
		return check.
			WithStatus(StatusWarn).
			WithMessage(fmt.Sprintf("%d command(s) classified high risk or above", len(risky))).
			WithDetails(risky...)
	}

	return check.WithMessage(fmt.Sprintf("All %d command(s) validated", len(all)))
}

// RunAll executes every health check and aggregates the results
func RunAll(ctx *CheckerContext) *Result {
	result := NewResult()

	result.AddCheck(CheckShell())
	result.AddCheck(CheckConfigFile(ctx))
	result.AddCheck(CheckStoreFile(ctx))
	result.AddCheck(CheckRegistry(ctx))
	result.AddCheck(CheckPermissionLevel(ctx))
	result.AddCheck(CheckHookCommands(ctx))

	result.ExitCode = result.DetermineExitCode()
	return result
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
