package errors

import (
	"fmt"
	"strings"
)

// Validation returns an error for a malformed hook configuration
func Validation(reason string) *Error {
	return New(ErrValidation, "Hook configuration is invalid").
		WithContext("Reason", reason).
		WithFixes(
			"Check the event name, matcher pattern and command text",
			"Run 'hookgate add --help' for the expected shape",
		)
}

// SecurityRejected returns an error when the validator rejects a hook command
func SecurityRejected(command string, reasons []string) *Error {
	err := New(ErrSecurityRejected, "Hook command rejected by security validation").
		WithContext("Command", command)

	if len(reasons) > 0 {
		err = err.WithContext("Reasons", strings.Join(reasons, "; "))
	}

	return err.WithFixes(
		"Remove the flagged construct from the command",
		"Review the command for destructive or privileged operations",
	)
}

// RiskCeiling returns an error when the current permission level forbids the
// hook's computed risk class
func RiskCeiling(riskLevel, permissionLevel string) *Error {
	return New(ErrSecurityRejected, fmt.Sprintf("Hook risk level '%s' exceeds what permission level '%s' allows", riskLevel, permissionLevel)).
		WithContext("Risk level", riskLevel).
		WithContext("Permission level", permissionLevel).
		WithFixes(
			"Run 'hookgate permission withWarning' to allow risky hooks (consent required)",
			"Or rewrite the command so it classifies as low risk",
		)
}

// HooksDisabled returns an error when registration is attempted while hooks
// are disabled outright
func HooksDisabled() *Error {
	return New(ErrPermissionDenied, "Hooks are disabled").
		WithFixes(
			"Run 'hookgate permission safeOnly' to allow low-risk hooks",
			"Run 'hookgate permission withWarning' to allow all hooks",
		)
}

// HookNotFound returns an error for an operation on an unknown hook id
func HookNotFound(id string) *Error {
	return New(ErrNotFound, fmt.Sprintf("Hook '%s' not found", id)).
		WithContext("Hook", id).
		WithFixes(
			"Run 'hookgate list' to see registered hooks",
		)
}

// ConfigNotFound returns an error for when the config file is not found
func ConfigNotFound() *Error {
	return New(ErrConfigNotFound, "Configuration file not found").
		WithFixes(
			"Run 'hookgate init' to create a new configuration",
			"Make sure you're in the correct project directory",
		)
}

// ConfigInvalid returns an error for invalid config file
func ConfigInvalid(reason string, cause error) *Error {
	err := New(ErrConfigInvalid, "Configuration file is invalid").
		WithContext("Reason", reason).
		WithFixes(
			"Check the YAML syntax in hookgate.config.yml",
			"See documentation for correct schema",
		)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}

// ConfigExists returns an error when trying to init but config already exists
func ConfigExists(path string) *Error {
	return New(ErrConfigExists, "Configuration already exists").
		WithContext("File", path).
		WithFixes(
			"Use --force to overwrite existing config",
			"Or edit hookgate.config.yml manually",
		)
}

// StoreCorrupted returns an error for a corrupted hook store file
func StoreCorrupted(path string, cause error) *Error {
	err := New(ErrStoreCorrupted, "Hook store file is corrupted").
		WithContext("File", path).
		WithFixes(
			"The store will be reset automatically",
			"You may need to re-register hooks with 'hookgate add'",
		)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}

// StoreLocked returns an error when the store lock cannot be acquired
func StoreLocked(path string, cause error) *Error {
	err := New(ErrStoreLocked, "Could not acquire hook store lock").
		WithContext("Lock file", path).
		WithFixes(
			"Another hookgate command may be running; wait and retry",
			"If no other process is running, delete the stale lock file",
		)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}

// StoreWriteFailed returns an error when persisting the hook store fails
func StoreWriteFailed(path string, cause error) *Error {
	err := New(ErrStoreWriteFailed, "Failed to write hook store").
		WithContext("File", path).
		WithFixes(
			"Check directory permissions and available disk space",
		)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
