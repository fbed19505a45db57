package health

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightfastai/hookgate/internal/config"
	"github.com/lightfastai/hookgate/internal/hooks"
	"github.com/lightfastai/hookgate/internal/security"
)

func newTestManager(t *testing.T, level hooks.PermissionLevel) *hooks.Manager {
	t.Helper()
	return hooks.NewManager(hooks.Options{Level: level})
}

func registerHook(t *testing.T, m *hooks.Manager, event hooks.Event, command string) hooks.Hook {
	t.Helper()
	h, err := m.Register(hooks.Hook{
		Event:   event,
		Command: command,
		Enabled: true,
	})
	require.NoError(t, err)
	return h
}

func TestCheckShell(t *testing.T) {
	check := CheckShell()

	// Every CI and dev box this runs on has sh
	assert.Equal(t, StatusPass, check.Status)
	assert.Contains(t, check.Message, "sh")
}

func TestCheckConfigFile(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		check := CheckConfigFile(&CheckerContext{})

		assert.Equal(t, StatusError, check.Status)
		assert.Contains(t, check.Message, config.ConfigFileName)
		assert.Contains(t, check.FixAction, "hookgate init")
	})

	t.Run("valid config", func(t *testing.T) {
		check := CheckConfigFile(&CheckerContext{
			Config:      config.Default(),
			ProjectRoot: "/proj",
		})

		assert.Equal(t, StatusPass, check.Status)
		assert.Contains(t, check.Message, "Valid configuration")
	})

	t.Run("unsupported version", func(t *testing.T) {
		cfg := config.Default()
		cfg.Version = 99

		check := CheckConfigFile(&CheckerContext{Config: cfg, ProjectRoot: "/proj"})

		assert.Equal(t, StatusError, check.Status)
		assert.Contains(t, check.Message, "Unsupported config version")
	})
}

func TestCheckStoreFile(t *testing.T) {
	t.Run("no config", func(t *testing.T) {
		check := CheckStoreFile(&CheckerContext{})

		assert.Equal(t, StatusWarn, check.Status)
	})

	t.Run("store missing", func(t *testing.T) {
		dir := t.TempDir()

		check := CheckStoreFile(&CheckerContext{Config: config.Default(), ProjectRoot: dir})

		assert.Equal(t, StatusWarn, check.Status)
		assert.Contains(t, check.Message, "does not exist")
	})

	t.Run("valid store", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Default()
		storePath := cfg.StorePath(dir)
		require.NoError(t, os.MkdirAll(filepath.Dir(storePath), 0o750))
		require.NoError(t, os.WriteFile(storePath, []byte(`[{"id":"a"},{"id":"b"}]`), 0o600))

		check := CheckStoreFile(&CheckerContext{Config: cfg, ProjectRoot: dir})

		assert.Equal(t, StatusPass, check.Status)
		assert.Contains(t, check.Message, "2 entries")
	})

	t.Run("corrupt store", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Default()
		storePath := cfg.StorePath(dir)
		require.NoError(t, os.MkdirAll(filepath.Dir(storePath), 0o750))
		require.NoError(t, os.WriteFile(storePath, []byte("{not json"), 0o600))

		check := CheckStoreFile(&CheckerContext{Config: cfg, ProjectRoot: dir})

		assert.Equal(t, StatusError, check.Status)
		assert.Contains(t, check.Message, "corrupt")
	})
}

func TestCheckRegistry(t *testing.T) {
	t.Run("nil manager", func(t *testing.T) {
		check := CheckRegistry(&CheckerContext{})

		assert.Equal(t, StatusError, check.Status)
	})

	t.Run("empty registry warns", func(t *testing.T) {
		m := newTestManager(t, hooks.PermissionWithWarning)

		check := CheckRegistry(&CheckerContext{Manager: m})

		assert.Equal(t, StatusWarn, check.Status)
		assert.Contains(t, check.Message, "No hooks registered")
	})

	t.Run("counts hooks per event", func(t *testing.T) {
		m := newTestManager(t, hooks.PermissionWithWarning)
		registerHook(t, m, hooks.EventPreToolUse, "echo pre")
		registerHook(t, m, hooks.EventPostToolUse, "echo post")

		check := CheckRegistry(&CheckerContext{Manager: m})

		assert.Equal(t, StatusPass, check.Status)
		assert.Contains(t, check.Message, "2 hook(s) registered, 2 enabled")
	})
}

func TestCheckPermissionLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    hooks.PermissionLevel
		expected Status
	}{
		{"disabled warns", hooks.PermissionDisabled, StatusWarn},
		{"safeOnly passes", hooks.PermissionSafeOnly, StatusPass},
		{"withWarning passes", hooks.PermissionWithWarning, StatusPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, hooks.PermissionWithWarning)
			require.NoError(t, m.SetPermissionLevel(tt.level))

			check := CheckPermissionLevel(&CheckerContext{Manager: m})

			assert.Equal(t, tt.expected, check.Status)
		})
	}
}

func TestCheckHookCommands(t *testing.T) {
	t.Run("no validator skips", func(t *testing.T) {
		m := newTestManager(t, hooks.PermissionWithWarning)

		check := CheckHookCommands(&CheckerContext{Manager: m})

		assert.Equal(t, StatusWarn, check.Status)
	})

	t.Run("all safe passes", func(t *testing.T) {
		m := newTestManager(t, hooks.PermissionWithWarning)
		registerHook(t, m, hooks.EventPostToolUse, "gofmt -l .")

		check := CheckHookCommands(&CheckerContext{
			Manager:   m,
			Validator: security.NewStaticValidator(),
		})

		assert.Equal(t, StatusPass, check.Status)
	})

	t.Run("risky commands warn", func(t *testing.T) {
		m := newTestManager(t, hooks.PermissionWithWarning)
		registerHook(t, m, hooks.EventPreToolUse, "rm -rf ./build")

		check := CheckHookCommands(&CheckerContext{
			Manager:   m,
			Validator: security.NewStaticValidator(),
		})

		assert.Equal(t, StatusWarn, check.Status)
		assert.Contains(t, check.Message, "high risk")
	})
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager(t, hooks.PermissionWithWarning)
	registerHook(t, m, hooks.EventPostToolUse, "echo done")

	result := RunAll(&CheckerContext{
		Config:      config.Default(),
		ProjectRoot: dir,
		Manager:     m,
		Validator:   security.NewStaticValidator(),
	})

	assert.Equal(t, 6, result.TotalChecks)
	// Store file is absent in a fresh project, so expect a warning
	assert.Equal(t, 1, result.ExitCode)
	assert.Zero(t, result.Errors)
}
