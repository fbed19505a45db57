package hooks

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	hgerrors "github.com/lightfastai/hookgate/internal/errors"
	"github.com/lightfastai/hookgate/internal/logger"
	"github.com/lightfastai/hookgate/internal/security"
)

// Store is the durable backing for hook configurations. Save performs an
// atomic full overwrite; Load is tolerant of malformed entries.
type Store interface {
	Load() ([]Hook, error)
	Save(hooks []Hook) error
}

// Options configures a Manager
type Options struct {
	// Store persists hook configurations; nil disables persistence
	Store Store

	// Validator classifies hook commands; defaults to the static validator
	Validator security.Validator

	// Consent decides whether high/critical hooks may run under withWarning;
	// defaults to DenyAllProvider (fail closed)
	Consent ConsentProvider

	// Level is the initial permission level; defaults to withWarning
	Level PermissionLevel

	// HistoryLimit caps the per-hook execution log; defaults to 100
	HistoryLimit int

	// DefaultTimeout bounds hooks that carry no timeout of their own;
	// defaults to DefaultTimeout (60s)
	DefaultTimeout time.Duration

	// ExtraEnv is a shared variable set handed to every hook process,
	// typically loaded from the project's env file
	ExtraEnv map[string]string

	// AutoSave persists after every mutating operation when a Store is set
	AutoSave bool
}

// Manager owns the hook registry and is the single entry point for all
// registration, dispatch, execution and history operations. Hook state is
// never exposed for mutation outside this component.
type Manager struct {
	mu         sync.RWMutex
	hooks      []Hook // registration order
	index      map[string]int
	store      Store
	validator  security.Validator
	consent    ConsentProvider
	consents   *consentCache
	history    *historyLog
	level      PermissionLevel
	autoSave   bool
	defTimeout time.Duration
	extraEnv   map[string]string
}

// NewManager creates a hook manager
func NewManager(opts Options) *Manager {
	if opts.Validator == nil {
		opts.Validator = security.NewStaticValidator()
	}
	if opts.Consent == nil {
		opts.Consent = DenyAllProvider{}
	}
	if !opts.Level.IsValid() {
		opts.Level = PermissionWithWarning
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = DefaultTimeout
	}

	return &Manager{
		hooks:      []Hook{},
		index:      make(map[string]int),
		store:      opts.Store,
		validator:  opts.Validator,
		consent:    opts.Consent,
		consents:   newConsentCache(),
		history:    newHistoryLog(opts.HistoryLimit),
		level:      opts.Level,
		autoSave:   opts.AutoSave,
		defTimeout: opts.DefaultTimeout,
		extraEnv:   opts.ExtraEnv,
	}
}

// Load populates the registry from the store. Each entry is independently
// re-validated; invalid entries are skipped with a warning instead of
// aborting the load. A failed read is logged and the manager proceeds empty.
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}

	loaded, err := m.store.Load()
	if err != nil {
		logger.Warn("failed to load hook store, proceeding with empty registry", "error", err)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks = m.hooks[:0]
	m.index = make(map[string]int)

	for _, h := range loaded {
		if err := validateShape(h); err != nil {
			logger.Warn("skipping invalid hook from store", "hook", h.ID, "error", err)
			continue
		}
		if _, dup := m.index[h.ID]; dup {
			logger.Warn("skipping duplicate hook id from store", "hook", h.ID)
			continue
		}
		res := m.validator.Validate(h.Command)
		if !res.Valid {
			logger.Warn("skipping hook that fails security validation", "hook", h.ID, "errors", fmt.Sprint(res.Errors))
			continue
		}
		h.RiskLevel = res.RiskLevel
		m.index[h.ID] = len(m.hooks)
		m.hooks = append(m.hooks, h)
	}

	logger.Debug("hook store loaded", "hooks", len(m.hooks))
	return nil
}

// Register validates a hook twice (shape, then security), checks the risk
// ceiling for the current permission level, assigns id and timestamps, then
// stores and persists it. No state changes on any failure path.
func (m *Manager) Register(h Hook) (Hook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.level == PermissionDisabled {
		return Hook{}, hgerrors.HooksDisabled()
	}

	if err := validateNewShape(h); err != nil {
		return Hook{}, err
	}

	res := m.validator.Validate(h.Command)
	if !res.Valid {
		return Hook{}, hgerrors.SecurityRejected(h.Command, res.Errors)
	}
	for _, w := range res.Warnings {
		logger.Warn("hook security warning", "command", h.Command, "warning", w)
	}

	if !m.level.Allows(res.RiskLevel) {
		return Hook{}, hgerrors.RiskCeiling(string(res.RiskLevel), m.level.String())
	}

	now := time.Now()
	h.ID = uuid.NewString()
	h.RiskLevel = res.RiskLevel
	h.Created = now
	h.Updated = now

	m.hooks = append(m.hooks, h)
	m.index[h.ID] = len(m.hooks) - 1

	if err := m.persistLocked(); err != nil {
		// Roll back the in-memory mutation so failure leaves no trace
		m.hooks = m.hooks[:len(m.hooks)-1]
		delete(m.index, h.ID)
		return Hook{}, err
	}

	logger.Info("hook registered", "hook", h.ID, "event", h.Event, "risk", h.RiskLevel)
	return h, nil
}

// Update merges a partial update onto an existing hook, preserving id and
// creation time, and re-runs security validation. Cached consent is cleared
// iff the command changed.
func (m *Manager) Update(id string, p Patch) (Hook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.index[id]
	if !ok {
		return Hook{}, hgerrors.HookNotFound(id)
	}

	prev := m.hooks[idx]
	next := prev

	if p.Event != nil {
		next.Event = *p.Event
	}
	if p.Matcher != nil {
		next.Matcher = *p.Matcher
	}
	if p.Command != nil {
		next.Command = *p.Command
	}
	if p.Enabled != nil {
		next.Enabled = *p.Enabled
	}
	if p.TimeoutSeconds != nil {
		next.TimeoutSeconds = *p.TimeoutSeconds
	}

	if err := validateShape(next); err != nil {
		return Hook{}, err
	}

	res := m.validator.Validate(next.Command)
	if !res.Valid {
		return Hook{}, hgerrors.SecurityRejected(next.Command, res.Errors)
	}
	if !m.level.Allows(res.RiskLevel) {
		return Hook{}, hgerrors.RiskCeiling(string(res.RiskLevel), m.level.String())
	}

	next.RiskLevel = res.RiskLevel
	next.Updated = time.Now()

	commandChanged := next.Command != prev.Command

	m.hooks[idx] = next
	if err := m.persistLocked(); err != nil {
		m.hooks[idx] = prev
		return Hook{}, err
	}

	if commandChanged {
		// An edited command voids any prior consent for this hook
		m.consents.invalidate(id)
		logger.Debug("consent invalidated after command change", "hook", id)
	}

	logger.Info("hook updated", "hook", id, "risk", next.RiskLevel)
	return next, nil
}

// Remove deletes a hook along with its consent entry and history
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.index[id]
	if !ok {
		return hgerrors.HookNotFound(id)
	}

	removed := m.hooks[idx]
	m.hooks = append(m.hooks[:idx], m.hooks[idx+1:]...)
	m.reindexLocked()

	if err := m.persistLocked(); err != nil {
		m.hooks = append(m.hooks[:idx], append([]Hook{removed}, m.hooks[idx:]...)...)
		m.reindexLocked()
		return err
	}

	m.consents.invalidate(id)
	m.history.remove(id)

	logger.Info("hook removed", "hook", id)
	return nil
}

// ClearAll removes every hook, consent entry and history log
func (m *Manager) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.hooks
	m.hooks = []Hook{}
	m.index = make(map[string]int)

	if err := m.persistLocked(); err != nil {
		m.hooks = prev
		m.reindexLocked()
		return err
	}

	m.consents.clear()
	m.history.clear()

	logger.Info("all hooks cleared")
	return nil
}

// List returns a snapshot of all hooks in registration order
func (m *Manager) List() []Hook {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Hook, len(m.hooks))
	copy(out, m.hooks)
	return out
}

// Get returns a single hook by id
func (m *Manager) Get(id string) (Hook, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.index[id]
	if !ok {
		return Hook{}, hgerrors.HookNotFound(id)
	}
	return m.hooks[idx], nil
}

// HooksForEvent returns the enabled hooks matching an event and optional
// tool name, in registration order
func (m *Manager) HooksForEvent(event Event, toolName string) []Hook {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hooksForEventLocked(event, toolName)
}

func (m *Manager) hooksForEventLocked(event Event, toolName string) []Hook {
	matched := []Hook{}
	for _, h := range m.hooks {
		if !h.Enabled || h.Event != event {
			continue
		}
		if matchesTool(h.Matcher, toolName) {
			matched = append(matched, h)
		}
	}
	return matched
}

// History returns the execution log snapshot for a hook in insertion order
func (m *Manager) History(id string) []ExecutionResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.get(id)
}

// PermissionLevel returns the current process-wide permission level
func (m *Manager) PermissionLevel() PermissionLevel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.level
}

// SetPermissionLevel transitions to a new permission level. Any state is
// reachable from any other; downgrading to a stricter level clears all
// cached consent decisions.
func (m *Manager) SetPermissionLevel(level PermissionLevel) error {
	if !level.IsValid() {
		return hgerrors.Validation(fmt.Sprintf("unknown permission level %q", level))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if level.StricterThan(m.level) {
		m.consents.clear()
		logger.Info("consent cache cleared on permission downgrade", "from", m.level, "to", level)
	}
	m.level = level

	logger.Info("permission level set", "level", level)
	return nil
}

// persistLocked saves the full hook list when auto-save is on.
// Callers must hold m.mu.
func (m *Manager) persistLocked() error {
	if m.store == nil || !m.autoSave {
		return nil
	}
	snapshot := make([]Hook, len(m.hooks))
	copy(snapshot, m.hooks)
	return m.store.Save(snapshot)
}

// reindexLocked rebuilds the id index after a structural change
func (m *Manager) reindexLocked() {
	m.index = make(map[string]int, len(m.hooks))
	for i, h := range m.hooks {
		m.index[h.ID] = i
	}
}

// validateNewShape checks a hook being registered, before an id exists
func validateNewShape(h Hook) error {
	if !h.Event.IsValid() {
		return hgerrors.Validation(fmt.Sprintf("unknown event %q", h.Event))
	}
	if h.Command == "" {
		return hgerrors.Validation("command is required")
	}
	if h.TimeoutSeconds < 0 {
		return hgerrors.Validation("timeout must not be negative")
	}
	return nil
}

// validateShape checks a stored or updated hook, including its id
func validateShape(h Hook) error {
	if h.ID == "" {
		return hgerrors.Validation("hook id is missing")
	}
	return validateNewShape(h)
}
