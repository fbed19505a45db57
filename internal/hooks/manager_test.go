package hooks

import (
	"errors"
	"testing"

	hgerrors "github.com/lightfastai/hookgate/internal/errors"
	"github.com/lightfastai/hookgate/internal/security"
)

// fakeStore records saves and serves canned loads
type fakeStore struct {
	saved   [][]Hook
	loaded  []Hook
	loadErr error
	saveErr error
}

func (s *fakeStore) Load() ([]Hook, error) {
	return s.loaded, s.loadErr
}

func (s *fakeStore) Save(hooks []Hook) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	snapshot := make([]Hook, len(hooks))
	copy(snapshot, hooks)
	s.saved = append(s.saved, snapshot)
	return nil
}

func (s *fakeStore) lastSaved() []Hook {
	if len(s.saved) == 0 {
		return nil
	}
	return s.saved[len(s.saved)-1]
}

func newTestManager(t *testing.T, opts Options) (*Manager, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	if opts.Store == nil {
		opts.Store = store
	} else {
		store = opts.Store.(*fakeStore)
	}
	opts.AutoSave = true
	return NewManager(opts), store
}

func TestRegister_RoundTrip(t *testing.T) {
	m, store := newTestManager(t, Options{})

	in := Hook{
		Event:   EventPostToolUse,
		Matcher: "Write",
		Command: "echo ok",
		Enabled: true,
	}

	registered, err := m.Register(in)
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if registered.ID == "" {
		t.Error("Register() should assign an id")
	}
	if registered.Created.IsZero() || registered.Updated.IsZero() {
		t.Error("Register() should assign timestamps")
	}
	if registered.RiskLevel != security.RiskLow {
		t.Errorf("risk = %s, want low", registered.RiskLevel)
	}

	list := m.List()
	if len(list) != 1 {
		t.Fatalf("List() returned %d hooks, want 1", len(list))
	}

	got := list[0]
	if got.Event != in.Event || got.Matcher != in.Matcher || got.Command != in.Command || got.Enabled != in.Enabled {
		t.Errorf("listed hook differs from input: %+v", got)
	}

	if len(store.lastSaved()) != 1 {
		t.Error("Register() should persist the hook")
	}
}

func TestRegister_ValidationError(t *testing.T) {
	m, store := newTestManager(t, Options{})

	tests := []struct {
		name string
		hook Hook
	}{
		{"unknown event", Hook{Event: "NotAnEvent", Command: "echo hi"}},
		{"empty command", Hook{Event: EventPreToolUse, Command: ""}},
		{"negative timeout", Hook{Event: EventPreToolUse, Command: "echo hi", TimeoutSeconds: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Register(tt.hook)
			if !hgerrors.IsType(err, hgerrors.ErrValidation) {
				t.Errorf("Register() error = %v, want validation error", err)
			}
		})
	}

	if len(m.List()) != 0 || len(store.saved) != 0 {
		t.Error("failed registrations must not mutate registry or store")
	}
}

func TestRegister_CriticalUnderSafeOnly(t *testing.T) {
	m, store := newTestManager(t, Options{Level: PermissionSafeOnly})

	_, err := m.Register(Hook{
		Event:   EventPreToolUse,
		Command: "dd if=/dev/zero of=/dev/sda",
		Enabled: true,
	})
	if !hgerrors.IsType(err, hgerrors.ErrSecurityRejected) {
		t.Fatalf("Register() error = %v, want security rejection", err)
	}

	if len(m.List()) != 0 {
		t.Error("registry must be unchanged after rejection")
	}
	if len(store.saved) != 0 {
		t.Error("store must be unchanged after rejection")
	}
}

func TestRegister_MediumUnderSafeOnly(t *testing.T) {
	m, _ := newTestManager(t, Options{Level: PermissionSafeOnly})

	// SafeOnly forbids anything above low, not just critical
	_, err := m.Register(Hook{Event: EventPreToolUse, Command: "rm stale.lock", Enabled: true})
	if !hgerrors.IsType(err, hgerrors.ErrSecurityRejected) {
		t.Errorf("Register() error = %v, want security rejection", err)
	}
}

func TestRegister_Disabled(t *testing.T) {
	m, store := newTestManager(t, Options{Level: PermissionDisabled})

	_, err := m.Register(Hook{Event: EventPreToolUse, Command: "echo hi", Enabled: true})
	if !hgerrors.IsType(err, hgerrors.ErrPermissionDenied) {
		t.Fatalf("Register() error = %v, want permission error", err)
	}

	if len(m.List()) != 0 || len(store.saved) != 0 {
		t.Error("registry size must be unchanged")
	}
}

func TestRegister_RollbackOnSaveFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	m := NewManager(Options{Store: store, AutoSave: true})

	_, err := m.Register(Hook{Event: EventPreToolUse, Command: "echo hi", Enabled: true})
	if err == nil {
		t.Fatal("Register() should surface the save failure")
	}

	if len(m.List()) != 0 {
		t.Error("in-memory registry must be rolled back when persistence fails")
	}
}

func TestUpdate(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	registered, err := m.Register(Hook{Event: EventPreToolUse, Command: "echo hi", Enabled: true})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	newCmd := "echo bye"
	enabled := false
	updated, err := m.Update(registered.ID, Patch{Command: &newCmd, Enabled: &enabled})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if updated.ID != registered.ID {
		t.Error("Update() must preserve the id")
	}
	if !updated.Created.Equal(registered.Created) {
		t.Error("Update() must preserve the creation timestamp")
	}
	if updated.Command != newCmd || updated.Enabled != false {
		t.Errorf("Update() did not merge fields: %+v", updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	cmd := "echo hi"
	_, err := m.Update("nope", Patch{Command: &cmd})
	if !hgerrors.IsType(err, hgerrors.ErrNotFound) {
		t.Errorf("Update() error = %v, want not found", err)
	}
}

func TestUpdate_SecurityReValidation(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	registered, err := m.Register(Hook{Event: EventPreToolUse, Command: "echo hi", Enabled: true})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	bad := `echo "unterminated`
	_, err = m.Update(registered.ID, Patch{Command: &bad})
	if !hgerrors.IsType(err, hgerrors.ErrSecurityRejected) {
		t.Errorf("Update() error = %v, want security rejection", err)
	}

	// Registry keeps the previous version
	got, err := m.Get(registered.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Command != "echo hi" {
		t.Errorf("rejected update mutated the hook: %q", got.Command)
	}
}

func TestRemove(t *testing.T) {
	m, store := newTestManager(t, Options{})

	registered, err := m.Register(Hook{Event: EventPreToolUse, Command: "echo hi", Enabled: true})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if err := m.Remove(registered.ID); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}

	if len(m.List()) != 0 {
		t.Error("Remove() should delete the hook")
	}
	if len(store.lastSaved()) != 0 {
		t.Error("Remove() should persist the deletion")
	}
	if len(m.History(registered.ID)) != 0 {
		t.Error("Remove() should cascade to history")
	}

	if err := m.Remove(registered.ID); !hgerrors.IsType(err, hgerrors.ErrNotFound) {
		t.Errorf("second Remove() error = %v, want not found", err)
	}
}

func TestClearAll(t *testing.T) {
	m, store := newTestManager(t, Options{})

	for i := 0; i < 3; i++ {
		if _, err := m.Register(Hook{Event: EventPreToolUse, Command: "echo hi", Enabled: true}); err != nil {
			t.Fatalf("Register() failed: %v", err)
		}
	}

	if err := m.ClearAll(); err != nil {
		t.Fatalf("ClearAll() failed: %v", err)
	}
	if len(m.List()) != 0 {
		t.Error("ClearAll() should empty the registry")
	}
	if len(store.lastSaved()) != 0 {
		t.Error("ClearAll() should persist an empty list")
	}
}

func TestHooksForEvent_Idempotent(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	for _, cmd := range []string{"echo a", "echo b", "echo c"} {
		if _, err := m.Register(Hook{Event: EventPostToolUse, Matcher: "Write", Command: cmd, Enabled: true}); err != nil {
			t.Fatalf("Register() failed: %v", err)
		}
	}

	first := m.HooksForEvent(EventPostToolUse, "Write")
	second := m.HooksForEvent(EventPostToolUse, "Write")

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 hooks, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("ordering differs at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestHooksForEvent_FiltersDisabledAndMismatched(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	enabled, _ := m.Register(Hook{Event: EventPreToolUse, Matcher: "Write", Command: "echo a", Enabled: true})
	_, _ = m.Register(Hook{Event: EventPreToolUse, Matcher: "Write", Command: "echo b", Enabled: false})
	_, _ = m.Register(Hook{Event: EventPostToolUse, Matcher: "Write", Command: "echo c", Enabled: true})
	_, _ = m.Register(Hook{Event: EventPreToolUse, Matcher: "Edit", Command: "echo d", Enabled: true})

	matched := m.HooksForEvent(EventPreToolUse, "Write")
	if len(matched) != 1 || matched[0].ID != enabled.ID {
		t.Errorf("expected only the enabled matching hook, got %d hooks", len(matched))
	}
}

func TestSetPermissionLevel_DowngradeClearsConsent(t *testing.T) {
	provider := &recordingConsent{decision: true}
	m, _ := newTestManager(t, Options{Consent: provider})

	registered, err := m.Register(Hook{Event: EventPreToolUse, Command: "rm -rf ./tmp", Enabled: true})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if registered.RiskLevel != security.RiskHigh {
		t.Fatalf("expected a high risk hook, got %s", registered.RiskLevel)
	}

	// Prime the consent cache
	m.consentGranted(registered, PermissionWithWarning)
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
	m.consentGranted(registered, PermissionWithWarning)
	if provider.calls != 1 {
		t.Error("second check should hit the cache")
	}

	// Downgrade clears, so the provider is consulted again afterwards
	if err := m.SetPermissionLevel(PermissionSafeOnly); err != nil {
		t.Fatalf("SetPermissionLevel() failed: %v", err)
	}
	if err := m.SetPermissionLevel(PermissionWithWarning); err != nil {
		t.Fatalf("SetPermissionLevel() failed: %v", err)
	}
	m.consentGranted(registered, PermissionWithWarning)
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2 after downgrade cleared the cache", provider.calls)
	}
}

func TestUpdate_CommandChangeInvalidatesConsent(t *testing.T) {
	provider := &recordingConsent{decision: true}
	m, _ := newTestManager(t, Options{Consent: provider})

	registered, err := m.Register(Hook{Event: EventPreToolUse, Command: "rm -rf ./tmp", Enabled: true})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	m.consentGranted(registered, PermissionWithWarning)
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}

	// Editing an unrelated field keeps the cached consent
	enabled := true
	if _, err := m.Update(registered.ID, Patch{Enabled: &enabled}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	m.consentGranted(registered, PermissionWithWarning)
	if provider.calls != 1 {
		t.Error("non-command update must not invalidate consent")
	}

	// Editing the command voids it
	newCmd := "rm -rf ./cache"
	updated, err := m.Update(registered.ID, Patch{Command: &newCmd})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	m.consentGranted(updated, PermissionWithWarning)
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2 after command change", provider.calls)
	}
}

func TestLoad_TolerantOfBadEntries(t *testing.T) {
	store := &fakeStore{loaded: []Hook{
		{ID: "good", Event: EventPreToolUse, Command: "echo hi", Enabled: true},
		{ID: "", Event: EventPreToolUse, Command: "echo hi"},          // missing id
		{ID: "bad-event", Event: "Nope", Command: "echo hi"},          // unknown event
		{ID: "bad-cmd", Event: EventPreToolUse, Command: ""},          // empty command
		{ID: "good", Event: EventPostToolUse, Command: "echo again"},  // duplicate id
		{ID: "good2", Event: EventStop, Command: "echo bye", Enabled: true},
	}}
	m := NewManager(Options{Store: store, AutoSave: true})

	if err := m.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	list := m.List()
	if len(list) != 2 {
		t.Fatalf("Load() kept %d hooks, want 2", len(list))
	}
	if list[0].ID != "good" || list[1].ID != "good2" {
		t.Errorf("unexpected survivors: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestLoad_ReadFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("read failed")}
	m := NewManager(Options{Store: store, AutoSave: true})

	if err := m.Load(); err != nil {
		t.Fatalf("Load() should recover from read failures, got: %v", err)
	}
	if len(m.List()) != 0 {
		t.Error("registry should be empty after failed load")
	}
}

// recordingConsent counts Confirm calls and returns a fixed decision
type recordingConsent struct {
	decision bool
	calls    int
}

func (r *recordingConsent) Confirm(Hook) (bool, error) {
	r.calls++
	return r.decision, nil
}
