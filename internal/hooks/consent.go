package hooks

import "github.com/lightfastai/hookgate/internal/security"

// ConsentFeedback is returned when a risky hook is skipped because no consent
// was granted
const ConsentFeedback = "User declined to execute hook"

// ConsentProvider obtains a yes/no decision for a high or critical risk hook.
// Implementations may prompt a user; the decision is cached per hook until
// its command changes or the permission level is downgraded.
type ConsentProvider interface {
	Confirm(hook Hook) (bool, error)
}

// DenyAllProvider is the non-interactive default: it fails closed, never
// granting consent.
type DenyAllProvider struct{}

// Confirm always denies
func (DenyAllProvider) Confirm(Hook) (bool, error) {
	return false, nil
}

// consentCache holds per-hook consent decisions keyed by hook id.
// Invalidation triggers are exactly: command change and permission level
// downgrade. Silent staleness here is a security defect.
type consentCache struct {
	decisions map[string]bool
}

func newConsentCache() *consentCache {
	return &consentCache{decisions: make(map[string]bool)}
}

func (c *consentCache) get(hookID string) (decision, ok bool) {
	decision, ok = c.decisions[hookID]
	return decision, ok
}

func (c *consentCache) set(hookID string, decision bool) {
	c.decisions[hookID] = decision
}

func (c *consentCache) invalidate(hookID string) {
	delete(c.decisions, hookID)
}

func (c *consentCache) clear() {
	c.decisions = make(map[string]bool)
}

// needsConsent reports whether a hook must pass the consent gate under the
// given permission level
func needsConsent(level PermissionLevel, risk security.RiskLevel) bool {
	if level != PermissionWithWarning {
		return false
	}
	return risk == security.RiskHigh || risk == security.RiskCritical
}
