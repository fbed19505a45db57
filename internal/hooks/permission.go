package hooks

import (
	"fmt"

	"github.com/lightfastai/hookgate/internal/security"
)

// PermissionLevel is the process-wide policy gating hook registration and
// execution
type PermissionLevel string

const (
	// PermissionDisabled forbids all registration and execution
	PermissionDisabled PermissionLevel = "disabled"

	// PermissionSafeOnly permits only low-risk hooks
	PermissionSafeOnly PermissionLevel = "safeOnly"

	// PermissionWithWarning permits all risk levels; high and critical hooks
	// are gated by consent at execution time
	PermissionWithWarning PermissionLevel = "withWarning"
)

// String returns the string representation of a PermissionLevel
func (p PermissionLevel) String() string {
	return string(p)
}

// IsValid checks if a PermissionLevel is one of the recognized levels
func (p PermissionLevel) IsValid() bool {
	switch p {
	case PermissionDisabled, PermissionSafeOnly, PermissionWithWarning:
		return true
	default:
		return false
	}
}

// rank orders permission levels from most to least restrictive
func (p PermissionLevel) rank() int {
	switch p {
	case PermissionDisabled:
		return 0
	case PermissionSafeOnly:
		return 1
	case PermissionWithWarning:
		return 2
	default:
		return 0
	}
}

// StricterThan reports whether p is more restrictive than other
func (p PermissionLevel) StricterThan(other PermissionLevel) bool {
	return p.rank() < other.rank()
}

// Allows reports whether a hook of the given risk class may exist under this
// permission level
func (p PermissionLevel) Allows(risk security.RiskLevel) bool {
	switch p {
	case PermissionDisabled:
		return false
	case PermissionSafeOnly:
		return risk == security.RiskLow
	case PermissionWithWarning:
		return true
	default:
		return false
	}
}

// ParsePermissionLevel converts a string into a PermissionLevel
func ParsePermissionLevel(s string) (PermissionLevel, error) {
	level := PermissionLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("unknown permission level %q (expected disabled, safeOnly or withWarning)", s)
	}
	return level, nil
}
