// Package security classifies hook commands before they are allowed to
// register or run. The engine only depends on the narrow Validator interface,
// so the rule set behind it can be swapped without touching the engine.
package security

// RiskLevel is the coarse classification of how dangerous a command is
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank returns the numeric severity of a risk level (higher is worse)
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}

// IsValid checks if a RiskLevel is one of the recognized levels
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

// Result aggregates the outcome of validating a hook command
type Result struct {
	Valid     bool
	Errors    []string
	Warnings  []string
	RiskLevel RiskLevel
}

// Validator classifies a hook command's risk and reports validity.
// The command text is the risk-relevant part of a hook configuration;
// shape validation of the rest of the configuration happens in the registry.
type Validator interface {
	Validate(command string) Result
}
