package hooks

import (
	"testing"

	"github.com/lightfastai/hookgate/internal/security"
)

func TestPermissionLevel_Allows(t *testing.T) {
	tests := []struct {
		level PermissionLevel
		risk  security.RiskLevel
		want  bool
	}{
		{PermissionDisabled, security.RiskLow, false},
		{PermissionDisabled, security.RiskCritical, false},
		{PermissionSafeOnly, security.RiskLow, true},
		{PermissionSafeOnly, security.RiskMedium, false},
		{PermissionSafeOnly, security.RiskHigh, false},
		{PermissionSafeOnly, security.RiskCritical, false},
		{PermissionWithWarning, security.RiskLow, true},
		{PermissionWithWarning, security.RiskMedium, true},
		{PermissionWithWarning, security.RiskHigh, true},
		{PermissionWithWarning, security.RiskCritical, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String()+"/"+string(tt.risk), func(t *testing.T) {
			if got := tt.level.Allows(tt.risk); got != tt.want {
				t.Errorf("Allows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPermissionLevel_StricterThan(t *testing.T) {
	tests := []struct {
		a, b PermissionLevel
		want bool
	}{
		{PermissionDisabled, PermissionSafeOnly, true},
		{PermissionDisabled, PermissionWithWarning, true},
		{PermissionSafeOnly, PermissionWithWarning, true},
		{PermissionWithWarning, PermissionSafeOnly, false},
		{PermissionSafeOnly, PermissionSafeOnly, false},
		{PermissionWithWarning, PermissionDisabled, false},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+" vs "+tt.b.String(), func(t *testing.T) {
			if got := tt.a.StricterThan(tt.b); got != tt.want {
				t.Errorf("StricterThan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePermissionLevel(t *testing.T) {
	for _, valid := range []string{"disabled", "safeOnly", "withWarning"} {
		level, err := ParsePermissionLevel(valid)
		if err != nil {
			t.Errorf("ParsePermissionLevel(%q) failed: %v", valid, err)
		}
		if level.String() != valid {
			t.Errorf("ParsePermissionLevel(%q) = %q", valid, level)
		}
	}

	if _, err := ParsePermissionLevel("yolo"); err == nil {
		t.Error("ParsePermissionLevel should reject unknown levels")
	}
}

func TestNeedsConsent(t *testing.T) {
	tests := []struct {
		level PermissionLevel
		risk  security.RiskLevel
		want  bool
	}{
		{PermissionWithWarning, security.RiskHigh, true},
		{PermissionWithWarning, security.RiskCritical, true},
		{PermissionWithWarning, security.RiskMedium, false},
		{PermissionWithWarning, security.RiskLow, false},
		{PermissionSafeOnly, security.RiskHigh, false},
		{PermissionDisabled, security.RiskCritical, false},
	}

	for _, tt := range tests {
		t.Run(tt.level.String()+"/"+string(tt.risk), func(t *testing.T) {
			if got := needsConsent(tt.level, tt.risk); got != tt.want {
				t.Errorf("needsConsent() = %v, want %v", got, tt.want)
			}
		})
	}
}
