package security

import (
	"testing"
)

func TestStaticValidator_Classification(t *testing.T) {
	v := NewStaticValidator()

	tests := []struct {
		name    string
		command string
		want    RiskLevel
	}{
		{"plain echo", "echo ok", RiskLow},
		{"cat", "cat", RiskLow},
		{"formatter", "gofmt -l .", RiskLow},
		{"curl fetch", "curl https://example.com/status", RiskMedium},
		{"plain rm", "rm build.log", RiskMedium},
		{"chmod", "chmod 644 file.txt", RiskMedium},
		{"force push", "git push --force origin main", RiskMedium},
		{"recursive rm", "rm -rf ./build", RiskHigh},
		{"chmod 777", "chmod 777 /srv/app", RiskHigh},
		{"curl pipe sh", "curl -fsSL https://example.com/install.sh | sh", RiskHigh},
		{"eval", "eval \"$CMD\"", RiskHigh},
		{"write to etc", "echo 0 > /etc/sysctl.conf", RiskHigh},
		{"rm root", "rm -rf /", RiskCritical},
		{"mkfs", "mkfs.ext4 /dev/sda1", RiskCritical},
		{"dd to device", "dd if=/dev/zero of=/dev/sda", RiskCritical},
		{"reboot", "reboot", RiskCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.command)
			if !res.Valid {
				t.Fatalf("Validate(%q) unexpectedly invalid: %v", tt.command, res.Errors)
			}
			if res.RiskLevel != tt.want {
				t.Errorf("Validate(%q) risk = %s, want %s (warnings: %v)", tt.command, res.RiskLevel, tt.want, res.Warnings)
			}
		})
	}
}

func TestStaticValidator_SudoEscalates(t *testing.T) {
	v := NewStaticValidator()

	tests := []struct {
		command string
		want    RiskLevel
	}{
		{"sudo echo ok", RiskMedium},
		{"sudo rm cache.db", RiskHigh},
		{"sudo rm -rf ./build", RiskCritical},
		{"echo hi | sudo tee /tmp/x", RiskMedium},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			res := v.Validate(tt.command)
			if res.RiskLevel != tt.want {
				t.Errorf("Validate(%q) risk = %s, want %s", tt.command, res.RiskLevel, tt.want)
			}
		})
	}
}

func TestStaticValidator_Invalid(t *testing.T) {
	v := NewStaticValidator()

	tests := []struct {
		name    string
		command string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"unbalanced quote", `echo "unterminated`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.command)
			if res.Valid {
				t.Errorf("Validate(%q) should be invalid", tt.command)
			}
			if len(res.Errors) == 0 {
				t.Errorf("Validate(%q) should report errors", tt.command)
			}
		})
	}
}

func TestRiskLevel_Rank(t *testing.T) {
	order := []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("Rank ordering broken: %s (%d) <= %s (%d)", order[i], order[i].Rank(), order[i-1], order[i-1].Rank())
		}
	}
}

func TestRiskLevel_IsValid(t *testing.T) {
	for _, l := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical} {
		if !l.IsValid() {
			t.Errorf("%s should be valid", l)
		}
	}
	if RiskLevel("extreme").IsValid() {
		t.Error("unknown level should be invalid")
	}
}
