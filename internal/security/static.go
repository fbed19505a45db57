package security

import (
	"regexp"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// rule binds a command pattern to a risk level and a human-readable reason
type rule struct {
	pattern *regexp.Regexp
	level   RiskLevel
	reason  string
}

var staticRules = []rule{
	// Critical: destroys the system or makes it unbootable
	{regexp.MustCompile(`rm\s+(-[a-zA-Z]*\s+)*(/|/\*)(\s|$)`), RiskCritical, "recursive delete of the filesystem root"},
	{regexp.MustCompile(`\bmkfs(\.[a-z0-9]+)?\b`), RiskCritical, "formats a filesystem"},
	{regexp.MustCompile(`\bdd\b.*\bof=/dev/`), RiskCritical, "raw write to a block device"},
	{regexp.MustCompile(`:\(\)\s*\{\s*:\|:`), RiskCritical, "fork bomb"},
	{regexp.MustCompile(`\b(shutdown|reboot|halt|poweroff)\b`), RiskCritical, "shuts down or reboots the system"},
	{regexp.MustCompile(`>\s*/dev/(sd|nvme|hd)`), RiskCritical, "overwrites a block device"},

	// High: privileged, irreversible or remote-code-execution constructs
	{regexp.MustCompile(`\brm\s+(-[a-zA-Z]*[rf][a-zA-Z]*\s*)+`), RiskHigh, "recursive or forced delete"},
	{regexp.MustCompile(`\bchmod\s+(-[a-zA-Z]+\s+)*777\b`), RiskHigh, "world-writable permissions"},
	{regexp.MustCompile(`\b(curl|wget)\b[^|;]*\|\s*(sudo\s+)?(ba)?sh\b`), RiskHigh, "pipes a download into a shell"},
	{regexp.MustCompile(`\beval\b`), RiskHigh, "evaluates dynamic shell text"},
	{regexp.MustCompile(`>\s*/etc/`), RiskHigh, "writes to system configuration"},
	{regexp.MustCompile(`\b(useradd|userdel|usermod|groupadd)\b`), RiskHigh, "modifies system accounts"},
	{regexp.MustCompile(`\bkill\s+(-[0-9A-Z]+\s+)?1\b`), RiskHigh, "signals PID 1"},

	// Medium: mutates shared state in recoverable ways
	{regexp.MustCompile(`\brm\b`), RiskMedium, "deletes files"},
	{regexp.MustCompile(`\b(chmod|chown)\b`), RiskMedium, "changes file ownership or permissions"},
	{regexp.MustCompile(`\bgit\s+push\b.*(--force|-f)\b`), RiskMedium, "force-pushes git history"},
	{regexp.MustCompile(`\b(pkill|killall)\b`), RiskMedium, "kills processes by name"},
	{regexp.MustCompile(`\b(curl|wget)\b`), RiskMedium, "fetches remote content"},
}

// StaticValidator is the default Validator implementation. It tokenizes the
// command and matches it against a fixed rule table. Sudo escalates the
// classification one step. Whether a risk level may register or run is the
// registry's decision, not the validator's.
type StaticValidator struct {
	parser *shellwords.Parser
}

// NewStaticValidator creates the default rule-based validator
func NewStaticValidator() *StaticValidator {
	return &StaticValidator{parser: shellwords.NewParser()}
}

// Validate classifies a hook command
func (v *StaticValidator) Validate(command string) Result {
	res := Result{Valid: true, RiskLevel: RiskLow}

	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		res.Valid = false
		res.Errors = append(res.Errors, "command is empty")
		return res
	}

	tokens, err := v.parser.Parse(trimmed)
	if err != nil {
		// Unbalanced quotes etc. - the shell would choke on it too
		res.Valid = false
		res.Errors = append(res.Errors, "command cannot be parsed as shell text: "+err.Error())
		return res
	}

	for _, r := range staticRules {
		if r.pattern.MatchString(trimmed) && r.level.Rank() > res.RiskLevel.Rank() {
			res.RiskLevel = r.level
			res.Warnings = append(res.Warnings, r.reason)
		}
	}

	if runsPrivileged(tokens) {
		res.Warnings = append(res.Warnings, "runs with elevated privileges")
		res.RiskLevel = escalate(res.RiskLevel)
	}

	return res
}

// runsPrivileged reports whether any pipeline segment starts with sudo/su/doas
func runsPrivileged(tokens []string) bool {
	start := true
	for _, tok := range tokens {
		if tok == "|" || tok == "&&" || tok == "||" || tok == ";" {
			start = true
			continue
		}
		if start {
			switch tok {
			case "sudo", "su", "doas":
				return true
			}
			start = false
		}
	}
	return false
}

func escalate(level RiskLevel) RiskLevel {
	switch level {
	case RiskLow:
		return RiskMedium
	case RiskMedium:
		return RiskHigh
	default:
		return RiskCritical
	}
}
