// Package hooks implements the lifecycle hook engine: a registry of
// user-configured external commands bound to lifecycle events, with security
// classification, consent gating, concurrent execution and bounded history.
package hooks

import (
	"time"

	"github.com/lightfastai/hookgate/internal/security"
)

// Event represents a lifecycle event that can trigger hooks
type Event string

const (
	// EventPreToolUse fires before a tool invocation
	EventPreToolUse Event = "PreToolUse"

	// EventPostToolUse fires after a tool invocation completes
	EventPostToolUse Event = "PostToolUse"

	// EventUserPromptSubmit fires when the user submits a prompt
	EventUserPromptSubmit Event = "UserPromptSubmit"

	// EventSessionStart fires when a session begins
	EventSessionStart Event = "SessionStart"

	// EventPreCompact fires before context compaction
	EventPreCompact Event = "PreCompact"

	// EventStop fires when the agent loop stops
	EventStop Event = "Stop"
)

// Events lists all recognized lifecycle events
var Events = []Event{
	EventPreToolUse,
	EventPostToolUse,
	EventUserPromptSubmit,
	EventSessionStart,
	EventPreCompact,
	EventStop,
}

// String returns the string representation of an Event
func (e Event) String() string {
	return string(e)
}

// IsValid checks if an Event is one of the recognized events
func (e Event) IsValid() bool {
	switch e {
	case EventPreToolUse, EventPostToolUse, EventUserPromptSubmit,
		EventSessionStart, EventPreCompact, EventStop:
		return true
	default:
		return false
	}
}

// SurfacesOutput reports whether hook stdout is surfaced to the caller as
// feedback on a successful exit
func (e Event) SurfacesOutput() bool {
	switch e {
	case EventPostToolUse, EventUserPromptSubmit, EventSessionStart, EventPreCompact:
		return true
	default:
		return false
	}
}

// DefaultTimeout is applied when a hook does not carry its own timeout
const DefaultTimeout = 60 * time.Second

// Hook is a registered binding of a lifecycle event to an external command
type Hook struct {
	// ID is assigned at registration and never changes
	ID string `json:"id"`

	// Event is the lifecycle event this hook fires on
	Event Event `json:"event"`

	// Matcher optionally narrows the hook to specific tool names. It is
	// interpreted as an anchored regular expression; if it does not compile,
	// it falls back to a pipe-separated list of literal names.
	Matcher string `json:"matcher,omitempty"`

	// Command is the shell command executed when the hook fires
	Command string `json:"command"`

	// Enabled gates dispatch; disabled hooks never match
	Enabled bool `json:"enabled"`

	// TimeoutSeconds bounds a single execution; 0 means DefaultTimeout
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`

	// RiskLevel is the validator's classification, recorded at registration
	// and refreshed on update
	RiskLevel security.RiskLevel `json:"riskLevel"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Timeout returns the effective execution timeout for this hook
func (h Hook) Timeout() time.Duration {
	if h.TimeoutSeconds > 0 {
		return time.Duration(h.TimeoutSeconds) * time.Second
	}
	return DefaultTimeout
}

// ExecutionContext carries the event payload from the caller into hook
// processes. The engine never mutates it.
type ExecutionContext struct {
	Event      Event
	ToolName   string
	Parameters map[string]any
	SessionID  string
	UserID     string
	Timestamp  time.Time
	Metadata   map[string]string
}

// ExecutionResult is the interpreted outcome of one hook invocation
type ExecutionResult struct {
	HookID   string        `json:"hookId"`
	Success  bool          `json:"success"`
	ExitCode int           `json:"exitCode"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Duration time.Duration `json:"duration"`
	Blocked  bool          `json:"blocked"`
	Feedback string        `json:"feedback,omitempty"`

	// Err is set only for process-level failures (spawn error, timeout);
	// Error carries its string form for serialized output
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// Patch is a partial hook update; nil fields are left unchanged
type Patch struct {
	Event          *Event
	Matcher        *string
	Command        *string
	Enabled        *bool
	TimeoutSeconds *int
}
