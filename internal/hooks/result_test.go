package hooks

import (
	"errors"
	"testing"
	"time"
)

func TestInterpretResult_Success(t *testing.T) {
	tests := []struct {
		name         string
		event        Event
		stdout       string
		wantFeedback string
	}{
		{"PostToolUse surfaces stdout", EventPostToolUse, "lint clean", "lint clean"},
		{"UserPromptSubmit surfaces stdout", EventUserPromptSubmit, "extra context", "extra context"},
		{"SessionStart surfaces stdout", EventSessionStart, "restored", "restored"},
		{"PreCompact surfaces stdout", EventPreCompact, "keep this", "keep this"},
		{"PreToolUse suppresses stdout", EventPreToolUse, "ignored", ""},
		{"Stop suppresses stdout", EventStop, "ignored", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := interpretResult("h1", tt.event, 0, tt.stdout, "", time.Millisecond)

			if !r.Success {
				t.Error("exit 0 should be a success")
			}
			if r.Blocked {
				t.Error("exit 0 must never be blocked")
			}
			if r.Feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", r.Feedback, tt.wantFeedback)
			}
		})
	}
}

func TestInterpretResult_Block(t *testing.T) {
	tests := []struct {
		name         string
		stderr       string
		wantFeedback string
	}{
		{"stderr becomes feedback", "tool not allowed", "tool not allowed"},
		{"default message on empty stderr", "", "Operation blocked by hook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := interpretResult("h1", EventPreToolUse, ExitCodeBlock, "some stdout", tt.stderr, time.Millisecond)

			if r.Success {
				t.Error("block exit must not be a success")
			}
			if !r.Blocked {
				t.Error("block exit code must set Blocked independent of stdout")
			}
			if r.Feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", r.Feedback, tt.wantFeedback)
			}
		})
	}
}

func TestInterpretResult_OtherNonZero(t *testing.T) {
	r := interpretResult("h1", EventPostToolUse, 1, "out", "something broke", time.Millisecond)

	if r.Success || r.Blocked {
		t.Errorf("non-zero non-block exit: success=%v blocked=%v, want false/false", r.Success, r.Blocked)
	}
	if r.Feedback != "Hook error: something broke" {
		t.Errorf("feedback = %q", r.Feedback)
	}
	if r.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", r.ExitCode)
	}
}

func TestFailureResult(t *testing.T) {
	cause := errors.New("hook timed out after 1s")
	r := failureResult("h1", cause, 2*time.Second)

	if r.Success || r.Blocked {
		t.Error("process-level failures are neither success nor blocked")
	}
	if r.ExitCode != SpawnExitCode {
		t.Errorf("exit code = %d, want sentinel %d", r.ExitCode, SpawnExitCode)
	}
	if r.Err == nil || r.Error == "" {
		t.Error("error must be populated")
	}
	if r.Duration != 2*time.Second {
		t.Errorf("duration = %s", r.Duration)
	}
}
