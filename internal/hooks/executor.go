package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/lightfastai/hookgate/internal/env"
	"github.com/lightfastai/hookgate/internal/logger"
)

// Execute runs every enabled hook matching the context's event and tool name,
// one OS process per hook, concurrently. It returns one result per surviving
// hook in dispatch order and never returns an error: every hook-level failure
// (spawn error, timeout, non-zero exit, veto) becomes an ExecutionResult.
// It returns only once all invocations have settled.
//
// The only cancellation mechanism for an individual hook is its timeout;
// ctx is the parent the per-hook deadlines are derived from.
func (m *Manager) Execute(ctx context.Context, ec ExecutionContext) []ExecutionResult {
	m.mu.RLock()
	level := m.level
	matched := m.hooksForEventLocked(ec.Event, ec.ToolName)
	m.mu.RUnlock()

	if level == PermissionDisabled {
		logger.Debug("hook execution skipped, hooks disabled", "event", ec.Event)
		return []ExecutionResult{}
	}

	// A downgrade to safeOnly after registration must not run risky hooks.
	if level == PermissionSafeOnly {
		kept := matched[:0]
		for _, h := range matched {
			if level.Allows(h.RiskLevel) {
				kept = append(kept, h)
				continue
			}
			logger.Warn("hook skipped, risk level not permitted", "hook", h.ID, "risk", h.RiskLevel)
		}
		matched = kept
	}

	if len(matched) == 0 {
		return []ExecutionResult{}
	}

	results := make([]ExecutionResult, len(matched))
	var wg sync.WaitGroup

	for i, h := range matched {
		if !m.consentGranted(h, level) {
			results[i] = ExecutionResult{
				HookID:   h.ID,
				ExitCode: SpawnExitCode,
				Feedback: ConsentFeedback,
			}
			continue
		}

		wg.Add(1)
		go func(i int, h Hook) {
			defer wg.Done()
			results[i] = m.runHook(ctx, h, ec)
		}(i, h)
	}

	wg.Wait()

	m.mu.Lock()
	for _, r := range results {
		m.history.append(r.HookID, r)
	}
	m.mu.Unlock()

	return results
}

// consentGranted applies the consent gate for high/critical hooks under
// withWarning. Decisions are cached for the hook's lifetime.
func (m *Manager) consentGranted(h Hook, level PermissionLevel) bool {
	if !needsConsent(level, h.RiskLevel) {
		return true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if decision, ok := m.consents.get(h.ID); ok {
		return decision
	}

	granted, err := m.consent.Confirm(h)
	if err != nil {
		// Fail closed: an unanswerable prompt is a denial, but do not cache
		// it so a later interactive run can ask again.
		logger.Warn("consent prompt failed, denying hook", "hook", h.ID, "error", err)
		return false
	}

	m.consents.set(h.ID, granted)
	logger.Info("consent decision recorded", "hook", h.ID, "granted", granted)
	return granted
}

// effectiveTimeout resolves a hook's timeout against the configured default
func (m *Manager) effectiveTimeout(h Hook) time.Duration {
	if h.TimeoutSeconds > 0 {
		return time.Duration(h.TimeoutSeconds) * time.Second
	}
	return m.defTimeout
}

// runHook executes a single hook process and interprets its outcome
func (m *Manager) runHook(ctx context.Context, h Hook, ec ExecutionContext) ExecutionResult {
	doc, err := buildInputDocument(ec)
	if err != nil {
		return failureResult(h.ID, fmt.Errorf("failed to encode hook input: %w", err), 0)
	}

	timeout := m.effectiveTimeout(h)
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// #nosec G204 - the command passed security validation at registration
	cmd := exec.CommandContext(cmdCtx, "sh", "-c", h.Command)
	cmd.Stdin = bytes.NewReader(doc)

	// Environment precedence: ambient, then project env file and metadata,
	// then the engine's own variables.
	shared := env.LayeredEnv{Base: m.extraEnv, Overrides: ec.Metadata}
	cmd.Env = append(os.Environ(), shared.ToSlice()...)
	cmd.Env = append(cmd.Env, buildEnvOverlay(h, ec)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("executing hook", "hook", h.ID, "event", ec.Event, "timeout", timeout)

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		logger.Warn("hook timed out", "hook", h.ID, "timeout", timeout)
		return failureResult(h.ID, fmt.Errorf("hook timed out after %s", timeout), duration)
	}

	outText := strings.TrimSpace(stdout.String())
	errText := strings.TrimSpace(stderr.String())

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// Spawn-level failure: the process never produced an exit status
			return failureResult(h.ID, fmt.Errorf("failed to run hook command: %w", runErr), duration)
		}
		return interpretResult(h.ID, ec.Event, exitErr.ExitCode(), outText, errText, duration)
	}

	return interpretResult(h.ID, ec.Event, 0, outText, errText, duration)
}

// buildInputDocument encodes the structured document fed to the hook process
// on stdin: {event, timestamp, session_id} plus event-specific fields.
func buildInputDocument(ec ExecutionContext) ([]byte, error) {
	ts := ec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	doc := map[string]any{
		"event":      ec.Event.String(),
		"timestamp":  ts.Format(time.RFC3339),
		"session_id": ec.SessionID,
	}

	switch ec.Event {
	case EventPreToolUse:
		doc["tool_name"] = ec.ToolName
		doc["tool_input"] = toolInput(ec.Parameters)
	case EventPostToolUse:
		doc["tool_name"] = ec.ToolName
		doc["tool_input"] = toolInput(ec.Parameters)
		if resp, ok := ec.Parameters["tool_response"]; ok {
			doc["tool_response"] = resp
		}
	case EventUserPromptSubmit:
		if prompt, ok := ec.Parameters["prompt"]; ok {
			doc["prompt"] = prompt
		}
	case EventSessionStart:
		if source, ok := ec.Parameters["source"]; ok {
			doc["source"] = source
		}
	case EventPreCompact:
		if details, ok := ec.Parameters["compaction_details"]; ok {
			doc["compaction_details"] = details
		}
	}

	return json.Marshal(doc)
}

// toolInput is the parameter map minus the tool response, which has its own
// top-level field
func toolInput(params map[string]any) map[string]any {
	input := make(map[string]any, len(params))
	for k, v := range params {
		if k == "tool_response" {
			continue
		}
		input[k] = v
	}
	return input
}

// buildEnvOverlay constructs the fixed variable set merged over the ambient
// environment; the overlay wins on conflicts since it is appended last.
func buildEnvOverlay(h Hook, ec ExecutionContext) []string {
	env := []string{
		"HOOKGATE_HOOK_ID=" + h.ID,
		"HOOKGATE_EVENT=" + ec.Event.String(),
		"HOOKGATE_SESSION_ID=" + ec.SessionID,
		"HOOKGATE_USER_ID=" + ec.UserID,
	}

	if ec.ToolName != "" {
		env = append(env, "HOOKGATE_TOOL_NAME="+ec.ToolName)
	}
	if path, ok := ec.Parameters["file_path"].(string); ok && path != "" {
		env = append(env, "HOOKGATE_FILE_PATH="+path)
	}

	return env
}
