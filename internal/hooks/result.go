package hooks

import "time"

const (
	// ExitCodeBlock is the reserved exit code a hook uses to veto the
	// operation that raised the event
	ExitCodeBlock = 2

	// SpawnExitCode is the sentinel exit code recorded when no process exit
	// status exists (spawn failure, timeout)
	SpawnExitCode = -1

	// blockFeedback is used when a blocking hook produced no stderr
	blockFeedback = "Operation blocked by hook"
)

// interpretResult turns a finished process's exit code and output into a
// policy-interpreted ExecutionResult for the given event
func interpretResult(hookID string, event Event, exitCode int, stdout, stderr string, duration time.Duration) ExecutionResult {
	result := ExecutionResult{
		HookID:   hookID,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Duration: duration,
	}

	switch {
	case exitCode == 0:
		result.Success = true
		if event.SurfacesOutput() {
			result.Feedback = stdout
		}
	case exitCode == ExitCodeBlock:
		result.Blocked = true
		result.Feedback = stderr
		if result.Feedback == "" {
			result.Feedback = blockFeedback
		}
	default:
		result.Feedback = "Hook error: " + stderr
	}

	return result
}

// failureResult records a process-level failure (spawn error or timeout)
func failureResult(hookID string, err error, duration time.Duration) ExecutionResult {
	return ExecutionResult{
		HookID:   hookID,
		ExitCode: SpawnExitCode,
		Duration: duration,
		Err:      err,
		Error:    err.Error(),
	}
}
