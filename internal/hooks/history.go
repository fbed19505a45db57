package hooks

// DefaultHistoryLimit caps the per-hook execution log
const DefaultHistoryLimit = 100

// historyLog is a per-hook append-only execution log with FIFO eviction.
// It is mutated only by the orchestration layer, so it carries no lock of
// its own; Manager serializes access.
type historyLog struct {
	limit   int
	entries map[string][]ExecutionResult
}

func newHistoryLog(limit int) *historyLog {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &historyLog{
		limit:   limit,
		entries: make(map[string][]ExecutionResult),
	}
}

// append records a result, evicting the oldest entry once the cap is exceeded
func (h *historyLog) append(hookID string, result ExecutionResult) {
	log := append(h.entries[hookID], result)
	if len(log) > h.limit {
		log = log[len(log)-h.limit:]
	}
	h.entries[hookID] = log
}

// get returns a snapshot of the log in insertion order
func (h *historyLog) get(hookID string) []ExecutionResult {
	log := h.entries[hookID]
	out := make([]ExecutionResult, len(log))
	copy(out, log)
	return out
}

// remove drops the log for a hook
func (h *historyLog) remove(hookID string) {
	delete(h.entries, hookID)
}

// clear drops all logs
func (h *historyLog) clear() {
	h.entries = make(map[string][]ExecutionResult)
}
