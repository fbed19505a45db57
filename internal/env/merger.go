package env

import (
	"fmt"
	"sort"
)

// LayeredEnv represents the environment handed to a hook process before the
// engine's own variables are appended
type LayeredEnv struct {
	Base      map[string]string // shared variables from the project's env file
	Overrides map[string]string // per-invocation values, win over Base
}

// Merge merges the layers into a single environment map
func (e *LayeredEnv) Merge() map[string]string {
	result := make(map[string]string)

	for k, v := range e.Base {
		result[k] = v
	}
	for k, v := range e.Overrides {
		result[k] = v
	}

	return result
}

// ToSlice converts the merged environment to sorted KEY=value strings,
// suitable for exec.Cmd.Env
func (e *LayeredEnv) ToSlice() []string {
	merged := e.Merge()
	result := make([]string, 0, len(merged))

	for k, v := range merged {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)

	return result
}

// Stats returns per-layer variable counts
func (e *LayeredEnv) Stats() Stats {
	return Stats{
		BaseVars:     len(e.Base),
		OverrideVars: len(e.Overrides),
		TotalVars:    len(e.Merge()),
	}
}

// Stats describes the composition of a layered environment
type Stats struct {
	BaseVars     int
	OverrideVars int
	TotalVars    int
}
