package hooks

import (
	"regexp"
	"strings"
)

// matchesTool reports whether a hook matcher covers the given tool name.
//
// The matcher is tried as an anchored regular expression first. If it does
// not compile, it is treated as a pipe-separated list of literal tool names.
// An empty matcher matches every tool, and events that carry no tool name
// ignore matchers entirely.
func matchesTool(matcher, toolName string) bool {
	if matcher == "" || toolName == "" {
		return true
	}

	if re, err := regexp.Compile("^(?:" + matcher + ")$"); err == nil {
		return re.MatchString(toolName)
	}

	for _, name := range strings.Split(matcher, "|") {
		if strings.TrimSpace(name) == toolName {
			return true
		}
	}
	return false
}
