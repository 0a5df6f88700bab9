package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // heartbeats only
	LevelPhase        // driver + pass boundaries
	LevelDetail       // + per-sample spans
	LevelDebug        // + every statement
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// finest scope let through by each level; 0 lets nothing through
var levelReach = [...]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeSample,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string { return nameOf(levelNames, int(l)) }

func ParseLevel(s string) (Level, error) {
	i := slices.Index(levelNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return LevelOff, fmt.Errorf("trace: unknown level %q (want %s)", s, strings.Join(levelNames, "|"))
	}
	return Level(i), nil
}

// ShouldEmit reports whether events of scope pass the level filter.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelReach) {
		return false
	}
	return scope != 0 && scope <= levelReach[l]
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) || names[i] == "" {
		return "unknown"
	}
	return names[i]
}
