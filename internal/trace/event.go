package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event
	KindHeartbeat // liveness tick, passes every level but off
)

var kindNames = []string{"", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string { return nameOf(kindNames, int(k)) }

// Scope is the granularity of an event; lower is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command
	ScopePass                    // lex, parse, eval, generate, batch
	ScopeSample                  // one sample of a batch
	ScopeNode                    // single statement
)

var scopeNames = []string{"", "driver", "pass", "sample", "node"}

func (s Scope) String() string { return nameOf(scopeNames, int(s)) }

// Event is one record handed to a Tracer.
// Seq is stamped by the receiving tracer, Elapsed only on span end.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Depth    int
	Name     string
	Detail   string
	Elapsed  time.Duration
	Extra    map[string]string
}
