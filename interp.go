package feather

import "time"

// Interp is a single, non-concurrent-safe interpreter instance. All
// state — the command table, the global frame, the reference table — is
// private to one Interp; running two interpreters concurrently on
// separate goroutines is fine as long as neither is shared
// (SPEC_FULL.md §5, Concurrency & Resource Model).
type Interp struct {
	commands  *HashTable[string, *Command]
	procEpoch int64 // bumped on command create/rename/delete

	global  *CallFrame
	frame   *CallFrame // currently executing frame
	nextFID int64

	refs          *HashTable[int64, *refEntry]
	nextRefID     int64
	refsAllocated int64 // since last collect, drives the 5000-allocation trigger
	lastCollect   time.Time

	filenames map[string]string // interning table for SourceType.Filename

	foreignTable *HashTable[int64, *foreignInstance] // lazily created by RegisterType

	maxNestingDepth int
	depth           int

	result *Obj

	// stackTrace accumulates TraceFrame entries while an error
	// propagates, consumed by Eval's caller via the returned *EvalError.
	stackTrace []TraceFrame
}

const defaultMaxNestingDepth = 1000

// New creates a ready-to-use interpreter with the core commands
// registered (SPEC_FULL.md §1, Public API & core bindings).
func New(opts ...Option) *Interp {
	ip := &Interp{
		commands:        NewHashTable[string, *Command](nil),
		refs:            NewHashTable[int64, *refEntry](nil),
		filenames:       make(map[string]string),
		maxNestingDepth: defaultMaxNestingDepth,
		lastCollect:     time.Time{},
	}
	ip.global = newCallFrame(nil, ip.nextFID, "", nil)
	ip.nextFID++
	ip.frame = ip.global
	ip.result = emptyStringObj
	for _, opt := range opts {
		opt(ip)
	}
	registerCoreCommands(ip)
	return ip
}

// Option configures an Interp at construction time, in the spirit of the
// functional-options pattern used throughout SPEC_FULL.md's ambient stack.
type Option func(*Interp)

// WithMaxNestingDepth overrides the default recursion/nesting ceiling,
// counted over nested command dispatches (SPEC_FULL.md §4.3.1).
func WithMaxNestingDepth(n int) Option {
	return func(ip *Interp) { ip.maxNestingDepth = n }
}

func (ip *Interp) internFilename(name string) string {
	if s, ok := ip.filenames[name]; ok {
		return s
	}
	ip.filenames[name] = name
	return name
}

// parseListString splits s as a Tcl list and returns its elements as
// fresh Obj values. It needs no interpreter state; the method exists
// alongside the package-level parseListToObjs for call sites that already
// hold an *Interp.
func (ip *Interp) parseListString(s string) ([]*Obj, error) {
	return parseListToObjs(s)
}

// Result returns the interpreter's current result value, as left by the
// most recent successful Eval call.
func (ip *Interp) Result() *Obj { return ip.result }

// setResult assigns ip's result, matching Jim_SetResult's ownership
// discipline (the caller gives up its reference).
func (ip *Interp) setResult(o *Obj) {
	if o == nil {
		o = emptyStringObj
	}
	ip.result = o
}

// pushTrace records one stack frame while an error unwinds, most recent
// call first, capped so a pathological recursion doesn't grow it
// unboundedly.
func (ip *Interp) pushTrace(command, filename string, line int) {
	const maxTrace = 64
	if len(ip.stackTrace) >= maxTrace {
		return
	}
	ip.stackTrace = append(ip.stackTrace, TraceFrame{Command: command, Filename: filename, Line: line})
}

func (ip *Interp) clearTrace() { ip.stackTrace = nil }
