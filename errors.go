package feather

import "fmt"

// EvalError is returned when script evaluation fails with TCL_ERROR.
// It carries the innermost-first stack trace accumulated as the error
// unwound, one frame for each command dispatch it passed through.
type EvalError struct {
	Message string
	Trace   []TraceFrame
}

// TraceFrame names a single level of the stack trace, innermost first.
type TraceFrame struct {
	Command  string
	Filename string
	Line     int
}

func (e *EvalError) Error() string {
	return e.Message
}

func newEvalError(format string, args ...any) *EvalError {
	return &EvalError{Message: fmt.Sprintf(format, args...)}
}

// ArityError is raised when a command or procedure is invoked with the
// wrong number of arguments.
type ArityError struct {
	Message string
}

func (e *ArityError) Error() string { return e.Message }

func newArityError(usage string) *ArityError {
	return &ArityError{Message: "wrong # args: should be \"" + usage + "\""}
}

// ParseError is raised by the parser or expression compiler on malformed
// input that cannot be recovered from by the forgiving script grammar
// (expressions and indices are not forgiving; scripts mostly are).
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d)", e.Message, e.Line)
	}
	return e.Message
}

func newParseError(line int, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Line: line}
}

// fatalf reports a contract violation internal to the implementation
// (double free, missing updateString hook, mutation of a shared value).
// These must never be reachable from user script.
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
