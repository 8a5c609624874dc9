// Package feather provides an embeddable Tcl-like interpreter core.
//
// feather is a pure Go implementation of the core of a small,
// command-oriented scripting language in the Tcl tradition: every
// syntactic form is a command invocation, every value carries both a
// canonical string representation and an optional cached structured
// representation, and substitution ($var, [cmd], backslash escapes) is
// the central evaluation mechanism.
//
// # Architecture
//
// feather has a layered architecture:
//
//   - [ParseScript] and [ParseList], which tokenize scripts, lists and
//     substitutions;
//   - an [Obj] value model with type-driven "shimmering" between a string
//     form and a lazily-parsed structured form;
//   - a script evaluator reachable through [Interp.Eval] that walks the
//     parsed token stream and dispatches commands;
//   - an expression compiler and stack VM reachable through the `expr`
//     command and [Interp.ExprEval];
//   - a reference garbage collector reachable through the `ref`, `getref`
//     and `collect` commands.
//
// # Quick Start
//
//	interp := feather.New()
//	result, err := interp.Eval("set x 42; expr {$x * 2}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.String()) // "84"
//
// # Registering Go Functions
//
// [Interp.Register] exposes Go functions to scripts with automatic
// argument conversion:
//
//	interp.Register("greet", func(name string) string {
//	    return "Hello, " + name + "!"
//	})
//	result, _ := interp.Eval(`greet World`)
//	// result.String() == "Hello, World!"
package feather
