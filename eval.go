package feather

import "strings"

// evalTokenSequence substitutes a flat sequence of ESC/VAR/DICTSUGAR/CMD
// tokens belonging to a single word and concatenates the results into one
// Obj, implementing Tcl's word-level substitution rule: a word made of
// more than one sub-token always produces a string result, even if a
// single CMD or VAR sub-token would itself have a structured form.
func (ip *Interp) evalTokenSequence(toks []Token, frame *CallFrame) (*Obj, error) {
	if len(toks) == 0 {
		return emptyStringObj, nil
	}
	if len(toks) == 1 {
		return ip.evalSingleToken(toks[0], frame)
	}
	var b strings.Builder
	for _, t := range toks {
		o, err := ip.evalSingleToken(t, frame)
		if err != nil {
			return nil, err
		}
		b.WriteString(o.String())
	}
	return NewStringObj(b.String()), nil
}

func (ip *Interp) evalSingleToken(t Token, frame *CallFrame) (*Obj, error) {
	switch t.Type {
	case TokSTR:
		return NewStringObj(t.Text), nil
	case TokESC:
		if t.NoEscape {
			return NewStringObj(t.Text), nil
		}
		return NewStringObj(applyEscapes(t.Text)), nil
	case TokVAR:
		return ip.getVarByName(t.Text, frame)
	case TokDictSugar:
		name, key, ok := splitDictSugar(t.Text)
		if !ok {
			return nil, newEvalError("invalid variable name %q", t.Text)
		}
		return ip.getDictElement(name, key, frame)
	case TokCmd:
		saved := ip.frame
		ip.frame = frame
		res, err := ip.EvalString(t.Text)
		ip.frame = saved
		if err != nil {
			return nil, err
		}
		return res, nil
	default:
		fatalf("feather: unexpected token type %d in substitution", t.Type)
		return nil, nil
	}
}

func splitDictSugar(text string) (name, key string, ok bool) {
	i := strings.IndexByte(text, '(')
	if i < 0 || text[len(text)-1] != ')' {
		return "", "", false
	}
	return text[:i], text[i+1 : len(text)-1], true
}

// EvalString parses and evaluates a script, returning its result. It is
// the root entry point used by Eval, [cmd] substitution, and uplevel.
func (ip *Interp) EvalString(src string) (*Obj, error) {
	toks, err := ParseScript(src)
	if err != nil {
		return nil, err
	}
	return ip.evalParsedScript(toks)
}

// Eval is the public entry point: it evaluates src in the global frame's
// lexical context (the currently active call frame, i.e. top level unless
// called from within a command implementation) and returns the result or
// an *EvalError/*ParseError/*ArityError.
func (ip *Interp) Eval(src string) (*Obj, error) {
	ip.clearTrace()
	res, err := ip.EvalString(src)
	if err != nil {
		if ee, ok := err.(*EvalError); ok {
			ee.Trace = ip.stackTrace
		}
		return nil, err
	}
	ip.setResult(res)
	return res, nil
}

// evalParsedScript walks a token stream produced by ParseScript, grouping
// tokens into commands at EOL/EOF boundaries and dispatching each.
func (ip *Interp) evalParsedScript(toks []Token) (*Obj, error) {
	var result *Obj = emptyStringObj
	var words [][]Token
	var cur []Token
	lastLine := 1

	runCommand := func(line int) error {
		if len(cur) > 0 {
			words = append(words, cur)
			cur = nil
		}
		if len(words) == 0 {
			return nil
		}
		argv, err := ip.substituteWords(words, ip.frame)
		words = nil
		if err != nil {
			return err
		}
		if len(argv) == 0 {
			return nil
		}
		res, err := ip.dispatch(argv, line)
		if err != nil {
			return err
		}
		result = res
		return nil
	}

	for _, t := range toks {
		switch t.Type {
		case TokEOF:
			if err := runCommand(lastLine); err != nil {
				return nil, err
			}
			return result, nil
		case TokEOL:
			lastLine = t.Line
			if err := runCommand(t.Line); err != nil {
				return nil, err
			}
		case TokSep:
			if len(cur) > 0 {
				words = append(words, cur)
				cur = nil
			}
		default:
			if len(cur) == 0 {
				lastLine = t.Line
			}
			cur = append(cur, t)
		}
	}
	return result, nil
}

// substituteWords turns each word's token run into a final Obj,
// expanding any word written as {*}WORD or {expand}WORD (which the parser
// marks with a literal "{*}" prefix) into multiple arguments
// (SPEC_FULL.md §4.3, argument expansion).
func (ip *Interp) substituteWords(words [][]Token, frame *CallFrame) ([]*Obj, error) {
	var argv []*Obj
	for idx, w := range words {
		o, err := ip.evalTokenSequence(w, frame)
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			argv = append(argv, o)
			continue
		}
		if s := o.String(); strings.HasPrefix(s, "{*}") {
			rest := s[3:]
			elems, err := ip.parseListString(rest)
			if err != nil {
				return nil, err
			}
			argv = append(argv, elems...)
			continue
		}
		argv = append(argv, o)
	}
	return argv, nil
}

// dispatch resolves argv[0] to a command and invokes it. A controlSignal
// (return/break/continue) from the command is passed through unchanged;
// any other error gets a stack trace frame for this command.
func (ip *Interp) dispatch(argv []*Obj, line int) (*Obj, error) {
	ip.depth++
	defer func() { ip.depth-- }()
	if ip.depth > ip.maxNestingDepth {
		return nil, newEvalError("too many nested evaluations (infinite loop?)")
	}

	name := argv[0].String()
	cmd := lookupCommandCached(argv[0], ip)
	if cmd == nil {
		return ip.invokeUnknown(argv, line)
	}
	res, err := ip.invokeCommand(cmd, argv)
	if err != nil {
		if _, isCtl := err.(*controlSignal); !isCtl {
			ip.pushTrace(name, "", line)
		}
		return nil, err
	}
	return res, nil
}

func (ip *Interp) invokeUnknown(argv []*Obj, line int) (*Obj, error) {
	cmd := lookupCommandCached(NewStringObj("unknown"), ip)
	if cmd == nil {
		return nil, newEvalError("invalid command name %q", argv[0].String())
	}
	full := append([]*Obj{NewStringObj("unknown")}, argv...)
	return ip.invokeCommand(cmd, full)
}

func (ip *Interp) invokeCommand(cmd *Command, argv []*Obj) (*Obj, error) {
	if cmd.Fn != nil {
		return cmd.Fn(ip, argv)
	}
	return ip.invokeProc(cmd, argv)
}

// invokeProc binds argv to cmd's formal parameters in a fresh call frame
// and evaluates its body, per SPEC_FULL.md §4.3.1 procedure invocation.
func (ip *Interp) invokeProc(cmd *Command, argv []*Obj) (*Obj, error) {
	min, max := cmd.arityRange()
	given := len(argv) - 1
	if given < min || (max >= 0 && given > max) {
		return nil, newArityError(cmd.usageString())
	}

	callerFrame := ip.frame
	frame := newCallFrame(callerFrame, ip.nextFID, cmd.Name, argv)
	ip.nextFID++

	ai := 1
	for _, p := range cmd.Params {
		if p.Variadic {
			rest := argv[ai:]
			v := frame.lookupVar(p.Name, true)
			v.Value = NewListObj(rest...)
			v.Value.IncrRef()
			ai = len(argv)
			continue
		}
		v := frame.lookupVar(p.Name, true)
		if ai < len(argv) {
			v.Value = argv[ai]
			ai++
		} else {
			v.Value = p.Default
		}
		v.Value.IncrRef()
	}

	ip.frame = frame
	res, err := ip.EvalString(cmd.Body.String())
	ip.frame = callerFrame

	if err != nil {
		if ctl, ok := err.(*controlSignal); ok {
			switch ctl.code {
			case CodeReturn:
				return ctl.value, nil
			case CodeBreak, CodeContinue:
				return nil, newEvalError("invoked \"%s\" outside of a loop",
					map[ResultCode]string{CodeBreak: "break", CodeContinue: "continue"}[ctl.code])
			}
		}
		return nil, err
	}
	return res, nil
}

// controlSignal is the internal error sentinel used to unwind return,
// break, and continue through normal Go error propagation up to the
// construct that handles them (loop bodies, proc invocation).
type controlSignal struct {
	code  ResultCode
	value *Obj
}

func (c *controlSignal) Error() string { return "control signal: " + c.code.String() }

// Call invokes args as a command in the interpreter's current frame,
// exactly as if it had been dispatched from a parsed script; used by
// Go-side callers (Register'd functions, the GC's finalizer hook).
func (ip *Interp) Call(args []*Obj) (*Obj, error) {
	return ip.dispatch(args, 0)
}

// getVarByName resolves a simple (non dict-sugar) variable reference.
func (ip *Interp) getVarByName(name string, frame *CallFrame) (*Obj, error) {
	v := frame.lookupVar(name, false)
	if v == nil || v.Value == nil {
		return nil, newEvalError("can't read %q: no such variable", name)
	}
	return v.Value, nil
}

func (ip *Interp) getDictElement(name, key string, frame *CallFrame) (*Obj, error) {
	v := frame.lookupVar(name, false)
	if v == nil || v.Value == nil {
		return nil, newEvalError("can't read %q: no such variable", name)
	}
	d, err := asDict(v.Value)
	if err != nil {
		return nil, err
	}
	elem, ok := d.Items[key]
	if !ok {
		return nil, newEvalError("key %q not known in dictionary", key)
	}
	return elem, nil
}

// setDictElement implements the `set name(key) value` dict-sugar write:
// name is auto-vivified as an empty dict if unset, then key is set on a
// copy of its dict form (copy-on-write, per dictSetPath's discipline).
func (ip *Interp) setDictElement(name, key string, value *Obj) (*Obj, error) {
	v := ip.frame.lookupVar(name, true)
	d := NewDictType()
	if v.Value != nil {
		existing, err := asDict(v.Value)
		if err != nil {
			return nil, err
		}
		d = existing.Dup().(*DictType)
	}
	if err := dictSetPath(d, []*Obj{NewStringObj(key)}, value); err != nil {
		return nil, err
	}
	return ip.SetVar(name, dictAsObj(d)), nil
}

// unsetDictElement implements the `unset name(key)` dict-sugar removal:
// name must already exist and hold a dict-shaped value.
func (ip *Interp) unsetDictElement(name, key string) error {
	v := ip.frame.lookupVar(name, false)
	if v == nil || v.Value == nil {
		return newEvalError("can't unset %q: no such variable", name)
	}
	d, err := asDict(v.Value)
	if err != nil {
		return err
	}
	d = d.Dup().(*DictType)
	if !d.Unset(key) {
		return newEvalError("key %q not known in dictionary", key)
	}
	ip.SetVar(name, dictAsObj(d))
	return nil
}

// SetVar assigns name in frame (creating it if absent), chasing any
// upvar/global link, and returns the stored value.
func (ip *Interp) SetVar(name string, value *Obj) *Obj {
	v := ip.frame.lookupVar(name, true)
	value.IncrRef()
	if v.Value != nil {
		v.Value.DecrRef()
	}
	v.Value = value
	return value
}

// GetVar reads name from the interpreter's current frame.
func (ip *Interp) GetVar(name string) (*Obj, error) {
	return ip.getVarByName(name, ip.frame)
}
