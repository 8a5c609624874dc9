package feather

import "strings"

// registerExprCommands installs expr/catch/error/subst/append/ref/getref/
// collect — the remaining core bindings that don't belong to the
// variable/control-flow or list/dict families.
func registerExprCommands(ip *Interp) {
	reg := func(name string, fn NativeFunc) { ip.RegisterCommand(name, fn) }
	reg("expr", cmdExpr)
	reg("catch", cmdCatch)
	reg("error", cmdError)
	reg("subst", cmdSubst)
	reg("append", cmdAppend)
	reg("ref", cmdRef)
	reg("getref", cmdGetref)
	reg("setref", cmdSetref)
	reg("collect", cmdCollect)
}

func cmdExpr(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("expr arg ?arg ...?")
	}
	src := args[1].String()
	if len(args) > 2 {
		parts := make([]string, len(args)-1)
		for i, a := range args[1:] {
			parts[i] = a.String()
		}
		src = strings.Join(parts, " ")
	}
	return ip.ExprEval(src)
}

func cmdCatch(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, newArityError("catch script ?varName?")
	}
	savedTrace := ip.stackTrace
	ip.stackTrace = nil
	res, err := ip.EvalString(args[1].String())
	ip.stackTrace = savedTrace

	code := CodeOK
	var msg *Obj = emptyStringObj
	switch e := err.(type) {
	case nil:
		msg = res
	case *controlSignal:
		code = e.code
		if e.value != nil {
			msg = e.value
		}
	case *EvalError:
		code = CodeError
		msg = NewStringObj(e.Message)
	case *ArityError:
		code = CodeError
		msg = NewStringObj(e.Message)
	case *ParseError:
		code = CodeError
		msg = NewStringObj(e.Error())
	default:
		code = CodeError
		msg = NewStringObj(e.Error())
	}

	if len(args) == 3 {
		ip.SetVar(args[2].String(), msg)
	}
	return NewIntObj(int64(code)), nil
}

func cmdError(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, newArityError("error message ?errorInfo?")
	}
	return nil, newEvalError("%s", args[1].String())
}

func cmdSubst(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("subst ?-nobackslashes? ?-nocommands? ?-novariables? string")
	}
	flags := SubstAll
	i := 1
	for i < len(args)-1 {
		switch args[i].String() {
		case "-nobackslashes":
			flags |= SubstNoEscape
		case "-nocommands":
			flags |= SubstNoCmd
		case "-novariables":
			flags |= SubstNoVar
		default:
			return nil, newEvalError("bad option %q", args[i].String())
		}
		i++
	}
	return ip.Subst(args[i].String(), flags)
}

func cmdAppend(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("append varName ?value ...?")
	}
	name := args[1].String()
	v := ip.frame.lookupVar(name, true)
	var b strings.Builder
	if v.Value != nil {
		b.WriteString(v.Value.String())
	}
	for _, a := range args[2:] {
		b.WriteString(a.String())
	}
	return ip.SetVar(name, NewStringObj(b.String())), nil
}

func cmdRef(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, newArityError("ref value ?finalizer?")
	}
	var finalizer *Obj
	if len(args) == 3 {
		finalizer = args[2]
	}
	return ip.NewRef(args[1], finalizer), nil
}

func cmdGetref(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) != 2 {
		return nil, newArityError("getref reference")
	}
	return ip.GetRef(args[1])
}

func cmdSetref(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) != 3 {
		return nil, newArityError("setref reference value")
	}
	id, err := asReference(args[1])
	if err != nil {
		return nil, err
	}
	e, ok := ip.refs.Get(id)
	if !ok {
		return nil, newEvalError("invalid reference id %q", args[1].String())
	}
	args[2].IncrRef()
	e.value.DecrRef()
	e.value = args[2]
	return args[2], nil
}

func cmdCollect(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) != 1 {
		return nil, newArityError("collect")
	}
	n := ip.Collect()
	return NewIntObj(int64(n)), nil
}
