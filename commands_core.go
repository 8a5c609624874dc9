package feather

import (
	"strconv"
	"strings"
)

// registerCoreCommands installs the minimal command library the core
// itself depends on to be independently testable (SPEC_FULL.md §1): the
// variable/procedure/control-flow vocabulary, not the larger "bundled
// command library" (string/format/file I/O ensembles) that SPEC_FULL.md's
// out-of-scope list explicitly excludes.
func registerCoreCommands(ip *Interp) {
	reg := func(name string, fn NativeFunc) { ip.RegisterCommand(name, fn) }

	reg("set", cmdSet)
	reg("unset", cmdUnset)
	reg("global", cmdGlobal)
	reg("upvar", cmdUpvar)
	reg("proc", cmdProc)
	reg("uplevel", cmdUplevel)
	reg("return", cmdReturn)
	reg("break", cmdBreak)
	reg("continue", cmdContinue)
	reg("if", cmdIf)
	reg("while", cmdWhile)
	reg("foreach", cmdForeach)
	reg("incr", cmdIncr)
	reg("rename", cmdRename)
	reg("info", cmdInfo)
	reg("unknown", cmdUnknown)

	registerListCommands(ip)
	registerExprCommands(ip)
}

// RegisterCommand installs a native Go function as a command, bumping
// procEpoch so any cached command-lookup tokens miss.
func (ip *Interp) RegisterCommand(name string, fn NativeFunc) {
	ip.commands.Set(name, &Command{Name: name, Fn: fn})
	ip.procEpoch++
}

func cmdSet(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, newArityError("set varName ?newValue?")
	}
	name := args[1].String()
	if dictName, key, ok := splitDictSugar(name); ok {
		if len(args) == 2 {
			return ip.getDictElement(dictName, key, ip.frame)
		}
		return ip.setDictElement(dictName, key, args[2])
	}
	if len(args) == 2 {
		return ip.getVarByName(name, ip.frame)
	}
	return ip.SetVar(name, args[2]), nil
}

func cmdUnset(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("unset varName ?varName ...?")
	}
	for _, a := range args[1:] {
		name := a.String()
		if dictName, key, ok := splitDictSugar(name); ok {
			if err := ip.unsetDictElement(dictName, key); err != nil {
				return nil, err
			}
			continue
		}
		if !ip.frame.unsetVar(name) {
			return nil, newEvalError("can't unset %q: no such variable", name)
		}
	}
	return emptyStringObj, nil
}

func cmdGlobal(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("global varName ?varName ...?")
	}
	for _, a := range args[1:] {
		name := a.String()
		target := ip.global.lookupVar(name, true)
		ip.frame.linkVar(name, target)
	}
	return emptyStringObj, nil
}

func cmdUpvar(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 3 {
		return nil, newArityError("upvar ?level? otherVar localVar ?otherVar localVar ...?")
	}
	rest := args[1:]
	level := 1
	if n, err := strconv.Atoi(rest[0].String()); err == nil && len(rest)%2 == 1 {
		level = n
		rest = rest[1:]
	}
	if len(rest)%2 != 0 {
		return nil, newArityError("upvar ?level? otherVar localVar ?otherVar localVar ...?")
	}
	target := ip.frame.ancestor(level)
	for i := 0; i < len(rest); i += 2 {
		other := rest[i].String()
		local := rest[i+1].String()
		v := target.lookupVar(other, true)
		ip.frame.linkVar(local, v)
	}
	return emptyStringObj, nil
}

func cmdUplevel(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("uplevel ?level? command ?arg ...?")
	}
	rest := args[1:]
	level := 1
	if n, err := strconv.Atoi(rest[0].String()); err == nil {
		level = n
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil, newArityError("uplevel ?level? command ?arg ...?")
	}
	target := ip.frame.ancestor(level)
	script := rest[0].String()
	if len(rest) > 1 {
		parts := make([]*Obj, len(rest))
		copy(parts, rest)
		script = joinAsList(parts)
	}
	saved := ip.frame
	ip.frame = target
	res, err := ip.EvalString(script)
	ip.frame = saved
	return res, err
}

func joinAsList(parts []*Obj) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		quoteListElement(&b, p.String())
	}
	return b.String()
}

func cmdProc(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) != 4 {
		return nil, newArityError("proc name args body")
	}
	name := args[1].String()
	formals, err := ip.parseListString(args[2].String())
	if err != nil {
		return nil, err
	}
	var params []CommandArg
	for i, f := range formals {
		spec, err := ip.parseListString(f.String())
		if err != nil {
			return nil, err
		}
		switch {
		case len(spec) == 1 && spec[0].String() == "args" && i == len(formals)-1:
			params = append(params, CommandArg{Name: "args", Variadic: true})
		case len(spec) == 1:
			params = append(params, CommandArg{Name: spec[0].String()})
		case len(spec) == 2:
			params = append(params, CommandArg{Name: spec[0].String(), Default: spec[1]})
		default:
			return nil, newEvalError("too many fields in argument specifier %q", f.String())
		}
	}
	body := args[3]
	body.IncrRef()
	ip.commands.Set(name, &Command{Name: name, Params: params, Body: body})
	ip.procEpoch++
	return emptyStringObj, nil
}

func cmdReturn(ip *Interp, args []*Obj) (*Obj, error) {
	var val *Obj = emptyStringObj
	if len(args) >= 2 {
		val = args[len(args)-1]
	}
	return nil, &controlSignal{code: CodeReturn, value: val}
}

func cmdBreak(ip *Interp, args []*Obj) (*Obj, error) {
	return nil, &controlSignal{code: CodeBreak}
}

func cmdContinue(ip *Interp, args []*Obj) (*Obj, error) {
	return nil, &controlSignal{code: CodeContinue}
}

func cmdIf(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 3 {
		return nil, newArityError("if condition ?then? body ?elseif condition ?then? body ...? ?else? ?body?")
	}
	rest := args[1:]
	for len(rest) > 0 {
		cond := rest[0].String()
		rest = rest[1:]
		if len(rest) > 0 && rest[0].String() == "then" {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return nil, newArityError("if condition ?then? body ?elseif condition ?then? body ...? ?else? ?body?")
		}
		body := rest[0]
		rest = rest[1:]

		ok, err := ip.ExprBool(cond)
		if err != nil {
			return nil, err
		}
		if ok {
			return ip.EvalString(body.String())
		}
		if len(rest) == 0 {
			return emptyStringObj, nil
		}
		switch rest[0].String() {
		case "elseif":
			rest = rest[1:]
			continue
		case "else":
			rest = rest[1:]
			if len(rest) != 1 {
				return nil, newArityError("if condition ?then? body ?elseif condition ?then? body ...? ?else? ?body?")
			}
			return ip.EvalString(rest[0].String())
		default:
			return nil, newEvalError("invalid command name %q", rest[0].String())
		}
	}
	return emptyStringObj, nil
}

func cmdWhile(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) != 3 {
		return nil, newArityError("while test body")
	}
	cond := args[1].String()
	body := args[2].String()
	result := emptyStringObj
	for {
		ok, err := ip.ExprBool(cond)
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		res, err := ip.EvalString(body)
		if err != nil {
			if ctl, isCtl := err.(*controlSignal); isCtl {
				switch ctl.code {
				case CodeBreak:
					return result, nil
				case CodeContinue:
					continue
				}
			}
			return nil, err
		}
		result = res
	}
}

func cmdForeach(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 4 || len(args)%2 != 0 {
		return nil, newArityError("foreach varList list ?varList list ...? body")
	}
	body := args[len(args)-1].String()
	n := (len(args) - 2) / 2
	varLists := make([][]*Obj, n)
	valueLists := make([][]*Obj, n)
	maxLen := 0
	for i := 0; i < n; i++ {
		vars, err := ip.parseListString(args[1+2*i].String())
		if err != nil {
			return nil, err
		}
		vals, err := ip.parseListString(args[2+2*i].String())
		if err != nil {
			return nil, err
		}
		varLists[i] = vars
		valueLists[i] = vals
		need := (len(vals) + len(vars) - 1) / max1(len(vars))
		if need > maxLen {
			maxLen = need
		}
	}
	result := emptyStringObj
	for iter := 0; iter < maxLen; iter++ {
		for i := 0; i < n; i++ {
			vars := varLists[i]
			vals := valueLists[i]
			for j, vr := range vars {
				idx := iter*len(vars) + j
				if idx < len(vals) {
					ip.SetVar(vr.String(), vals[idx])
				} else {
					ip.SetVar(vr.String(), emptyStringObj)
				}
			}
		}
		res, err := ip.EvalString(body)
		if err != nil {
			if ctl, isCtl := err.(*controlSignal); isCtl {
				switch ctl.code {
				case CodeBreak:
					return result, nil
				case CodeContinue:
					continue
				}
			}
			return nil, err
		}
		result = res
	}
	return result, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func cmdIncr(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, newArityError("incr varName ?increment?")
	}
	delta := int64(1)
	if len(args) == 3 {
		n, err := asInt(args[2])
		if err != nil {
			return nil, err
		}
		delta = n
	}
	name := args[1].String()
	v := ip.frame.lookupVar(name, true)
	cur := int64(0)
	if v.Value != nil {
		n, err := asInt(v.Value)
		if err != nil {
			return nil, err
		}
		cur = n
	}
	result := NewIntObj(cur + delta)
	return ip.SetVar(name, result), nil
}

func cmdRename(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) != 3 {
		return nil, newArityError("rename oldName newName")
	}
	oldName := args[1].String()
	newName := args[2].String()
	cmd, ok := ip.commands.Get(oldName)
	if !ok {
		return nil, newEvalError("can't rename %q: command doesn't exist", oldName)
	}
	ip.commands.Delete(oldName)
	if newName != "" {
		cmd.Name = newName
		ip.commands.Set(newName, cmd)
	}
	ip.procEpoch++
	return emptyStringObj, nil
}

func cmdUnknown(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("unknown name ?arg ...?")
	}
	return nil, newEvalError("invalid command name %q", args[1].String())
}

func cmdInfo(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("info subcommand ?arg ...?")
	}
	switch args[1].String() {
	case "exists":
		if len(args) != 3 {
			return nil, newArityError("info exists varName")
		}
		v := ip.frame.lookupVar(args[2].String(), false)
		return boolObj(v != nil && v.Value != nil), nil
	case "commands":
		names := ip.commands.Keys()
		items := make([]*Obj, len(names))
		for i, n := range names {
			items[i] = NewStringObj(n)
		}
		return NewListObj(items...), nil
	case "level":
		return NewIntObj(int64(ip.frame.level)), nil
	default:
		return nil, newEvalError("unknown or ambiguous subcommand %q", args[1].String())
	}
}
