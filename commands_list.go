package feather

// registerListCommands installs the list/dict ensemble, grouped into its
// own file the way the teacher splits command families apart.
func registerListCommands(ip *Interp) {
	reg := func(name string, fn NativeFunc) { ip.RegisterCommand(name, fn) }
	reg("list", cmdList)
	reg("llength", cmdLlength)
	reg("lindex", cmdLindex)
	reg("lappend", cmdLappend)
	reg("lset", cmdLset)
	reg("dict", cmdDict)
}

func cmdList(ip *Interp, args []*Obj) (*Obj, error) {
	return NewListObj(args[1:]...), nil
}

func cmdLlength(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) != 2 {
		return nil, newArityError("llength list")
	}
	elems, err := asList(args[1])
	if err != nil {
		return nil, err
	}
	return NewIntObj(int64(len(elems))), nil
}

func cmdLindex(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("lindex list ?index ...?")
	}
	cur := args[1]
	for _, idxArg := range args[2:] {
		elems, err := asList(cur)
		if err != nil {
			return nil, err
		}
		idx, err := asIndex(idxArg)
		if err != nil {
			return nil, err
		}
		i := resolveIndex(idx, len(elems))
		if i < 0 || i >= len(elems) {
			return emptyStringObj, nil
		}
		cur = elems[i]
	}
	return cur, nil
}

func cmdLappend(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("lappend varName ?value ...?")
	}
	name := args[1].String()
	v := ip.frame.lookupVar(name, true)
	var elems []*Obj
	if v.Value != nil {
		existing, err := asList(v.Value)
		if err != nil {
			return nil, err
		}
		elems = append(elems, existing...)
	}
	elems = append(elems, args[2:]...)
	result := NewListObj(elems...)
	return ip.SetVar(name, result), nil
}

func cmdLset(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) != 4 {
		return nil, newArityError("lset varName index value")
	}
	name := args[1].String()
	v := ip.frame.lookupVar(name, false)
	if v == nil || v.Value == nil {
		return nil, newEvalError("can't read %q: no such variable", name)
	}
	elems, err := asList(v.Value)
	if err != nil {
		return nil, err
	}
	idx, err := asIndex(args[2])
	if err != nil {
		return nil, err
	}
	i := resolveIndex(idx, len(elems))
	if i < 0 || i >= len(elems) {
		return nil, newEvalError("list index out of range")
	}
	updated := make([]*Obj, len(elems))
	copy(updated, elems)
	updated[i] = args[3]
	result := NewListObj(updated...)
	return ip.SetVar(name, result), nil
}

func cmdDict(ip *Interp, args []*Obj) (*Obj, error) {
	if len(args) < 2 {
		return nil, newArityError("dict subcommand ?arg ...?")
	}
	switch args[1].String() {
	case "create":
		return NewDictObj(args[2:]...)
	case "get":
		if len(args) < 3 {
			return nil, newArityError("dict get dictionary ?key ...?")
		}
		d, err := asDict(args[2])
		if err != nil {
			return nil, err
		}
		cur := d
		var result *Obj
		for i, k := range args[3:] {
			key := k.String()
			elem, ok := cur.Items[key]
			if !ok {
				return nil, newEvalError("key %q not known in dictionary", key)
			}
			result = elem
			if i < len(args[3:])-1 {
				cur, err = asDict(elem)
				if err != nil {
					return nil, err
				}
			}
		}
		if result == nil {
			return dictAsObj(d), nil
		}
		return result, nil
	case "set":
		if len(args) < 5 {
			return nil, newArityError("dict set varName key ?key ...? value")
		}
		name := args[2].String()
		v := ip.frame.lookupVar(name, true)
		d := NewDictType()
		if v.Value != nil {
			existing, err := asDict(v.Value)
			if err != nil {
				return nil, err
			}
			d = existing.Dup().(*DictType)
		}
		keys := args[3 : len(args)-1]
		value := args[len(args)-1]
		if err := dictSetPath(d, keys, value); err != nil {
			return nil, err
		}
		result := dictAsObj(d)
		return ip.SetVar(name, result), nil
	case "keys":
		if len(args) != 3 {
			return nil, newArityError("dict keys dictionary")
		}
		d, err := asDict(args[2])
		if err != nil {
			return nil, err
		}
		items := make([]*Obj, len(d.Order))
		for i, k := range d.Order {
			items[i] = NewStringObj(k)
		}
		return NewListObj(items...), nil
	case "exists":
		if len(args) < 3 {
			return nil, newArityError("dict exists dictionary key ?key ...?")
		}
		d, err := asDict(args[2])
		if err != nil {
			return nil, err
		}
		cur := d
		for i, k := range args[3:] {
			key := k.String()
			elem, ok := cur.Items[key]
			if !ok {
				return boolObj(false), nil
			}
			if i < len(args[3:])-1 {
				cur, err = asDict(elem)
				if err != nil {
					return boolObj(false), nil
				}
			}
		}
		return boolObj(true), nil
	case "size":
		if len(args) != 3 {
			return nil, newArityError("dict size dictionary")
		}
		d, err := asDict(args[2])
		if err != nil {
			return nil, err
		}
		return NewIntObj(int64(len(d.Order))), nil
	case "unset":
		if len(args) < 4 {
			return nil, newArityError("dict unset varName key ?key ...?")
		}
		name := args[2].String()
		v := ip.frame.lookupVar(name, false)
		if v == nil || v.Value == nil {
			return nil, newEvalError("can't read %q: no such variable", name)
		}
		d, err := asDict(v.Value)
		if err != nil {
			return nil, err
		}
		d = d.Dup().(*DictType)
		if len(args) == 4 {
			d.Unset(args[3].String())
		} else {
			return nil, newEvalError("dict unset with nested keys is not supported")
		}
		return ip.SetVar(name, dictAsObj(d)), nil
	default:
		return nil, newEvalError("unknown or ambiguous subcommand %q", args[1].String())
	}
}

func dictAsObj(d *DictType) *Obj {
	return &Obj{intrep: d, dirty: true}
}

func dictSetPath(d *DictType, keys []*Obj, value *Obj) error {
	if len(keys) == 1 {
		d.Set(keys[0].String(), value)
		return nil
	}
	key := keys[0].String()
	var child *DictType
	if existing, ok := d.Items[key]; ok {
		nested, err := asDict(existing)
		if err != nil {
			return err
		}
		child = nested.Dup().(*DictType)
	} else {
		child = NewDictType()
	}
	if err := dictSetPath(child, keys[1:], value); err != nil {
		return err
	}
	d.Set(key, dictAsObj(child))
	return nil
}
