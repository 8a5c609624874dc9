package feather

import "fmt"

// -----------------------------------------------------------------------------
// Object Creation
// -----------------------------------------------------------------------------

// List creates a list object from the given items.
func (ip *Interp) List(items ...*Obj) *Obj { return NewListObj(items...) }

// ListFrom creates a list object from a Go slice of string, int, int64,
// float64, bool, or any (auto-converted element by element).
func (ip *Interp) ListFrom(slice any) *Obj {
	var items []*Obj
	switch s := slice.(type) {
	case []string:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = NewStringObj(v)
		}
	case []int:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = NewIntObj(int64(v))
		}
	case []int64:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = NewIntObj(v)
		}
	case []float64:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = NewDoubleObj(v)
		}
	case []bool:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = boolObj(v)
		}
	case []any:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = ip.anyToObj(v)
		}
	default:
		fatalf("feather: ListFrom: unsupported slice type %T", slice)
	}
	return NewListObj(items...)
}

// DictKV creates a dict object from alternating key/value arguments.
func (ip *Interp) DictKV(kvs ...any) (*Obj, error) {
	objs := make([]*Obj, len(kvs))
	for i, v := range kvs {
		objs[i] = ip.anyToObj(v)
	}
	return NewDictObj(objs...)
}

// DictFrom creates a dict object from a Go map, in unspecified key order.
func (ip *Interp) DictFrom(m map[string]any) (*Obj, error) {
	var kvs []*Obj
	for k, v := range m {
		kvs = append(kvs, NewStringObj(k), ip.anyToObj(v))
	}
	return NewDictObj(kvs...)
}

func (ip *Interp) anyToObj(v any) *Obj {
	switch t := v.(type) {
	case *Obj:
		return t
	case string:
		return NewStringObj(t)
	case int:
		return NewIntObj(int64(t))
	case int64:
		return NewIntObj(t)
	case float64:
		return NewDoubleObj(t)
	case bool:
		return boolObj(t)
	default:
		return NewStringObj(fmt.Sprint(t))
	}
}

// -----------------------------------------------------------------------------
// Variable Access
// -----------------------------------------------------------------------------

// Var reads a variable from the interpreter's current frame, returning an
// empty string Obj if it does not exist (mirrors Tcl's "no error channel"
// convenience accessor — use GetVar for the error-returning form).
func (ip *Interp) Var(name string) *Obj {
	v, err := ip.GetVar(name)
	if err != nil {
		return emptyStringObj
	}
	return v
}

// SetVars assigns multiple variables at once, converting each value with
// the same rules as anyToObj.
func (ip *Interp) SetVars(vars map[string]any) {
	for name, v := range vars {
		ip.SetVar(name, ip.anyToObj(v))
	}
}

// GetVars reads multiple variables at once, omitting any that don't exist.
func (ip *Interp) GetVars(names ...string) map[string]*Obj {
	out := make(map[string]*Obj, len(names))
	for _, n := range names {
		if v, err := ip.GetVar(n); err == nil {
			out[n] = v
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// Parsing Helpers
// -----------------------------------------------------------------------------

// ParseListObjs splits s as a Tcl list without evaluating anything.
func (ip *Interp) ParseListObjs(s string) ([]*Obj, error) { return parseListToObjs(s) }

// ParseDict splits s as a Tcl dict (a list of even length) without
// evaluating anything.
func (ip *Interp) ParseDict(s string) (*DictType, error) {
	elems, err := parseListToObjs(s)
	if err != nil {
		return nil, err
	}
	if len(elems)%2 != 0 {
		return nil, newEvalError("missing value to go with key")
	}
	d := NewDictType()
	for i := 0; i+1 < len(elems); i += 2 {
		d.Set(elems[i].String(), elems[i+1])
	}
	return d, nil
}

// -----------------------------------------------------------------------------
// Result Readers
// -----------------------------------------------------------------------------

// AsInt parses o as an integer, shimmering it when safe.
func AsInt(o *Obj) (int64, error) { return asInt(o) }

// AsDouble parses o as a floating-point number, shimmering it when safe.
func AsDouble(o *Obj) (float64, error) { return asDouble(o) }

// AsBool parses o according to Tcl's boolean literal rules.
func AsBool(o *Obj) (bool, error) { return asBool(o) }

// AsList parses o as a list, shimmering it when safe.
func AsList(o *Obj) ([]*Obj, error) { return asList(o) }

// AsDict parses o as a dict, shimmering it when safe.
func AsDict(o *Obj) (*DictType, error) { return asDict(o) }
