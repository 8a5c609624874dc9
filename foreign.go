package feather

import (
	"fmt"
	"reflect"
)

// TypeDef defines a foreign Go type exposed to scripts as an object
// command: "TypeName new" constructs an instance, whose string form
// becomes itself a command accepting "$obj method ?arg ...?" calls.
type TypeDef[T any] struct {
	New     func() T
	Methods map[string]any
	String  func(T) string
	Destroy func(T)
}

// foreignInstance wraps a constructed value for storage behind a
// reference token, along with the TypeDef that constructed it.
type foreignInstance struct {
	value any
	def   *registeredType
}

// ForeignType is the structured form of an instance Obj: its string form
// is the same reference token GetRef/ref would produce, and it records
// the reference id under which the boxed Go value is stored.
type ForeignType struct {
	str string
	ref int64
}

func (t *ForeignType) Name() string         { return "foreign" }
func (t *ForeignType) UpdateString() string { return t.str }
func (t *ForeignType) Dup() ObjType         { return &ForeignType{str: t.str, ref: t.ref} }

type registeredType struct {
	name       string
	methods    map[string]reflect.Value
	stringFn   reflect.Value
	destroyFn  reflect.Value
	hasString  bool
	hasDestroy bool
}

// RegisterType exposes T to scripts under name: "name new" constructs an
// instance via def.New, and the resulting object's string form is
// registered as its own command dispatching "$obj method ?arg ...?"
// through def.Methods.
func RegisterType[T any](ip *Interp, name string, def TypeDef[T]) error {
	if def.New == nil {
		return newEvalError("RegisterType %q: New constructor is required", name)
	}
	rt := &registeredType{name: name, methods: make(map[string]reflect.Value)}
	for mname, fn := range def.Methods {
		v := reflect.ValueOf(fn)
		if v.Kind() != reflect.Func || v.Type().NumIn() < 1 {
			return newEvalError("RegisterType %q: method %q must be a function of (T, ...)", name, mname)
		}
		rt.methods[mname] = v
	}
	if def.String != nil {
		rt.stringFn = reflect.ValueOf(def.String)
		rt.hasString = true
	}
	if def.Destroy != nil {
		rt.destroyFn = reflect.ValueOf(def.Destroy)
		rt.hasDestroy = true
	}

	ip.RegisterCommand(name, func(ip *Interp, args []*Obj) (*Obj, error) {
		if len(args) != 2 || args[1].String() != "new" {
			return nil, newArityError(name + " new")
		}
		instance := def.New()
		return ip.newForeignObj(rt, instance), nil
	})
	return nil
}

// newForeignObj allocates a reference-table entry for instance and
// registers the resulting token string as an object command.
func (ip *Interp) newForeignObj(rt *registeredType, instance any) *Obj {
	id := ip.nextRefID
	ip.nextRefID++
	fi := &foreignInstance{value: instance, def: rt}
	token := formatReferenceToken(id)
	ip.refs.Set(id, &refEntry{value: &Obj{bytes: fmt.Sprintf("<%s:%d>", rt.name, id)}})
	ip.foreignInstances().Set(id, fi)

	ip.RegisterCommand(token, func(ip *Interp, cargs []*Obj) (*Obj, error) {
		if len(cargs) < 2 {
			return nil, newArityError(token + " method ?arg ...?")
		}
		return ip.dispatchForeignMethod(fi, cargs[1].String(), cargs[2:])
	})

	return &Obj{bytes: token, intrep: &ForeignType{str: token, ref: id}}
}

// foreignInstances lazily creates the per-interpreter table mapping
// reference ids to boxed Go values, kept separate from the plain-value
// reference table so GC scanning of ordinary references is unaffected.
func (ip *Interp) foreignInstances() *HashTable[int64, *foreignInstance] {
	if ip.foreignTable == nil {
		ip.foreignTable = NewHashTable[int64, *foreignInstance](nil)
	}
	return ip.foreignTable
}

func (ip *Interp) dispatchForeignMethod(fi *foreignInstance, method string, margs []*Obj) (*Obj, error) {
	fn, ok := fi.def.methods[method]
	if !ok {
		if fi.def.hasString && method == "string" {
			return NewStringObj(fi.def.stringFn.Call([]reflect.Value{reflect.ValueOf(fi.value)})[0].String()), nil
		}
		return nil, newEvalError("unknown method %q on %s instance", method, fi.def.name)
	}
	fnType := fn.Type()
	if fnType.NumIn()-1 != len(margs) {
		return nil, newEvalError("wrong # args for method %q: expected %d, got %d", method, fnType.NumIn()-1, len(margs))
	}
	in := make([]reflect.Value, fnType.NumIn())
	in[0] = reflect.ValueOf(fi.value)
	for j, a := range margs {
		converted, err := convertArg(a, fnType.In(j+1))
		if err != nil {
			return nil, newEvalError("argument %d: %v", j+1, err)
		}
		in[j+1] = converted
	}
	out := fn.Call(in)
	return processResults(out, fnType)
}
