package feather

// Obj is a Feather value: a canonical string form plus an optional,
// lazily-regenerated structured form ("shimmering" per the Tcl tradition).
//
// Memory for Obj values themselves is reclaimed by the Go garbage
// collector (the redesign in SPEC_FULL.md §3 trades the reference
// implementation's intrusive live/free value lists for this). refCount is
// retained, but solely to implement the copy-on-write sharing discipline:
// a mutator must duplicate any Obj whose refCount is greater than one
// before mutating its string or structured form in place.
type Obj struct {
	bytes    string  // canonical string form; valid unless intrep is present and dirty
	intrep   ObjType // structured form; nil for a pure string
	dirty    bool    // bytes is stale and must be regenerated from intrep
	refCount int32   // shared-use counter; not a lifetime/ownership count
	interp   *Interp // owning interpreter, needed to shimmer from a bare string
}

// ObjType is the behavior every structured representation must provide.
type ObjType interface {
	// Name returns the type name reported by Obj.Type, e.g. "int", "list".
	Name() string

	// UpdateString regenerates the canonical string form from this
	// structured form. Must never be nil for a type that is ever installed
	// via shimmering (a missing hook is a fatal implementation error).
	UpdateString() string

	// Dup returns an independent copy of this structured form.
	Dup() ObjType
}

// IntoInt is implemented by structured forms that convert directly to an
// integer without reparsing the string form (e.g. IntType, IndexType).
type IntoInt interface {
	IntoInt() (int64, bool)
}

// IntoDouble is implemented by structured forms that convert directly to
// a floating point number.
type IntoDouble interface {
	IntoDouble() (float64, bool)
}

// IntoList is implemented by structured forms that convert directly to a
// list of elements.
type IntoList interface {
	IntoList() ([]*Obj, bool)
}

// IntoDict is implemented by structured forms that convert directly to a
// dictionary, preserving insertion order.
type IntoDict interface {
	IntoDict() (map[string]*Obj, []string, bool)
}

// IntoBool is implemented by structured forms that convert directly to a
// boolean without restringifying.
type IntoBool interface {
	IntoBool() (bool, bool)
}

// NewStringObj creates a pure-string value with no structured form.
func NewStringObj(s string) *Obj {
	return &Obj{bytes: s}
}

// emptyStringObj is never mutated; Copy() still gives callers an independent
// value so the sharing discipline holds even for the empty string.
var emptyStringObj = &Obj{}

// String returns the canonical string form, regenerating it from the
// structured form if it is absent or stale.
func (o *Obj) String() string {
	if o == nil {
		return ""
	}
	if o.dirty {
		if o.intrep == nil {
			fatalf("feather: Obj marked dirty with no structured form")
		}
		o.bytes = o.intrep.UpdateString()
		o.dirty = false
	}
	return o.bytes
}

// Type reports the structured form's type name, or "string" for a pure
// string value.
func (o *Obj) Type() string {
	if o == nil || o.intrep == nil {
		return "string"
	}
	return o.intrep.Name()
}

// InternalRep returns the structured form, or nil for a pure string.
func (o *Obj) InternalRep() ObjType {
	if o == nil {
		return nil
	}
	return o.intrep
}

// IsShared reports whether more than one reference currently holds this
// value, per the copy-on-write discipline in SPEC_FULL.md §3.1.
func (o *Obj) IsShared() bool {
	return o != nil && o.refCount > 1
}

// IncrRef records an additional holder of this value (a variable slot, a
// list/dict element, an argument vector entry, ...).
func (o *Obj) IncrRef() {
	if o != nil {
		o.refCount++
	}
}

// DecrRef records that a holder released this value.
func (o *Obj) DecrRef() {
	if o != nil && o.refCount > 0 {
		o.refCount--
	}
}

// invalidateString clears the cached string form after a direct in-place
// mutation of the structured form. Panics if shared, enforcing the
// copy-on-write contract from SPEC_FULL.md §3.1.
func (o *Obj) invalidateString() {
	if o.refCount > 1 {
		fatalf("feather: attempt to mutate a shared value (refCount=%d)", o.refCount)
	}
	o.bytes = ""
	o.dirty = o.intrep != nil
}

// Copy returns an independent duplicate: the string form is copied
// byte-for-byte, the structured form (if any) via its Dup hook. The copy
// starts with refCount 0 and is tied to the same interpreter.
func (o *Obj) Copy() *Obj {
	if o == nil {
		return nil
	}
	n := &Obj{bytes: o.bytes, dirty: o.dirty, interp: o.interp}
	if o.intrep != nil {
		n.intrep = o.intrep.Dup()
	}
	return n
}

// shimmer discards the current structured form (if its type has cleanup
// to do, Dup/UpdateString are all this core needs since Go reclaims
// memory) and installs a freshly parsed one, without touching the string
// form. Panics if newRep is nil.
func (o *Obj) shimmer(newRep ObjType) {
	if newRep == nil {
		fatalf("feather: shimmer to nil structured form")
	}
	o.intrep = newRep
}

// setInterp attaches the owning interpreter, used for values constructed
// before an interpreter is available (e.g. literals during compilation).
func (o *Obj) setInterp(ip *Interp) {
	if o != nil {
		o.interp = ip
	}
}
