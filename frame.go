package feather

// Variable is a storage cell in a call frame's variable table. A variable
// created by `upvar` or `global` is a link: Value is nil and Link points
// at the target cell in another frame, so reads/writes transparently
// chase the link (SPEC_FULL.md §4.2, upvar/global).
type Variable struct {
	Value *Obj
	Link  *Variable
}

func (v *Variable) resolve() *Variable {
	for v.Link != nil {
		v = v.Link
	}
	return v
}

// CallFrame is one activation record: a procedure invocation or the
// top-level/global frame. varEpoch increments whenever a variable is
// created or unset in this frame so that VarCacheType entries referring
// to it can detect staleness without a central invalidation sweep.
type CallFrame struct {
	id       int64
	parent   *CallFrame
	level    int // 0 for the global frame, increases with call depth
	vars     map[string]*Variable
	varEpoch int64

	procName string // for stack traces; "" at the top level
	args     []*Obj
}

func newCallFrame(parent *CallFrame, id int64, procName string, args []*Obj) *CallFrame {
	level := 0
	if parent != nil {
		level = parent.level + 1
	}
	return &CallFrame{
		id:       id,
		parent:   parent,
		level:    level,
		vars:     make(map[string]*Variable),
		procName: procName,
		args:     args,
	}
}

// lookupVar resolves name in the frame's variable table, creating a new
// cell when create is true and no entry exists. It never follows upvar
// links across frames on its own; the link chase happens inside Variable
// itself via resolve.
func (f *CallFrame) lookupVar(name string, create bool) *Variable {
	if v, ok := f.vars[name]; ok {
		return v.resolve()
	}
	if !create {
		return nil
	}
	v := &Variable{}
	f.vars[name] = v
	f.varEpoch++
	return v
}

// unsetVar removes name from the frame's own table (not the resolved
// target of a link), bumping varEpoch so cached lookups miss.
func (f *CallFrame) unsetVar(name string) bool {
	if _, ok := f.vars[name]; !ok {
		return false
	}
	delete(f.vars, name)
	f.varEpoch++
	return true
}

// linkVar makes name in f an alias for target, as used by upvar/global.
func (f *CallFrame) linkVar(name string, target *Variable) {
	f.vars[name] = &Variable{Link: target}
	f.varEpoch++
}

// ancestor walks up n call levels from f, used by upvar's level argument.
func (f *CallFrame) ancestor(n int) *CallFrame {
	cur := f
	for i := 0; i < n && cur.parent != nil; i++ {
		cur = cur.parent
	}
	return cur
}
