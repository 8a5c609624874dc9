package feather

import "time"

// refEntry is one entry in the interpreter's reference table: a value
// plus an optional finalizer command, keyed by the reference's integer
// id (SPEC_FULL.md §4.5, the `ref`/`getref`/`collect` commands).
type refEntry struct {
	value     *Obj
	finalizer *Obj // command prefix invoked on sweep, or nil
	marked    bool
}

const (
	collectIDPeriod   = 5000 // collect after this many refs since last sweep
	collectTimePeriod = 300 * time.Second
)

// NewRef creates a new reference wrapping value, with an optional
// finalizer command (invoked as `finalizer refToken heldValue` when the
// reference is swept as unreachable). It returns the reference Obj.
func (ip *Interp) NewRef(value *Obj, finalizer *Obj) *Obj {
	id := ip.nextRefID
	ip.nextRefID++
	value.IncrRef()
	if finalizer != nil {
		finalizer.IncrRef()
	}
	ip.refs.Set(id, &refEntry{value: value, finalizer: finalizer})
	ip.refsAllocated++
	ip.maybeCollect()
	return NewReferenceObj(id)
}

// GetRef dereferences a reference Obj, returning an error if the id is
// not present in the table (already collected, or never valid).
func (ip *Interp) GetRef(ref *Obj) (*Obj, error) {
	id, err := asReference(ref)
	if err != nil {
		return nil, err
	}
	e, ok := ip.refs.Get(id)
	if !ok {
		return nil, newEvalError("invalid reference id %q", ref.String())
	}
	return e.value, nil
}

// SetFinalizer replaces the finalizer command attached to ref.
func (ip *Interp) SetFinalizer(ref *Obj, finalizer *Obj) error {
	id, err := asReference(ref)
	if err != nil {
		return err
	}
	e, ok := ip.refs.Get(id)
	if !ok {
		return newEvalError("invalid reference id %q", ref.String())
	}
	if e.finalizer != nil {
		e.finalizer.DecrRef()
	}
	e.finalizer = finalizer
	if finalizer != nil {
		finalizer.IncrRef()
	}
	return nil
}

// maybeCollect runs Collect if either GC trigger has been crossed:
// 5000 references allocated since the last sweep, or 300 seconds
// elapsed (SPEC_FULL.md §4.5).
func (ip *Interp) maybeCollect() {
	if ip.refsAllocated >= collectIDPeriod {
		ip.Collect()
		return
	}
	if ip.lastCollect.IsZero() {
		return
	}
	if time.Since(ip.lastCollect) >= collectTimePeriod {
		ip.Collect()
	}
}

// Collect runs a stop-the-world mark-and-sweep over the reference table.
// The mark phase treats every *Obj reachable from a GC root (global and
// active call-frame variables and arguments, the interpreter result, and
// any reference already known live) as live, then scans
// each live value's string form for embedded reference tokens — mirroring
// the C implementation's approach of treating the reference string itself
// as the only pointer representation, now applied on top of Go's own GC
// instead of an intrusive live-object list (see DESIGN.md, "Reference GC
// root set"). Unmarked entries are swept, invoking their finalizer (if
// any) with errors ignored, the interpreter's result saved and restored
// around the call so a finalizer cannot clobber it.
func (ip *Interp) Collect() int {
	live := make(map[int64]struct{})

	var roots []*Obj
	roots = append(roots, ip.result)
	for _, v := range ip.global.vars {
		if rv := v.resolve(); rv.Value != nil {
			roots = append(roots, rv.Value)
		}
	}
	for f := ip.frame; f != nil; f = f.parent {
		for _, v := range f.vars {
			if rv := v.resolve(); rv.Value != nil {
				roots = append(roots, rv.Value)
			}
		}
		roots = append(roots, f.args...)
	}

	for _, o := range roots {
		scanObjForReferences(o, live)
	}

	// Fixed point: a live reference's own value may itself embed further
	// reference tokens (a reference stored inside a list, say).
	changed := true
	for changed {
		changed = false
		for id := range live {
			e, ok := ip.refs.Get(id)
			if !ok || e.marked {
				continue
			}
			e.marked = true
			before := len(live)
			scanObjForReferences(e.value, live)
			if len(live) != before {
				changed = true
			}
		}
	}

	var collected []int64
	ip.refs.ForEach(func(id int64, e *refEntry) {
		if _, ok := live[id]; !ok {
			collected = append(collected, id)
		}
	})

	for _, id := range collected {
		e, _ := ip.refs.Get(id)
		if e.finalizer != nil {
			savedResult := ip.result
			args := []*Obj{e.finalizer, NewReferenceObj(id), e.value}
			_, _ = ip.Call(args) // finalizer errors are ignored, per spec
			ip.result = savedResult
		}
		ip.refs.Delete(id)
	}

	ip.refsAllocated = 0
	ip.lastCollect = time.Now()
	return len(collected)
}

func scanObjForReferences(o *Obj, live map[int64]struct{}) {
	if o == nil {
		return
	}
	if rt, ok := o.intrep.(*ReferenceType); ok {
		live[rt.id] = struct{}{}
	}
	scanForReferences(o.String(), live)
}
