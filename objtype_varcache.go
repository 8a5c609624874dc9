package feather

// VarCacheType memoizes a variable-name token's resolution against the
// call frame that produced it. The evaluator does not use it: variable
// reads and writes go through CallFrame.lookupVar directly, and nothing
// calls lookupVarCached. Validity is governed by
// callFrameEpoch: a stale cache (frame id mismatch, or the frame's local
// epoch bumped by unset) is simply not used, not explicitly invalidated —
// matching SPEC_FULL.md's epoch discipline.
type VarCacheType struct {
	frameID int64
	epoch   int64
	v       *Variable
}

func (t *VarCacheType) Name() string         { return "variable-cache" }
func (t *VarCacheType) UpdateString() string { fatalf("feather: variable-cache has no string form"); return "" }
func (t *VarCacheType) Dup() ObjType         { return &VarCacheType{} } // caches never survive a copy

// lookupVarCached resolves a variable-name token against frame, using and
// maintaining a VarCacheType structured form on the token Obj.
func lookupVarCached(nameObj *Obj, frame *CallFrame, create bool) *Variable {
	if vc, ok := nameObj.intrep.(*VarCacheType); ok {
		if vc.frameID == frame.id && vc.epoch == frame.varEpoch {
			return vc.v
		}
	}
	v := frame.lookupVar(nameObj.String(), create)
	if v != nil {
		nameObj.intrep = &VarCacheType{frameID: frame.id, epoch: frame.varEpoch, v: v}
		nameObj.dirty = false
	}
	return v
}
