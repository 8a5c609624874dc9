package feather

import "testing"

func TestLookupVarCreatesOnDemand(t *testing.T) {
	f := newCallFrame(nil, 0, "", nil)
	if v := f.lookupVar("x", false); v != nil {
		t.Fatal("expected nil for an unknown variable without create")
	}
	v := f.lookupVar("x", true)
	if v == nil {
		t.Fatal("expected a new cell with create=true")
	}
	v.Value = NewIntObj(1)
	if f.lookupVar("x", false).Value.String() != "1" {
		t.Fatal("second lookup did not return the same cell")
	}
}

func TestUnsetVarBumpsEpoch(t *testing.T) {
	f := newCallFrame(nil, 0, "", nil)
	f.lookupVar("x", true)
	before := f.varEpoch
	if !f.unsetVar("x") {
		t.Fatal("unsetVar on an existing variable should return true")
	}
	if f.varEpoch == before {
		t.Fatal("varEpoch should change after unset")
	}
	if f.unsetVar("x") {
		t.Fatal("unsetVar on an already-removed variable should return false")
	}
}

func TestLinkVarChasesToTarget(t *testing.T) {
	global := newCallFrame(nil, 0, "", nil)
	target := global.lookupVar("g", true)
	target.Value = NewStringObj("hello")

	proc := newCallFrame(global, 1, "p", nil)
	proc.linkVar("g", target)

	got := proc.lookupVar("g", false)
	if got != target.resolve() {
		t.Fatal("linked lookup should resolve to the same cell as the target")
	}
	got.Value = NewStringObj("changed")
	if target.Value.String() != "changed" {
		t.Fatalf("write through link did not reach target: %q", target.Value.String())
	}
}

func TestAncestorWalksCallChain(t *testing.T) {
	global := newCallFrame(nil, 0, "", nil)
	mid := newCallFrame(global, 1, "mid", nil)
	inner := newCallFrame(mid, 2, "inner", nil)

	if got := inner.ancestor(1); got != mid {
		t.Fatal("ancestor(1) should be the immediate caller")
	}
	if got := inner.ancestor(2); got != global {
		t.Fatal("ancestor(2) should be the caller's caller")
	}
	// Past the root, ancestor clamps at the outermost frame.
	if got := inner.ancestor(10); got != global {
		t.Fatal("ancestor past the root should clamp at the global frame")
	}
}

func TestFrameLevelIncreasesWithDepth(t *testing.T) {
	global := newCallFrame(nil, 0, "", nil)
	if global.level != 0 {
		t.Fatalf("global level = %d, want 0", global.level)
	}
	inner := newCallFrame(global, 1, "p", nil)
	if inner.level != 1 {
		t.Fatalf("inner level = %d, want 1", inner.level)
	}
}
