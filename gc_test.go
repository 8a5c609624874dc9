package feather

import "testing"

func TestCollectReclaimsUnreachableOnly(t *testing.T) {
	ip := New()
	evalString(t, ip, "set kept [ref alive]")
	evalString(t, ip, "set r [ref gone]")
	evalString(t, ip, "unset r")
	n := ip.Collect()
	if n != 1 {
		t.Fatalf("collected %d, want 1", n)
	}
	if got := evalString(t, ip, "getref $kept"); got != "alive" {
		t.Fatalf("kept ref lost its value: %q", got)
	}
}

func TestCollectFollowsReferenceNestedInList(t *testing.T) {
	ip := New()
	evalString(t, ip, "set inner [ref payload]")
	evalString(t, ip, "set outer [list $inner]")
	evalString(t, ip, "unset inner")
	n := ip.Collect()
	if n != 0 {
		t.Fatalf("collected %d, want 0 (inner ref still reachable via outer list)", n)
	}
	got := evalString(t, ip, "getref [lindex $outer 0]")
	if got != "payload" {
		t.Fatalf("got %q, want payload", got)
	}
}

func TestCollectRunsFinalizerOnSweep(t *testing.T) {
	ip := New()
	evalString(t, ip, "set seenRef {}")
	evalString(t, ip, "set seenValue {}")
	evalString(t, ip, "proc onGone {r v} { global seenRef seenValue; set seenRef $r; set seenValue $v }")
	evalString(t, ip, "set r [ref doomed]")
	rToken := evalString(t, ip, "set r")
	if err := ip.SetFinalizer(mustEvalObj(t, ip, "set r"), mustEvalObj(t, ip, "set _ onGone")); err != nil {
		t.Fatal(err)
	}
	evalString(t, ip, "unset r")
	n := ip.Collect()
	if n != 1 {
		t.Fatalf("collected %d, want 1", n)
	}
	if got := evalString(t, ip, "set seenRef"); got != rToken {
		t.Fatalf("finalizer's reference arg = %q, want %q", got, rToken)
	}
	if got := evalString(t, ip, "set seenValue"); got != "doomed" {
		t.Fatalf("finalizer's held-value arg = %q, want doomed", got)
	}
}

func TestCollectIsNoopWhenNothingAllocated(t *testing.T) {
	ip := New()
	if n := ip.Collect(); n != 0 {
		t.Fatalf("collected %d on an empty interpreter, want 0", n)
	}
}

func mustEvalObj(t *testing.T, ip *Interp, src string) *Obj {
	t.Helper()
	o, err := ip.Eval(src)
	if err != nil {
		t.Fatal(err)
	}
	return o
}
