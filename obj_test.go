package feather

import "testing"

func TestObjStringFromStructuredForm(t *testing.T) {
	o := NewIntObj(42)
	if got := o.String(); got != "42" {
		t.Fatalf("String() = %q, want %q", got, "42")
	}
	if o.Type() != "int" {
		t.Fatalf("Type() = %q, want int", o.Type())
	}
}

func TestObjShimmersOnDemand(t *testing.T) {
	o := NewStringObj("123")
	if o.Type() != "string" {
		t.Fatalf("Type() = %q, want string before shimmer", o.Type())
	}
	n, err := asInt(o)
	if err != nil {
		t.Fatal(err)
	}
	if n != 123 {
		t.Fatalf("asInt = %d, want 123", n)
	}
	if o.Type() != "int" {
		t.Fatalf("Type() after shimmer = %q, want int", o.Type())
	}
}

func TestObjCopyOnWriteGuard(t *testing.T) {
	o := NewStringObj("shared")
	o.IncrRef()
	o.IncrRef()
	if !o.IsShared() {
		t.Fatal("expected IsShared() after two IncrRef calls")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic mutating a shared value")
		}
	}()
	o.invalidateString()
}

func TestObjCopyIsIndependent(t *testing.T) {
	o := NewListObj(NewStringObj("a"), NewStringObj("b"))
	o.String() // force string form
	cp := o.Copy()
	elems, err := asList(cp)
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 2 {
		t.Fatalf("copy has %d elements, want 2", len(elems))
	}
}
