package feather

import (
	"strings"
	"testing"
)

func evalString(t *testing.T, ip *Interp, src string) string {
	t.Helper()
	res, err := ip.Eval(src)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return res.String()
}

func TestBasicSetAndExpr(t *testing.T) {
	ip := New()
	evalString(t, ip, "set x 10")
	got := evalString(t, ip, "expr {$x * 2}")
	if got != "20" {
		t.Fatalf("got %q, want 20", got)
	}
}

func TestProcCallAndReturn(t *testing.T) {
	ip := New()
	evalString(t, ip, "proc double {n} { return [expr {$n * 2}] }")
	got := evalString(t, ip, "double 21")
	if got != "42" {
		t.Fatalf("got %q, want 42", got)
	}
}

func TestProcDefaultAndVariadicArgs(t *testing.T) {
	ip := New()
	evalString(t, ip, "proc greet {name {greeting hello}} { return \"$greeting, $name\" }")
	got := evalString(t, ip, "greet World")
	if got != "hello, World" {
		t.Fatalf("got %q", got)
	}
	evalString(t, ip, "proc sumall {args} { set total 0; foreach a $args { set total [expr {$total + $a}] }; return $total }")
	got = evalString(t, ip, "sumall 1 2 3 4")
	if got != "10" {
		t.Fatalf("got %q, want 10", got)
	}
}

func TestWhileBreakContinue(t *testing.T) {
	ip := New()
	script := `
set i 0
set total 0
while {$i < 10} {
	incr i
	if {$i == 5} { continue }
	if {$i > 8} { break }
	set total [expr {$total + $i}]
}
set total
`
	got := evalString(t, ip, script)
	if got != "31" {
		t.Fatalf("got %q, want 31", got)
	}
}

func TestForeachMultiList(t *testing.T) {
	ip := New()
	evalString(t, ip, "set pairs {}")
	script := `
foreach {k v} {a 1 b 2 c 3} {
	lappend pairs "$k=$v"
}
set pairs
`
	got := evalString(t, ip, script)
	if got != "a=1 b=2 c=3" {
		t.Fatalf("got %q", got)
	}
}

func TestCatchReportsErrorCode(t *testing.T) {
	ip := New()
	evalString(t, ip, `set code [catch {error "boom"} msg]`)
	code := evalString(t, ip, "set code")
	msg := evalString(t, ip, "set msg")
	if code != "1" {
		t.Fatalf("code = %q, want 1", code)
	}
	if msg != "boom" {
		t.Fatalf("msg = %q, want boom", msg)
	}
}

func TestListAndLindex(t *testing.T) {
	ip := New()
	got := evalString(t, ip, `lindex {a b c} 1`)
	if got != "b" {
		t.Fatalf("got %q, want b", got)
	}
	got = evalString(t, ip, `lindex {a b c} end`)
	if got != "c" {
		t.Fatalf("got %q, want c", got)
	}
}

func TestDictCreateGetSetExists(t *testing.T) {
	ip := New()
	evalString(t, ip, `set d [dict create a 1 b 2]`)
	got := evalString(t, ip, `dict get $d a`)
	if got != "1" {
		t.Fatalf("got %q, want 1", got)
	}
	got = evalString(t, ip, `dict exists $d b`)
	if got != "1" {
		t.Fatalf("dict exists = %q, want 1", got)
	}
	evalString(t, ip, `dict set d c 3`)
	got = evalString(t, ip, `dict get $d c`)
	if got != "3" {
		t.Fatalf("got %q, want 3", got)
	}
}

func TestDictSugarVariableAccess(t *testing.T) {
	ip := New()
	evalString(t, ip, `set rec [dict create name Ada]`)
	got := evalString(t, ip, `set name $rec(name)`)
	if got != "Ada" {
		t.Fatalf("got %q, want Ada", got)
	}
}

func TestDictSugarSetAutoVivifiesAndUnsetRemovesKey(t *testing.T) {
	ip := New()
	evalString(t, ip, `set rec(name) Ada`)
	if got := evalString(t, ip, `dict get $rec name`); got != "Ada" {
		t.Fatalf("got %q, want Ada", got)
	}
	evalString(t, ip, `set rec(age) 36`)
	if got := evalString(t, ip, `set rec(age)`); got != "36" {
		t.Fatalf("got %q, want 36", got)
	}
	evalString(t, ip, `unset rec(age)`)
	if _, err := ip.Eval(`set rec(age)`); err == nil {
		t.Fatal("expected an error reading an unset dict key")
	}
	if got := evalString(t, ip, `dict exists $rec name`); got != "1" {
		t.Fatalf("dict exists = %q, want 1 (unset should only remove the one key)", got)
	}
	if _, err := ip.Eval(`unset nope(key)`); err == nil {
		t.Fatal("expected an error unsetting a key on a variable that doesn't exist")
	}
}

func TestRefGetrefCollect(t *testing.T) {
	ip := New()
	evalString(t, ip, `set r [ref hello]`)
	got := evalString(t, ip, `getref $r`)
	if got != "hello" {
		t.Fatalf("got %q, want hello", got)
	}
	evalString(t, ip, `unset r`)
	n := ip.Collect()
	if n != 1 {
		t.Fatalf("collect reclaimed %d, want 1", n)
	}
}

func TestUpvarAndGlobal(t *testing.T) {
	ip := New()
	script := `
set g 1
proc bumpGlobal {} {
	global g
	incr g
}
bumpGlobal
bumpGlobal
set g
`
	got := evalString(t, ip, script)
	if got != "3" {
		t.Fatalf("got %q, want 3", got)
	}

	script2 := `
proc setOuter {varName val} {
	upvar 1 $varName v
	set v $val
}
set target before
setOuter target after
set target
`
	got = evalString(t, ip, script2)
	if got != "after" {
		t.Fatalf("got %q, want after", got)
	}
}

func TestSubstFlags(t *testing.T) {
	ip := New()
	evalString(t, ip, "set x hidden")
	evalString(t, ip, "proc sideEffect {} { return called }")

	if got := evalString(t, ip, `subst {a\nb}`); got != "a\nb" {
		t.Fatalf("got %q, want a newline-containing string", got)
	}
	if got := evalString(t, ip, `subst -nobackslashes {a\nb}`); got != `a\nb` {
		t.Fatalf("got %q, want the literal 4 bytes a\\nb", got)
	}
	if got := evalString(t, ip, `subst -novariables {before $x after}`); got != "before $x after" {
		t.Fatalf("got %q, want $x left unsubstituted", got)
	}
	if got := evalString(t, ip, `subst -nocommands {before [sideEffect] after}`); got != "before [sideEffect] after" {
		t.Fatalf("got %q, want [sideEffect] left unevaluated", got)
	}
	if got := evalString(t, ip, `subst {plain $x text}`); got != "plain hidden text" {
		t.Fatalf("got %q, want $x substituted without flags", got)
	}
}

// TestEndToEndScenarios covers the six scripted scenarios enumerated in
// SPEC_FULL.md's testable-properties section: parser, procedure call +
// expression VM, dict shimmering, expression error surface + catch,
// reference GC with finalizer, and copy-on-write on shared list values.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("parser and llength", func(t *testing.T) {
		ip := New()
		got := evalString(t, ip, "set x {a b c}; llength $x")
		if got != "3" {
			t.Fatalf("got %q, want 3", got)
		}
	})

	t.Run("proc call and expr VM", func(t *testing.T) {
		ip := New()
		got := evalString(t, ip, "proc f {a b} { expr {$a + $b} }; f 40 2")
		if got != "42" {
			t.Fatalf("got %q, want 42", got)
		}
	})

	t.Run("dict shimmering", func(t *testing.T) {
		ip := New()
		got := evalString(t, ip, "set d [dict create k1 v1 k2 v2]; dict get $d k2")
		if got != "v2" {
			t.Fatalf("got %q, want v2", got)
		}
	})

	t.Run("expr error surface and catch", func(t *testing.T) {
		ip := New()
		if _, err := ip.Eval("expr {1/0}"); err == nil {
			t.Fatal("expected a division-by-zero error")
		} else if !strings.Contains(err.Error(), "Division by zero") {
			t.Fatalf("error = %q, want it to contain %q", err.Error(), "Division by zero")
		}
		code := evalString(t, ip, `catch {expr {1/0}} e`)
		if code != "1" {
			t.Fatalf("catch code = %q, want 1", code)
		}
		msg := evalString(t, ip, "set e")
		if !strings.Contains(msg, "Division by zero") {
			t.Fatalf("e = %q, want it to contain %q", msg, "Division by zero")
		}
	})

	t.Run("reference GC with finalizer", func(t *testing.T) {
		ip := New()
		evalString(t, ip, "set finalizedWith {}")
		evalString(t, ip, "proc lambdaFinalizer {r v} { global finalizedWith; set finalizedWith $v }")
		evalString(t, ip, `set r [ref "payload" lambdaFinalizer]`)
		if got := evalString(t, ip, "getref $r"); got != "payload" {
			t.Fatalf("got %q, want payload", got)
		}
		orig := evalString(t, ip, "set r")
		evalString(t, ip, `set r ""`)
		ip.Collect()
		if _, err := ip.Eval("getref " + orig); err == nil {
			t.Fatal("expected an invalid-reference error after collection")
		}
		if got := evalString(t, ip, "set finalizedWith"); got != "payload" {
			t.Fatalf("finalizer's held-value arg = %q, want payload", got)
		}
	})

	t.Run("copy-on-write on shared list", func(t *testing.T) {
		ip := New()
		evalString(t, ip, "set l {1 2 3}")
		evalString(t, ip, "set m $l")
		evalString(t, ip, "lappend l 4")
		if got := evalString(t, ip, "set l"); got != "1 2 3 4" {
			t.Fatalf("l = %q, want \"1 2 3 4\"", got)
		}
		if got := evalString(t, ip, "set m"); got != "1 2 3" {
			t.Fatalf("m = %q, want \"1 2 3\" (copy-on-write should not mutate the shared value)", got)
		}
	})
}
