package feather

import "testing"

func TestParseScriptSimpleCommand(t *testing.T) {
	toks, err := ParseScript("set x 1")
	if err != nil {
		t.Fatal(err)
	}
	var words int
	for _, tok := range toks {
		if tok.Type == TokSep {
			words++
		}
	}
	if words != 3 {
		t.Fatalf("got %d words, want 3", words)
	}
}

func TestParseScriptBracedWordIsLiteral(t *testing.T) {
	toks, err := ParseScript(`puts {hello $world}`)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, tok := range toks {
		if tok.Type == TokSTR && tok.Text == "hello $world" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a literal STR token for the braced word")
	}
}

func TestParseScriptCommentLine(t *testing.T) {
	ip := New()
	res, err := ip.Eval("# a comment\nset x 1")
	if err != nil {
		t.Fatal(err)
	}
	if res.String() != "1" {
		t.Fatalf("result = %q, want 1", res.String())
	}
}

func TestParseScriptForgivingUnterminatedBrace(t *testing.T) {
	if _, err := ParseScript("set x {unterminated"); err != nil {
		t.Fatalf("unterminated brace should close forgivingly, got error: %v", err)
	}
}

func TestParseListQuoting(t *testing.T) {
	elems, err := parseListToObjs(`a {b c} "d e"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 3 {
		t.Fatalf("got %d elements, want 3", len(elems))
	}
	if elems[1].String() != "b c" {
		t.Fatalf("elems[1] = %q, want %q", elems[1].String(), "b c")
	}
	if elems[2].String() != "d e" {
		t.Fatalf("elems[2] = %q, want %q", elems[2].String(), "d e")
	}
}

func TestApplyEscapes(t *testing.T) {
	cases := map[string]string{
		`a\nb`:  "a\nb",
		`\x41`:  "A",
		`\101`:  "A",
		`a\{b`:  "a{b",
		`plain`: "plain",
	}
	for in, want := range cases {
		if got := applyEscapes(in); got != want {
			t.Errorf("applyEscapes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScanVarDictSugar(t *testing.T) {
	toks, err := ParseScript(`set y $arr(key)`)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, tok := range toks {
		if tok.Type == TokDictSugar && tok.Text == "arr(key)" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a DictSugar token for $arr(key)")
	}
}
