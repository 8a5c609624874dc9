package feather

// SourceType augments a value with filename/line metadata. The evaluator
// does not attach it to script literals: nothing calls withSource, tokens
// carry only a line number, and stack trace frames have an empty
// filename. withSource stores the filename it is given without interning
// it through Interp.internFilename.
type SourceType struct {
	str      string
	Filename string
	Line     int
}

func (t *SourceType) Name() string        { return "source" }
func (t *SourceType) UpdateString() string { return t.str }
func (t *SourceType) Dup() ObjType         { return &SourceType{str: t.str, Filename: t.Filename, Line: t.Line} }

// withSource returns a new value with o's string form, tagged with
// file/line metadata. Values produced purely
// by interpolation inherit no source info, per SPEC_FULL.md §4.3.
func withSource(o *Obj, filename string, line int) *Obj {
	tagged := &Obj{bytes: o.String(), interp: o.interp}
	tagged.intrep = &SourceType{str: tagged.bytes, Filename: filename, Line: line}
	return tagged
}

func sourceOf(o *Obj) (filename string, line int, ok bool) {
	if o == nil {
		return "", 0, false
	}
	if st, isSrc := o.intrep.(*SourceType); isSrc {
		return st.Filename, st.Line, true
	}
	return "", 0, false
}
