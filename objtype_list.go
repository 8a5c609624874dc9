package feather

import "strings"

// ListType is the structured form for a dynamic sequence of values, held
// in a Go slice. lappend does not grow it in place: it builds a new list
// value and rebinds the variable.
type ListType struct {
	elems []*Obj
}

func (t *ListType) Name() string { return "list" }

func (t *ListType) Dup() ObjType {
	elems := make([]*Obj, len(t.elems))
	copy(elems, t.elems)
	return &ListType{elems: elems}
}

func (t *ListType) UpdateString() string {
	var b strings.Builder
	for i, e := range t.elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		quoteListElement(&b, e.String())
	}
	return b.String()
}

func (t *ListType) IntoList() ([]*Obj, bool) { return t.elems, true }

func (t *ListType) IntoDict() (map[string]*Obj, []string, bool) {
	if len(t.elems)%2 != 0 {
		return nil, nil, false
	}
	items := make(map[string]*Obj, len(t.elems)/2)
	order := make([]string, 0, len(t.elems)/2)
	for i := 0; i < len(t.elems); i += 2 {
		k := t.elems[i].String()
		if _, dup := items[k]; !dup {
			order = append(order, k)
		}
		items[k] = t.elems[i+1]
	}
	return items, order, true
}

// NewListObj creates a list value from the given elements. The slice is
// copied, so later changes to the caller's slice do not affect the list.
func NewListObj(items ...*Obj) *Obj {
	elems := make([]*Obj, len(items))
	copy(elems, items)
	for _, e := range elems {
		e.IncrRef()
	}
	return &Obj{intrep: &ListType{elems: elems}, dirty: true}
}

func asList(o *Obj) ([]*Obj, error) {
	if o == nil {
		return nil, nil
	}
	if lt, ok := o.intrep.(*ListType); ok {
		return lt.elems, nil
	}
	if il, ok := o.intrep.(IntoList); ok {
		if elems, ok := il.IntoList(); ok {
			return elems, nil
		}
	}
	elems, err := parseListToObjs(o.String())
	if err != nil {
		return nil, err
	}
	if o.refCount <= 1 {
		o.shimmer(&ListType{elems: elems})
	}
	return elems, nil
}

// quoteListElement appends s to b, choosing the cheapest of the three
// quoting strategies available to the list string-form generator: bare
// (no quoting needed), brace-wrapped, or backslash-quoted. Brace-wrapping
// is preferred over backslash-quoting whenever it round-trips correctly;
// it is not usable when s has unbalanced braces or ends in an odd number
// of backslashes (which would escape the closing brace).
func quoteListElement(b *strings.Builder, s string) {
	switch classifyListElement(s) {
	case quoteNone:
		b.WriteString(s)
	case quoteBrace:
		b.WriteByte('{')
		b.WriteString(s)
		b.WriteByte('}')
	case quoteBackslash:
		backslashQuote(b, s)
	}
}

type listQuoteKind int

const (
	quoteNone listQuoteKind = iota
	quoteBrace
	quoteBackslash
)

func classifyListElement(s string) listQuoteKind {
	if s == "" {
		return quoteBrace
	}
	needsQuoting := false
	unbalanced := false
	braceDepth := 0
	maxDepth := 0
	trailingBackslashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v', '"', ';', '$', '[', ']':
			needsQuoting = true
		case '{':
			needsQuoting = true
			braceDepth++
			if braceDepth > maxDepth {
				maxDepth = braceDepth
			}
		case '}':
			needsQuoting = true
			braceDepth--
			if braceDepth < 0 {
				unbalanced = true
			}
		case '\\':
			needsQuoting = true
		}
	}
	if s[0] == '#' {
		needsQuoting = true
	}
	if !needsQuoting {
		return quoteNone
	}
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		trailingBackslashes++
	}
	if braceDepth == 0 && !unbalanced && trailingBackslashes%2 == 0 {
		return quoteBrace
	}
	return quoteBackslash
}

func backslashQuote(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\r', '"', ';', '$', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
}
