package feather

import (
	"fmt"
	"strconv"
	"strings"
)

// referenceTagPrefix and referenceTagLen define the reference string
// format: a fixed 32-byte token "~reference:" + 20 decimal digits + ":".
// This exact shape is a wire-format commitment (SPEC_FULL.md §6.2) because
// the collector depends on it to cheaply scan arbitrary string forms for
// embedded reference ids.
const (
	referenceTagPrefix = "~reference:"
	referenceTagLen    = 32
	referenceIDDigits  = 20
)

// ReferenceType is the structured form of a value created by the `ref`
// command: a handle to a (possibly unreachable) entry in the
// interpreter's reference table.
type ReferenceType struct {
	id  int64
	str string
}

func (t *ReferenceType) Name() string         { return "reference" }
func (t *ReferenceType) UpdateString() string { return t.str }
func (t *ReferenceType) Dup() ObjType         { return &ReferenceType{id: t.id, str: t.str} }

// formatReferenceToken renders id as the fixed 32-byte reference token.
func formatReferenceToken(id int64) string {
	s := fmt.Sprintf("%s%020d:", referenceTagPrefix, id)
	if len(s) != referenceTagLen {
		fatalf("feather: reference token %q is not %d bytes", s, referenceTagLen)
	}
	return s
}

// NewReferenceObj creates a reference value for id.
func NewReferenceObj(id int64) *Obj {
	str := formatReferenceToken(id)
	return &Obj{bytes: str, intrep: &ReferenceType{id: id, str: str}}
}

// parseReferenceToken extracts the id from a single occurrence of the
// reference token at the start of s, returning ok=false if s does not
// begin with a well-formed token.
func parseReferenceToken(s string) (id int64, ok bool) {
	if len(s) < referenceTagLen || !strings.HasPrefix(s, referenceTagPrefix) {
		return 0, false
	}
	digits := s[len(referenceTagPrefix) : len(referenceTagPrefix)+referenceIDDigits]
	if s[len(referenceTagPrefix)+referenceIDDigits] != ':' {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// scanForReferences finds every well-formed reference token embedded
// anywhere within s (not only at offset 0), as required when a reference
// has been placed inside a list or dict string form.
func scanForReferences(s string, out map[int64]struct{}) {
	for {
		idx := strings.Index(s, referenceTagPrefix)
		if idx < 0 {
			return
		}
		if id, ok := parseReferenceToken(s[idx:]); ok {
			out[id] = struct{}{}
			s = s[idx+referenceTagLen:]
		} else {
			s = s[idx+len(referenceTagPrefix):]
		}
	}
}

func asReference(o *Obj) (int64, error) {
	if o == nil {
		return 0, newEvalError("expected reference but got \"\"")
	}
	if rt, ok := o.intrep.(*ReferenceType); ok {
		return rt.id, nil
	}
	s := o.String()
	if id, ok := parseReferenceToken(s); ok && len(s) == referenceTagLen {
		if o.refCount <= 1 {
			o.shimmer(&ReferenceType{id: id, str: s})
		}
		return id, nil
	}
	return 0, newEvalError("invalid reference %q", s)
}
