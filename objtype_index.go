package feather

import (
	"math"
	"strconv"
	"strings"
)

// IndexEnd is the sentinel produced by resolving the bare word "end"; the
// largest representable signed integer, mapped to a container's last
// element by callers that index into something container-shaped.
const IndexEnd = math.MaxInt64

// IndexType is the structured form produced by parsing a Tcl-style index:
// "N", "end", or "end-N".
type IndexType int64

func (t IndexType) Name() string           { return "index" }
func (t IndexType) UpdateString() string   { return strconv.FormatInt(int64(t), 10) }
func (t IndexType) Dup() ObjType           { return t }
func (t IndexType) IntoInt() (int64, bool) { return int64(t), true }

// asIndex parses o as a Tcl index, shimmering it to IndexType.
func asIndex(o *Obj) (int64, error) {
	if o == nil {
		return 0, newEvalError("expected integer but got \"\"")
	}
	if it, ok := o.intrep.(IndexType); ok {
		return int64(it), nil
	}
	s := o.String()
	v, err := parseIndexString(s)
	if err != nil {
		return 0, err
	}
	if o.refCount <= 1 {
		o.shimmer(IndexType(v))
	}
	return v, nil
}

func parseIndexString(s string) (int64, error) {
	if s == "end" {
		return IndexEnd, nil
	}
	if rest, ok := strings.CutPrefix(s, "end-"); ok {
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return 0, newEvalError("bad index %q: must be integer, end, or end-integer", s)
		}
		return IndexEnd - n, nil
	}
	if rest, ok := strings.CutPrefix(s, "end+"); ok {
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return 0, newEvalError("bad index %q: must be integer, end, or end-integer", s)
		}
		return IndexEnd + n, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, newEvalError("bad index %q: must be integer, end, or end-integer", s)
	}
	return n, nil
}

// resolveIndex maps a parsed index value against a container of the given
// length to a concrete, possibly out-of-range, zero-based offset.
func resolveIndex(idx int64, length int) int {
	if idx >= IndexEnd-int64(1<<20) {
		// idx was computed as IndexEnd +/- small offset.
		return length - 1 - int(IndexEnd-idx)
	}
	return int(idx)
}
