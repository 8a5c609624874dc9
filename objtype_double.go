package feather

import (
	"math"
	"strconv"
	"strings"
)

// DoubleType is the structured form for IEEE-754 double values. Its
// string form always includes a decimal point (or an exponent, or
// "Inf"/"NaN") so that it is never confused with IntType's string form.
type DoubleType float64

func (t DoubleType) Name() string { return "double" }

func (t DoubleType) UpdateString() string {
	f := float64(t)
	if math.IsInf(f, 1) {
		return "Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func (t DoubleType) Dup() ObjType { return t }

func (t DoubleType) IntoDouble() (float64, bool) { return float64(t), true }

// NewDoubleObj creates a floating-point value.
func NewDoubleObj(v float64) *Obj {
	return &Obj{intrep: DoubleType(v), dirty: true}
}

func asDouble(o *Obj) (float64, error) {
	if o == nil {
		return 0, newEvalError("expected number but got \"\"")
	}
	if id, ok := o.intrep.(IntoDouble); ok {
		if v, ok := id.IntoDouble(); ok {
			return v, nil
		}
	}
	if ii, ok := o.intrep.(IntoInt); ok {
		if v, ok := ii.IntoInt(); ok {
			return float64(v), nil
		}
	}
	s := strings.TrimSpace(o.String())
	switch s {
	case "Inf", "+Inf":
		return math.Inf(1), nil
	case "-Inf":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newEvalError("expected number but got %q", o.String())
	}
	if o.refCount <= 1 {
		o.shimmer(DoubleType(v))
	}
	return v, nil
}

func asBool(o *Obj) (bool, error) {
	if o == nil {
		return false, newEvalError("expected boolean but got \"\"")
	}
	if ib, ok := o.intrep.(IntoBool); ok {
		if v, ok := ib.IntoBool(); ok {
			return v, nil
		}
	}
	s := strings.ToLower(o.String())
	switch s {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, newEvalError("expected boolean but got %q", o.String())
	}
}
