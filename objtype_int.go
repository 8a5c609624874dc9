package feather

import "strconv"

// IntType is the structured form for 64-bit signed integer values.
type IntType int64

func (t IntType) Name() string          { return "int" }
func (t IntType) UpdateString() string  { return strconv.FormatInt(int64(t), 10) }
func (t IntType) Dup() ObjType          { return t }
func (t IntType) IntoInt() (int64, bool) { return int64(t), true }

func (t IntType) IntoDouble() (float64, bool) { return float64(t), true }

func (t IntType) IntoBool() (bool, bool) {
	switch t {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return false, false
	}
}

// NewIntObj creates an integer value.
func NewIntObj(v int64) *Obj {
	return &Obj{intrep: IntType(v), dirty: true}
}

// asInt returns o's integer value, shimmering from the string form if
// necessary. Unless the structured form converts directly, the value is
// parsed from the string form: a double built by NewDoubleObj always
// renders with a decimal point or exponent and is rejected, while a double
// whose string form is an integer literal is accepted.
func asInt(o *Obj) (int64, error) {
	if o == nil {
		return 0, newEvalError("expected integer but got \"\"")
	}
	if ii, ok := o.intrep.(IntoInt); ok {
		if v, ok := ii.IntoInt(); ok {
			return v, nil
		}
	}
	s := o.String()
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, newEvalError("expected integer but got %q", s)
	}
	if o.refCount <= 1 {
		o.shimmer(IntType(v))
	}
	return v, nil
}
