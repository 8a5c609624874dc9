package feather

// ComparedStringType caches the fact that this value's string form is
// known to equal a specific interned literal, so that repeated identity
// comparisons against that literal (e.g. a command dispatching on a
// subcommand name) become an O(1) pointer/slot comparison instead of a
// byte-for-byte string compare.
type ComparedStringType struct {
	literal string
	str     string
}

func (t *ComparedStringType) Name() string         { return "compared-string" }
func (t *ComparedStringType) UpdateString() string  { return t.str }
func (t *ComparedStringType) Dup() ObjType          { return &ComparedStringType{literal: t.literal, str: t.str} }

// equalsLiteral reports whether o's string form equals literal, shimmering
// o to a ComparedStringType caching the answer when it does.
func equalsLiteral(o *Obj, literal string) bool {
	if o == nil {
		return literal == ""
	}
	if cs, ok := o.intrep.(*ComparedStringType); ok && cs.literal == literal {
		return true
	}
	s := o.String()
	if s != literal {
		return false
	}
	if o.refCount <= 1 {
		o.shimmer(&ComparedStringType{literal: literal, str: s})
	}
	return true
}
