package feather

// ResultCode is one of the five completion codes a command or procedure
// body can produce.
type ResultCode int

const (
	CodeOK ResultCode = iota
	CodeError
	CodeReturn
	CodeBreak
	CodeContinue
)

var returnCodeNames = map[string]ResultCode{
	"ok":       CodeOK,
	"error":    CodeError,
	"return":   CodeReturn,
	"break":    CodeBreak,
	"continue": CodeContinue,
}

var returnCodeStrings = [...]string{"ok", "error", "return", "break", "continue"}

func (c ResultCode) String() string {
	if c >= 0 && int(c) < len(returnCodeStrings) {
		return returnCodeStrings[c]
	}
	return "ok"
}

// ReturnCodeType is the structured form mapping the names ok/error/
// return/break/continue (or a bare integer) to a small integer tag.
type ReturnCodeType ResultCode

func (t ReturnCodeType) Name() string         { return "returncode" }
func (t ReturnCodeType) UpdateString() string { return ResultCode(t).String() }
func (t ReturnCodeType) Dup() ObjType         { return t }
func (t ReturnCodeType) IntoInt() (int64, bool) { return int64(t), true }

func asReturnCode(o *Obj) (ResultCode, error) {
	if o == nil {
		return CodeOK, newEvalError("expected return code but got \"\"")
	}
	if rc, ok := o.intrep.(ReturnCodeType); ok {
		return ResultCode(rc), nil
	}
	s := o.String()
	if code, ok := returnCodeNames[s]; ok {
		if o.refCount <= 1 {
			o.shimmer(ReturnCodeType(code))
		}
		return code, nil
	}
	if n, err := asInt(o); err == nil {
		return ResultCode(n), nil
	}
	return CodeOK, newEvalError("expected return code but got %q", s)
}
