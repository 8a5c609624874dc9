package feather

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Register exposes a Go function as a command, converting arguments and
// the return value with reflection. Supported parameter types: string,
// int, int64, float64, bool, []string, []T for any supported T. Supported
// return shapes: T, (T, error), or nothing.
func (ip *Interp) Register(name string, fn any) {
	ip.RegisterCommand(name, wrapFunc(fn))
}

// wrapFunc adapts an arbitrary Go function to NativeFunc via reflection.
func wrapFunc(fn any) NativeFunc {
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		fatalf("feather: Register: expected function, got %T", fn)
	}

	return func(ip *Interp, args []*Obj) (*Obj, error) {
		callArgs := args[1:]
		numIn := fnType.NumIn()
		isVariadic := fnType.IsVariadic()

		if isVariadic {
			if len(callArgs) < numIn-1 {
				return nil, newEvalError("wrong # args: expected at least %d, got %d", numIn-1, len(callArgs))
			}
		} else if len(callArgs) != numIn {
			return nil, newEvalError("wrong # args: expected %d, got %d", numIn, len(callArgs))
		}

		in := make([]reflect.Value, len(callArgs))
		for j, a := range callArgs {
			var paramType reflect.Type
			if isVariadic && j >= numIn-1 {
				paramType = fnType.In(numIn - 1).Elem()
			} else {
				paramType = fnType.In(j)
			}
			converted, err := convertArg(a, paramType)
			if err != nil {
				return nil, newEvalError("argument %d: %v", j+1, err)
			}
			in[j] = converted
		}

		out := fnVal.Call(in)
		return processResults(out, fnType)
	}
}

// convertArg converts arg to a Go value of targetType.
func convertArg(arg *Obj, targetType reflect.Type) (reflect.Value, error) {
	switch targetType.Kind() {
	case reflect.String:
		return reflect.ValueOf(arg.String()), nil
	case reflect.Int:
		v, err := asInt(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(int(v)), nil
	case reflect.Int64:
		v, err := asInt(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil
	case reflect.Float64:
		v, err := asDouble(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil
	case reflect.Bool:
		v, err := asBool(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil
	case reflect.Slice:
		items, err := asList(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		slice := reflect.MakeSlice(targetType, len(items), len(items))
		for j, item := range items {
			converted, err := convertArg(item, targetType.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", j, err)
			}
			slice.Index(j).Set(converted)
		}
		return slice, nil
	case reflect.Interface:
		if targetType.NumMethod() == 0 {
			return reflect.ValueOf(any(arg.String())), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot convert to interface %v", targetType)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type: %v", targetType)
	}
}

// processResults turns a Go function's return values into a (*Obj, error)
// pair, recognizing the (T, error) convention.
func processResults(results []reflect.Value, fnType reflect.Type) (*Obj, error) {
	if len(results) == 0 {
		return emptyStringObj, nil
	}
	last := results[len(results)-1]
	if fnType.Out(fnType.NumOut()-1).Implements(errorType) {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		results = results[:len(results)-1]
	}
	if len(results) == 0 {
		return emptyStringObj, nil
	}
	return convertResult(results[0]), nil
}

// convertResult converts a single Go return value into an Obj.
func convertResult(result reflect.Value) *Obj {
	if !result.IsValid() {
		return emptyStringObj
	}
	switch result.Kind() {
	case reflect.String:
		return NewStringObj(result.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewIntObj(result.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewIntObj(int64(result.Uint()))
	case reflect.Float32, reflect.Float64:
		return NewDoubleObj(result.Float())
	case reflect.Bool:
		return boolObj(result.Bool())
	case reflect.Slice:
		items := make([]*Obj, result.Len())
		for j := 0; j < result.Len(); j++ {
			items[j] = convertResult(result.Index(j))
		}
		return NewListObj(items...)
	case reflect.Map:
		var kvs []*Obj
		iter := result.MapRange()
		for iter.Next() {
			kvs = append(kvs, NewStringObj(fmt.Sprint(iter.Key().Interface())), convertResult(iter.Value()))
		}
		d, _ := NewDictObj(kvs...)
		return d
	case reflect.Ptr, reflect.Interface:
		if result.IsNil() {
			return emptyStringObj
		}
		return NewStringObj(fmt.Sprintf("%v", result.Interface()))
	default:
		return NewStringObj(fmt.Sprintf("%v", result.Interface()))
	}
}
