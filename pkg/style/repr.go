package style

import (
	"fmt"
	"reflect"
	"strconv"
)

// Reprer is implemented by values that provide their own repr.
type Reprer interface {
	Repr() string
}

// Repr formats a single value the way it appears inside a repr. Values that
// know how to describe themselves win (Reprer, fmt.GoStringer, fmt.Stringer,
// error, in that order); strings of any string type and byte slices are
// quoted; nil pointers and interfaces print as nil; everything else uses %v.
func Repr(v any) string {
	if v == nil {
		return "nil"
	}
	if rv, ok := v.(reflect.Value); ok {
		return reprReflect(rv)
	}
	if isNilPointer(v) {
		return "nil"
	}

	switch value := v.(type) {
	case Reprer:
		return value.Repr()
	case fmt.GoStringer:
		return value.GoString()
	case fmt.Stringer:
		return value.String()
	case error:
		return value.Error()
	case string:
		return strconv.Quote(value)
	case []byte:
		return strconv.Quote(string(value))
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return strconv.Quote(rv.String())
	}
	return fmt.Sprintf("%v", v)
}

// reprReflect handles values read from unexported fields, which cannot be
// converted back to interfaces.
func reprReflect(rv reflect.Value) string {
	if !rv.IsValid() {
		return "nil"
	}
	if rv.CanInterface() {
		return Repr(rv.Interface())
	}
	switch rv.Kind() {
	case reflect.String:
		return strconv.Quote(rv.String())
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return "nil"
		}
	}
	return fmt.Sprintf("%v", rv)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
