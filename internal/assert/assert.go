package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics if value is nil, including typed nil pointers, maps, slices
// and funcs stored in an interface.
func NotNil(value any, name ...string) {
	if isNil(value) {
		if len(name) > 0 {
			panic(fmt.Sprintf("expected %s to be not nil", name[0]))
		}
		panic("expected value to be not nil")
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
