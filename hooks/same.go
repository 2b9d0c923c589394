package hooks

import (
	"math"
	"reflect"
	"unsafe"
)

// Deps is a dependency list for effects and memoized values.
//
// A nil Deps means "every render". An empty, non-nil Deps{} means "once,
// at mount". Otherwise the hook re-runs when any element is not Same as the
// element at the same index on the previous render.
type Deps []any

// Same reports whether a and b are the same value, without deep comparison.
//
// Scalars and strings compare by value; NaN is the same as NaN and +0 is
// not the same as -0. Pointers, maps, channels and slices compare by
// identity (slices also by length). Functions compare by closure identity,
// so two evaluations of a literal that captures variables are different.
// Structs and arrays compare element by element with the same rules, which
// makes Same the shallow field-by-field comparison used for
// props.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case int:
		y, ok := b.(int)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	return same(addressable(reflect.ValueOf(a)), addressable(reflect.ValueOf(b)))
}

func same(a, b reflect.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return sameFloat(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ca, cb := a.Complex(), b.Complex()
		return sameFloat(real(ca), real(cb)) && sameFloat(imag(ca), imag(cb))
	case reflect.String:
		return a.String() == b.String()
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return a.UnsafePointer() == b.UnsafePointer()
	case reflect.Slice:
		return a.UnsafePointer() == b.UnsafePointer() && a.Len() == b.Len()
	case reflect.Func:
		return funcIdentity(a) == funcIdentity(b)
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		if ea.Type() != eb.Type() {
			return false
		}
		return same(addressable(ea), addressable(eb))
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !same(addressable(a.Field(i)), addressable(b.Field(i))) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !same(addressable(a.Index(i)), addressable(b.Index(i))) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func sameFloat(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return x == y && math.Signbit(x) == math.Signbit(y)
}

// addressable returns an addressable view of v that is not marked read-only,
// so unexported struct fields can be inspected the same way as exported ones.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// funcIdentity returns the closure pointer held by an addressable func value.
// reflect's Pointer only exposes the code pointer, which closures created
// from the same literal share.
func funcIdentity(v reflect.Value) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(v.UnsafeAddr()))
}

// depsChanged reports whether an effect or memo with previous deps prev must
// re-run for next.
func depsChanged(prev, next Deps) bool {
	if prev == nil || next == nil {
		return true
	}
	if len(prev) != len(next) {
		return true
	}
	for i := range next {
		if !Same(prev[i], next[i]) {
			return true
		}
	}
	return false
}
