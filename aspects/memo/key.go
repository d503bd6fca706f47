package memo

import (
	"fmt"
	"reflect"
)

// CacheKey derives the cache slot identity for an input.
//
// Inputs that implement fmt.Stringer are keyed by their String() value, which
// must be distinct for distinct inputs and must not change meaning after the
// first insert (mutable Stringer state violates the contract, with undefined
// behavior). Any other comparable input is keyed by the value itself, so two
// inputs share a slot exactly when they are equal under ==. Anything else has
// no usable equality and panics; this is a documented precondition of the
// memoizer, not a handled error.
func CacheKey(in any) any {
	if stringer, ok := in.(fmt.Stringer); ok {
		return stringer.String()
	}
	if in == nil {
		return nil
	}
	if !reflect.TypeOf(in).Comparable() {
		panic(fmt.Sprintf("memo: input type %T is neither comparable nor fmt.Stringer", in))
	}
	return in
}

// StringKey renders a slot key for stores addressed by string, such as
// adapters over external caches. Keys that are already strings (a Stringer's
// rendering, or a string input) pass through; scalar values render via %v,
// which is distinct for distinct values within one scalar type. Composite
// values have no faithful flat rendering (distinct structs and arrays can
// print alike) and panic; key them through a fmt.Stringer instead.
func StringKey(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	if key == nil {
		return "<nil>"
	}
	switch reflect.TypeOf(key).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return fmt.Sprintf("%v", key)
	}
	panic(fmt.Sprintf("memo: no faithful string rendering for key type %T, key it via fmt.Stringer", key))
}
