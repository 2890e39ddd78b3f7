package reactive

import "reflect"

// sameValue reports whether a write of b over a is a no-op: == for
// comparable values, reference identity for slices, maps, funcs, channels
// and pointers. Contents of referenced values are never inspected.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	if va.Type().Comparable() {
		return safeEqual(a, b)
	}
	// Structs or arrays holding slices or maps cannot be compared by
	// identity; treat every write as a change.
	return false
}

// safeEqual is a == b, recovering from the runtime panic raised for
// interface fields holding uncomparable values.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func defaultEquals[T any](a, b T) bool {
	return sameValue(any(a), any(b))
}
