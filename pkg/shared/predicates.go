package shared

import "reflect"

const constructorToken = "constructor"

// NullValue is the type of the Null sentinel.
type NullValue struct{}

// Null is the explicit absence-of-value marker. The untyped nil interface
// stands for undefined.
var Null = NullValue{}

func IsUndefined(v any) bool {
	return v == nil
}

func IsNil(v any) bool {
	return IsUndefined(v) || isNull(v)
}

func isNull(v any) bool {
	if _, ok := v.(NullValue); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func IsFunction(v any) bool {
	return !IsNil(v) && reflect.TypeOf(v).Kind() == reflect.Func
}

// IsObject reports whether v has reference semantics. Functions are not
// objects.
func IsObject(v any) bool {
	if IsNil(v) {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct,
		reflect.Pointer, reflect.Chan:
		return true
	}
	return false
}

// IsPlainObject reports whether v is a hand-built record: a string-keyed map
// or a struct, reached through any number of pointers, where no type on the
// chain (including embedded fields) declares methods. A "constructor" key or
// field is plain data.
//
// Only exported methods are visible through reflection, so a type whose
// methods are all unexported is classified as plain.
func IsPlainObject(v any) bool {
	if IsNil(v) {
		return false
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		if hasMethods(t) {
			return false
		}
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Map:
		return t.Key().Kind() == reflect.String && !hasMethods(t)
	case reflect.Struct:
		return plainStruct(t, map[reflect.Type]struct{}{})
	}
	return false
}

func plainStruct(t reflect.Type, seen map[reflect.Type]struct{}) bool {
	if _, ok := seen[t]; ok {
		return true
	}
	seen[t] = struct{}{}
	if hasMethods(t) {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && !plainStruct(ft, seen) {
			return false
		}
		if hasMethods(ft) {
			return false
		}
	}
	return true
}

func hasMethods(t reflect.Type) bool {
	if t.NumMethod() > 0 {
		return true
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return false
	}
	return reflect.PointerTo(t).NumMethod() > 0
}

func IsString(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.String
}

// IsConstructor compares v against the literal "constructor" token. It does
// not inspect types.
func IsConstructor(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.String && rv.String() == constructorToken
}

func IsNumber(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsEmpty reports whether v is nullish or a sequence with no elements.
// Values that are not sequences are never empty.
func IsEmpty(v any) bool {
	if IsNil(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return rv.Len() == 0
	}
	return false
}
