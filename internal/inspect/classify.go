package inspect

import "routekit/pkg/shared"

const (
	KindUndefined = "undefined"
	KindNull      = "null"
	KindFunction  = "function"
	KindString    = "string"
	KindNumber    = "number"
	KindBoolean   = "boolean"
	KindArray     = "array"
	KindObject    = "object"
	KindOther     = "other"
)

type Classification struct {
	Kind          string `json:"kind"`
	IsUndefined   bool   `json:"is_undefined"`
	IsNil         bool   `json:"is_nil"`
	IsFunction    bool   `json:"is_function"`
	IsObject      bool   `json:"is_object"`
	IsPlainObject bool   `json:"is_plain_object"`
	IsString      bool   `json:"is_string"`
	IsNumber      bool   `json:"is_number"`
	IsConstructor bool   `json:"is_constructor"`
	IsEmpty       bool   `json:"is_empty"`
}

func Classify(v any) Classification {
	return Classification{
		Kind:          kindOf(v),
		IsUndefined:   shared.IsUndefined(v),
		IsNil:         shared.IsNil(v),
		IsFunction:    shared.IsFunction(v),
		IsObject:      shared.IsObject(v),
		IsPlainObject: shared.IsPlainObject(v),
		IsString:      shared.IsString(v),
		IsNumber:      shared.IsNumber(v),
		IsConstructor: shared.IsConstructor(v),
		IsEmpty:       shared.IsEmpty(v),
	}
}

func kindOf(v any) string {
	switch {
	case shared.IsUndefined(v):
		return KindUndefined
	case shared.IsNil(v):
		return KindNull
	case shared.IsFunction(v):
		return KindFunction
	case shared.IsString(v):
		return KindString
	case shared.IsNumber(v):
		return KindNumber
	case shared.IsPlainObject(v):
		return KindObject
	case shared.IsObject(v):
		if _, ok := v.([]any); ok {
			return KindArray
		}
		return KindObject
	}
	if _, ok := v.(bool); ok {
		return KindBoolean
	}
	return KindOther
}
