package debugui

import (
	"reflect"
	"sync"
)

// FieldKind groups field types by the widget used to edit them.
type FieldKind uint8

const (
	KindOther FieldKind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindString
	KindStruct
	KindSlice
	KindMap
)

func kindOf(t reflect.Type) FieldKind {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	case reflect.Struct:
		return KindStruct
	case reflect.Slice, reflect.Array:
		return KindSlice
	case reflect.Map:
		return KindMap
	default:
		return KindOther
	}
}

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	Kind      FieldKind
	IsPointer bool
}

// Value returns the field of v, following a non-nil pointer. The result is
// invalid when the pointer is nil.
func (f FieldInfo) Value(v reflect.Value) reflect.Value {
	fv := v.Field(f.Index)
	if f.IsPointer {
		if fv.IsNil() {
			return reflect.Value{}
		}
		fv = fv.Elem()
	}
	return fv
}

type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of a struct type. Other types have no
// fields.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				Kind:      kindOf(fieldType),
				IsPointer: isPointer,
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()
