package phone

import (
	"fmt"
	"reflect"
	"strings"
)

// LookupPath reads a dotted path such as "address.country" from object.
// Structs (and pointers to them) match fields by Go name, then by json tag,
// case-insensitively; maps with string keys match keys exactly. A missing
// segment yields "", false.
func LookupPath(object any, path string) (string, bool) {
	if object == nil || path == "" {
		return "", false
	}

	current := reflect.ValueOf(object)
	for _, segment := range strings.Split(path, ".") {
		next, ok := step(current, segment)
		if !ok {
			return "", false
		}
		current = next
	}

	current = indirect(current)
	if !current.IsValid() {
		return "", false
	}
	if current.Kind() == reflect.String {
		return current.String(), true
	}
	if stringer, ok := current.Interface().(fmt.Stringer); ok {
		return stringer.String(), true
	}
	return "", false
}

func step(value reflect.Value, segment string) (reflect.Value, bool) {
	value = indirect(value)
	if !value.IsValid() {
		return reflect.Value{}, false
	}

	switch value.Kind() {
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		item := value.MapIndex(reflect.ValueOf(segment).Convert(value.Type().Key()))
		return item, item.IsValid()
	case reflect.Struct:
		return structField(value, segment)
	default:
		return reflect.Value{}, false
	}
}

func structField(value reflect.Value, name string) (reflect.Value, bool) {
	structType := value.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.IsExported() && strings.EqualFold(field.Name, name) {
			return value.Field(i), true
		}
	}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tag != "" && strings.EqualFold(tag, name) {
			return value.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func indirect(value reflect.Value) reflect.Value {
	for value.IsValid() && (value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface) {
		if value.IsNil() {
			return reflect.Value{}
		}
		value = value.Elem()
	}
	return value
}
