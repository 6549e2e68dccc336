package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindToStruct binds values to a struct using reflection.
// tagName selects the struct tag to read ("query", "header").
// bindErr is wrapped around every field failure.
// An optional normalize func is applied to tag names before lookup.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error, normalize ...func(string) string) error {
	return eachTaggedField(v, tagName, bindErr, func(name string) (string, bool) {
		for _, fn := range normalize {
			name = fn(name)
		}
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	})
}

// eachTaggedField walks exported struct fields carrying tagName and sets each one
// from lookup. Fields whose lookup reports no value keep their zero value.
func eachTaggedField(v any, tagName string, bindErr error, lookup func(name string) (string, bool)) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		name, ok := parseFieldTag(fieldType, tagName)
		if !ok {
			continue
		}

		value, found := lookup(name)
		if !found {
			continue
		}

		if err := setFieldValue(field, fieldType.Type, value); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, fieldType.Name, err)
		}
	}

	return nil
}

// parseFieldTag returns the parameter name for tagName.
// Untagged fields and fields tagged "-" report false.
func parseFieldTag(field reflect.StructField, tagName string) (string, bool) {
	tag, ok := field.Tag.Lookup(tagName)
	if !ok || tag == "-" {
		return "", false
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = strings.ToLower(field.Name)
	}
	return name, true
}

// setFieldValue sets the field value from a single string value.
func setFieldValue(field reflect.Value, fieldType reflect.Type, value string) error {
	if fieldType.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), value)
	}

	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}
