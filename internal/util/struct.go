package util

import (
	"fmt"
	"reflect"
)

// IsStructInitialized checks that every field of the struct s points to is set,
// skipping fields tagged `wire:"-"`. Used to verify the server has all its components.
func IsStructInitialized(s any) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct, got %s", val.Kind())
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := typ.Field(i)
		if field.Tag.Get("wire") == "-" || !field.IsExported() {
			continue
		}

		if val.Field(i).IsZero() {
			return fmt.Errorf("struct field %s.%s is not initialized", typ.Name(), field.Name)
		}
	}

	return nil
}
