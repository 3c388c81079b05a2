package wire

import (
	"reflect"
	"strings"
)

// Column is one flattened field of a transfer object.
type Column struct {
	Name  string
	Value any
}

// Flatten lists the fields of a transfer object in declaration order.
// Nested structs are expanded with dotted names, so Instruction yields
// "origin.sortCode", "origin.number" and so on. Names come from the json
// tags.
func Flatten(dto any) []Column {
	v := reflect.ValueOf(dto)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return flatten(v, "", nil)
}

func flatten(v reflect.Value, prefix string, cols []Column) []Column {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if prefix != "" {
			name = prefix + "." + name
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Struct {
			cols = flatten(fv, name, cols)
			continue
		}
		cols = append(cols, Column{Name: name, Value: fv.Interface()})
	}
	return cols
}

func jsonName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}
