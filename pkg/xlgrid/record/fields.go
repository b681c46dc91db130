package record

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// TagName is the struct tag holding a field's display label.
// `xlgrid:"-"` excludes the field.
const TagName = "xlgrid"

// ErrNotStruct is returned when field discovery is given a non-struct type.
var ErrNotStruct = errors.New("record: not a struct type")

// Field pairs a field key with its display label.
type Field struct {
	Key   string
	Label string
}

// DiscoverFields lists the exported fields of a struct type in declaration
// order. Pointers to structs are dereferenced. The label is the tag value,
// or the field name when the tag is empty.
func DiscoverFields(t reflect.Type) ([]Field, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}

	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		label := sf.Tag.Get(TagName)
		if label == "-" {
			continue
		}
		label, _, _ = strings.Cut(label, ",")
		if label == "" {
			label = sf.Name
		}
		fields = append(fields, Field{Key: sf.Name, Label: label})
	}
	return fields, nil
}

// structRecord adapts a struct value through reflection.
type structRecord struct {
	v      reflect.Value
	fields []string
}

// FromStruct adapts a struct or pointer to struct.
func FromStruct(v any) (Record, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrNotStruct)
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil pointer", ErrNotStruct)
		}
		rv = rv.Elem()
	}
	discovered, err := DiscoverFields(rv.Type())
	if err != nil {
		return nil, err
	}
	names := make([]string, len(discovered))
	for i, f := range discovered {
		names[i] = f.Key
	}
	return structRecord{v: rv, fields: names}, nil
}

// FromStructs adapts every element of a struct slice.
func FromStructs[T any](items []T) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for i := range items {
		rec, err := FromStruct(&items[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s structRecord) Fields() []string { return s.fields }

func (s structRecord) Get(field string) (any, bool) {
	sf, ok := s.v.Type().FieldByName(field)
	if !ok || !sf.IsExported() {
		return nil, false
	}
	return s.v.FieldByIndex(sf.Index).Interface(), true
}
