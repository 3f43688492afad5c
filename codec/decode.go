package codec

import (
	"bytes"
	"io"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

// Decode reads data into a new T. Invalid JSON, a missing or null required
// field, or a value of the wrong JSON type fails the whole decode and the zero
// T is returned.
//
// For struct destinations (and pointers to structs) every exported field is
// required unless it is a pointer, slice, map or interface, or carries
// omitempty in its json tag. Nested structs are checked the same way unless a
// codec or an unmarshaler owns their type. Unknown fields are ignored.
func Decode[T any](r *Registry, data []byte) (T, error) {
	var out T
	api := r.API()

	if !wellFormed(api, data) {
		return out, formatError(ErrMalformedJSON, nil, map[string]any{"size": len(data)})
	}

	if err := checkRequired(r, api.Get(data), reflect.TypeOf((*T)(nil)).Elem()); err != nil {
		return out, err
	}

	var decoded T
	if err := api.Unmarshal(data, &decoded); err != nil {
		return out, formatError(ErrInvalidDocument, err, nil)
	}
	return decoded, nil
}

// Encode writes v using the registry codecs and naming policy.
func Encode(r *Registry, v any) ([]byte, error) {
	data, err := r.API().Marshal(v)
	if err != nil {
		return nil, formatError(ErrInvalidDocument, err, map[string]any{"operation": "encode"})
	}
	return data, nil
}

// wellFormed reports whether data holds exactly one JSON value. The API's
// Valid rejects a bare top level number, whose scan ends on io.EOF.
func wellFormed(api jsoniter.API, data []byte) bool {
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	iter.Skip()
	switch iter.Error {
	case nil:
	case io.EOF:
		// Only a number runs into the end of input while being skipped.
		return startsNumber(data)
	default:
		return false
	}

	// Anything but whitespace after the value is trailing garbage.
	iter.WhatIsNext()
	return iter.Error == io.EOF
}

func startsNumber(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return false
	}
	c := trimmed[0]
	return c == '-' || (c >= '0' && c <= '9')
}

func checkRequired(r *Registry, node jsoniter.Any, typ reflect.Type) error {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct || r.owns(typ) {
		return nil
	}
	if node.ValueType() != jsoniter.ObjectValue {
		return formatError(ErrInvalidDocument, nil, map[string]any{
			"reason": "expected a JSON object for " + typ.String(),
		})
	}
	return checkFields(r, node, typ, "")
}

func checkFields(r *Registry, node jsoniter.Any, typ reflect.Type, path string) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		name, omitempty, skip := wireName(field.Name, field.Tag.Get("json"), r.naming)
		if skip {
			continue
		}

		ft := field.Type
		if field.Anonymous && field.Tag.Get("json") == "" {
			// Promoted fields of an embedded struct live on the same object.
			if ft.Kind() == reflect.Struct && !r.owns(ft) {
				if err := checkFields(r, node, ft, path); err != nil {
					return err
				}
				continue
			}
		}

		if !field.IsExported() || omitempty || optionalKind(ft.Kind()) {
			continue
		}

		child := node.Get(name)
		switch child.ValueType() {
		case jsoniter.InvalidValue, jsoniter.NilValue:
			return formatError(ErrMissingField, nil, map[string]any{"field": path + name})
		case jsoniter.ObjectValue:
			if ft.Kind() == reflect.Struct && !r.owns(ft) {
				if err := checkFields(r, child, ft, path+name+"."); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func optionalKind(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}
