// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// toNode converts an arbitrary Go value into the encoder's node
// representation. The mapping mirrors the decode side:
//
//   - bool, integer, float, and string kinds become the matching scalar
//   - []byte becomes a bytes scalar (must be UTF-8)
//   - slices and arrays become sequences
//   - maps with string keys become compounds with sorted keys, so the
//     same logical data always produces identical text
//   - structs become compounds in field declaration order, named by the
//     `env` tag when present
//   - nil pointers and nil interfaces become absent optionals
//   - types implementing encoding.TextMarshaler become string scalars
func toNode(rv reflect.Value) (*Node, error) {
	if !rv.IsValid() {
		return Optional(nil), nil
	}

	if rv.CanInterface() {
		switch value := rv.Interface().(type) {
		case Node:
			node := value
			return &node, nil
		case *Node:
			if value == nil {
				return Optional(nil), nil
			}
			return value, nil
		case Value:
			return value.node(), nil
		case *Value:
			if value == nil {
				return Optional(nil), nil
			}
			return value.node(), nil
		}

		if rv.Type().Implements(textMarshalerType) {
			if rv.Kind() == reflect.Pointer && rv.IsNil() {
				return Optional(nil), nil
			}
			text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return nil, fmt.Errorf("envfile: marshal text for %s: %w", rv.Type(), err)
			}
			return String(string(text)), nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil

	case reflect.Float32:
		return Float32(float32(rv.Float())), nil

	case reflect.Float64:
		return Float(rv.Float()), nil

	case reflect.String:
		return String(rv.String()), nil

	case reflect.Pointer:
		if rv.IsNil() {
			return Optional(nil), nil
		}
		inner, err := toNode(rv.Elem())
		if err != nil {
			return nil, err
		}
		return Optional(inner), nil

	case reflect.Interface:
		if rv.IsNil() {
			return Optional(nil), nil
		}
		return toNode(rv.Elem())

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		return sliceNode(rv)

	case reflect.Array:
		return sliceNode(rv)

	case reflect.Map:
		return mapNode(rv)

	case reflect.Struct:
		return structNode(rv)

	default:
		return nil, fmt.Errorf("envfile: cannot encode %s value", rv.Kind())
	}
}

func sliceNode(rv reflect.Value) (*Node, error) {
	elems := make([]*Node, rv.Len())
	for i := range elems {
		elem, err := toNode(rv.Index(i))
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return Seq(elems...), nil
}

func mapNode(rv reflect.Value) (*Node, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("envfile: cannot encode map with %s keys", rv.Type().Key())
	}

	keys := make([]string, 0, rv.Len())
	iterator := rv.MapRange()
	for iterator.Next() {
		keys = append(keys, iterator.Key().String())
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, key := range keys {
		value, err := toNode(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())))
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: key, Value: value})
	}
	return Compound(fields...), nil
}

func structNode(rv reflect.Value) (*Node, error) {
	t := rv.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "" {
			continue
		}
		value, err := toNode(rv.Field(i))
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return Compound(fields...), nil
}

// fieldName returns the key segment for a struct field: the `env` tag
// when present, otherwise the field name. An empty return means the
// field is skipped (`env:"-"`).
func fieldName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("env"), ",")
	switch tag {
	case "":
		return f.Name
	case "-":
		return ""
	default:
		return tag
	}
}
