// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

import (
	"encoding"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// Unmarshal parses env file text and stores the result in the value
// pointed to by v.
//
// When v is a *Value the raw pairs are stored with lowercased keys and
// no coercion. Otherwise v must point to a struct or a map with string
// keys: keys are lowercased and matched case-insensitively against
// field names (or `env` tags), nested structs and maps claim keys by
// underscore-joined prefix, and string values are coerced to the field
// type (bool, integers, floats, comma-split slices, pointers, and
// encoding.TextUnmarshaler implementations). Keys matching no field
// are ignored.
func Unmarshal(data []byte, v any) error {
	return unmarshal("", data, v)
}

// ReadFile reads the file at path and decodes it into v like
// [Unmarshal].
func ReadFile(path string, v any) error {
	return readFile("", path, v)
}

// FromEnviron decodes the process environment into v like [Unmarshal].
// Environment variables are taken from os.Environ in enumeration
// order; no file parsing is involved.
func FromEnviron(v any) error {
	return fromEnviron("", v)
}

// Decoder reads env file text from a stream. Decode consumes the
// remainder of the stream as one document.
type Decoder struct {
	r      io.Reader
	prefix string
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the rest of the stream and decodes it into v like
// [Unmarshal].
func (d *Decoder) Decode(v any) error {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return fmt.Errorf("envfile: read: %w", err)
	}
	return unmarshal(d.prefix, data, v)
}

func unmarshal(prefix string, data []byte, v any) error {
	pairs, err := parsePairs(data)
	if err != nil {
		return err
	}
	return assign(filterPrefix(prefix, pairs), v)
}

func readFile(prefix, path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("envfile: read %s: %w", path, err)
	}
	return unmarshal(prefix, data, v)
}

func fromEnviron(prefix string, v any) error {
	environ := os.Environ()
	pairs := make([]pair, 0, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		pairs = append(pairs, pair{key: key, value: value})
	}
	return assign(filterPrefix(prefix, pairs), v)
}

// filterPrefix keeps only the pairs whose key starts with prefix
// (case-insensitively) and strips the prefix. An empty prefix keeps
// everything. A key that is nothing but the prefix would strip to an
// empty key, which the format does not allow, so it is dropped.
func filterPrefix(prefix string, pairs []pair) []pair {
	if prefix == "" {
		return pairs
	}
	kept := make([]pair, 0, len(pairs))
	for _, p := range pairs {
		if len(p.key) > len(prefix) && strings.EqualFold(p.key[:len(prefix)], prefix) {
			kept = append(kept, pair{key: p.key[len(prefix):], value: p.value})
		}
	}
	return kept
}

// assign routes the raw pairs to their consumer: the untyped Value
// container, or the typed coercion path through mapstructure.
func assign(pairs []pair, v any) error {
	if value, ok := v.(*Value); ok {
		for _, p := range pairs {
			value.Set(strings.ToLower(p.key), p.value)
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("envfile: decode target must be a non-nil pointer, got %T", v)
	}
	target := rv.Type().Elem()
	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}

	lowered := make([]pair, len(pairs))
	for i, p := range pairs {
		lowered[i] = pair{key: strings.ToLower(p.key), value: p.value}
	}

	var input any
	switch target.Kind() {
	case reflect.Struct:
		input = nestPairs(target, lowered)
	case reflect.Map:
		flat := make(map[string]string, len(lowered))
		for _, p := range lowered {
			flat[p.key] = p.value
		}
		input = flat
	default:
		return fmt.Errorf("envfile: cannot decode into %s", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		TagName:          "env",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("envfile: decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("envfile: decode: %w", err)
	}
	return nil
}

// nestPairs converts flat underscore-joined keys into the nested map
// shape the target struct expects. An exact field-name match wins;
// otherwise struct- and map-typed fields claim keys carrying their
// name as an underscore prefix, longest field name first. Keys
// matching nothing are dropped.
func nestPairs(t reflect.Type, pairs []pair) map[string]any {
	type group struct {
		typ   reflect.Type
		pairs []pair
	}

	exact := make(map[string]bool)
	type compoundField struct {
		name string
		typ  reflect.Type
	}
	var compounds []compoundField

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.ToLower(fieldName(f))
		if name == "" {
			continue
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		// Types with their own text representation (time.Time and the
		// like) decode from a single value, not from nested keys. All
		// other struct and map fields decode only from nested keys: an
		// exact-name match is not a scalar for them (see the pair loop).
		if !reflect.PointerTo(ft).Implements(textUnmarshalerType) &&
			(ft.Kind() == reflect.Struct || ft.Kind() == reflect.Map) {
			compounds = append(compounds, compoundField{name: name, typ: ft})
			continue
		}
		exact[name] = true
	}
	sort.SliceStable(compounds, func(i, j int) bool {
		return len(compounds[i].name) > len(compounds[j].name)
	})

	out := make(map[string]any)
	groups := make(map[string]*group)
	for _, p := range pairs {
		if exact[p.key] {
			out[p.key] = p.value
			continue
		}
		for _, c := range compounds {
			// A bare KEY= line is how an empty compound encodes; decode
			// it back to an empty one. A non-empty scalar value has no
			// compound reading and is dropped like any unmatched key.
			if p.key == c.name {
				if p.value == "" {
					out[p.key] = map[string]string{}
				}
				break
			}
			if strings.HasPrefix(p.key, c.name+"_") {
				g := groups[c.name]
				if g == nil {
					g = &group{typ: c.typ}
					groups[c.name] = g
				}
				g.pairs = append(g.pairs, pair{key: p.key[len(c.name)+1:], value: p.value})
				break
			}
		}
	}

	for name, g := range groups {
		if g.typ.Kind() == reflect.Struct {
			out[name] = nestPairs(g.typ, g.pairs)
			continue
		}
		nested := make(map[string]string, len(g.pairs))
		for _, p := range g.pairs {
			nested[p.key] = p.value
		}
		out[name] = nested
	}
	return out
}
