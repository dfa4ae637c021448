// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Marshal encodes v as flat KEY=VALUE text: one assignment per line,
// lines joined by '\n', no trailing newline. See the package
// documentation for the value conventions and the shapes the format
// can represent.
func Marshal(v any) ([]byte, error) {
	return marshal("", v)
}

// WriteFile encodes v and writes the result to path, creating or
// truncating the file.
func WriteFile(path string, v any) error {
	return writeFile("", path, v)
}

// Encoder writes encoded values to a stream. Each Encode call produces
// one complete document.
type Encoder struct {
	w      io.Writer
	prefix string
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode encodes v and writes the text to the underlying writer.
func (e *Encoder) Encode(v any) error {
	data, err := marshal(e.prefix, v)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("envfile: write: %w", err)
	}
	return nil
}

func marshal(prefix string, v any) ([]byte, error) {
	node, err := rootNode(v)
	if err != nil {
		return nil, err
	}
	state := &encodeState{basePrefix: strings.ToUpper(prefix)}
	if err := state.encodeRoot(node); err != nil {
		return nil, err
	}
	return []byte(strings.TrimRight(state.out.String(), "\n")), nil
}

func writeFile(prefix, path string, v any) error {
	data, err := marshal(prefix, v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("envfile: write %s: %w", path, err)
	}
	return nil
}

func rootNode(v any) (*Node, error) {
	switch value := v.(type) {
	case nil:
		return Optional(nil), nil
	case *Node:
		if value == nil {
			return Optional(nil), nil
		}
		return value, nil
	case Node:
		return &value, nil
	default:
		return toNode(reflect.ValueOf(v))
	}
}

// encodeState is the per-call traversal state. An instance serves
// exactly one Marshal call and is discarded afterwards.
type encodeState struct {
	out        strings.Builder
	basePrefix string // fixed namespace, already uppercased
	prefix     string // current key path, '_'-joined, without basePrefix
	inSequence bool
}

// effective unwraps present optionals so shape decisions see the value
// that will actually render. Absent optionals stay as-is: they render
// like an empty scalar.
func effective(n *Node) *Node {
	for n.kind == KindOptional && n.inner != nil {
		n = n.inner
	}
	return n
}

func (s *encodeState) encodeRoot(n *Node) error {
	eff := effective(n)
	switch {
	case eff.kind == KindTuple:
		return ErrUnsupportedTupleStruct
	case eff.kind == KindCompound:
		return s.encodeCompound(eff.fields)
	case eff.kind == KindVariant && eff.inner != nil:
		return s.encodeCompound([]Field{{Name: eff.name, Value: eff.inner}})
	default:
		return s.writeValue(n)
	}
}

// encodeCompound emits one line per scalar field under the current
// prefix. A field whose value is itself a compound contributes no line
// of its own: the key is not emitted until the value's shape is known,
// and the children render under the extended prefix instead. An empty
// compound value has no children to render and contributes a bare
// "KEY=" line.
func (s *encodeState) encodeCompound(fields []Field) error {
	for _, field := range fields {
		candidate := strings.ToUpper(field.Name)
		if s.prefix != "" {
			candidate = s.prefix + "_" + candidate
		}
		full := s.basePrefix + candidate
		if strings.ContainsAny(full, " #\"'") {
			return fmt.Errorf("envfile: key %q: %w", full, ErrSyntax)
		}

		eff := effective(field.Value)
		switch {
		case eff.kind == KindTuple:
			return fmt.Errorf("envfile: key %q: %w", full, ErrUnsupportedTupleStruct)

		case eff.kind == KindCompound && len(eff.fields) > 0:
			if err := s.encodeNested(candidate, eff.fields); err != nil {
				return err
			}

		case eff.kind == KindVariant && eff.inner != nil:
			nested := []Field{{Name: eff.name, Value: eff.inner}}
			if err := s.encodeNested(candidate, nested); err != nil {
				return err
			}

		default:
			s.out.WriteString(full)
			s.out.WriteByte('=')
			if err := s.writeValue(field.Value); err != nil {
				return err
			}
			s.out.WriteByte('\n')
		}
	}
	return nil
}

func (s *encodeState) encodeNested(candidate string, fields []Field) error {
	saved := s.prefix
	s.prefix = candidate
	err := s.encodeCompound(fields)
	s.prefix = saved
	return err
}

// writeValue renders a value-position node. Compound shapes never
// reach here with fields: encodeCompound resolves them before the '='
// is written.
func (s *encodeState) writeValue(n *Node) error {
	switch n.kind {
	case KindBool:
		if n.boolv {
			s.out.WriteString("true")
		} else {
			s.out.WriteString("false")
		}

	case KindInt:
		s.out.WriteString(strconv.FormatInt(n.intv, 10))

	case KindUint:
		s.out.WriteString(strconv.FormatUint(n.uintv, 10))

	case KindFloat:
		s.out.WriteString(strconv.FormatFloat(n.floatv, 'f', -1, n.bits))

	case KindString:
		s.writeString(n.strv)

	case KindBytes:
		if !utf8.Valid(n.bytev) {
			return fmt.Errorf("envfile: bytes value is not valid UTF-8: %w", ErrSyntax)
		}
		s.writeString(string(n.bytev))

	case KindOptional:
		if n.inner == nil {
			return nil
		}
		return s.writeValue(n.inner)

	case KindVariant:
		if n.inner != nil {
			return s.writeValue(n.inner)
		}
		s.writeString(n.name)

	case KindSequence:
		if s.inSequence {
			return fmt.Errorf("envfile: nested sequence: %w", ErrUnsupportedInSequence)
		}
		s.inSequence = true
		for i, elem := range n.elems {
			if i > 0 {
				s.out.WriteByte(',')
			}
			eff := effective(elem)
			switch eff.kind {
			case KindSequence, KindCompound, KindTuple:
				return fmt.Errorf("envfile: %s element in sequence: %w", eff.kind, ErrUnsupportedInSequence)
			}
			if err := s.writeValue(elem); err != nil {
				return err
			}
		}
		s.inSequence = false

	case KindCompound:
		if len(n.fields) > 0 {
			return fmt.Errorf("envfile: compound value in scalar position: %w", ErrUnsupportedInSequence)
		}

	case KindTuple:
		return ErrUnsupportedTupleStruct
	}
	return nil
}

// writeString renders a string value: non-empty strings are
// double-quoted verbatim, empty strings render as nothing.
func (s *encodeState) writeString(v string) {
	if v == "" {
		return
	}
	s.out.WriteByte('"')
	s.out.WriteString(v)
	s.out.WriteByte('"')
}
