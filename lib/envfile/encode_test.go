// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestMarshalValue(t *testing.T) {
	value := NewValue()
	value.Set("HELLO", "WORLD")

	got, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `HELLO="WORLD"`; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalNestedStruct(t *testing.T) {
	type nested struct {
		C uint8
	}
	type config struct {
		A uint8
		B nested
	}

	got, err := Marshal(config{A: 1, B: nested{C: 2}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "A=1\nB_C=2"; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalSequence(t *testing.T) {
	type config struct {
		A []string
		B string
	}

	got, err := Marshal(config{A: []string{"HELLO", "WORLD"}, B: "control value"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "A=\"HELLO\",\"WORLD\"\nB=\"control value\""; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalBool(t *testing.T) {
	type config struct {
		A bool
		B bool
	}

	got, err := Marshal(config{A: true, B: false})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "A=true\nB=false"; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalNumbers(t *testing.T) {
	type config struct {
		U8  uint8
		U16 uint16
		U32 uint32
		U64 uint64
		I8  int8
		I16 int16
		I32 int32
		I64 int64
		F32 float32
		F64 float64
	}
	input := config{
		U8:  255,
		U16: 65535,
		U32: 4294967295,
		U64: 18446744073709551615,
		I8:  -128,
		I16: -32768,
		I32: -2147483648,
		I64: -9223372036854775808,
		F32: -3.5,
		F64: 3.5,
	}

	got, err := Marshal(input)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "U8=255\nU16=65535\nU32=4294967295\nU64=18446744073709551615\n" +
		"I8=-128\nI16=-32768\nI32=-2147483648\nI64=-9223372036854775808\n" +
		"F32=-3.5\nF64=3.5"
	if string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalOptional(t *testing.T) {
	type config struct {
		A *string
		B *string
	}
	hello := "HELLO"

	got, err := Marshal(config{A: &hello, B: nil})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "A=\"HELLO\"\nB="; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalEmptyString(t *testing.T) {
	type config struct {
		A string
	}

	got, err := Marshal(config{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "A="; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalNestedMap(t *testing.T) {
	type config struct {
		Inner map[string]string
	}

	got, err := Marshal(config{Inner: map[string]string{"hello": "WORLD"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "INNER_HELLO=\"WORLD\""; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalMapSortsKeys(t *testing.T) {
	input := map[string]int{"zeta": 3, "alpha": 1, "mid": 2}

	got, err := Marshal(input)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "ALPHA=1\nMID=2\nZETA=3"; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalStructTags(t *testing.T) {
	type config struct {
		Listen string `env:"listen_addr"`
		Secret string `env:"-"`
	}

	got, err := Marshal(config{Listen: "0.0.0.0:8080", Secret: "nope"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "LISTEN_ADDR=\"0.0.0.0:8080\""; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalEnumVariant(t *testing.T) {
	got, err := Marshal(Compound(Field{Name: "a", Value: Variant("HELLO", nil)}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "A=\"HELLO\""; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalVariantPayload(t *testing.T) {
	got, err := Marshal(Variant("a", Int(5)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "A=5"; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalTopLevelScalars(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"int", 42, "42"},
		{"string", "hi", `"hi"`},
		{"bool", true, "true"},
		{"slice", []int{1, 2, 3}, "1,2,3"},
		{"nil", nil, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Marshal(test.input)
			if err != nil {
				t.Fatalf("Marshal(%v): %v", test.input, err)
			}
			if string(got) != test.want {
				t.Errorf("Marshal(%v) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestMarshalEmptyNestedStruct(t *testing.T) {
	type empty struct{}
	type config struct {
		A int
		B empty
	}

	got, err := Marshal(config{A: 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "A=1\nB="; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

type semver struct {
	major, minor int
}

func (v semver) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "%d.%d", v.major, v.minor), nil
}

func (v *semver) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d.%d", &v.major, &v.minor)
	return err
}

func TestMarshalTextMarshaler(t *testing.T) {
	type config struct {
		Version semver
	}

	got, err := Marshal(config{Version: semver{major: 1, minor: 2}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "VERSION=\"1.2\""; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalKeySyntaxErrors(t *testing.T) {
	for _, key := range []string{"BAD KEY", "BAD#KEY", `BAD"KEY`, "BAD'KEY"} {
		_, err := Marshal(map[string]string{key: "v"})
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Marshal(key %q) error = %v, want ErrSyntax", key, err)
		}
	}
}

func TestMarshalTupleRejected(t *testing.T) {
	_, err := Marshal(Tuple(Int(1), String("x")))
	if !errors.Is(err, ErrUnsupportedTupleStruct) {
		t.Errorf("Marshal(tuple) error = %v, want ErrUnsupportedTupleStruct", err)
	}

	_, err = Marshal(Compound(Field{Name: "a", Value: Tuple(Int(1))}))
	if !errors.Is(err, ErrUnsupportedTupleStruct) {
		t.Errorf("Marshal(field tuple) error = %v, want ErrUnsupportedTupleStruct", err)
	}
}

func TestMarshalSequenceRejections(t *testing.T) {
	type inner struct {
		A int
	}
	type withStructs struct {
		Items []inner
	}
	type withNested struct {
		Items [][]string
	}

	if _, err := Marshal(withStructs{Items: []inner{{A: 1}}}); !errors.Is(err, ErrUnsupportedInSequence) {
		t.Errorf("Marshal(struct in sequence) error = %v, want ErrUnsupportedInSequence", err)
	}
	if _, err := Marshal(withNested{Items: [][]string{{"a"}}}); !errors.Is(err, ErrUnsupportedInSequence) {
		t.Errorf("Marshal(nested sequence) error = %v, want ErrUnsupportedInSequence", err)
	}
}

func TestMarshalInvalidUTF8Bytes(t *testing.T) {
	_, err := Marshal(Compound(Field{Name: "a", Value: Bytes([]byte{0xff, 0xfe})}))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("Marshal(invalid UTF-8) error = %v, want ErrSyntax", err)
	}
}

func TestMarshalBytes(t *testing.T) {
	type config struct {
		Payload []byte
	}

	got, err := Marshal(config{Payload: []byte("data")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "PAYLOAD=\"data\""; string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestEncoderWritesToStream(t *testing.T) {
	type config struct {
		Hello string
	}
	var buf bytes.Buffer

	if err := NewEncoder(&buf).Encode(config{Hello: "WORLD"}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := "HELLO=\"WORLD\""; buf.String() != want {
		t.Errorf("Encode wrote %q, want %q", buf.String(), want)
	}
}

func TestWriteFile(t *testing.T) {
	type config struct {
		Hello string
	}
	path := filepath.Join(t.TempDir(), ".env")

	if err := WriteFile(path, config{Hello: "WORLD"}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := "HELLO=\"WORLD\""; string(data) != want {
		t.Errorf("file contents = %q, want %q", data, want)
	}
}
