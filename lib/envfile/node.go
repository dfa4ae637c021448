// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

// Kind identifies the shape of a Node.
type Kind uint8

const (
	// KindBool is a boolean scalar.
	KindBool Kind = iota
	// KindInt is a signed integer scalar.
	KindInt
	// KindUint is an unsigned integer scalar.
	KindUint
	// KindFloat is a floating-point scalar (32 or 64 bit).
	KindFloat
	// KindString is a string scalar.
	KindString
	// KindBytes is a byte-slice scalar; it must hold valid UTF-8.
	KindBytes
	// KindOptional is a possibly-absent value.
	KindOptional
	// KindSequence is an ordered list of scalar values.
	KindSequence
	// KindCompound is an ordered list of named fields.
	KindCompound
	// KindTuple is an ordered list of unnamed fields. The format
	// cannot represent it; the encoder rejects it.
	KindTuple
	// KindVariant is a named enum variant with an optional payload.
	KindVariant
)

// String returns a short lowercase name for the kind, for error
// messages.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindOptional:
		return "optional"
	case KindSequence:
		return "sequence"
	case KindCompound:
		return "compound"
	case KindTuple:
		return "tuple"
	case KindVariant:
		return "variant"
	}
	return "unknown"
}

// Field is one named entry of a compound node.
type Field struct {
	Name  string
	Value *Node
}

// Node is the typed tree the encoder walks. Most callers never build
// nodes directly: [Marshal] converts arbitrary Go values into this
// representation first. The constructors exist for callers that want
// to encode shapes Go's type system does not express, such as
// heterogeneous sequences or enum variants.
//
// A Node is immutable after construction and is only borrowed by the
// encoder for the duration of one call.
type Node struct {
	kind   Kind
	boolv  bool
	intv   int64
	uintv  uint64
	floatv float64
	bits   int // float precision: 32 or 64
	strv   string
	bytev  []byte
	inner  *Node   // optional payload, variant payload
	elems  []*Node // sequence, tuple
	fields []Field // compound
	name   string  // variant name
}

// Kind returns the node's shape.
func (n *Node) Kind() Kind { return n.kind }

// Bool returns a boolean scalar node.
func Bool(v bool) *Node { return &Node{kind: KindBool, boolv: v} }

// Int returns a signed integer scalar node.
func Int(v int64) *Node { return &Node{kind: KindInt, intv: v} }

// Uint returns an unsigned integer scalar node.
func Uint(v uint64) *Node { return &Node{kind: KindUint, uintv: v} }

// Float returns a 64-bit floating-point scalar node.
func Float(v float64) *Node { return &Node{kind: KindFloat, floatv: v, bits: 64} }

// Float32 returns a 32-bit floating-point scalar node. The width
// matters for rendering: the encoder emits the shortest decimal text
// that is exact at the value's own precision.
func Float32(v float32) *Node { return &Node{kind: KindFloat, floatv: float64(v), bits: 32} }

// String returns a string scalar node.
func String(v string) *Node { return &Node{kind: KindString, strv: v} }

// Bytes returns a byte-slice scalar node. The bytes must be valid
// UTF-8 or encoding fails.
func Bytes(v []byte) *Node { return &Node{kind: KindBytes, bytev: v} }

// Optional returns a possibly-absent value. A nil inner node is the
// absent case and renders as an empty right-hand side.
func Optional(inner *Node) *Node { return &Node{kind: KindOptional, inner: inner} }

// Seq returns a sequence node. Elements must resolve to scalars;
// encoding rejects nested sequences and compound elements.
func Seq(elems ...*Node) *Node { return &Node{kind: KindSequence, elems: elems} }

// Compound returns a compound node with fields in the given order.
func Compound(fields ...Field) *Node { return &Node{kind: KindCompound, fields: fields} }

// Tuple returns a positional compound node. The encoder always rejects
// it with [ErrUnsupportedTupleStruct]; the constructor exists so the
// rejection is expressible and testable.
func Tuple(elems ...*Node) *Node { return &Node{kind: KindTuple, elems: elems} }

// Variant returns an enum variant node. With a nil payload the variant
// renders as its quoted name, like a string scalar. With a payload it
// renders as a single field named after the variant.
func Variant(name string, payload *Node) *Node {
	return &Node{kind: KindVariant, name: name, inner: payload}
}
