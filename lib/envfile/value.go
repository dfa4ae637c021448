// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

import "iter"

// Value is the untyped representation of an environment variable file:
// a string-to-string mapping that remembers insertion order. It is the
// decode target to use when no schema is known ahead of time, and it
// encodes like any other compound value.
//
// Setting an existing key updates the value but keeps the key's
// original position, so a file that assigns a key twice keeps the
// first occurrence's place with the last occurrence's value.
//
// The zero Value is empty and ready to use.
type Value struct {
	keys   []string
	values map[string]string
}

// NewValue returns an empty Value.
func NewValue() *Value {
	return &Value{}
}

// Set stores value under key, appending the key to the order if it is
// new.
func (v *Value) Set(key, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, exists := v.values[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get returns the value stored under key and whether it is present.
func (v *Value) Get(key string) (string, bool) {
	value, ok := v.values[key]
	return value, ok
}

// Delete removes key from the container. Deleting an absent key is a
// no-op.
func (v *Value) Delete(key string) {
	if _, ok := v.values[key]; !ok {
		return
	}
	delete(v.values, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (v *Value) Len() int { return len(v.keys) }

// Keys returns the keys in insertion order. The returned slice is a
// copy.
func (v *Value) Keys() []string {
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// All iterates over the pairs in insertion order.
func (v *Value) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, key := range v.keys {
			if !yield(key, v.values[key]) {
				return
			}
		}
	}
}

// Equal reports whether two containers hold the same keys with the
// same values. Insertion order does not participate in equality. A nil
// container equals an empty one.
func (v *Value) Equal(other *Value) bool {
	if other == nil {
		return v.Len() == 0
	}
	if v.Len() != other.Len() {
		return false
	}
	for key, value := range v.values {
		got, ok := other.values[key]
		if !ok || got != value {
			return false
		}
	}
	return true
}

// node returns the compound representation the encoder consumes, with
// fields in insertion order.
func (v *Value) node() *Node {
	fields := make([]Field, 0, len(v.keys))
	for _, key := range v.keys {
		fields = append(fields, Field{Name: key, Value: String(v.values[key])})
	}
	return Compound(fields...)
}
