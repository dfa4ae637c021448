// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

import "io"

// Namespace binds every operation of the package to a fixed key
// prefix. Encoding prepends the uppercased prefix verbatim to every
// top-level key; the caller includes the trailing separator in the
// prefix string ("APP_", not "APP"). Decoding keeps only the keys that
// carry the prefix, compared case-insensitively, and strips it before
// normal key handling.
//
// Keys without the prefix are silently excluded on decode, which is
// what isolates one configuration block from unrelated variables
// sharing the same file or process environment.
type Namespace struct {
	prefix string
}

// WithPrefix returns a Namespace applying prefix to every operation.
func WithPrefix(prefix string) Namespace {
	return Namespace{prefix: prefix}
}

// Prefix returns the namespace's prefix as given.
func (n Namespace) Prefix() string { return n.prefix }

// Marshal encodes v like [Marshal] with the prefix prepended to every
// key.
func (n Namespace) Marshal(v any) ([]byte, error) {
	return marshal(n.prefix, v)
}

// WriteFile encodes v like [WriteFile] with the prefix applied.
func (n Namespace) WriteFile(path string, v any) error {
	return writeFile(n.prefix, path, v)
}

// NewEncoder returns an encoder writing to w with the prefix applied.
func (n Namespace) NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, prefix: n.prefix}
}

// Unmarshal decodes data like [Unmarshal], keeping only prefixed keys.
func (n Namespace) Unmarshal(data []byte, v any) error {
	return unmarshal(n.prefix, data, v)
}

// ReadFile decodes the file at path like [ReadFile], keeping only
// prefixed keys.
func (n Namespace) ReadFile(path string, v any) error {
	return readFile(n.prefix, path, v)
}

// FromEnviron decodes the process environment like [FromEnviron],
// keeping only prefixed variables.
func (n Namespace) FromEnviron(v any) error {
	return fromEnviron(n.prefix, v)
}

// NewDecoder returns a decoder reading from r, keeping only prefixed
// keys.
func (n Namespace) NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, prefix: n.prefix}
}
