// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envfile encodes and decodes the flat KEY=VALUE text format
// used by environment variable files.
//
// The format is a single-level namespace: one assignment per line,
// lines joined by newlines, no trailing newline. Nested values are
// flattened into the key by joining the field path with underscores:
//
//	type Database struct {
//		Port int
//	}
//	type Config struct {
//		Name     string
//		Database Database
//	}
//
//	envfile.Marshal(Config{Name: "app", Database: Database{Port: 5432}})
//	// NAME="app"
//	// DATABASE_PORT=5432
//
// Keys are rendered in upper snake case on encode and lowercased on
// decode, so a round trip normalizes case rather than preserving it.
// Values follow the conventions of the format: booleans are bare
// true/false, numbers are bare decimal text, non-empty strings are
// double-quoted verbatim (no escaping is performed — values must not
// embed double quotes), and empty strings or nil pointers render as an
// empty right-hand side. Slices of scalars are comma-joined with no
// surrounding whitespace:
//
//	HOSTS="alpha","beta"
//	RETRIES=3
//	VERBOSE=true
//	COMMENT=
//
// The flat namespace is a hard limit of the format: a sequence element
// may not itself be a compound or sequence value. Encoding such a
// shape fails with [ErrUnsupportedInSequence].
//
// # Decoding
//
// [Unmarshal] parses the text (handling comments, quoting, `export`
// prefixes, and quoted line continuations) and coerces the string
// values onto the target: bools, integers, floats, strings, slices
// (split on commas), pointers, nested structs via underscore-joined
// key prefixes, and any type implementing encoding.TextUnmarshaler.
// Field matching is case-insensitive; keys with no matching field are
// ignored.
//
// Decoding into a [Value] skips coercion entirely and yields the raw
// lowercased key/value pairs in document order.
//
// Note one deliberate asymmetry: a line with an empty right-hand side
// (KEY=) decodes into a *string field as a pointer to the empty
// string, not as nil. The text format cannot distinguish "present but
// empty" from "absent", and presence wins.
//
// # Struct Tags
//
// The `env` struct tag overrides the key segment derived from the
// field name; `env:"-"` skips the field:
//
//	type Config struct {
//		Listen string `env:"listen_addr"`
//		cache  string // unexported, ignored
//	}
//
// # Namespace Prefixes
//
// [WithPrefix] returns a [Namespace] whose operations prepend an
// uppercased prefix to every key on encode, and on decode keep only
// the keys carrying that prefix (case-insensitively), stripped:
//
//	envfile.WithPrefix("APP_").Marshal(v)   // APP_NAME="app" ...
//	envfile.WithPrefix("APP_").Unmarshal(text, &v)
package envfile
