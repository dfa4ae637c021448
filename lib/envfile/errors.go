// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

import "errors"

var (
	// ErrSyntax reports malformed input or a key containing a
	// character the format cannot represent (space, '#', '"', or
	// '\''). Returned wrapped with the offending key or line.
	ErrSyntax = errors.New("envfile: syntax error")

	// ErrUnexpectedEOF reports input that ended inside an unterminated
	// construct, such as a quoted value with no closing quote.
	ErrUnexpectedEOF = errors.New("envfile: unexpected end of input")

	// ErrUnsupportedTupleStruct reports an attempt to encode a
	// positional (unnamed-field) compound. The format has no
	// representation for fields without names.
	ErrUnsupportedTupleStruct = errors.New("envfile: tuple values are not supported")

	// ErrUnsupportedInSequence reports a sequence element that is not
	// a scalar: a nested sequence, or a compound value inside a
	// sequence. The format is a flat namespace and a sequence occupies
	// a single value position.
	ErrUnsupportedInSequence = errors.New("envfile: unsupported structure in sequence")
)
