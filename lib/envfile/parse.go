// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envfile

import (
	"fmt"
	"strings"
)

// pair is one raw KEY=VALUE assignment, in document order.
type pair struct {
	key   string
	value string
}

// parsePairs scans env file text into its assignments. It handles
// full-line and trailing comments, blank lines, optional `export `
// prefixes, single- and double-quoted value segments (with backslash
// escapes inside double quotes), and newlines inside quotes. Keys keep
// their original case; callers normalize. Duplicate keys are returned
// as-is.
func parsePairs(data []byte) ([]pair, error) {
	p := &parser{src: string(data), line: 1}
	var pairs []pair
	for {
		p.skipBlank()
		if p.eof() {
			return pairs, nil
		}
		key, err := p.readKey()
		if err != nil {
			return nil, err
		}
		value, err := p.readValue()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{key: key, value: value})
	}
}

type parser struct {
	src  string
	pos  int
	line int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

// skipBlank consumes whitespace, blank lines, and full-line comments
// between assignments.
func (p *parser) skipBlank() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r':
			p.pos++
		case '\n':
			p.pos++
			p.line++
		case '#':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// readKey consumes up to and including the '=' separator and returns
// the trimmed key. An assignment without '=' on its line is malformed.
func (p *parser) readKey() (string, error) {
	start := p.pos
	for !p.eof() && p.src[p.pos] != '=' && p.src[p.pos] != '\n' {
		p.pos++
	}
	if p.eof() || p.src[p.pos] == '\n' {
		raw := strings.TrimSpace(p.src[start:p.pos])
		return "", fmt.Errorf("envfile: line %d: missing '=' in %q: %w", p.line, raw, ErrSyntax)
	}

	raw := p.src[start:p.pos]
	p.pos++ // consume '='

	key := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(strings.TrimLeft(raw, " \t"), "export "); ok {
		key = strings.TrimSpace(rest)
	}
	if key == "" {
		return "", fmt.Errorf("envfile: line %d: empty key: %w", p.line, ErrSyntax)
	}
	return key, nil
}

// readValue consumes the right-hand side up to an unquoted newline.
// The value is the concatenation of unquoted runs, double-quoted
// segments, and single-quoted segments, so `"HELLO","WORLD"` parses to
// `HELLO,WORLD`. Surrounding whitespace is trimmed only from unquoted
// edges; an unquoted '#' preceded by whitespace starts a trailing
// comment.
func (p *parser) readValue() (string, error) {
	type segment struct {
		text   string
		quoted bool
	}
	var segments []segment
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			segments = append(segments, segment{text: run.String()})
			run.Reset()
		}
	}

	start := p.pos
scan:
	for !p.eof() {
		switch c := p.src[p.pos]; c {
		case '\n':
			p.pos++
			p.line++
			break scan

		case '"':
			p.pos++
			text, err := p.readDoubleQuoted()
			if err != nil {
				return "", err
			}
			flush()
			segments = append(segments, segment{text: text, quoted: true})

		case '\'':
			p.pos++
			text, err := p.readSingleQuoted()
			if err != nil {
				return "", err
			}
			flush()
			segments = append(segments, segment{text: text, quoted: true})

		case '#':
			if p.pos == start || p.src[p.pos-1] == ' ' || p.src[p.pos-1] == '\t' {
				for !p.eof() && p.src[p.pos] != '\n' {
					p.pos++
				}
				continue
			}
			run.WriteByte(c)
			p.pos++

		default:
			run.WriteByte(c)
			p.pos++
		}
	}
	flush()

	if len(segments) == 0 {
		return "", nil
	}
	if first := &segments[0]; !first.quoted {
		first.text = strings.TrimLeft(first.text, " \t\r")
	}
	if last := &segments[len(segments)-1]; !last.quoted {
		last.text = strings.TrimRight(last.text, " \t\r")
	}

	var value strings.Builder
	for _, s := range segments {
		value.WriteString(s.text)
	}
	return value.String(), nil
}

// readDoubleQuoted consumes a double-quoted segment after the opening
// quote. Backslash escapes \" \\ \n \r \t are interpreted; any other
// escape is kept literally. Raw newlines are allowed (quoted line
// continuation).
func (p *parser) readDoubleQuoted() (string, error) {
	var b strings.Builder
	for !p.eof() {
		switch c := p.src[p.pos]; c {
		case '"':
			p.pos++
			return b.String(), nil

		case '\\':
			p.pos++
			if p.eof() {
				return "", fmt.Errorf("envfile: line %d: trailing backslash: %w", p.line, ErrUnexpectedEOF)
			}
			switch esc := p.src[p.pos]; esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"', '\\', '\'':
				b.WriteByte(esc)
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			p.pos++

		case '\n':
			b.WriteByte(c)
			p.pos++
			p.line++

		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("envfile: line %d: unterminated double-quoted value: %w", p.line, ErrUnexpectedEOF)
}

// readSingleQuoted consumes a single-quoted segment after the opening
// quote. Content is verbatim; there are no escapes.
func (p *parser) readSingleQuoted() (string, error) {
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case '\'':
			text := p.src[start:p.pos]
			p.pos++
			return text, nil
		case '\n':
			p.line++
		}
		p.pos++
	}
	return "", fmt.Errorf("envfile: line %d: unterminated single-quoted value: %w", p.line, ErrUnexpectedEOF)
}
