// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/envfile/lib/envfile"
)

func runDecode(args []string, logger *slog.Logger) error {
	flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	format := flags.String("format", "json", "output format: json or yaml")
	compact := flags.Bool("compact", false, "compact JSON output (no indentation)")
	prefix := flags.String("prefix", "", "keep only keys with this prefix, stripped")
	if err := flags.Parse(args); err != nil {
		return err
	}

	data, remainingArgs, err := readInput(flags.Args())
	if err != nil {
		return err
	}
	if len(remainingArgs) > 0 {
		return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
	}
	if len(data) == 0 {
		logger.Warn("input is empty")
	}

	return decodeEnv(data, os.Stdout, *format, *compact, *prefix)
}

// decodeEnv converts env text to JSON or YAML on w, preserving the key
// order of the input.
func decodeEnv(data []byte, w io.Writer, format string, compact bool, prefix string) error {
	var value envfile.Value
	if err := envfile.WithPrefix(prefix).Unmarshal(data, &value); err != nil {
		return err
	}

	switch format {
	case "json":
		return writeJSON(w, &value, compact)
	case "yaml":
		return writeYAML(w, &value)
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", format)
	}
}

// writeJSON renders the pairs as a JSON object in insertion order.
// encoding/json would sort map keys, so the object is assembled by
// hand from individually marshaled strings.
func writeJSON(w io.Writer, value *envfile.Value, compact bool) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	keys := value.Keys()
	for i, key := range keys {
		val, _ := value.Get(key)
		if i > 0 {
			buf.WriteByte(',')
		}
		if !compact {
			buf.WriteString("\n  ")
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("marshal key %q: %w", key, err)
		}
		valueJSON, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("marshal value for %q: %w", key, err)
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		if !compact {
			buf.WriteByte(' ')
		}
		buf.Write(valueJSON)
	}
	if !compact && len(keys) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// writeYAML renders the pairs as a YAML mapping in insertion order,
// via an explicit mapping node (yaml.Marshal on a Go map would sort
// the keys).
func writeYAML(w io.Writer, value *envfile.Value) error {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for key, val := range value.All() {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val},
		)
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	if err := encoder.Encode(mapping); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return nil
}
