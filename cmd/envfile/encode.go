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
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/envfile/lib/envfile"
)

func runEncode(args []string, logger *slog.Logger) error {
	flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	format := flags.String("format", "json", "input format: json or yaml")
	prefix := flags.String("prefix", "", "prepend this prefix to every key")
	if err := flags.Parse(args); err != nil {
		return err
	}

	data, remainingArgs, err := readInput(flags.Args())
	if err != nil {
		return err
	}
	if len(remainingArgs) > 0 {
		return fmt.Errorf("encode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
	}
	if len(data) == 0 {
		logger.Warn("input is empty")
	}

	return encodeEnv(data, os.Stdout, *format, *prefix)
}

// encodeEnv converts a JSON or YAML object to env text on w. Object
// keys are sorted during encoding, so the same document always
// produces identical output.
func encodeEnv(data []byte, w io.Writer, format, prefix string) error {
	var root map[string]any
	switch format {
	case "json":
		decoded, err := decodeJSON(data)
		if err != nil {
			return err
		}
		root = decoded
	case "yaml":
		if err := yaml.Unmarshal(data, &root); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", format)
	}

	out, err := envfile.WithPrefix(prefix).Marshal(root)
	if err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// decodeJSON decodes a JSON object keeping integers exact: numbers are
// decoded as json.Number and converted to int64, uint64, or float64.
// Without this, large integers would round-trip through float64 and
// lose precision.
func decodeJSON(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var root map[string]any
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return convertNumbers(root).(map[string]any), nil
}

// convertNumbers recursively walks a JSON-decoded value and converts
// json.Number to int64, uint64, or float64.
func convertNumbers(v any) any {
	switch value := v.(type) {
	case json.Number:
		if integer, err := value.Int64(); err == nil {
			return integer
		}
		if unsigned, err := strconv.ParseUint(value.String(), 10, 64); err == nil {
			return unsigned
		}
		if float, err := value.Float64(); err == nil {
			return float
		}
		// json.Number that is none of the three should not happen
		// with valid JSON, but fail loudly if it does.
		panic(fmt.Sprintf("json.Number %q is not representable", value.String()))

	case map[string]any:
		for key, element := range value {
			value[key] = convertNumbers(element)
		}
		return value

	case []any:
		for index, element := range value {
			value[index] = convertNumbers(element)
		}
		return value
	}
	return v
}
