// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// envfile converts between environment variable files and structured
// formats on the command line.
//
//	envfile decode [flags] [file]   env text -> JSON or YAML
//	envfile encode [flags] [file]   JSON or YAML -> env text
//
// Input comes from a trailing file argument when one is given,
// otherwise from stdin; output goes to stdout. Decode preserves the
// key order of the input file. Encode sorts object keys so the same
// document always produces identical text.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "envfile: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	if len(args) == 0 {
		usage(os.Stderr)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "decode":
		return runDecode(args[1:], logger)
	case "encode":
		return runEncode(args[1:], logger)
	case "help", "-h", "--help":
		usage(os.Stdout)
		return nil
	default:
		return fmt.Errorf("unknown command %q (expected decode or encode)", args[0])
	}
}

func usage(w *os.File) {
	fmt.Fprint(w, `Usage:
  envfile decode [flags] [file]   convert env text to JSON or YAML
  envfile encode [flags] [file]   convert JSON or YAML to env text

Flags (decode):
      --format string   output format: json or yaml (default "json")
      --compact         compact JSON output (no indentation)
      --prefix string   keep only keys with this prefix, stripped

Flags (encode):
      --format string   input format: json or yaml (default "json")
      --prefix string   prepend this prefix to every key

With no file argument, input is read from stdin.
`)
}
