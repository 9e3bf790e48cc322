// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Command gen-schema generates the JSON Schema files for the auth API
// payloads.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bytecraft/superticket/internal/authapi"
)

func main() {
	outDir := pflag.String("out", "schemas", "output directory")
	pflag.Parse()

	if err := run(*outDir, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(outDir string, w io.Writer) error {
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	for _, name := range authapi.SchemaNames() {
		schema, err := authapi.GenerateSchema(name)
		if err != nil {
			return fmt.Errorf("generating %s: %w", name, err)
		}

		outPath := filepath.Join(outDir, name+".schema.json")
		if err := os.WriteFile(outPath, schema, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		_, _ = fmt.Fprintf(w, "Generated %s\n", outPath)
	}
	return nil
}
