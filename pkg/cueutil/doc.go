// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates documents against embedded CUE schemas.
//
// ParseAndDecode compiles the schema, reads the input (CUE source, or strict
// JSON with WithFormat(FormatJSON)), unifies the two, validates and decodes
// the result into a Go value:
//
//	//go:embed manifest_schema.cue
//	var schemaBytes []byte
//
//	entries, err := cueutil.ParseAndDecode[[]string](schemaBytes, data, "#Manifest",
//	    cueutil.WithFormat(cueutil.FormatJSON),
//	    cueutil.WithFilename("__global-api-script.js"),
//	)
//
// Errors are flattened by FormatError into "<file>: <json path>: <message>".
package cueutil
