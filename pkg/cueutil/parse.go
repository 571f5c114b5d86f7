// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseAndDecode validates data against the schema definition at schemaPath
// (e.g. "#Manifest", "#Config") and decodes the unified value into T.
//
// Data is read as CUE unless WithFormat(FormatJSON) is given, in which case
// anything that is not strict JSON fails before the schema is consulted.
// Errors carry the filename and the JSON path of the offending value.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (T, error) {
	var out T
	o := newOptions(opts)

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return out, err
	}

	ctx := cuecontext.New()
	def, err := definition(ctx, schema, schemaPath)
	if err != nil {
		return out, err
	}

	user, err := o.format.build(ctx, data, o.filename)
	if err != nil {
		return out, FormatError(err, o.filename)
	}

	unified := def.Unify(user)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return out, FormatError(err, o.filename)
	}
	if err := unified.Decode(&out); err != nil {
		return out, FormatError(err, o.filename)
	}
	return out, nil
}

func definition(ctx *cue.Context, schema []byte, schemaPath string) (cue.Value, error) {
	compiled := ctx.CompileBytes(schema)
	if err := compiled.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", err)
	}
	def := compiled.LookupPath(cue.ParsePath(schemaPath))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, err)
	}
	return def, nil
}
