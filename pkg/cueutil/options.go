// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/encoding/json"
)

// DefaultMaxFileSize is the default maximum input size (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// Input formats accepted by ParseAndDecode.
const (
	// FormatCUE reads the input as CUE source. Plain JSON is valid CUE.
	FormatCUE Format = iota
	// FormatJSON accepts strict JSON only: no comments, trailing commas,
	// expressions or CUE string forms.
	FormatJSON
)

type (
	// Format selects how input data is read.
	Format int

	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
		format      Format
	}

	// Option configures parsing behavior.
	Option func(*parseOptions)
)

func newOptions(opts []Option) parseOptions {
	o := parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
		filename:    "<input>",
		format:      FormatCUE,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxFileSize caps the input size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete sets whether all values must be concrete after unification.
// Config files, where every field is optional, pass false.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) {
		o.concrete = concrete
	}
}

// WithFilename sets the filename used in positions and error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		if name != "" {
			o.filename = name
		}
	}
}

// WithFormat sets the input format.
func WithFormat(f Format) Option {
	return func(o *parseOptions) {
		o.format = f
	}
}

func (f Format) build(ctx *cue.Context, data []byte, filename string) (cue.Value, error) {
	if f == FormatJSON {
		expr, err := json.Extract(filename, data)
		if err != nil {
			return cue.Value{}, err
		}
		v := ctx.BuildExpr(expr, cue.Filename(filename))
		return v, v.Err()
	}
	v := ctx.CompileBytes(data, cue.Filename(filename))
	return v, v.Err()
}
