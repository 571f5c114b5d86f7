// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "aggregate global API scripts"},
			expected: "failed to aggregate global API scripts",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "publish global API script", Resource: "gen/api.js"},
			expected: "failed to publish global API script: gen/api.js",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load configuration", Cause: errors.New("expected '}', found EOF")},
			expected: "failed to load configuration: expected '}', found EOF",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "read global API scripts",
				Resource:  "target/app",
				Cause:     errors.New("manifest decoding failed"),
			},
			expected: "failed to read global API scripts: target/app: manifest decoding failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	if err := Wrap(nil, "publish global API script", "gen/api.js"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}

	sentinel := errors.New("path outside output base")
	err := Wrap(fmt.Errorf("resolve: %w", sentinel), "publish global API script", "/tmp/api.js",
		"Write the script under the output base", "Run with --verbose")

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the sentinel through the cause chain")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Wrap() = %T, want *ActionableError", err)
	}
	if ae.Operation != "publish global API script" || ae.Resource != "/tmp/api.js" {
		t.Errorf("Wrap() = %+v", ae)
	}
	if !slices.Equal(ae.Suggestions, []string{"Write the script under the output base", "Run with --verbose"}) {
		t.Errorf("Suggestions = %q", ae.Suggestions)
	}
	if (&ActionableError{Operation: "x"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil without a cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions are bulleted",
			err: &ActionableError{
				Operation:   "aggregate global API scripts",
				Resource:    "target/app",
				Suggestions: []string{"Create the output directory", "Check permissions"},
			},
			contains: []string{
				"failed to aggregate global API scripts: target/app",
				"• Create the output directory",
				"• Check permissions",
			},
		},
		{
			name: "no chain when not verbose",
			err: &ActionableError{
				Operation: "load env file",
				Cause:     errors.New("line 3: invalid format"),
			},
			contains: []string{"failed to load env file: line 3: invalid format"},
			excludes: []string{"Error chain:", "•"},
		},
		{
			name: "nested chain when verbose",
			err: &ActionableError{
				Operation: "read global API scripts",
				Cause: &ActionableError{
					Operation: "read manifest",
					Cause:     errors.New("permission denied"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to read manifest: permission denied",
				"2. permission denied",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}
