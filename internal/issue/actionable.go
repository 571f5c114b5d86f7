// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ActionableError is a failure annotated for people running a build step:
// the step that failed, the file or directory involved, and what to try next.
//
//	return issue.Wrap(err, "aggregate global API scripts", outDir,
//		"Create the output directory before running the step")
type ActionableError struct {
	// Operation is a verb phrase, e.g. "publish global API script".
	Operation string
	// Resource names the path or variable involved. Optional.
	Resource string
	// Suggestions are printed as bullets below the message. Optional.
	Suggestions []string
	// Cause is the underlying error.
	Cause error
}

// Wrap annotates err. It returns nil when err is nil, so it can wrap a
// call's result directly.
func Wrap(err error, operation, resource string, suggestions ...string) error {
	if err == nil {
		return nil
	}
	return &ActionableError{
		Operation:   operation,
		Resource:    resource,
		Suggestions: suggestions,
		Cause:       err,
	}
}

// Error renders "failed to <operation>: <resource>: <cause>".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause for errors.Is/As.
func (e *ActionableError) Unwrap() error { return e.Cause }

// Format renders the message followed by one bullet per suggestion. In
// verbose mode the numbered cause chain is appended.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}
