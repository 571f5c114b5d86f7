// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/invowk/scriptlink/internal/issue"
	"github.com/invowk/scriptlink/pkg/apiscript"
)

// ServiceError is an error that carries an issue catalog entry for the CLI
// layer to render after the error message.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a protocol error to its issue catalog entry. It
// returns 0 for errors without one.
func classifyError(err error) issue.Id {
	switch {
	case errors.Is(err, apiscript.ErrMissingEnvVar):
		return issue.MissingEnvVarId
	case errors.Is(err, apiscript.ErrPathOutsideBase):
		return issue.PathOutsideBaseId
	case errors.Is(err, apiscript.ErrPathResolution):
		return issue.PathResolutionFailedId
	case errors.Is(err, apiscript.ErrManifestEncode):
		return issue.ManifestEncodeFailedId
	case errors.Is(err, apiscript.ErrManifestDecode):
		return issue.ManifestDecodeFailedId
	case errors.Is(err, apiscript.ErrIO):
		return issue.FileIOFailedId
	case errors.Is(err, apiscript.ErrInvalidConvention):
		return issue.InvalidConventionId
	default:
		return 0
	}
}

// protocolError wraps an error returned by a protocol step with the
// operation that failed, hints built from the error, and the matching
// catalog entry.
func protocolError(err error, operation, resource string) error {
	if err == nil {
		return nil
	}
	return newServiceError(issue.Wrap(err, operation, resource, protocolSuggestions(err)...), classifyError(err))
}

// protocolSuggestions names the variable or path a protocol error is about.
func protocolSuggestions(err error) []string {
	var (
		missing *apiscript.MissingEnvVarError
		outside *apiscript.PathOutsideBaseError
		resolve *apiscript.PathResolutionError
		decode  *apiscript.ManifestDecodeError
		ioErr   *apiscript.IOError
		conv    *apiscript.InvalidConventionError
	)
	switch {
	case errors.As(err, &missing):
		return []string{fmt.Sprintf("Export %s in the build step environment or an --env-file", missing.Name)}
	case errors.As(err, &outside):
		return []string{fmt.Sprintf("Generate the script below %s", outside.Base)}
	case errors.Is(err, apiscript.ErrNotRegularFile):
		return []string{"Pass the script file itself, not a directory"}
	case errors.As(err, &resolve):
		return []string{fmt.Sprintf("Check that %s exists when the step runs", resolve.Path)}
	case errors.As(err, &decode):
		return []string{fmt.Sprintf("Delete %s and run 'scriptlink aggregate' again", decode.Path)}
	case errors.As(err, &ioErr):
		return []string{fmt.Sprintf("Check that %s exists and is accessible", ioErr.Path)}
	case errors.As(err, &conv):
		return []string{"Compare the convention with 'scriptlink config show'"}
	default:
		return nil
	}
}

// renderServiceError renders the catalog entry of a ServiceError, if any.
func renderServiceError(stderr io.Writer, logger *log.Logger, svcErr *ServiceError) {
	if svcErr == nil || svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render("auto")
		if renderErr != nil {
			logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
