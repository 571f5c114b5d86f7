// SPDX-License-Identifier: MPL-2.0

package apiscript

import (
	"io"

	"github.com/invowk/scriptlink/pkg/types"
)

// Publish announces the global API script at path to dependent build units.
//
// A relative path is resolved against the source root. The path is
// canonicalized and made relative to the output base, and exactly one
// directive line carrying that relative, slash-separated form is written to
// the context's directive writer. Nothing is written when any step fails.
func Publish(bc *BuildContext, path types.FilesystemPath) (Directive, error) {
	if err := bc.convention.Validate(); err != nil {
		return Directive{}, err
	}
	if err := path.Validate(); err != nil {
		return Directive{}, &PathResolutionError{Path: path, Err: err}
	}

	rel, err := bc.relativize(path)
	if err != nil {
		return Directive{}, err
	}

	d := Directive{Key: bc.convention.Key, Value: rel.String()}
	if _, err := io.WriteString(bc.directives, d.Line(bc.convention)+"\n"); err != nil {
		return Directive{}, &IOError{Op: "write directive for", Path: path, Err: err}
	}

	bc.logger.Debug("published global API script", "key", d.Key, "path", d.Value)
	return d, nil
}
