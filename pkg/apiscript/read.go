// SPDX-License-Identifier: MPL-2.0

package apiscript

import (
	"os"

	"github.com/invowk/scriptlink/pkg/fspath"
	"github.com/invowk/scriptlink/pkg/types"
)

// ReadAll loads the manifest in outputDir and returns the full text of every
// listed script, in manifest order. found is false, with no error, when
// outputDir holds no manifest.
//
// Relative entries are resolved against the output base, which is only
// looked up when the manifest has at least one relative entry.
func ReadAll(bc *BuildContext, outputDir types.FilesystemPath) (scripts []string, found bool, err error) {
	m, found, err := LoadManifest(bc, outputDir)
	if err != nil || !found {
		return nil, found, err
	}

	var base types.FilesystemPath
	scripts = make([]string, 0, len(m))
	for _, entry := range m {
		path := fspath.FromSlash(entry)
		if !fspath.IsAbs(path) {
			if !base.IsSet() {
				if base, err = bc.OutputBase(); err != nil {
					return nil, true, err
				}
			}
			path = fspath.Join(base, path)
		}

		content, err := os.ReadFile(path.String())
		if err != nil {
			return nil, true, &IOError{Op: "read global API script", Path: path, Err: err}
		}
		scripts = append(scripts, string(content))
	}

	bc.logger.Debug("read global API scripts", "count", len(scripts))
	return scripts, true, nil
}
