// SPDX-License-Identifier: MPL-2.0

package apiscript

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/invowk/scriptlink/pkg/cueutil"
	"github.com/invowk/scriptlink/pkg/fspath"
	"github.com/invowk/scriptlink/pkg/types"
)

// MaxManifestSize bounds the manifest LoadManifest accepts, in bytes.
const MaxManifestSize int64 = 1 << 20

//go:embed manifest_schema.cue
var manifestSchema []byte

// Manifest is the ordered list of script paths written by Aggregate.
// Entries are output-base-relative and slash-separated, except for legacy
// absolute entries which ReadAll uses as-is.
type Manifest []types.FilesystemPath

// ManifestPath returns the manifest location inside outputDir.
func (c Convention) ManifestPath(outputDir types.FilesystemPath) types.FilesystemPath {
	return fspath.JoinStr(outputDir, c.ManifestFile)
}

// LoadManifest reads the manifest in outputDir. A missing manifest returns
// (nil, false, nil). A manifest that is present but is not a strict JSON
// array of strings, or is larger than MaxManifestSize, returns a
// ManifestDecodeError.
func LoadManifest(bc *BuildContext, outputDir types.FilesystemPath) (Manifest, bool, error) {
	if err := bc.convention.Validate(); err != nil {
		return nil, false, err
	}
	path := bc.convention.ManifestPath(outputDir)

	data, err := os.ReadFile(path.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			bc.logger.Debug("no global API script manifest", "path", path)
			return nil, false, nil
		}
		return nil, false, &IOError{Op: "read manifest", Path: path, Err: err}
	}

	entries, err := cueutil.ParseAndDecode[[]string](manifestSchema, data, "#Manifest",
		cueutil.WithFormat(cueutil.FormatJSON),
		cueutil.WithMaxFileSize(MaxManifestSize),
		cueutil.WithFilename(path.String()))
	if err != nil {
		return nil, false, &ManifestDecodeError{Path: path, Err: err}
	}

	m := make(Manifest, len(entries))
	for i, e := range entries {
		m[i] = types.FilesystemPath(e)
	}
	return m, true, nil
}

// encode renders the manifest as a compact JSON array. A nil manifest
// encodes as [].
func (m Manifest) encode() ([]byte, error) {
	entries := make([]string, len(m))
	for i, e := range m {
		if !utf8.ValidString(string(e)) {
			return nil, fmt.Errorf("entry %d is not valid UTF-8: %q", i, e)
		}
		entries[i] = string(e)
	}
	return json.Marshal(entries)
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so readers see either the old file or the complete new one.
func writeFileAtomic(path types.FilesystemPath, data []byte) (err error) {
	tmp, err := os.CreateTemp(fspath.Dir(path).String(), ".scriptlink-manifest-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, path.String()); err != nil {
		return err
	}
	renamed = true
	return nil
}
