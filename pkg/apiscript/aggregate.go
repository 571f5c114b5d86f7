// SPDX-License-Identifier: MPL-2.0

package apiscript

import (
	"github.com/invowk/scriptlink/pkg/fspath"
	"github.com/invowk/scriptlink/pkg/types"
)

// Aggregate collects the script paths published by every provider visible
// in the environment snapshot and writes them as the manifest in outputDir.
//
// A variable named Convention.FrameworkVar() fills the override slot and
// takes precedence over the override argument. Every other variable of the
// form <prefix><links>_<key> contributes one entry. The override, if any, is
// the first entry; the rest follow in ascending variable-name order.
// Variables with an empty value are ignored, so an empty framework variable
// leaves the slot to the override argument.
//
// An absolute override is relativized like Publish does; a relative
// override is taken as already output-base-relative. Pass "" for no
// override. The manifest is replaced atomically.
func Aggregate(bc *BuildContext, outputDir, override types.FilesystemPath) (Manifest, error) {
	conv := bc.convention
	if err := conv.Validate(); err != nil {
		return nil, err
	}
	frameworkVar := conv.FrameworkVar().String()

	var (
		first       types.FilesystemPath
		hasOverride bool
		rest        Manifest
	)
	for _, name := range bc.env.Keys() {
		value := bc.env.Get(name)
		if value == "" && (name == frameworkVar || conv.isDependencyVar(name)) {
			bc.logger.Debug("skipping empty global API script variable", "var", name)
			continue
		}
		switch {
		case name == frameworkVar:
			first, hasOverride = types.FilesystemPath(value), true
			bc.logger.Debug("framework global API script", "var", name, "path", value)
		case conv.isDependencyVar(name):
			rest = append(rest, types.FilesystemPath(value))
			bc.logger.Debug("dependency global API script", "var", name, "path", value)
		}
	}

	if !hasOverride && override.IsSet() {
		entry, err := bc.overrideEntry(override)
		if err != nil {
			return nil, err
		}
		first, hasOverride = entry, true
	}

	m := make(Manifest, 0, len(rest)+1)
	if hasOverride {
		m = append(m, first)
	}
	m = append(m, rest...)

	path := conv.ManifestPath(outputDir)
	data, err := m.encode()
	if err != nil {
		return nil, &ManifestEncodeError{Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return nil, &IOError{Op: "write manifest", Path: path, Err: err}
	}

	bc.logger.Debug("wrote global API script manifest", "path", path, "entries", len(m))
	return m, nil
}

func (bc *BuildContext) overrideEntry(override types.FilesystemPath) (types.FilesystemPath, error) {
	if fspath.IsAbs(override) {
		return bc.relativize(override)
	}
	return fspath.ToSlash(fspath.Clean(override)), nil
}
