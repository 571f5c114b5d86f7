// SPDX-License-Identifier: MPL-2.0

package apiscript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/scriptlink/internal/platform"
	"github.com/invowk/scriptlink/pkg/types"
)

const (
	// DefaultOutputBaseVar names the variable holding the shared output base.
	DefaultOutputBaseVar types.EnvVarName = "BUILD_OUTPUT_BASE"
	// DefaultSourceRootVar names the variable holding the provider's source root.
	DefaultSourceRootVar types.EnvVarName = "BUILD_SOURCE_ROOT"
	// DefaultDependencyPrefix is the prefix the orchestrator puts in front of
	// variables it forwards from a dependency.
	DefaultDependencyPrefix = "DEP_"
	// DefaultKey is the directive key a provider publishes under.
	DefaultKey = "GLOBAL_API_SCRIPT_PATH"
	// DefaultFrameworkLinks is the link name of the framework's own provider.
	DefaultFrameworkLinks = "CORE"
	// DefaultDirectivePrefix starts every directive line read by the orchestrator.
	DefaultDirectivePrefix = "build:"
	// ManifestFileName is the file Aggregate writes into a unit's output directory.
	ManifestFileName = "__global-api-script.js"
)

// ErrInvalidConvention is the sentinel error wrapped by InvalidConventionError.
var ErrInvalidConvention = errors.New("invalid convention")

type (
	// Convention names every variable, key and file shared by the three
	// protocol steps. Providers and dependents must agree on it.
	Convention struct {
		OutputBaseVar    types.EnvVarName `json:"output_base_var"`
		SourceRootVar    types.EnvVarName `json:"source_root_var"`
		DependencyPrefix string           `json:"dependency_prefix"`
		Key              string           `json:"key"`
		FrameworkLinks   string           `json:"framework_links"`
		DirectivePrefix  string           `json:"directive_prefix"`
		ManifestFile     string           `json:"manifest_file"`
	}

	// InvalidConventionError lists every problem found by Convention.Validate.
	InvalidConventionError struct {
		Problems []string
	}
)

// DefaultConvention returns the standard names.
func DefaultConvention() Convention {
	return Convention{
		OutputBaseVar:    DefaultOutputBaseVar,
		SourceRootVar:    DefaultSourceRootVar,
		DependencyPrefix: DefaultDependencyPrefix,
		Key:              DefaultKey,
		FrameworkLinks:   DefaultFrameworkLinks,
		DirectivePrefix:  DefaultDirectivePrefix,
		ManifestFile:     ManifestFileName,
	}
}

// Validate reports every field that would make the protocol ambiguous.
func (c Convention) Validate() error {
	var problems []string
	if err := c.OutputBaseVar.Validate(); err != nil {
		problems = append(problems, "output base variable: "+err.Error())
	}
	if err := c.SourceRootVar.Validate(); err != nil {
		problems = append(problems, "source root variable: "+err.Error())
	}
	if err := types.EnvVarName(c.DependencyPrefix).Validate(); err != nil {
		problems = append(problems, "dependency prefix: "+err.Error())
	}
	if err := types.EnvVarName(c.Key).Validate(); err != nil {
		problems = append(problems, "key: "+err.Error())
	}
	if c.FrameworkLinks == "" {
		problems = append(problems, "framework links must not be empty")
	} else if err := c.FrameworkVar().Validate(); err != nil {
		problems = append(problems, "framework variable: "+err.Error())
	}
	if c.ManifestFile == "" || strings.ContainsAny(c.ManifestFile, `/\`) || c.ManifestFile == "." || c.ManifestFile == ".." {
		problems = append(problems, fmt.Sprintf("manifest file %q must be a plain file name", c.ManifestFile))
	} else if platform.IsWindowsReservedName(c.ManifestFile) {
		problems = append(problems, fmt.Sprintf("manifest file %q is a reserved name on Windows", c.ManifestFile))
	}
	if len(problems) > 0 {
		return &InvalidConventionError{Problems: problems}
	}
	return nil
}

// DependencyVar returns the variable name under which the orchestrator
// exposes a provider's directive to dependents. links is the provider's
// link name; it is upper-cased and '-' and '.' become '_'.
func (c Convention) DependencyVar(links string) types.EnvVarName {
	normalized := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, strings.ToUpper(links))
	return types.EnvVarName(c.DependencyPrefix + normalized + "_" + c.Key)
}

// FrameworkVar returns the variable carrying the framework's own script.
func (c Convention) FrameworkVar() types.EnvVarName {
	return c.DependencyVar(c.FrameworkLinks)
}

// isDependencyVar reports whether name is "<prefix><links>_<key>" with a
// non-empty links segment.
func (c Convention) isDependencyVar(name string) bool {
	suffix := "_" + c.Key
	return strings.HasPrefix(name, c.DependencyPrefix) &&
		strings.HasSuffix(name, suffix) &&
		len(name) > len(c.DependencyPrefix)+len(suffix)
}

// Error implements the error interface.
func (e *InvalidConventionError) Error() string {
	return "invalid convention: " + strings.Join(e.Problems, "; ")
}

// Unwrap returns ErrInvalidConvention for errors.Is() compatibility.
func (e *InvalidConventionError) Unwrap() error { return ErrInvalidConvention }
