// SPDX-License-Identifier: MPL-2.0

package depenv

import (
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/invowk/scriptlink/pkg/types"
)

// Snapshot is an immutable set of environment variables. The zero value is
// an empty snapshot. Methods that "modify" a Snapshot return a new one.
type Snapshot struct {
	vars map[string]string
}

// FromOS takes a snapshot of the current process environment.
func FromOS() Snapshot {
	return FromEnviron(os.Environ())
}

// FromEnviron builds a snapshot from KEY=VALUE entries as returned by
// os.Environ. Entries without a separator or with an empty key (such as the
// "=C:=C:\" drive entries on Windows) are skipped. Later duplicates win.
func FromEnviron(environ []string) Snapshot {
	vars := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		vars[key] = value
	}
	return Snapshot{vars: vars}
}

// FromMap builds a snapshot holding a copy of m.
func FromMap(m map[string]string) Snapshot {
	return Snapshot{vars: maps.Clone(m)}
}

// Lookup returns the value of name and whether it is present.
func (s Snapshot) Lookup(name types.EnvVarName) (string, bool) {
	v, ok := s.vars[string(name)]
	return v, ok
}

// Get returns the value of name, or "" when it is absent.
func (s Snapshot) Get(name string) string {
	return s.vars[name]
}

// Len returns the number of variables in the snapshot.
func (s Snapshot) Len() int {
	return len(s.vars)
}

// Keys returns the variable names in ascending byte order.
func (s Snapshot) Keys() []string {
	return slices.Sorted(maps.Keys(s.vars))
}

// Merge returns a copy of s overlaid with other. Values in other win.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	vars := make(map[string]string, len(s.vars)+len(other.vars))
	maps.Copy(vars, s.vars)
	maps.Copy(vars, other.vars)
	return Snapshot{vars: vars}
}
