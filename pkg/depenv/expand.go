// SPDX-License-Identifier: MPL-2.0

package depenv

import (
	"fmt"

	"mvdan.cc/sh/v3/shell"
)

// Expand performs shell parameter expansion on str as if it were inside
// double quotes, resolving variables against the snapshot only. Unset
// variables expand to "". Forms such as ${VAR:-default} are supported;
// command substitution is rejected.
func (s Snapshot) Expand(str string) (string, error) {
	out, err := shell.Expand(str, s.Get)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", str, err)
	}
	return out, nil
}
