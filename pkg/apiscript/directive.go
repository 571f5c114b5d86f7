// SPDX-License-Identifier: MPL-2.0

package apiscript

import "strings"

// Directive is one key/value datum a provider hands to the orchestrator.
// The orchestrator forwards it to dependents as the variable
// Convention.DependencyVar(<provider links>).
type Directive struct {
	Key   string
	Value string
}

// Line renders the directive as the orchestrator reads it, without the
// trailing newline.
func (d Directive) Line(c Convention) string {
	return c.DirectivePrefix + d.Key + "=" + d.Value
}

// ParseDirective reads a directive line written by Publish. It returns false
// when line does not start with the convention's directive prefix or has no
// '=' separator.
func ParseDirective(line string, c Convention) (Directive, bool) {
	line = strings.TrimRight(line, "\r\n")
	rest, ok := strings.CutPrefix(line, c.DirectivePrefix)
	if !ok {
		return Directive{}, false
	}
	key, value, ok := strings.Cut(rest, "=")
	if !ok || key == "" {
		return Directive{}, false
	}
	return Directive{Key: key, Value: value}, true
}
