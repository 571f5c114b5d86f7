// SPDX-License-Identifier: MPL-2.0

package apiscript

import "testing"

func TestDirective_LineRoundTrip(t *testing.T) {
	t.Parallel()

	c := DefaultConvention()
	d := Directive{Key: c.Key, Value: "external/plugin-cors/api-iife.js"}

	line := d.Line(c)
	if line != "build:GLOBAL_API_SCRIPT_PATH=external/plugin-cors/api-iife.js" {
		t.Fatalf("Line() = %q", line)
	}

	got, ok := ParseDirective(line+"\n", c)
	if !ok {
		t.Fatalf("ParseDirective(%q) failed", line)
	}
	if got != d {
		t.Errorf("ParseDirective() = %+v, want %+v", got, d)
	}
}

func TestParseDirective_Rejects(t *testing.T) {
	t.Parallel()

	c := DefaultConvention()
	for _, line := range []string{
		"",
		"GLOBAL_API_SCRIPT_PATH=a.js",
		"build:GLOBAL_API_SCRIPT_PATH",
		"build:=a.js",
		"cargo:GLOBAL_API_SCRIPT_PATH=a.js",
	} {
		if d, ok := ParseDirective(line, c); ok {
			t.Errorf("ParseDirective(%q) = %+v, want rejection", line, d)
		}
	}
}

func TestParseDirective_ValueWithEquals(t *testing.T) {
	t.Parallel()

	d, ok := ParseDirective("build:GLOBAL_API_SCRIPT_PATH=dir/a=b.js", DefaultConvention())
	if !ok || d.Value != "dir/a=b.js" {
		t.Errorf("ParseDirective() = %+v, %v", d, ok)
	}
}
