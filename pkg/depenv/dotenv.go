// SPDX-License-Identifier: MPL-2.0

package depenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/invowk/scriptlink/pkg/types"
)

// LoadFile reads a dependency env file and returns its variables as a
// snapshot. A path suffixed with '?' is optional: a missing optional file
// yields an empty snapshot and no error.
func LoadFile(path types.FilesystemPath) (Snapshot, error) {
	p := string(path)
	optional := strings.HasSuffix(p, "?")
	if optional {
		p = strings.TrimSuffix(p, "?")
	}

	content, err := os.ReadFile(p)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("failed to read env file '%s': %w", p, err)
	}

	vars := make(map[string]string)
	if err := ParseEnvFile(vars, content, p); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{vars: vars}, nil
}

// ParseEnvFile parses dotenv format content and merges into the env map.
// Supported format:
//   - Lines starting with # are comments
//   - Empty lines are ignored
//   - KEY=value (unquoted, " #" starts an inline comment)
//   - KEY="value" (double-quoted, escape sequences: \n, \r, \t, \\, \", \$)
//   - KEY='value' (single-quoted, literal - no escape processing)
//   - export KEY=value (export prefix is optional and ignored)
//   - KEY= (empty value)
//
// Variable names must be valid types.EnvVarName values. The filename
// parameter is used for error messages.
func ParseEnvFile(env map[string]string, content []byte, filename string) error {
	lines := strings.Split(string(content), "\n")

	for i, line := range lines {
		lineNum := i + 1

		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")
		line = strings.TrimSpace(line)

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%s:%d: invalid format (missing '=')", filename, lineNum)
		}

		key = strings.TrimSpace(key)
		if err := types.EnvVarName(key).Validate(); err != nil {
			return fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}

		parsedValue, err := parseEnvValue(value)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}

		env[key] = parsedValue
	}

	return nil
}

// parseEnvValue parses a dotenv value, handling quoting and escape sequences.
func parseEnvValue(value string) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return "", nil
	}

	switch value[0] {
	case '"':
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", errors.New("unterminated double quote")
		}
		return parseDoubleQuotedValue(value[1 : len(value)-1]), nil
	case '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", errors.New("unterminated single quote")
		}
		return value[1 : len(value)-1], nil
	}

	if idx := strings.Index(value, " #"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}

	return value, nil
}

// parseDoubleQuotedValue processes escape sequences in a double-quoted value.
// Unknown escapes are kept verbatim.
func parseDoubleQuotedValue(value string) string {
	var result strings.Builder
	result.Grow(len(value))

	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 >= len(value) {
			result.WriteByte(value[i])
			continue
		}
		next := value[i+1]
		switch next {
		case 'n':
			result.WriteByte('\n')
		case 'r':
			result.WriteByte('\r')
		case 't':
			result.WriteByte('\t')
		case '\\', '"', '$':
			result.WriteByte(next)
		default:
			result.WriteByte('\\')
			result.WriteByte(next)
		}
		i++
	}

	return result.String()
}
