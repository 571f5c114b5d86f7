// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/invowk/scriptlink/pkg/apiscript"
)

func TestLogLevel_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   LogLevel
		wantErr bool
		want    log.Level
	}{
		{LogLevelDebug, false, log.DebugLevel},
		{LogLevelInfo, false, log.InfoLevel},
		{LogLevelWarn, false, log.WarnLevel},
		{LogLevelError, false, log.ErrorLevel},
		{"", true, log.InfoLevel},
		{"DEBUG", true, log.InfoLevel},
		{"trace", true, log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()
			err := tt.level.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LogLevel(%q).Validate() = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidLogLevel) {
				t.Errorf("error should wrap ErrInvalidLogLevel, got: %v", err)
			}
			if !tt.wantErr && tt.level.Level() != tt.want {
				t.Errorf("LogLevel(%q).Level() = %v, want %v", tt.level, tt.level.Level(), tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Convention.Key = "has space"
	cfg.Log.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, apiscript.ErrInvalidConvention) || !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Validate() error should wrap every field error, got: %v", err)
	}

	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) || len(cfgErr.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %v", err)
	}
}
