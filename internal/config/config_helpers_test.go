package config

import (
	"errors"
	"testing"

	"github.com/indaco/csprojver/internal/apperrors"
)

/* ------------------------------------------------------------------------- */
/* HELPERS                                                                   */
/* ------------------------------------------------------------------------- */

func checkError(t *testing.T, err error, wantErr bool) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("expected err=%v, got err=%v", wantErr, err)
	}
}

func checkConfigNil(t *testing.T, cfg *Config, wantNil bool) {
	t.Helper()
	if wantNil && cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
	if !wantNil && cfg == nil {
		t.Fatal("expected non-nil config, got nil")
	}
}

func checkConfigurationError(t *testing.T, err error, wantInput string) {
	t.Helper()
	var cfgErr *apperrors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *apperrors.ConfigurationError, got %T (%v)", err, err)
	}
	if cfgErr.Input != wantInput {
		t.Errorf("expected input %q, got %q", wantInput, cfgErr.Input)
	}
}
