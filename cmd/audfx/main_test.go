// SPDX-License-Identifier: EPL-2.0

package main

import (
	"os"
	"testing"
)

func touchFile(t *testing.T, path string) {
	t.Helper()

	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	logger, closeLog, err := newLogger(true, false)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer closeLog()

	if !logger.Enabled(t.Context(), -4) {
		t.Error("verbose logger does not log debug records")
	}

	quiet, closeQuiet, err := newLogger(false, false)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer closeQuiet()

	if quiet.Enabled(t.Context(), -4) {
		t.Error("default logger logs debug records")
	}
}
