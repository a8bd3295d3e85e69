// Package testutil provides utilities for testing opavm in isolation.
package testutil

import (
	"path/filepath"
	"testing"
)

// SetupTestEnv points opavm at a throwaway base directory so tests never
// touch the user's real ~/.opavm state, and neutralizes the environment
// overrides that would leak host configuration into a test.
//
// Cleanup is handled by t.TempDir and t.Setenv automatically. Returns
// the base directory for tests that need to inspect the layout.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	base := filepath.Join(t.TempDir(), "opavm")
	t.Setenv("OPAVM_HOME", base)
	t.Setenv("OPAVM_GITHUB_TOKEN", "")
	t.Setenv("OPAVM_OPA_REPO", "")
	t.Setenv("OPAVM_REGAL_REPO", "")
	return base
}
