package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"opavm/internal/catalog"
	"opavm/internal/fault"
	"opavm/internal/state"
	"opavm/internal/testutil"
)

func TestResolvedBinaryPathNotInstalled(t *testing.T) {
	testutil.SetupTestEnv(t)

	spec, err := catalog.Get("opa")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if err := state.SetGlobalDefault("opa", "1.13.1"); err != nil {
		t.Fatalf("set default: %v", err)
	}

	_, _, _, err = ResolvedBinaryPath(t.TempDir(), spec)
	if err == nil {
		t.Fatal("expected not-installed error")
	}
	if !fault.IsKind(err, fault.KindNotInstalled) {
		t.Errorf("expected not-installed kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "opavm install 1.13.1") {
		t.Errorf("hint should name the install command, got %q", err.Error())
	}
}

func TestResolvedBinaryPathNotConfigured(t *testing.T) {
	testutil.SetupTestEnv(t)

	spec, err := catalog.Get("opa")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	_, _, _, err = ResolvedBinaryPath(t.TempDir(), spec)
	if !fault.IsKind(err, fault.KindNotConfigured) {
		t.Errorf("expected not-configured kind, got %v", err)
	}
}

func TestResolvedBinaryPathSuccess(t *testing.T) {
	testutil.SetupTestEnv(t)

	spec, err := catalog.Get("opa")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if err := state.SetGlobalDefault("opa", "1.13.1"); err != nil {
		t.Fatalf("set default: %v", err)
	}

	dir := filepath.Join(state.ToolVersionsDir("opa"), "1.13.1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	binPath := filepath.Join(dir, "opa")
	if err := os.WriteFile(binPath, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}

	version, reason, path, err := ResolvedBinaryPath(t.TempDir(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "1.13.1" || reason != "global default" {
		t.Errorf("got (%q, %q)", version, reason)
	}
	if path != binPath {
		t.Errorf("path = %q, want %q", path, binPath)
	}
}
