// Package shim writes the fixed shim scripts that forward opa
// invocations through opavm's version resolution. The scripts are
// opaque templates; all logic lives in `opavm which`.
package shim

import (
	"os"
	"path/filepath"

	"opavm/internal/platform"
	"opavm/internal/state"
)

const posixShim = `#!/usr/bin/env sh
set -eu
resolved="$(opavm which)"
exec "$resolved" "$@"
`

const windowsShim = `@echo off
for /f "delims=" %%i in ('opavm which') do set "OPA_BIN=%%i"
"%OPA_BIN%" %*
`

// EnsureShim writes the platform's opa shim into the shims directory if
// it is not already there, and returns its path.
func EnsureShim() (string, error) {
	if err := state.EnsureLayout(); err != nil {
		return "", err
	}
	info, err := platform.Detect()
	if err != nil {
		return "", err
	}

	if info.OS == "windows" {
		path := filepath.Join(state.ShimsDir(), "opa.cmd")
		if fileExists(path) {
			return path, nil
		}
		if err := os.WriteFile(path, []byte(windowsShim), 0o644); err != nil {
			return "", err
		}
		return path, nil
	}

	path := filepath.Join(state.ShimsDir(), "opa")
	if fileExists(path) {
		return path, nil
	}
	if err := os.WriteFile(path, []byte(posixShim), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// PathInstruction returns the shell snippet that puts the shims
// directory on PATH for the current platform.
func PathInstruction() (string, error) {
	info, err := platform.Detect()
	if err != nil {
		return "", err
	}
	if info.OS == "windows" {
		return `$env:Path = "` + state.ShimsDir() + `;$env:Path"`, nil
	}
	return `export PATH="` + state.ShimsDir() + `:$PATH"`, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
