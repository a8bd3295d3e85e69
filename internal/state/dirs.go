package state

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvHome overrides the base directory when set.
const EnvHome = "OPAVM_HOME"

const defaultDirName = ".opavm"

// BaseDir returns the opavm root directory: $OPAVM_HOME when set
// (with a leading ~ expanded), otherwise ~/.opavm.
func BaseDir() string {
	if override := strings.TrimSpace(os.Getenv(EnvHome)); override != "" {
		return expandHome(override)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No resolvable home: fall back to a relative dot-directory so
		// operations still have somewhere deterministic to write.
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// VersionsDir is the version root for the primary tool.
func VersionsDir() string {
	return filepath.Join(BaseDir(), "versions")
}

// ToolVersionsDir returns the version root for a tool. The primary tool
// keeps the legacy top-level versions/ layout; others nest under tools/.
func ToolVersionsDir(tool string) string {
	if tool == "opa" {
		return VersionsDir()
	}
	return filepath.Join(BaseDir(), "tools", tool, "versions")
}

// ShimsDir holds the generated shim scripts.
func ShimsDir() string {
	return filepath.Join(BaseDir(), "shims")
}

// KeyringsDir holds optional user-provided signing keyrings, one
// armored file per tool ({tool}.asc).
func KeyringsDir() string {
	return filepath.Join(BaseDir(), "keyrings")
}

// StatePath is the location of the global-defaults state file.
func StatePath() string {
	return filepath.Join(BaseDir(), "state.json")
}

// ConfigPath is the location of the optional YAML config file.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.yaml")
}

// EnsureLayout idempotently creates the version root and shim directories.
func EnsureLayout() error {
	for _, dir := range []string{VersionsDir(), ShimsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
