// Package resolver determines the active version of a tool for a
// working directory. Precedence is fixed: a pin file anywhere up the
// directory tree wins over the persisted global default; neither set is
// a "not configured" failure.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"opavm/internal/catalog"
	"opavm/internal/fault"
	"opavm/internal/state"
)

// Resolution names the chosen version and how it was chosen.
type Resolution struct {
	Version string
	Reason  string
}

// FindPinFile walks from start upward through every ancestor (inclusive)
// looking for the tool's pin file. The walk terminates at the
// filesystem root.
func FindPinFile(start string, spec catalog.ToolSpec) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		pin := filepath.Join(dir, spec.PinFilename)
		if info, err := os.Stat(pin); err == nil && !info.IsDir() {
			return pin, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve determines the active version for the tool, starting from the
// given directory.
func Resolve(start string, spec catalog.ToolSpec) (Resolution, error) {
	if pin, ok := FindPinFile(start, spec); ok {
		data, err := os.ReadFile(pin)
		if err == nil {
			if pinned := strings.TrimSpace(string(data)); pinned != "" {
				return Resolution{Version: pinned, Reason: "pinned via " + pin}, nil
			}
		}
	}

	globalDefault, err := state.GlobalDefault(spec.Name)
	if err != nil {
		return Resolution{}, err
	}
	if globalDefault != "" {
		return Resolution{Version: globalDefault, Reason: "global default"}, nil
	}

	useHint := "Run: opavm use <version>"
	if spec.Name != "opa" {
		useHint = "Run: opavm use <version> --tool " + spec.Name
	}
	return Resolution{}, fault.New(fault.KindNotConfigured,
		"No version configured.", useHint+" or create "+spec.PinFilename+".")
}
