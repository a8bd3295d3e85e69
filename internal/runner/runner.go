// Package runner combines the resolver and installer into the single
// integration point the CLI's exec/which surface depends on.
package runner

import (
	"os"

	"opavm/internal/catalog"
	"opavm/internal/fault"
	"opavm/internal/installer"
	"opavm/internal/resolver"
)

// ResolvedBinaryPath resolves the active version for a tool from the
// start directory and returns the version, the resolution reason, and
// a path to an existing binary. A resolved-but-missing binary is a
// "not installed" failure naming the exact install command.
func ResolvedBinaryPath(start string, spec catalog.ToolSpec) (version, reason, path string, err error) {
	res, err := resolver.Resolve(start, spec)
	if err != nil {
		return "", "", "", err
	}

	inst := installer.New()
	binary, err := inst.BinaryPath(res.Version, spec)
	if err != nil {
		return "", "", "", err
	}
	if info, statErr := os.Stat(binary); statErr != nil || info.IsDir() {
		return "", "", "", fault.New(fault.KindNotInstalled,
			"Version not installed.", "Run: "+installer.InstallCommand(spec, res.Version))
	}
	return res.Version, res.Reason, binary, nil
}
