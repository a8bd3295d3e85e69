// Package catalog is the static registry of tools opavm can manage.
//
// Get is the single validation gate for tool identity: every other
// component takes a ToolSpec and never re-checks tool names.
package catalog

import (
	"sort"
	"strings"

	"opavm/internal/fault"
)

// ToolSpec describes one supported external tool. Specs are immutable;
// callers receive copies from Get.
type ToolSpec struct {
	Name        string
	DisplayName string
	BinaryBase  string
	DefaultRepo string
	PinFilename string
	RepoEnvVar  string
}

var supported = map[string]ToolSpec{
	"opa": {
		Name:        "opa",
		DisplayName: "OPA",
		BinaryBase:  "opa",
		DefaultRepo: "open-policy-agent/opa",
		PinFilename: ".opa-version",
		RepoEnvVar:  "OPAVM_OPA_REPO",
	},
	"regal": {
		Name:        "regal",
		DisplayName: "Regal",
		BinaryBase:  "regal",
		DefaultRepo: "StyraInc/regal",
		PinFilename: ".regal-version",
		RepoEnvVar:  "OPAVM_REGAL_REPO",
	},
}

// Get looks up a tool by name, case-insensitively and with surrounding
// whitespace ignored.
func Get(name string) (ToolSpec, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	spec, ok := supported[normalized]
	if !ok {
		return ToolSpec{}, fault.New(fault.KindUnknownTool,
			"Unknown tool.", "Supported tools: "+strings.Join(Names(), ", ")+".")
	}
	return spec, nil
}

// Names returns the supported tool names, sorted.
func Names() []string {
	names := make([]string, 0, len(supported))
	for name := range supported {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether name identifies a known tool.
func IsSupported(name string) bool {
	_, ok := supported[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
