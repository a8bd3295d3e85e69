// Package platform maps the running system to the normalized (os, arch)
// pair used in release asset names, and builds the ordered asset-name
// candidates for a tool binary.
package platform

import (
	"runtime"
	"strings"

	"opavm/internal/fault"
)

// Info is the normalized platform pair. Derived once per operation from
// the live system; immutable afterward.
type Info struct {
	OS   string // "darwin", "linux", "windows"
	Arch string // "amd64", "arm64"
}

// Detect returns the normalized platform for the running process.
func Detect() (Info, error) {
	return Normalize(runtime.GOOS, runtime.GOARCH)
}

// Normalize maps raw OS and architecture names onto the supported set.
// Accepts both Go runtime names and uname-style names (x86_64, aarch64).
func Normalize(osName, arch string) (Info, error) {
	osName = strings.ToLower(strings.TrimSpace(osName))
	arch = strings.ToLower(strings.TrimSpace(arch))

	switch osName {
	case "darwin", "linux", "windows":
	default:
		return Info{}, fault.New(fault.KindUnsupportedPlatform,
			"Unsupported OS: "+osName+".", "opavm supports macOS, Linux, and Windows.")
	}

	var normalizedArch string
	switch arch {
	case "amd64", "x86_64":
		normalizedArch = "amd64"
	case "arm64", "aarch64":
		normalizedArch = "arm64"
	default:
		return Info{}, fault.New(fault.KindUnsupportedPlatform,
			"Unsupported architecture: "+arch+".", "Use amd64 or arm64 hardware.")
	}

	if osName == "windows" && normalizedArch != "amd64" {
		return Info{}, fault.New(fault.KindUnsupportedPlatform,
			"Unsupported architecture: "+arch+".", "Windows support currently requires amd64.")
	}

	return Info{OS: osName, Arch: normalizedArch}, nil
}

// AssetName builds the primary release asset name for a binary on the
// given platform: {base}_{os}_{arch}, with .exe appended on Windows.
func AssetName(info Info, binaryBase string) string {
	name := binaryBase + "_" + info.OS + "_" + info.Arch
	if info.OS == "windows" {
		name += ".exe"
	}
	return name
}

// AssetNameCandidates returns asset names in preference order. The first
// candidate that matches a release asset wins.
//
// Older arm64 OPA releases shipped only a statically linked asset on
// macOS and Linux, so opa gets a "_static" fallback there.
func AssetNameCandidates(info Info, binaryBase string) []string {
	candidates := []string{AssetName(info, binaryBase)}
	if binaryBase == "opa" && info.Arch == "arm64" && (info.OS == "darwin" || info.OS == "linux") {
		candidates = append(candidates, "opa_"+info.OS+"_"+info.Arch+"_static")
	}
	return candidates
}

// BinaryFilename returns the on-disk filename for an installed binary.
func BinaryFilename(osName, binaryBase string) string {
	if osName == "windows" {
		return binaryBase + ".exe"
	}
	return binaryBase
}
