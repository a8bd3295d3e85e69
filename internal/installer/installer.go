// Package installer places tool versions into the on-disk version store.
//
// Install orchestrates release lookup, download, checksum and optional
// signature verification, and an executable sanity check. Progress is
// reported through injected callbacks so any presentation layer can
// observe the lifecycle without this package knowing about terminals.
package installer

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"opavm/internal/catalog"
	"opavm/internal/fault"
	"opavm/internal/github"
	"opavm/internal/platform"
	"opavm/internal/state"
)

// Status names one lifecycle phase of an install. External tooling
// depends on these exact values and their ordering.
type Status string

const (
	StatusResolving          Status = "resolving"
	StatusAlreadyInstalled   Status = "already_installed"
	StatusDownloading        Status = "downloading"
	StatusVerifyingChecksum  Status = "verifying_checksum"
	StatusVerifyingSignature Status = "verifying_signature"
	StatusVerifying          Status = "verifying"
	StatusDone               Status = "done"
)

// StatusFunc observes lifecycle phases. May be nil.
type StatusFunc func(Status)

// ProgressFunc observes download progress: total is the expected byte
// count, or -1 when the server did not say; downloaded is bytes so far.
// Called on every chunk. May be nil.
type ProgressFunc func(total, downloaded int64)

const (
	downloadTimeout = 120 * time.Second
	textTimeout     = 30 * time.Second
)

// releaseFetcher is the slice of the release client Install needs.
type releaseFetcher interface {
	FetchRelease(version, repo string) (*github.Release, error)
}

// Installer owns the per-version binary directories under the version
// root; no other component writes there.
type Installer struct {
	client         releaseFetcher
	detect         func() (platform.Info, error)
	downloadClient httpDoer
	textClient     httpDoer
}

// New builds an installer with the fixed per-request timeouts.
func New() *Installer {
	return &Installer{
		client:         github.NewClient(),
		detect:         platform.Detect,
		downloadClient: newHTTPClient(downloadTimeout),
		textClient:     newHTTPClient(textTimeout),
	}
}

// assetCandidates returns the ordered asset names to try for a tool on
// a platform. Tools with upstream naming conventions that differ from
// the {base}_{os}_{arch} scheme get their own strategy here; everything
// else uses the generic candidates.
func assetCandidates(spec catalog.ToolSpec, info platform.Info) []string {
	switch spec.Name {
	case "regal":
		osToken := map[string]string{"darwin": "Darwin", "linux": "Linux", "windows": "Windows"}[info.OS]
		archToken := map[string]string{"amd64": "x86_64", "arm64": "arm64"}[info.Arch]
		name := spec.BinaryBase + "_" + osToken + "_" + archToken
		if info.OS == "windows" {
			name += ".exe"
		}
		return []string{name}
	default:
		return platform.AssetNameCandidates(info, spec.BinaryBase)
	}
}

// InstalledVersions lists every version directory under the tool's
// version root that contains the expected binary, sorted.
func (i *Installer) InstalledVersions(spec catalog.ToolSpec) ([]string, error) {
	root := state.ToolVersionsDir(spec.Name)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if fileExists(filepath.Join(dir, spec.BinaryBase)) ||
			fileExists(filepath.Join(dir, spec.BinaryBase+".exe")) {
			versions = append(versions, entry.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

func (i *Installer) platformBinaryPath(version string, spec catalog.ToolSpec, info platform.Info) string {
	return filepath.Join(state.ToolVersionsDir(spec.Name), version,
		platform.BinaryFilename(info.OS, spec.BinaryBase))
}

// BinaryPath returns the expected binary path for a version. When the
// platform-preferred filename is absent but the alternate-extension
// variant exists (a version directory reused across platforms), the
// alternate is returned. The path is returned even when nothing exists
// there; existence is the caller's concern.
func (i *Installer) BinaryPath(version string, spec catalog.ToolSpec) (string, error) {
	info, err := i.detect()
	if err != nil {
		return "", err
	}

	preferred := i.platformBinaryPath(version, spec, info)
	if fileExists(preferred) {
		return preferred, nil
	}

	alternateName := spec.BinaryBase
	if filepath.Base(preferred) == spec.BinaryBase {
		alternateName = spec.BinaryBase + ".exe"
	}
	alternate := filepath.Join(filepath.Dir(preferred), alternateName)
	if fileExists(alternate) {
		return alternate, nil
	}
	return preferred, nil
}

// IsInstalled reports whether a version's binary exists on disk.
func (i *Installer) IsInstalled(version string, spec catalog.ToolSpec) bool {
	path, err := i.BinaryPath(version, spec)
	if err != nil {
		return false
	}
	return fileExists(path)
}

// VerifyBinary runs "<path> version" as the sole functional check that
// the artifact actually executes.
func VerifyBinary(path string) error {
	cmd := exec.Command(path, "version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return fault.Wrap(fault.KindVerification,
			"Installed binary failed verification.", "Run install again.", err)
	}
	return nil
}

// InstallCommand returns the exact command a user runs to install a
// version of a tool; used in "not installed" remediation hints.
func InstallCommand(spec catalog.ToolSpec, version string) string {
	if spec.Name == "opa" {
		return "opavm install " + version
	}
	return "opavm install " + spec.Name + " " + version
}

// Install resolves, downloads, verifies, and places a version of a
// tool. Returns the resolved version (meaningful when version was
// "latest"). Installing an already-installed version is a no-op beyond
// the release lookup.
func (i *Installer) Install(version string, spec catalog.ToolSpec, onStatus StatusFunc, onProgress ProgressFunc) (string, error) {
	if err := state.EnsureLayout(); err != nil {
		return "", err
	}
	emit(onStatus, StatusResolving)

	info, err := i.detect()
	if err != nil {
		return "", err
	}
	repo, err := github.RepoFor(spec)
	if err != nil {
		return "", err
	}
	release, err := i.client.FetchRelease(version, repo)
	if err != nil {
		return "", err
	}
	resolved := release.Version

	if i.IsInstalled(resolved, spec) {
		emit(onStatus, StatusAlreadyInstalled)
		return resolved, nil
	}

	candidates := assetCandidates(spec, info)
	assetURL, err := github.PickAssetURL(release, candidates)
	if err != nil {
		return "", err
	}
	selected := selectedCandidate(release, candidates)

	target := i.platformBinaryPath(resolved, spec, info)
	emit(onStatus, StatusDownloading)
	if err := i.downloadBinary(assetURL, target, onProgress); err != nil {
		return "", err
	}

	if sumURL := github.ChecksumAssetURL(release, selected); sumURL != "" {
		emit(onStatus, StatusVerifyingChecksum)
		if err := i.verifyChecksum(sumURL, target, selected); err != nil {
			return "", err
		}
	}

	if sigURL := github.SignatureAssetURL(release, selected); sigURL != "" {
		keyring := filepath.Join(state.KeyringsDir(), spec.Name+".asc")
		if fileExists(keyring) {
			emit(onStatus, StatusVerifyingSignature)
			if err := i.verifySignature(sigURL, target, keyring, selected); err != nil {
				return "", err
			}
		}
	}

	emit(onStatus, StatusVerifying)
	if err := VerifyBinary(target); err != nil {
		return "", err
	}

	emit(onStatus, StatusDone)
	return resolved, nil
}

// Uninstall removes a version's entire directory.
func (i *Installer) Uninstall(version string, spec catalog.ToolSpec) error {
	if !i.IsInstalled(version, spec) {
		return fault.New(fault.KindNotInstalled,
			"Version not installed.", "Run: "+InstallCommand(spec, version))
	}
	return os.RemoveAll(filepath.Join(state.ToolVersionsDir(spec.Name), version))
}

func (i *Installer) verifyChecksum(sumURL, target, assetName string) error {
	text, err := i.fetchText(sumURL, "Checksum fetch failed.")
	if err != nil {
		return err
	}
	expected, err := parseChecksumText(text)
	if err != nil {
		return err
	}
	actual, err := sha256File(target)
	if err != nil {
		return fault.Wrap(fault.KindChecksum, "Checksum verification failed.",
			"Could not hash downloaded file.", err)
	}
	if expected != actual {
		return fault.New(fault.KindChecksum, "Checksum verification failed.",
			"Downloaded file hash mismatch for "+assetName+".")
	}
	return nil
}

func (i *Installer) verifySignature(sigURL, target, keyringPath, assetName string) error {
	sig, err := i.fetchText(sigURL, "Signature fetch failed.")
	if err != nil {
		return err
	}
	if err := checkDetachedSignature(target, []byte(sig), keyringPath); err != nil {
		return fault.Wrap(fault.KindSignature, "Signature verification failed.",
			"Downloaded file signature mismatch for "+assetName+".", err)
	}
	return nil
}

// selectedCandidate returns the first candidate present among the
// release's assets, falling back to the first candidate. Used as the
// key for checksum and signature companion lookups.
func selectedCandidate(release *github.Release, candidates []string) string {
	for _, candidate := range candidates {
		for _, asset := range release.Assets {
			if asset.Name == candidate {
				return candidate
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

func emit(onStatus StatusFunc, status Status) {
	if onStatus != nil {
		onStatus(status)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
