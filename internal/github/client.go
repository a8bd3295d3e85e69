// Package github queries the GitHub releases API for tool release
// metadata. Transport failures are translated into the user-actionable
// categories defined in errors.go; nothing here retries.
package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"opavm/internal/catalog"
	"opavm/internal/fault"
	"opavm/internal/state"
)

const (
	defaultAPIRoot = "https://api.github.com/repos"

	// EnvToken supplies an optional bearer token for the GitHub API.
	EnvToken = "OPAVM_GITHUB_TOKEN"

	metadataTimeout = 30 * time.Second
)

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name string
	URL  string
}

// Release is the structured result of a single-release lookup.
// Version is the tag with a leading "v" stripped.
type Release struct {
	Version string
	Tag     string
	Assets  []Asset
}

// ReleaseSummary is the lighter record used for listing releases.
type ReleaseSummary struct {
	Version     string
	Tag         string
	PublishedAt string
	Prerelease  bool
}

// Client talks to the GitHub releases API.
type Client struct {
	httpClient *http.Client
	apiRoot    string
	token      string
}

// NewClient builds a client with the fixed metadata timeout. The bearer
// token comes from OPAVM_GITHUB_TOKEN, falling back to the optional
// config file.
func NewClient() *Client {
	token := strings.TrimSpace(os.Getenv(EnvToken))
	if token == "" {
		if cfg, err := state.LoadFileConfig(); err == nil {
			token = strings.TrimSpace(cfg.GitHubToken)
		}
	}
	return &Client{
		httpClient: &http.Client{Timeout: metadataTimeout},
		apiRoot:    defaultAPIRoot,
		token:      token,
	}
}

// ValidateRepo checks that repo is exactly owner/repo with both
// segments non-empty, and returns the trimmed value.
func ValidateRepo(repo string) (string, error) {
	normalized := strings.TrimSpace(repo)
	parts := strings.Split(normalized, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fault.New(fault.KindInvalidRepo,
			"Invalid repository value.", "Use format: owner/repo (example: open-policy-agent/opa).")
	}
	return normalized, nil
}

// RepoFor resolves the repository for a tool: the tool's environment
// override wins, then the optional config file, then the default.
// Overrides must validate as owner/repo.
func RepoFor(spec catalog.ToolSpec) (string, error) {
	if v := strings.TrimSpace(os.Getenv(spec.RepoEnvVar)); v != "" {
		return ValidateRepo(v)
	}
	if cfg, err := state.LoadFileConfig(); err == nil {
		if v := strings.TrimSpace(cfg.Repos[spec.Name]); v != "" {
			return ValidateRepo(v)
		}
	}
	return spec.DefaultRepo, nil
}

func normalizeTag(version string) string {
	if version == "latest" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

func versionFromTag(tag string) string {
	return strings.TrimPrefix(tag, "v")
}

func (c *Client) get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fault.Wrap(fault.KindLookup, "Failed to query GitHub releases.", "", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, friendlyTransportError(err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, friendlyStatusError(resp)
	}
	return resp, nil
}

type releasePayload struct {
	TagName     string `json:"tag_name"`
	PublishedAt string `json:"published_at"`
	Prerelease  bool   `json:"prerelease"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// FetchRelease looks up a named release, or the latest when version is
// "latest". A bare version is normalized into a tag by prefixing "v".
func (c *Client) FetchRelease(version, repo string) (*Release, error) {
	base := c.apiRoot + "/" + repo + "/releases"
	url := base + "/latest"
	if version != "latest" {
		url = base + "/tags/" + normalizeTag(version)
	}

	resp, err := c.get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload releasePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fault.Wrap(fault.KindLookup, "Invalid GitHub response.", "Could not parse release data.", err)
	}
	if payload.TagName == "" {
		return nil, fault.New(fault.KindLookup, "Invalid GitHub response.", "Release tag missing.")
	}

	release := &Release{
		Version: versionFromTag(payload.TagName),
		Tag:     payload.TagName,
	}
	for _, asset := range payload.Assets {
		if asset.Name == "" || asset.BrowserDownloadURL == "" {
			continue
		}
		release.Assets = append(release.Assets, Asset{Name: asset.Name, URL: asset.BrowserDownloadURL})
	}
	return release, nil
}

// FetchRecentReleases lists a repository's releases, newest first,
// truncated to limit.
func (c *Client) FetchRecentReleases(limit int, repo string) ([]ReleaseSummary, error) {
	if limit < 1 {
		return nil, fault.New(fault.KindUsage, "Limit must be at least 1.", "Try: opavm releases --limit 10")
	}

	perPage := limit
	if perPage > 100 {
		perPage = 100
	}
	url := fmt.Sprintf("%s/%s/releases?per_page=%d", c.apiRoot, repo, perPage)

	resp, err := c.get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload []releasePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fault.Wrap(fault.KindLookup, "Invalid GitHub response.", "Expected release list.", err)
	}

	releases := make([]ReleaseSummary, 0, len(payload))
	for _, item := range payload {
		if item.TagName == "" {
			continue
		}
		releases = append(releases, ReleaseSummary{
			Version:     versionFromTag(item.TagName),
			Tag:         item.TagName,
			PublishedAt: item.PublishedAt,
			Prerelease:  item.Prerelease,
		})
		if len(releases) >= limit {
			break
		}
	}
	return releases, nil
}

// PickAssetURL returns the download URL of the first expected name that
// matches a release asset, honoring the caller's priority order.
func PickAssetURL(release *Release, expectedNames []string) (string, error) {
	for _, expected := range expectedNames {
		for _, asset := range release.Assets {
			if asset.Name == expected {
				return asset.URL, nil
			}
		}
	}
	return "", fault.New(fault.KindLookup,
		"No matching asset found for "+strings.Join(expectedNames, ", ")+".",
		"Check available release assets.")
}

// ChecksumAssetURL returns the URL of the companion "{assetName}.sha256"
// asset, or "" when the release does not carry one.
func ChecksumAssetURL(release *Release, assetName string) string {
	return namedAssetURL(release, assetName+".sha256")
}

// SignatureAssetURL returns the URL of a detached-signature companion
// asset ("{assetName}.asc" preferred, then ".sig"), or "".
func SignatureAssetURL(release *Release, assetName string) string {
	if url := namedAssetURL(release, assetName+".asc"); url != "" {
		return url
	}
	return namedAssetURL(release, assetName+".sig")
}

func namedAssetURL(release *Release, name string) string {
	for _, asset := range release.Assets {
		if asset.Name == name {
			return asset.URL
		}
	}
	return ""
}
