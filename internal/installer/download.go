package installer

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"opavm/internal/fault"
)

// httpDoer is the slice of http.Client the installer uses; kept as an
// interface so tests can count or fail requests.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// downloadBinary streams url into a uniquely named temp file next to
// dest, marks it executable, and atomically renames it into place. A
// concurrent reader of dest sees either nothing or the complete file.
func (i *Installer) downloadBinary(url, dest string, onProgress ProgressFunc) error {
	destDir := filepath.Dir(dest)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fault.Wrap(fault.KindDownload, "Install failed.",
			"Could not place downloaded binary.", err)
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fault.Wrap(fault.KindDownload, "Download failed.", "Could not fetch: "+url, err)
	}
	resp, err := i.downloadClient.Do(req)
	if err != nil {
		return fault.Wrap(fault.KindDownload, "Download failed.", "Could not fetch: "+url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fault.New(fault.KindDownload, "Download failed.", "Could not fetch: "+url)
	}

	total := resp.ContentLength // -1 when unknown
	var downloaded int64
	if onProgress != nil {
		onProgress(total, downloaded)
	}

	tmpPath := filepath.Join(destDir, "opavm."+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o755)
	if err != nil {
		return fault.Wrap(fault.KindDownload, "Install failed.",
			"Could not place downloaded binary.", err)
	}
	cleanup := true
	defer func() {
		if cleanup {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	buf := make([]byte, 64*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := tmp.Write(buf[:n]); writeErr != nil {
				return fault.Wrap(fault.KindDownload, "Install failed.",
					"Could not place downloaded binary.", writeErr)
			}
			downloaded += int64(n)
			if onProgress != nil {
				onProgress(total, downloaded)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fault.Wrap(fault.KindDownload, "Download failed.", "Could not fetch: "+url, readErr)
		}
	}

	if err := tmp.Sync(); err != nil {
		return fault.Wrap(fault.KindDownload, "Install failed.",
			"Could not place downloaded binary.", err)
	}
	if err := tmp.Close(); err != nil {
		return fault.Wrap(fault.KindDownload, "Install failed.",
			"Could not place downloaded binary.", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fault.Wrap(fault.KindDownload, "Install failed.",
			"Could not place downloaded binary.", err)
	}
	cleanup = false
	return nil
}

// fetchText retrieves a small text asset (checksum or signature file).
func (i *Installer) fetchText(url, failMessage string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fault.Wrap(fault.KindDownload, failMessage, "Could not fetch: "+url, err)
	}
	resp, err := i.textClient.Do(req)
	if err != nil {
		return "", fault.Wrap(fault.KindDownload, failMessage, "Could not fetch: "+url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fault.New(fault.KindDownload, failMessage, "Could not fetch: "+url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fault.Wrap(fault.KindDownload, failMessage, "Could not fetch: "+url, err)
	}
	return string(data), nil
}

// parseChecksumText extracts the first 64-hex-character token found on
// any non-blank line, lowercased.
func parseChecksumText(text string) (string, error) {
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		token := fields[0]
		if len(token) == 64 && isHex(token) {
			return strings.ToLower(token), nil
		}
	}
	return "", fault.New(fault.KindDownload, "Invalid checksum file.", "No SHA256 value found.")
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
