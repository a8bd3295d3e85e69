// Package state owns the on-disk layout and the persisted global-default
// versions. The state file is mutated only through a load-modify-save
// cycle; saves are atomic (temp file, fsync, rename) so concurrent
// readers never observe a torn file.
package state

import (
	"encoding/json"
	"os"
	"strings"

	"opavm/internal/fault"
)

// State is the persisted document. GlobalDefault is the legacy
// single-value key kept for opa-only backward compatibility;
// GlobalDefaults is the per-tool mapping that supersedes it.
type State struct {
	GlobalDefault  string
	GlobalDefaults map[string]string
}

// Load reads the state file. A missing file yields an empty state.
// Structurally invalid fields inside a parseable document are dropped
// rather than propagated; only wholesale unreadable JSON is an error.
func Load() (*State, error) {
	st := &State{GlobalDefaults: map[string]string{}}

	data, err := os.ReadFile(StatePath())
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, fault.Wrap(fault.KindCorruptState,
			"Corrupt state file.", "Delete "+StatePath()+" and retry.", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fault.Wrap(fault.KindCorruptState,
			"Corrupt state file.", "Delete "+StatePath()+" and retry.", err)
	}

	if v, ok := raw["global_default"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			st.GlobalDefault = s
		}
	}
	if v, ok := raw["global_defaults"]; ok {
		var entries map[string]json.RawMessage
		if json.Unmarshal(v, &entries) == nil {
			for tool, rv := range entries {
				var s string
				if json.Unmarshal(rv, &s) == nil {
					st.GlobalDefaults[tool] = s
				}
			}
		}
	}
	return st, nil
}

// Save writes the state atomically: marshal to a temp file in the same
// directory, fsync, then rename over the target. The temp file is
// removed best-effort if any step fails.
func Save(st *State) error {
	if err := EnsureLayout(); err != nil {
		return err
	}

	doc := map[string]any{
		"global_default":  nil,
		"global_defaults": st.GlobalDefaults,
	}
	if st.GlobalDefault != "" {
		doc["global_default"] = st.GlobalDefault
	}
	if st.GlobalDefaults == nil {
		doc["global_defaults"] = map[string]string{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	target := StatePath()
	tmp, err := os.CreateTemp(BaseDir(), "state.*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		cleanup = false
		return err
	}
	cleanup = false
	return nil
}

// GlobalDefaultFor returns the configured default version for a tool,
// or "" when none is set. For opa the legacy key is consulted when the
// mapping has no entry.
func (s *State) GlobalDefaultFor(tool string) string {
	if v := strings.TrimSpace(s.GlobalDefaults[tool]); v != "" {
		return v
	}
	if tool == "opa" {
		return strings.TrimSpace(s.GlobalDefault)
	}
	return ""
}

// GlobalDefault returns the persisted default version for a tool.
func GlobalDefault(tool string) (string, error) {
	st, err := Load()
	if err != nil {
		return "", err
	}
	return st.GlobalDefaultFor(tool), nil
}

// SetGlobalDefault records a tool's default version. For opa the legacy
// single-value key is mirrored so older releases keep working.
func SetGlobalDefault(tool, version string) error {
	st, err := Load()
	if err != nil {
		return err
	}
	if st.GlobalDefaults == nil {
		st.GlobalDefaults = map[string]string{}
	}
	st.GlobalDefaults[tool] = version
	if tool == "opa" {
		st.GlobalDefault = version
	}
	return Save(st)
}
