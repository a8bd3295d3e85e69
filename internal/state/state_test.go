package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opavm/internal/fault"
)

func setupHome(t *testing.T) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "opavm")
	t.Setenv(EnvHome, base)
	return base
}

func TestLoadMissingFile(t *testing.T) {
	setupHome(t)

	st, err := Load()
	require.NoError(t, err)
	assert.Empty(t, st.GlobalDefault)
	assert.Empty(t, st.GlobalDefaults)
}

func TestLoadCorruptFile(t *testing.T) {
	base := setupHome(t)
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(StatePath(), []byte("{not json"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindCorruptState))
	assert.Contains(t, err.Error(), "Corrupt state file.")
}

func TestLoadDropsMalformedEntries(t *testing.T) {
	base := setupHome(t)
	require.NoError(t, os.MkdirAll(base, 0o755))

	doc := `{
		"global_default": 42,
		"global_defaults": {"opa": "1.13.1", "regal": 7, "extra": null},
		"unknown_key": {"nested": true}
	}`
	require.NoError(t, os.WriteFile(StatePath(), []byte(doc), 0o644))

	st, err := Load()
	require.NoError(t, err)
	assert.Empty(t, st.GlobalDefault, "non-string legacy value must be dropped")
	assert.Equal(t, map[string]string{"opa": "1.13.1"}, st.GlobalDefaults)
}

func TestSaveIsAtomicAndCleansUp(t *testing.T) {
	base := setupHome(t)

	err := Save(&State{GlobalDefault: "1.13.1", GlobalDefaults: map[string]string{"opa": "1.13.1"}})
	require.NoError(t, err)

	data, err := os.ReadFile(StatePath())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc), "state file must always be valid JSON")
	assert.Equal(t, "1.13.1", doc["global_default"])

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"),
			"no temp file may remain after save: %s", entry.Name())
	}
}

func TestSaveSerializesLegacyNull(t *testing.T) {
	setupHome(t)

	require.NoError(t, Save(&State{GlobalDefaults: map[string]string{"regal": "0.38.1"}}))

	data, err := os.ReadFile(StatePath())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Nil(t, doc["global_default"])
}

func TestGlobalDefaultLegacyFallback(t *testing.T) {
	st := &State{GlobalDefault: "0.62.1", GlobalDefaults: map[string]string{}}
	assert.Equal(t, "0.62.1", st.GlobalDefaultFor("opa"))
	assert.Empty(t, st.GlobalDefaultFor("regal"), "legacy key applies to opa only")

	st.GlobalDefaults["opa"] = "1.13.1"
	assert.Equal(t, "1.13.1", st.GlobalDefaultFor("opa"), "mapping wins over legacy key")
}

func TestSetGlobalDefaultMirrorsLegacyKey(t *testing.T) {
	setupHome(t)

	require.NoError(t, SetGlobalDefault("opa", "1.13.1"))
	require.NoError(t, SetGlobalDefault("regal", "0.38.1"))

	st, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "1.13.1", st.GlobalDefault, "opa default mirrors into legacy key")
	assert.Equal(t, "1.13.1", st.GlobalDefaults["opa"])
	assert.Equal(t, "0.38.1", st.GlobalDefaults["regal"])

	version, err := GlobalDefault("regal")
	require.NoError(t, err)
	assert.Equal(t, "0.38.1", version)
}

func TestEnsureLayoutIdempotent(t *testing.T) {
	setupHome(t)

	require.NoError(t, EnsureLayout())
	require.NoError(t, EnsureLayout())

	for _, dir := range []string{VersionsDir(), ShimsDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestToolVersionsDirLayout(t *testing.T) {
	base := setupHome(t)

	assert.Equal(t, filepath.Join(base, "versions"), ToolVersionsDir("opa"))
	assert.Equal(t, filepath.Join(base, "tools", "regal", "versions"), ToolVersionsDir("regal"))
}

func TestLoadFileConfig(t *testing.T) {
	base := setupHome(t)

	cfg, err := LoadFileConfig()
	require.NoError(t, err, "missing config file is not an error")
	assert.Empty(t, cfg.GitHubToken)

	require.NoError(t, os.MkdirAll(base, 0o755))
	content := "github_token: abc123\nrepos:\n  opa: example/opa-fork\n"
	require.NoError(t, os.WriteFile(ConfigPath(), []byte(content), 0o644))

	cfg, err = LoadFileConfig()
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.GitHubToken)
	assert.Equal(t, "example/opa-fork", cfg.Repos["opa"])

	require.NoError(t, os.WriteFile(ConfigPath(), []byte(":\tnot yaml"), 0o644))
	_, err = LoadFileConfig()
	require.Error(t, err)
}
