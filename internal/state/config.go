package state

import (
	"os"

	"gopkg.in/yaml.v3"

	"opavm/internal/fault"
)

// FileConfig is the optional ~/.opavm/config.yaml. Environment variables
// always take precedence over values set here.
type FileConfig struct {
	GitHubToken string            `yaml:"github_token"`
	Repos       map[string]string `yaml:"repos"`
}

// LoadFileConfig reads the optional config file. A missing file yields a
// zero config; a present-but-malformed file is an error so typos do not
// silently disable overrides.
func LoadFileConfig() (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fault.Wrap(fault.KindCorruptState,
			"Unreadable config file.", "Check "+ConfigPath()+".", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fault.Wrap(fault.KindCorruptState,
			"Invalid config file.", "Fix or delete "+ConfigPath()+".", err)
	}
	return cfg, nil
}
