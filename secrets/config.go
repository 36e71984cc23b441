package secrets

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Ethernal-Tech/cardano-guardian/common"
)

// SecretsManagerConfig describes where the secrets manager keeps its secrets
type SecretsManagerConfig struct {
	Type  SecretsManagerType     `json:"type" yaml:"type"`
	Path  string                 `json:"path" yaml:"path"`
	Name  string                 `json:"name" yaml:"name"`
	Extra map[string]interface{} `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// WriteConfig writes the configuration to the specified path
func (c *SecretsManagerConfig) WriteConfig(path string) error {
	jsonBytes, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return err
	}

	return common.SaveFileSafe(path, jsonBytes, 0660)
}

// ReadConfig reads the SecretsManagerConfig from the specified path
func ReadConfig(path string) (*SecretsManagerConfig, error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &SecretsManagerConfig{}

	if err := json.Unmarshal(configFile, config); err != nil {
		return nil, fmt.Errorf("invalid secrets manager config %s: %w", path, err)
	}

	return config, nil
}
