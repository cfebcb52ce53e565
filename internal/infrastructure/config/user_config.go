package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.spaceeconomy/config.json
type UserConfig struct {
	// Planet used by network and ledger commands when --planet is omitted
	DefaultPlanet string `json:"default_planet,omitempty"`

	// Scenario file last seeded, shown by "config show"
	LastScenario string `json:"last_scenario,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a new user config handler
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewUserConfigHandlerIn(filepath.Join(homeDir, ".spaceeconomy"))
}

// NewUserConfigHandlerIn creates a handler storing config.json in configDir
func NewUserConfigHandlerIn(configDir string) (*UserConfigHandler, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(configDir, "config.json"),
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultPlanet sets the planet used when --planet is omitted
func (h *UserConfigHandler) SetDefaultPlanet(planet string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultPlanet = planet
	return h.Save(config)
}

// SetLastScenario records the scenario file last seeded
func (h *UserConfigHandler) SetLastScenario(path string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.LastScenario = path
	return h.Save(config)
}

// ClearDefaults removes every stored preference
func (h *UserConfigHandler) ClearDefaults() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
