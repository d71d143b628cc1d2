package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	runnerFile  = "runner.yaml"
	catalogFile = "catalog.yaml"
)

// LoadRunner loads engine tuning.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
// Missing fields keep their default values.
func LoadRunner(customPath string) (RunnerConfig, error) {
	return load(customPath, runnerFile, defaultRunnerYAML, DefaultRunnerConfig)
}

// LoadCatalog loads the content catalog with the same search order as LoadRunner.
// The result is not sanitized; call Catalog.Sanitize before use.
func LoadCatalog(customPath string) (Catalog, error) {
	return load(customPath, catalogFile, defaultCatalogYAML, DefaultCatalog)
}

// load resolves one YAML document through the search path. Documents are
// decoded on top of the hardcoded defaults so partial files are valid.
func load[T any](customPath, filename string, embedded []byte, defaults func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := defaults()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "configs", filename)
}
