package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadYAML loads a YAML file into the provided struct. Fields missing from
// the file keep the values already present in v.
func LoadYAML(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}
	return nil
}

// LoadTOML loads a TOML file into the provided struct.
func LoadTOML(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return fmt.Errorf("failed to parse TOML from %s: %w", path, err)
	}
	return nil
}

// LoadFile loads a YAML or TOML file depending on its extension.
func LoadFile(path string, v interface{}) error {
	if isTOML(path) {
		return LoadTOML(path, v)
	}
	return LoadYAML(path, v)
}

// SaveYAML saves a struct to a YAML file.
func SaveYAML(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return writeFile(path, data)
}

// SaveFile saves a struct as YAML or TOML depending on the extension.
func SaveFile(path string, v interface{}) error {
	if !isTOML(path) {
		return SaveYAML(path, v)
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(v); err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return writeFile(path, []byte(sb.String()))
}

// writeFile writes through a temporary file so watchers never see a
// partially written file.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFileOrDefault loads a YAML or TOML file on top of the defaults, or
// returns the defaults if the file doesn't exist.
func LoadFileOrDefault[T any](path string, defaultFn func() *T) (*T, error) {
	v := defaultFn()
	if !FileExists(path) {
		return v, nil
	}
	if err := LoadFile(path, v); err != nil {
		return nil, err
	}
	return v, nil
}
