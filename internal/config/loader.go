package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "msh"
	// ConfigFile is the JSON config file name
	ConfigFile = "config.json"
	// ConfigFileYAML is the YAML config file name, preferred when both exist
	ConfigFileYAML = "config.yaml"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads configuration from ~/.config/msh/config.yaml or ~/.config/msh/config.json
// and merges it with defaults. Dotfile values override defaults.
// Returns default config if no dotfile exists.
// Returns error only for parse errors, permission issues, or validation failures.
func (l *Loader) Load() (*Config, error) {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil // Use defaults if can't get home dir
	}

	dir := filepath.Join(homeDir, ".config", ConfigDir)
	for _, name := range []string{ConfigFileYAML, ConfigFile} {
		cfg, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		return cfg, nil
	}

	return DefaultConfig(), nil
}

// LoadFile reads a single config file over the defaults. The format is picked by
// extension: .yaml/.yml use YAML, everything else JSON.
// A missing file is returned as an os.IsNotExist error so callers can decide.
func (l *Loader) LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Decode directly into the default config struct so present keys overwrite
	// defaults (even if zero) and missing keys leave the defaults untouched.
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
