package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const (
	jsonPath = "/home/user/.config/msh/config.json"
	yamlPath = "/home/user/.config/msh/config.yaml"
)

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, ".history", cfg.Shell.HistoryFile)
	assert.Equal(t, ".trash", cfg.Shell.TrashDir)
	assert.Equal(t, 10, cfg.Shell.DefaultHistoryCount)
	assert.Equal(t, 10000, cfg.Search.MaxLineLength)
}

func TestLoad_PartialJSONOverride_MergesWithDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			jsonPath: []byte(`{"shell": {"default_history_count": 25}}`),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Shell.DefaultHistoryCount) // Overridden
	assert.Equal(t, ".history", cfg.Shell.HistoryFile) // Default
	assert.Equal(t, "info", cfg.Log.Level)             // Default
}

func TestLoad_YAMLOverride(t *testing.T) {
	configYAML := `
shell:
  trash_dir: /tmp/msh-trash
search:
  respect_gitignore: true
log:
  level: debug
`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			yamlPath: []byte(configYAML),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/msh-trash", cfg.Shell.TrashDir)
	assert.True(t, cfg.Search.RespectGitignore)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "shell.log", cfg.Shell.LogFile)
}

func TestLoad_YAMLPreferredOverJSON(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			yamlPath: []byte("shell:\n  default_history_count: 3\n"),
			jsonPath: []byte(`{"shell": {"default_history_count": 7}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Shell.DefaultHistoryCount)
}

func TestLoad_EmptyConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			jsonPath: []byte(`{}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			jsonPath: []byte(`{invalid json`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDirErr: errors.New("homeless"),
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Shell.DefaultHistoryCount)
}

func TestLoad_WrongJSONType_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			jsonPath: []byte(`["not", "an", "object"]`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// --- EDGE CASE TESTS ---

func TestLoad_ZeroValueExplicit_OverridesAndFailsValidation(t *testing.T) {
	// Explicit zero values do override defaults, so validation catches them
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			jsonPath: []byte(`{"shell": {"default_history_count": 0}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_history_count")
}

func TestLoad_UnknownFields_Ignored(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			jsonPath: []byte(`{"unknown": {"x": 1}, "shell": {"log_file": "msh.log"}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, "msh.log", cfg.Shell.LogFile)
}

func TestLoadFile_MissingFile_IsNotExist(t *testing.T) {
	fs := &MockFileSystem{Files: map[string][]byte{}}

	_, err := NewLoaderWithFS(fs).LoadFile("/etc/msh.yaml")

	assert.True(t, os.IsNotExist(err))
}

func TestDefaultConfig_AllFieldsInitialized(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.Shell.HistoryFile)
	assert.NotEmpty(t, cfg.Shell.TrashDir)
	assert.NotEmpty(t, cfg.Shell.LogFile)
	assert.Empty(t, cfg.Shell.StartDir)
	assert.Greater(t, cfg.Search.MaxScanTokenSize, 0)
	assert.Greater(t, cfg.Search.BinarySampleSize, 0)
	assert.Greater(t, cfg.Archive.MaxFiles, 0)
	assert.Greater(t, cfg.Archive.MaxFileSize, int64(0))
}
