package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Shell   ShellConfig   `json:"shell" yaml:"shell"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

type ShellConfig struct {
	// Persistence (relative paths are resolved against the start directory)
	HistoryFile string `json:"history_file" yaml:"history_file"` // Default: ".history"
	TrashDir    string `json:"trash_dir" yaml:"trash_dir"`       // Default: ".trash"
	LogFile     string `json:"log_file" yaml:"log_file"`         // Default: "shell.log"

	DefaultHistoryCount int `json:"default_history_count" yaml:"default_history_count"` // Default: 10

	// Empty means the user's home directory
	StartDir string `json:"start_dir" yaml:"start_dir"`
}

type SearchConfig struct {
	MaxLineLength    int  `json:"max_line_length" yaml:"max_line_length"`         // Default: 10000
	MaxScanTokenSize int  `json:"max_scan_token_size" yaml:"max_scan_token_size"` // Default: 10 * 1024 * 1024 (10MB)
	BinarySampleSize int  `json:"binary_sample_size" yaml:"binary_sample_size"`   // Default: 8192
	RespectGitignore bool `json:"respect_gitignore" yaml:"respect_gitignore"`     // Default: false
}

type ArchiveConfig struct {
	// Extraction limits, 0 = unlimited
	MaxFiles    int   `json:"max_files" yaml:"max_files"`         // Default: 100000
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"` // Default: 1GB
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"` // Default: "info"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			HistoryFile:         ".history",
			TrashDir:            ".trash",
			LogFile:             "shell.log",
			DefaultHistoryCount: 10,
		},
		Search: SearchConfig{
			MaxLineLength:    10000,
			MaxScanTokenSize: 10 * 1024 * 1024,
			BinarySampleSize: 8192,
		},
		Archive: ArchiveConfig{
			MaxFiles:    100000,
			MaxFileSize: 1024 * 1024 * 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
