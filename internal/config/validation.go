package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Shell validation
	if c.Shell.HistoryFile == "" {
		errs = append(errs, "shell.history_file must not be empty")
	}
	if c.Shell.TrashDir == "" {
		errs = append(errs, "shell.trash_dir must not be empty")
	}
	if c.Shell.LogFile == "" {
		errs = append(errs, "shell.log_file must not be empty")
	}
	if c.Shell.DefaultHistoryCount < 1 {
		errs = append(errs, "shell.default_history_count must be >= 1")
	}

	// Search validation
	if c.Search.MaxLineLength < 1 {
		errs = append(errs, "search.max_line_length must be >= 1")
	}
	if c.Search.MaxScanTokenSize < 1 {
		errs = append(errs, "search.max_scan_token_size must be >= 1")
	}
	if c.Search.BinarySampleSize < 1 {
		errs = append(errs, "search.binary_sample_size must be >= 1")
	}

	// Archive validation - zero means unlimited
	if c.Archive.MaxFiles < 0 {
		errs = append(errs, "archive.max_files must be >= 0")
	}
	if c.Archive.MaxFileSize < 0 {
		errs = append(errs, "archive.max_file_size must be >= 0")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
