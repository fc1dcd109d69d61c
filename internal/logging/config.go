package logging

import (
	"fmt"
	"io"
)

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level      string // debug, info, warn, error
	File       string // Path to log file, empty disables the file sink
	MaxSize    int    // Max size in MB
	MaxBackups int    // Number of backups to keep
	MaxAge     int    // Max age in days

	// Output replaces stdout as the console sink. Tests pass io.Discard.
	Output io.Writer
}

// Validate checks if the configuration is valid
func (l *LogConfig) Validate() error {
	if _, ok := parseLevel(l.Level); !ok {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	if l.File != "" && l.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}

	if l.MaxBackups < 0 {
		return fmt.Errorf("max_backups must be non-negative")
	}

	if l.MaxAge < 0 {
		return fmt.Errorf("max_age must be non-negative")
	}

	return nil
}
