package config

import (
	"fmt"
	"strings"

	"github.com/mdimage/mdimage/internal/logging"
	"github.com/mdimage/mdimage/internal/memdump"
)

// ValidationError collects every invalid field of a Config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks that cfg can drive a reconstruction.
func (c *Config) Validate() error {
	var problems []string

	if c.BytesPerLine <= 0 {
		problems = append(problems, fmt.Sprintf("bytes_per_line must be positive, got %d", c.BytesPerLine))
	} else if c.BytesPerLine > memdump.MaxBytesPerLine {
		problems = append(problems, fmt.Sprintf("bytes_per_line must be at most %d, got %d", memdump.MaxBytesPerLine, c.BytesPerLine))
	}
	if strings.TrimSpace(c.Output) == "" {
		problems = append(problems, "output must not be empty")
	}
	if c.MaxLogSize <= 0 {
		problems = append(problems, fmt.Sprintf("max_log_size must be positive, got %d", c.MaxLogSize))
	}
	if len(c.Markers) == 0 {
		problems = append(problems, "at least one marker is required")
	}
	for i, m := range c.Markers {
		if m == "" {
			problems = append(problems, fmt.Sprintf("markers[%d] is empty", i))
		}
	}
	if c.Extract.Enabled && c.Extract.Binary == "" {
		problems = append(problems, "extract.binary is required when extraction is enabled")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
