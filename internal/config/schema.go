package config

// Config is the effective configuration of an mdimage run.
type Config struct {
	// BytesPerLine is the number of bytes on each dump line and the address
	// stride between lines.
	BytesPerLine int `yaml:"bytes_per_line" json:"bytes_per_line" env:"MDIMAGE_BYTES_PER_LINE"`

	// Output is the path the reconstructed image is written to.
	Output string `yaml:"output" json:"output" env:"MDIMAGE_OUTPUT"`

	// Markers are the command echo substrings that start a dump.
	Markers []string `yaml:"markers" json:"markers" env:"MDIMAGE_MARKERS"`

	// MaxLogSize is the largest log file convert accepts, in bytes.
	MaxLogSize int64 `yaml:"max_log_size" json:"max_log_size" env:"MDIMAGE_MAX_LOG_SIZE"`

	Extract ExtractConfig `yaml:"extract" json:"extract"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// ExtractConfig controls the signature scan run on the finished image.
type ExtractConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" env:"MDIMAGE_EXTRACT"`
	Binary  string `yaml:"binary" json:"binary" env:"MDIMAGE_EXTRACT_BINARY"`
	// Dir is the directory extracted files are written to. Empty means next
	// to the image.
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty" env:"MDIMAGE_EXTRACT_DIR"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" env:"MDIMAGE_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" json:"pretty" env:"MDIMAGE_LOG_PRETTY"`
}
