package config

import (
	"github.com/mdimage/mdimage/internal/constants"
	"github.com/mdimage/mdimage/internal/memdump"
)

// DefaultConfig returns the built-in configuration, the first layer of every load.
func DefaultConfig() *Config {
	markers := make([]string, len(memdump.DefaultMarkers))
	copy(markers, memdump.DefaultMarkers)

	return &Config{
		BytesPerLine: constants.DefaultBytesPerLine,
		Output:       constants.DefaultOutputFile,
		Markers:      markers,
		MaxLogSize:   constants.DefaultMaxLogSize,
		Extract: ExtractConfig{
			Enabled: false,
			Binary:  constants.DefaultExtractBinary,
		},
		Log: LogConfig{
			Level:  constants.DefaultLogLevel,
			Pretty: true,
		},
	}
}
