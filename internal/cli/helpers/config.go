package helpers

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mdimage/mdimage/internal/config"
	"github.com/mdimage/mdimage/internal/logging"
)

// FlagConfig is the persistent flag naming an explicit config file.
const FlagConfig = "config"

// LoadConfig resolves the layered configuration for cmd: defaults, the config
// file, MDIMAGE_* environment variables, then the flags set on cmd.
func LoadConfig(cmd *cobra.Command) (*config.Config, *config.Source, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	return config.NewLayeredLoader(config.NewLoader()).Load(path, cmd.Flags())
}

// NewLogger builds the command logger. Logs go to the command's stderr.
func NewLogger(cmd *cobra.Command, cfg *config.Config, component string) zerolog.Logger {
	return logging.NewWithComponent(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: cmd.ErrOrStderr(),
	}, component)
}
