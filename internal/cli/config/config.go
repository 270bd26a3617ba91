// Package config implements the 'mdimage config' command family.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdimage/mdimage/internal/cli/helpers"
	"github.com/mdimage/mdimage/internal/config"
	"github.com/mdimage/mdimage/internal/constants"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create mdimage configuration",
		Long: `Inspect and create mdimage configuration.

Configuration Priority (highest first):
  1. Command-line flags
  2. MDIMAGE_* environment variables
  3. Config file (--config, or $MDIMAGE_CONFIG/config.yaml, or ~/.mdimage/config.yaml)
  4. Built-in defaults

Environment Variables:
  MDIMAGE_CONFIG          Override config directory (default: ~/.mdimage)
  MDIMAGE_BYTES_PER_LINE  Bytes in each dump line
  MDIMAGE_OUTPUT          Image output path
  MDIMAGE_MARKERS         Comma separated command echo markers
  MDIMAGE_MAX_LOG_SIZE    Largest accepted log file in bytes
  MDIMAGE_EXTRACT         Run the signature scan after conversion
  MDIMAGE_EXTRACT_BINARY  Signature scanner executable
  MDIMAGE_EXTRACT_DIR     Directory for extracted files
  MDIMAGE_LOG_LEVEL       trace, debug, info, warn or error
  MDIMAGE_LOG_PRETTY      Human readable log output`,
	}

	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}

// newViewCmd creates the 'config view' command.
func newViewCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, []helpers.OutputFormat{helpers.FormatYAML, helpers.FormatJSON}); err != nil {
				return err
			}

			cfg, src, err := helpers.LoadConfig(cmd)
			if err != nil {
				return err
			}

			if format == string(helpers.FormatYAML) {
				file := src.File
				if file == "" {
					file = "(none)"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# config file: %s\n", file)
				for _, env := range src.Env {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# env: %s\n", env)
				}
			}

			formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
			if err != nil {
				return err
			}
			return formatter.Format(cfg, cmd.OutOrStdout())
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatYAML, []helpers.OutputFormat{
		helpers.FormatYAML,
		helpers.FormatJSON,
	})

	return cmd
}

// newInitCmd creates the 'config init' command.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				path = loader.ConfigPath()
			}

			if !force && path != "" {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			written, err := loader.Save(config.DefaultConfig(), path)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", written)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Override its location with %s.\n", constants.EnvConfig)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
