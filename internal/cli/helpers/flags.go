package helpers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdimage/mdimage/internal/config"
	"github.com/mdimage/mdimage/internal/constants"
)

// AddFormatFlag adds a standard --format flag to a command.
// Validates that the format is in the supportedFormats list.
func AddFormatFlag(cmd *cobra.Command, formatVar *string, defaultFormat OutputFormat, supportedFormats []OutputFormat) {
	formatNames := make([]string, len(supportedFormats))
	for i, f := range supportedFormats {
		formatNames[i] = string(f)
	}

	description := fmt.Sprintf("Report format (%s)", strings.Join(formatNames, ", "))
	cmd.Flags().StringVar(formatVar, "format", string(defaultFormat), description)

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formatNames, cobra.ShellCompDirectiveNoFileComp
	})
}

// AddBytesPerLineFlag adds the standard --bytes-per-line/-l flag.
func AddBytesPerLineFlag(cmd *cobra.Command) {
	cmd.Flags().IntP(config.FlagBytesPerLine, "l", constants.DefaultBytesPerLine, "Bytes in each dump line")
}

// ValidateFormat checks if the format is in the supported list.
func ValidateFormat(format string, supported []OutputFormat) error {
	for _, s := range supported {
		if format == string(s) {
			return nil
		}
	}

	supportedNames := make([]string, len(supported))
	for i, s := range supported {
		supportedNames[i] = string(s)
	}

	return fmt.Errorf("unsupported format %q, must be one of: %s",
		format, strings.Join(supportedNames, ", "))
}
