// Package dump implements the 'mdimage dump' command, the inverse of convert.
package dump

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mdimage/mdimage/internal/cli/helpers"
	"github.com/mdimage/mdimage/internal/constants"
	"github.com/mdimage/mdimage/internal/memdump"
	"github.com/mdimage/mdimage/internal/safe"
)

// NewDumpCmd creates the dump command.
func NewDumpCmd() *cobra.Command {
	var (
		address string
		fill    string
		header  bool
	)

	cmd := &cobra.Command{
		Use:   "dump <binfile>",
		Short: "Render a binary file as a memory dump log",
		Long: `Render a binary file in the format printed by "md.b", one line per
--bytes-per-line bytes. The output can be fed back to 'mdimage convert'.

The last line is padded with --fill when the file size is not a multiple of
the line width.`,
		Example: `  mdimage dump u-boot.bin --address 0x80800000 > u-boot.log
  mdimage dump u-boot.bin --header > boot.log && mdimage convert boot.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := helpers.LoadConfig(cmd)
			if err != nil {
				return err
			}

			addr, err := strconv.ParseUint(address, 0, 32)
			if err != nil {
				return fmt.Errorf("invalid --address %q: %w", address, err)
			}
			pad, err := strconv.ParseUint(fill, 0, 8)
			if err != nil {
				return fmt.Errorf("invalid --fill %q: %w", fill, err)
			}

			data, err := safe.ReadFile(args[0], &safe.ReadOptions{MaxSize: constants.DefaultMaxImageSize})
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			logger := helpers.NewLogger(cmd, cfg, "dump")
			data = Pad(data, cfg.BytesPerLine, byte(pad))
			logger.Debug().
				Int("bytes", len(data)).
				Uint64("address", addr).
				Msg("Rendering dump")

			return memdump.Encode(cmd.OutOrStdout(), uint32(addr), data, memdump.EncodeOptions{
				BytesPerLine: cfg.BytesPerLine,
				Header:       header,
			})
		},
	}

	helpers.AddBytesPerLineFlag(cmd)
	cmd.Flags().StringVar(&address, "address", "0x0", "Address of the first byte")
	cmd.Flags().StringVar(&fill, "fill", "0x00", "Byte used to pad the last line")
	cmd.Flags().BoolVar(&header, "header", false, "Wrap the dump in a console transcript")

	return cmd
}

// Pad extends data with fill up to a multiple of n.
func Pad(data []byte, n int, fill byte) []byte {
	if n <= 0 || len(data)%n == 0 {
		return data
	}
	return append(data, bytes.Repeat([]byte{fill}, n-len(data)%n)...)
}
