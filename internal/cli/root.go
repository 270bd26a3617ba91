package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	configcmd "github.com/mdimage/mdimage/internal/cli/config"
	"github.com/mdimage/mdimage/internal/cli/convert"
	"github.com/mdimage/mdimage/internal/cli/dump"
	"github.com/mdimage/mdimage/internal/cli/helpers"
	"github.com/mdimage/mdimage/internal/config"
	"github.com/mdimage/mdimage/internal/constants"
	mderrors "github.com/mdimage/mdimage/internal/errors"
	"github.com/mdimage/mdimage/pkg/version"
)

// NewRootCmd builds the mdimage command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mdimage",
		Short: "mdimage - rebuild binary images from bootloader memory dumps",
		Long: `Rebuild a raw binary image from the console log of a bootloader memory
display command, such as U-Boot "md.b", and verify it along the way.

Every dump line is checked for address contiguity, its byte count and the
agreement between its hex and ASCII columns, so a corrupted or mis-trimmed
capture fails loudly instead of producing a silently broken image.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(helpers.FlagConfig, "", "Config file (default $"+constants.EnvConfig+"/config.yaml or ~/.mdimage/config.yaml)")
	rootCmd.PersistentFlags().String(config.FlagLogLevel, constants.DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool(config.FlagLogPretty, true, "Human readable log output")

	rootCmd.AddCommand(convert.NewConvertCmd())
	rootCmd.AddCommand(dump.NewDumpCmd())
	rootCmd.AddCommand(configcmd.NewConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("mdimage version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which stops a running signature scan.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// PrintError writes err and any remediation hint attached to it.
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, helpers.ErrorStyle.Render("Error: "+err.Error()))
	if hint := mderrors.Hint(err); hint != "" {
		_, _ = fmt.Fprintln(w, helpers.HintStyle.Render("Hint: "+hint))
	}
}
