// Package cli wires the symbolicator command line.
package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	artifacts  string
	configPath string
	inputType  string
	logLevel   string
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "symbolicator",
		Short: "Symbolicate optimized Android build output",
		Long: `Rewrites diagnostic output from optimized Android builds back into
source terms, using the symbol tables emitted next to the build.

Supports logcat, dexdump and plain class-list input piped to stdin:

    adb logcat | symbolicator --artifacts /path/to/artifacts/
    dexdump -d secondary-1.dex | symbolicator --artifacts /path/to/artifacts/`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			return run(opts, log)
		},
	}
	cmd.Flags().StringVar(&opts.artifacts, "artifacts", "", "build artifact directory holding the symbol tables")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML file naming the symbol table files")
	cmd.Flags().StringVar(&opts.inputType, "input-type", "", "force input kind: logcat, dexdump or lines")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	return cmd
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, errors.New("cli: invalid log level " + level)
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
