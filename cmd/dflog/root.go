package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flightlog/dflog"
)

var (
	cfgFile string
	verbose bool
)

func newRootCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dflog",
		Short: "Decode ArduPilot-style MAVLink dataflash logs.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				dflog.Log.SetOutput(os.Stderr)
				dflog.Log.SetLevel(logrus.InfoLevel)
			}
			return loadConfigIfPresent()
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/dflog/config.ini)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose mode")

	cmd.AddCommand(newDecodeCommand(ctx))
	cmd.AddCommand(newInfoCommand(ctx))
	cmd.AddCommand(newCompareCommand(ctx))
	cmd.AddCommand(newConfigCommand(ctx))
	return cmd
}
