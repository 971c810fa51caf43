// Package cmd wires the dpdp-sim CLI: configuration layering, logging
// setup, and the run subcommand that drives the kernel end to end.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "dpdp-sim",
	Short: "Discrete-event simulator for a dynamic pickup-and-delivery problem",
}

// Execute runs the CLI, exiting the process with a non-zero status on
// failure.
func Execute() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn(".env present but could not be loaded")
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	viper.SetEnvPrefix("DPDP_SIM")
	viper.AutomaticEnv()
	rootCmd.AddCommand(runCmd)
}
