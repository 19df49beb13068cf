package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "botgate-cli",
	Short: "botgate-cli is the command-line interface for the botgate webhook gateway.",
	Long:  `A CLI for running and operating the botgate Telegram webhook gateway: serving the ingress, applying database migrations, and checking readiness of a running instance.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)
}

// initConfig reads ENV variables if set.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
