// Package cli implements the dashboard command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"example.com/dashboard/internal/config"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "dashboard",
	Short:         "Project dashboard API",
	Long:          "Serves the project dashboard: navigation state, overview, quick actions, team activity feed and the assistant panel.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $DASHBOARD_CONFIG)")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return os.Getenv("DASHBOARD_CONFIG")
}

func loadConfig() (config.Config, error) {
	return config.Load(getConfigPath())
}
