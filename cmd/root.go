package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inventree-tools/crewplan/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "crewplan",
	Short: "Maintenance task scheduling for InvenTree workshops",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configured file. When the default path does not
// exist the built-in defaults apply, so the schedule command works
// without any configuration.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
		cfg := &config.Config{}
		cfg.Scheduler.SetDefaults()
		cfg.InvenTree.SetDefaults()
		cfg.SMTP.SetDefaults()
		cfg.Metrics.SetDefaults()
		cfg.API.SetDefaults()
		return cfg, nil
	}
	return config.Load(cfgPath)
}
