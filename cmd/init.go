package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vidsponential/website/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize vidsite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard for the data API location, port and export settings, and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
