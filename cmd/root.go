package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vidsite",
	Short: "Serve and export the Vidsponential website",
	Long: `vidsite renders the Vidsponential marketing and portfolio site from the
hosted data API. It serves the homepage, blog, portfolio and prompt editor,
and can export every page to a directory of static files.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".vidsite.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
