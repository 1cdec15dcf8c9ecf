// Package cli implements the presence CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagJSON  bool
	flagIcons string
)

var rootCmd = &cobra.Command{
	Use:   "presence",
	Short: "Render editor rich presence from language and theme definitions",
	Long: `Presence renders a live status card describing what you are doing in
your editor, decorated with icons resolved from language and theme
definitions.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print JSON instead of styled text")
	rootCmd.PersistentFlags().StringVar(&flagIcons, "icons", "", "Directory holding languages/ and themes/ (defaults to ~/.presence/icons, then the bundled set)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(iconCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(versionCmd)
}
