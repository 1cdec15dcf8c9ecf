package cmd

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/buildinfo"
)

// Styles for daemon version output (matching CLI styles).
var (
	dStyleBrand   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	dStyleVersion = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	dStyleLabel   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
	dStyleValue   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
	dStyleHint    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
)

var daemonVersionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  %s %s %s\n",
			dStyleBrand.Render("presenced"),
			dStyleVersion.Render(buildinfo.Version),
			dStyleHint.Render("("+buildinfo.Codename+")"),
		)

		party := dStyleHint.Render("none (development build)")
		if id, ok := buildinfo.PartyID(); ok {
			party = dStyleValue.Render(id)
		}
		rows := [][2]string{
			{"Commit", dStyleValue.Render(buildinfo.CommitHash)},
			{"Built", dStyleValue.Render(buildinfo.BuildDate)},
			{"OS/Arch", dStyleValue.Render(runtime.GOOS + "/" + runtime.GOARCH)},
			{"Go", dStyleValue.Render(runtime.Version())},
			{"Party", party},
		}
		for _, r := range rows {
			fmt.Fprintf(out, "    %s %s\n", dStyleLabel.Render(fmt.Sprintf("%7s", r[0])), r[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(daemonVersionCmd)
}
