package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/buildinfo"
)

// VersionInfo holds version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Codename  string `json:"codename"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	Platform  string `json:"platform"`
	Go        string `json:"go"`
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := VersionInfo{
			Version:   buildinfo.Version,
			Codename:  buildinfo.Codename,
			Commit:    buildinfo.CommitHash,
			BuildDate: buildinfo.BuildDate,
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			Go:        runtime.Version(),
		}
		out := cmd.OutOrStdout()
		if flagJSON {
			return printJSON(out, info)
		}
		fmt.Fprintf(out, "  %s %s %s\n",
			styleBrand.Render("presence"),
			styleVersion.Render(info.Version),
			styleHint.Render("("+info.Codename+")"),
		)
		fmt.Fprintf(out, "    %s  %s\n", styleLabel.Render("Commit"), styleValue.Render(info.Commit))
		fmt.Fprintf(out, "    %s   %s\n", styleLabel.Render("Built"), styleValue.Render(info.BuildDate))
		fmt.Fprintf(out, "    %s %s\n", styleLabel.Render("OS/Arch"), styleValue.Render(info.Platform))
		fmt.Fprintf(out, "    %s      %s\n", styleLabel.Render("Go"), styleValue.Render(info.Go))
		return nil
	},
}
