package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/presence"
	"github.com/watchfire-io/presence/internal/render"
	"github.com/watchfire-io/presence/internal/settings"
	"github.com/watchfire-io/presence/internal/template"
	"github.com/watchfire-io/presence/internal/vcs"
)

var (
	flagActivityFile string
	flagSettingsFile string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the presence for the current activity once",
	Long: `Render the presence for the editor's latest activity report and print it.

Activity is read from ~/.presence/activity.yaml and settings from
~/.presence/settings.yaml unless overridden.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagActivityFile, "activity", "", "Activity report to render")
	renderCmd.Flags().StringVar(&flagSettingsFile, "settings", "", "Settings file to render with")
}

type renderView struct {
	Mode     string             `json:"mode"`
	Presence *presence.Presence `json:"presence"`
}

func runRender(cmd *cobra.Command, args []string) error {
	activityFile, settingsFile, err := renderPaths()
	if err != nil {
		return err
	}

	state, err := config.LoadActivity(activityFile)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}
	s, err := config.LoadSettingsFile(settingsFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	layout := settings.NewLayout(settings.NewHolder(s), template.NewTextEngine())
	tracker := activity.NewTracker(src, activity.WithIgnoreChecker(vcs.NewChecker(vcs.OSCommandRunner{})))

	ctx, cancel := contextWithLoadTimeout(cmd)
	defer cancel()
	c, err := tracker.Snapshot(ctx, state, layout.TrackerConfig())
	if err != nil {
		return err
	}

	logger := log.New(cmd.ErrOrStderr(), "", 0)
	mode, p, ok := render.NewPipeline(layout, render.WithLogger(logger)).RenderMode(c)
	view := renderView{Mode: mode.String()}
	if ok {
		view.Presence = &p
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return printJSON(out, view)
	}
	printPresence(out, view)
	return nil
}

func renderPaths() (activityFile, settingsFile string, err error) {
	activityFile, settingsFile = flagActivityFile, flagSettingsFile
	if activityFile == "" {
		if activityFile, err = config.GlobalActivityFile(); err != nil {
			return "", "", err
		}
	}
	if settingsFile == "" {
		if settingsFile, err = config.GlobalSettingsFile(); err != nil {
			return "", "", err
		}
	}
	return activityFile, settingsFile, nil
}

func printPresence(out io.Writer, v renderView) {
	if v.Presence == nil {
		fmt.Fprintf(out, "%s %s\n", styleWarning.Render("Nothing to show"), styleHint.Render("("+v.Mode+")"))
		return
	}
	p := v.Presence
	fmt.Fprintf(out, "%s %s\n\n", styleBrand.Render("Presence"), styleHint.Render("("+v.Mode+")"))
	printLine(out, "Details", p.Details)
	printLine(out, "State", p.State)
	printImage(out, "Large", p.LargeImage)
	printImage(out, "Small", p.SmallImage)
	if p.StartTimestamp != nil {
		since := humanize.Time(*p.StartTimestamp)
		if p.ShowElapsed {
			since += " " + styleHint.Render("(elapsed)")
		}
		printLine(out, "Started", since)
	}
	printLine(out, "Party", p.PartyID)
}

func printLine(out io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-8s", label)), styleValue.Render(value))
}

func printImage(out io.Writer, label string, img *presence.Image) {
	if img == nil {
		return
	}
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-8s", label)), assetBadge(img.Asset))
	if img.Text != "" {
		fmt.Fprintf(out, "  %-8s %s\n", "", styleHint.Render(img.Text))
	}
}
