package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/source"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List icon themes",
	RunE:  runThemes,
}

var iconCmd = &cobra.Command{
	Use:   "icon <language> <theme>",
	Short: "Look up the icon a theme assigns to a language",
	Long: `Look up the icon a theme assigns to a language id.

This is a plain lookup: an unknown theme or a missing entry is reported as
not found, and neither parent languages nor the default theme are tried.`,
	Args: cobra.ExactArgs(2),
	RunE: runIcon,
}

type themeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icons       int    `json:"icons"`
	Default     bool   `json:"default"`
}

func runThemes(cmd *cobra.Command, args []string) error {
	defs, err := loadDefinitions(cmd.Context())
	if err != nil {
		return err
	}
	defer defs.Close()

	def, _ := defs.themes.Default()
	views := make([]themeView, 0, defs.themes.Len())
	for _, id := range defs.themes.IDs() {
		t, _ := defs.themes.Get(id)
		views = append(views, themeView{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Icons:       len(t.Icons),
			Default:     t == def,
		})
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return printJSON(out, views)
	}

	fmt.Fprintf(out, "%s %s\n\n", styleBrand.Render("Themes"), styleHint.Render(fmt.Sprintf("(%d)", len(views))))
	for _, v := range views {
		marker := "  "
		if v.Default {
			marker = styleSuccess.Render("* ")
		}
		fmt.Fprintf(out, "%s%s %s %s\n", marker, styleCommand.Render(fmt.Sprintf("%-12s", v.ID)), styleValue.Render(v.Name), styleHint.Render(fmt.Sprintf("%d icons", v.Icons)))
		if v.Description != "" {
			fmt.Fprintf(out, "    %s\n", styleLabel.Render(v.Description))
		}
	}
	return nil
}

type iconView struct {
	Language string        `json:"language"`
	Theme    string        `json:"theme"`
	Found    bool          `json:"found"`
	Icon     *source.Asset `json:"icon,omitempty"`
}

func runIcon(cmd *cobra.Command, args []string) error {
	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, cancel := contextWithLoadTimeout(cmd)
	defer cancel()

	a, ok, err := src.ResolveIcon(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	view := iconView{Language: args[0], Theme: args[1], Found: ok}
	if ok {
		view.Icon = &a
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return printJSON(out, view)
	}
	if !ok {
		return fmt.Errorf("theme %q has no icon for %q", args[1], args[0])
	}
	fmt.Fprintln(out, assetBadge(a))
	return nil
}
