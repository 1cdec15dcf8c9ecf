package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/source"
)

var flagMatchTheme string

var languagesCmd = &cobra.Command{
	Use:     "languages",
	Aliases: []string{"langs"},
	Short:   "List language definitions",
	RunE:    runLanguages,
}

var matchCmd = &cobra.Command{
	Use:   "match <file>",
	Short: "Show which language and icon a file name resolves to",
	Long: `Match a file name against the language definitions and resolve its icon.

The icon lookup walks the language's parent chain, and an unknown theme
falls back to the default one, exactly as rendering does.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&flagMatchTheme, "theme", "t", "", "Theme to resolve the icon from (default theme when empty)")
}

type languageView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Parent     string   `json:"parent,omitempty"`
	Icon       string   `json:"icon"`
	Extensions []string `json:"extensions,omitempty"`
	Names      []string `json:"names,omitempty"`
	Patterns   []string `json:"patterns,omitempty"`
}

func newLanguageView(l *source.Language) languageView {
	return languageView{
		ID:         l.ID,
		Name:       l.Name,
		Parent:     l.Parent,
		Icon:       l.IconKey(),
		Extensions: l.Extensions,
		Names:      l.Names,
		Patterns:   l.Patterns,
	}
}

func runLanguages(cmd *cobra.Command, args []string) error {
	defs, err := loadDefinitions(cmd.Context())
	if err != nil {
		return err
	}
	defer defs.Close()

	views := make([]languageView, 0, defs.languages.Len())
	for _, id := range defs.languages.IDs() {
		l, _ := defs.languages.Get(id)
		views = append(views, newLanguageView(l))
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return printJSON(out, views)
	}

	fmt.Fprintf(out, "%s %s\n\n", styleBrand.Render("Languages"), styleHint.Render(fmt.Sprintf("(%d)", len(views))))
	for _, v := range views {
		line := fmt.Sprintf("  %s %s", styleCommand.Render(fmt.Sprintf("%-14s", v.ID)), styleValue.Render(v.Name))
		if v.Parent != "" {
			line += " " + styleHint.Render("< "+v.Parent)
		}
		fmt.Fprintln(out, line)

		matchers := append(append([]string(nil), v.Names...), v.Patterns...)
		for _, e := range v.Extensions {
			matchers = append(matchers, "."+e)
		}
		if len(matchers) > 0 {
			fmt.Fprintf(out, "    %s\n", styleLabel.Render(strings.Join(matchers, " ")))
		}
	}
	return nil
}

type matchView struct {
	File     string        `json:"file"`
	Language *languageView `json:"language"`
	Theme    string        `json:"theme,omitempty"`
	Icon     *source.Asset `json:"icon"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	defs, err := loadDefinitions(cmd.Context())
	if err != nil {
		return err
	}
	defer defs.Close()

	view := matchView{File: args[0]}
	if lang, ok := defs.languages.Match(args[0]); ok {
		lv := newLanguageView(lang)
		view.Language = &lv
		if th, ok := defs.themes.GetOrDefault(flagMatchTheme); ok {
			view.Theme = th.ID
			if a, ok := defs.languages.FindIcon(lang, th); ok {
				view.Icon = &a
			}
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return printJSON(out, view)
	}

	if view.Language == nil {
		fmt.Fprintf(out, "%s %s\n", styleWarning.Render("No language matches"), styleValue.Render(view.File))
		return nil
	}
	fmt.Fprintf(out, "  %s %s %s\n", styleLabel.Render("Language"), styleCommand.Render(view.Language.ID), styleHint.Render("("+view.Language.Name+")"))
	fmt.Fprintf(out, "  %s    %s\n", styleLabel.Render("Theme"), styleValue.Render(view.Theme))
	if view.Icon != nil {
		fmt.Fprintf(out, "  %s     %s\n", styleLabel.Render("Icon"), assetBadge(*view.Icon))
	} else {
		fmt.Fprintf(out, "  %s     %s\n", styleLabel.Render("Icon"), styleHint.Render("none"))
	}
	return nil
}
