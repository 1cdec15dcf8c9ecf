package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/source"
)

// loadTimeout bounds how long a command waits for definitions.
const loadTimeout = 10 * time.Second

// definitionsRoot returns the user definitions directory in effect, or ""
// for the bundled set.
func definitionsRoot() (string, error) {
	if flagIcons != "" {
		return flagIcons, nil
	}
	dir, err := config.GlobalIconsDir()
	if err != nil {
		return "", err
	}
	if config.IconsDirExists(dir) {
		return dir, nil
	}
	return "", nil
}

// openSource opens the definitions without retries, so a malformed file
// fails the command instead of blocking it. The caller closes the source.
func openSource() (*source.FSSource, error) {
	root, err := definitionsRoot()
	if err != nil {
		return nil, err
	}
	if root == "" {
		return source.NewBundledSource(source.WithoutRetry()), nil
	}
	return source.NewLocalSource(root, source.WithoutRetry()), nil
}

type definitions struct {
	src       *source.FSSource
	languages source.LanguageMap
	themes    source.ThemeMap
}

func contextWithLoadTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), loadTimeout)
}

// loadDefinitions opens the source and waits for both maps.
func loadDefinitions(ctx context.Context) (*definitions, error) {
	src, err := openSource()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	langs, err := src.Languages(ctx)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to load languages: %w", err)
	}
	themes, err := src.Themes(ctx)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to load themes: %w", err)
	}
	return &definitions{src: src, languages: langs, themes: themes}, nil
}

func (d *definitions) Close() { d.src.Close() }

// assetBadge renders an asset with its kind highlighted.
func assetBadge(a source.Asset) string {
	switch a.Kind() {
	case source.AssetBundled:
		return badgeBundled.Render("[bundled]") + " " + styleValue.Render(a.Locator())
	case source.AssetLocal:
		return badgeLocal.Render("[local]") + " " + styleValue.Render(a.Locator())
	case source.AssetWeb:
		return badgeWeb.Render("[web]") + " " + styleValue.Render(a.Locator())
	default:
		return styleHint.Render("none")
	}
}
