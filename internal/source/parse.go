package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Definition directories below a source root.
const (
	LanguagesDir = "languages"
	ThemesDir    = "themes"
)

// ParseError reports a definition file that could not be used.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid definition %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type languageFile struct {
	Name       string   `yaml:"name"`
	Parent     string   `yaml:"parent"`
	Icon       string   `yaml:"icon"`
	Extensions []string `yaml:"extensions"`
	Names      []string `yaml:"names"`
	Patterns   []string `yaml:"patterns"`
}

type themeFile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Icons       map[string]string `yaml:"icons"`
}

// displayName derives a readable name from a definition id. Casers are
// stateful, so each call gets its own.
func displayName(id string) string {
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(id))
}

// decodeStrict decodes a single YAML document, rejecting unknown keys.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	return nil
}

func parseLanguage(id string, data []byte) (*Language, error) {
	var f languageFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, err
	}
	for _, p := range f.Patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
	}
	for _, ext := range f.Extensions {
		if strings.TrimSpace(ext) == "" {
			return nil, errors.New("empty extension")
		}
	}

	name := f.Name
	if name == "" {
		name = displayName(id)
	}
	return &Language{
		ID:         id,
		Name:       name,
		Parent:     strings.ToLower(f.Parent),
		Icon:       strings.ToLower(f.Icon),
		Extensions: trimDots(f.Extensions),
		Names:      f.Names,
		Patterns:   f.Patterns,
	}, nil
}

func trimDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(strings.TrimSpace(e), ".")
	}
	return out
}

// assetResolver turns a theme entry into an Asset.
type assetResolver func(value string) Asset

func parseTheme(id string, data []byte, resolve assetResolver) (*Theme, error) {
	var f themeFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, err
	}

	icons := make(map[string]Asset, len(f.Icons))
	for key, value := range f.Icons {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("icon %q has no asset", key)
		}
		lower := strings.ToLower(key)
		if _, dup := icons[lower]; dup {
			return nil, fmt.Errorf("icon %q is listed more than once, ignoring case", lower)
		}
		icons[lower] = resolve(value)
	}

	name := f.Name
	if name == "" {
		name = displayName(id)
	}
	return &Theme{ID: id, Name: name, Description: f.Description, Icons: icons}, nil
}

func isWebLocator(value string) bool {
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

// localResolver resolves relative theme entries against root/themes.
func localResolver(root string) assetResolver {
	return func(value string) Asset {
		if isWebLocator(value) {
			return WebAsset(value)
		}
		if filepath.IsAbs(value) {
			return LocalAsset(filepath.Clean(value))
		}
		return LocalAsset(filepath.Join(root, ThemesDir, filepath.FromSlash(value)))
	}
}

// bundledResolver resolves theme entries against the embedded tree.
func bundledResolver(prefix string) assetResolver {
	return func(value string) Asset {
		if isWebLocator(value) {
			return WebAsset(value)
		}
		return BundledAsset(path.Join(prefix, ThemesDir, strings.TrimPrefix(value, "/")))
	}
}

// readDefinitions parses every *.yaml file in dir. Ids are lowercased base
// names; files are processed in name order and the last one wins.
func readDefinitions[T any](fsys fs.FS, dir string, parse func(id string, data []byte) (T, error)) ([]T, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var out []T
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		if strings.ToLower(ext) != ".yaml" {
			continue
		}
		id := strings.ToLower(strings.TrimSuffix(e.Name(), ext))
		p := path.Join(dir, e.Name())

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		def, err := parse(id, data)
		if err != nil {
			return nil, &ParseError{Path: p, Err: err}
		}
		out = append(out, def)
	}
	return out, nil
}
