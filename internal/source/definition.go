// Package source loads language and theme definitions and resolves the
// icons they reference.
package source

import (
	"path"
	"sort"
	"strings"
)

// Language describes how files of one language are recognised and which
// icon key they use.
type Language struct {
	ID         string
	Name       string
	Parent     string
	Icon       string
	Extensions []string
	Names      []string
	Patterns   []string
}

// IconKey returns the key used to look the language up in a theme.
func (l *Language) IconKey() string {
	if l.Icon != "" {
		return l.Icon
	}
	return l.ID
}

// Match scores how well fileName fits the language. Exact names beat glob
// patterns, which beat extensions; longer patterns and extensions beat
// shorter ones.
func (l *Language) Match(fileName string) (int, bool) {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	lower := strings.ToLower(base)

	best := 0
	for _, n := range l.Names {
		if n == base || strings.ToLower(n) == lower {
			return 1000, true
		}
	}
	for _, p := range l.Patterns {
		if ok, _ := path.Match(strings.ToLower(p), lower); ok {
			best = max(best, 500+len(p))
		}
	}
	for _, ext := range l.Extensions {
		if strings.HasSuffix(lower, "."+strings.ToLower(ext)) {
			best = max(best, 100+len(ext))
		}
	}
	return best, best > 0
}

// LanguageMap is an immutable index of languages by id.
type LanguageMap struct {
	byID map[string]*Language
	ids  []string
}

// NewLanguageMap indexes langs by id. Later entries replace earlier ones
// with the same id.
func NewLanguageMap(langs ...*Language) LanguageMap {
	m := LanguageMap{byID: make(map[string]*Language, len(langs))}
	for _, l := range langs {
		m.byID[l.ID] = l
	}
	m.ids = sortedKeys(m.byID)
	return m
}

// Len returns the number of languages.
func (m LanguageMap) Len() int { return len(m.byID) }

// IDs returns the language ids in sorted order.
func (m LanguageMap) IDs() []string { return append([]string(nil), m.ids...) }

// Get returns the language with the given id.
func (m LanguageMap) Get(id string) (*Language, bool) {
	l, ok := m.byID[strings.ToLower(id)]
	return l, ok
}

// Match returns the language that best fits fileName. Ties go to the
// lowest id.
func (m LanguageMap) Match(fileName string) (*Language, bool) {
	var (
		found *Language
		score int
	)
	for _, id := range m.ids {
		l := m.byID[id]
		if s, ok := l.Match(fileName); ok && s > score {
			found, score = l, s
		}
	}
	return found, found != nil
}

// FindIcon looks lang up in p, walking the parent chain until an icon is
// found.
func (m LanguageMap) FindIcon(lang *Language, p Provider) (Asset, bool) {
	if p == nil {
		return Asset{}, false
	}
	seen := make(map[string]bool)
	for l := lang; l != nil && !seen[l.ID]; l = m.byID[l.Parent] {
		seen[l.ID] = true
		if a, ok := p.GetAsset(l.IconKey()); ok {
			return a, true
		}
	}
	return Asset{}, false
}

// Theme maps language ids, and the "application" sentinel, to assets.
type Theme struct {
	ID          string
	Name        string
	Description string
	Icons       map[string]Asset
}

// GetAsset implements Provider.
func (t *Theme) GetAsset(key string) (Asset, bool) {
	if t == nil {
		return Asset{}, false
	}
	a, ok := t.Icons[key]
	return a, ok
}

// DefaultThemeID is preferred by ThemeMap.Default when present.
const DefaultThemeID = "classic"

// ThemeMap is an immutable index of themes by id.
type ThemeMap struct {
	byID map[string]*Theme
	ids  []string
}

// NewThemeMap indexes themes by id. Later entries replace earlier ones
// with the same id.
func NewThemeMap(themes ...*Theme) ThemeMap {
	m := ThemeMap{byID: make(map[string]*Theme, len(themes))}
	for _, t := range themes {
		m.byID[t.ID] = t
	}
	m.ids = sortedKeys(m.byID)
	return m
}

// Len returns the number of themes.
func (m ThemeMap) Len() int { return len(m.byID) }

// IDs returns the theme ids in sorted order.
func (m ThemeMap) IDs() []string { return append([]string(nil), m.ids...) }

// Get returns the theme with the given id.
func (m ThemeMap) Get(id string) (*Theme, bool) {
	t, ok := m.byID[strings.ToLower(id)]
	return t, ok
}

// Default returns the classic theme, or the first theme by id.
func (m ThemeMap) Default() (*Theme, bool) {
	if t, ok := m.byID[DefaultThemeID]; ok {
		return t, true
	}
	if len(m.ids) == 0 {
		return nil, false
	}
	return m.byID[m.ids[0]], true
}

// GetOrDefault returns the theme with the given id, falling back to
// Default when id is empty or unknown.
func (m ThemeMap) GetOrDefault(id string) (*Theme, bool) {
	if t, ok := m.Get(id); ok {
		return t, true
	}
	return m.Default()
}

// ResolveIcon returns the asset themeID assigns to languageID. It is a
// plain lookup: a miss is reported as not found, never substituted.
func ResolveIcon(themes ThemeMap, languageID, themeID string) (Asset, bool) {
	t, ok := themes.Get(themeID)
	if !ok {
		return Asset{}, false
	}
	return t.GetAsset(strings.ToLower(languageID))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
