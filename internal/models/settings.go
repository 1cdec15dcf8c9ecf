package models

// TimeoutConfig controls when the user is considered idle.
type TimeoutConfig struct {
	Enabled   bool `yaml:"enabled" toml:"enabled"`
	Minutes   int  `yaml:"minutes" toml:"minutes"`
	ResetTime bool `yaml:"reset_time" toml:"reset_time"` // restart open timers when returning from idle
}

// LineConfig selects the content of one text line or caption. Custom holds
// the template used when Source is "custom".
type LineConfig struct {
	Source string `yaml:"source" toml:"source"`
	Custom string `yaml:"custom,omitempty" toml:"custom,omitempty"`
}

// IconConfig selects an image and its caption. Custom holds a template that
// must render to an image URL.
type IconConfig struct {
	Source string     `yaml:"source" toml:"source"`
	Custom string     `yaml:"custom,omitempty" toml:"custom,omitempty"`
	Text   LineConfig `yaml:"text" toml:"text"`
}

// LayoutConfig describes the presence shown for one scope.
type LayoutConfig struct {
	Details   LineConfig `yaml:"details" toml:"details"`
	State     LineConfig `yaml:"state" toml:"state"`
	IconLarge IconConfig `yaml:"icon_large" toml:"icon_large"`
	IconSmall IconConfig `yaml:"icon_small" toml:"icon_small"`
	Time      string     `yaml:"time" toml:"time"`
}

// FileLayoutConfig adds the file-only switches to LayoutConfig.
type FileLayoutConfig struct {
	LayoutConfig   `yaml:",inline"`
	PrefixEnabled  bool `yaml:"prefix_enabled" toml:"prefix_enabled"`
	HideVCSIgnored bool `yaml:"hide_vcs_ignored" toml:"hide_vcs_ignored"`
}

// Settings represents the presence configuration.
// This corresponds to ~/.presence/settings.yaml (or settings.toml).
type Settings struct {
	Version     int              `yaml:"version" toml:"version"`
	Show        bool             `yaml:"show" toml:"show"`
	Timeout     TimeoutConfig    `yaml:"timeout" toml:"timeout"`
	Idle        string           `yaml:"idle" toml:"idle"` // "idle" | "ignore" | "hide"
	Application LayoutConfig     `yaml:"application" toml:"application"`
	Project     LayoutConfig     `yaml:"project" toml:"project"`
	File        FileLayoutConfig `yaml:"file" toml:"file"`

	ApplicationType  string `yaml:"application_type" toml:"application_type"` // "ide" | "ide_edition"
	ApplicationTheme string `yaml:"application_theme" toml:"application_theme"`
	IconsTheme       string `yaml:"icons_theme" toml:"icons_theme"`

	LastUpdateNotification string `yaml:"last_update_notification,omitempty" toml:"last_update_notification,omitempty"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Show:    true,
		Timeout: TimeoutConfig{
			Enabled:   true,
			Minutes:   5,
			ResetTime: true,
		},
		Idle: "idle",
		Application: LayoutConfig{
			Details:   LineConfig{Source: "application"},
			State:     LineConfig{Source: "none"},
			IconLarge: IconConfig{Source: "application", Text: LineConfig{Source: "application_version"}},
			IconSmall: IconConfig{Source: "none", Text: LineConfig{Source: "none"}},
			Time:      "application",
		},
		Project: LayoutConfig{
			Details:   LineConfig{Source: "project"},
			State:     LineConfig{Source: "project_description"},
			IconLarge: IconConfig{Source: "application", Text: LineConfig{Source: "application_version"}},
			IconSmall: IconConfig{Source: "none", Text: LineConfig{Source: "none"}},
			Time:      "project",
		},
		File: FileLayoutConfig{
			LayoutConfig: LayoutConfig{
				Details:   LineConfig{Source: "project"},
				State:     LineConfig{Source: "file"},
				IconLarge: IconConfig{Source: "file", Text: LineConfig{Source: "language"}},
				IconSmall: IconConfig{Source: "application", Text: LineConfig{Source: "application_version"}},
				Time:      "file",
			},
			PrefixEnabled:  true,
			HideVCSIgnored: false,
		},
		ApplicationType:  "ide_edition",
		ApplicationTheme: "classic",
		IconsTheme:       "classic",
	}
}
