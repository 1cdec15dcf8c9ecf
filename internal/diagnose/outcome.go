// Package diagnose inspects the environment for conditions that keep a
// presence from reaching its consumer.
package diagnose

// Outcome is one diagnosis result.
type Outcome int

// Outcomes.
const (
	Unknown Outcome = iota

	DiscordClosed
	DiscordRunning
	DiscordSnap
	DiscordFlatpak
	DiscordBrowser
	DiscordAdministrator

	IntegrationsNone
	IntegrationsOne
	IntegrationsMultiple
	IntegrationLegacy

	IDEOther
	IDESnap

	UpdatedVersion
)

// Severity ranks outcomes for presentation.
type Severity int

// Severities.
const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "ok"
	}
}

var outcomes = map[Outcome]struct {
	name     string
	severity Severity
	message  string
}{
	Unknown:              {"unknown", SeverityNone, ""},
	DiscordClosed:        {"discord_closed", SeverityInfo, "Discord is not running"},
	DiscordRunning:       {"discord_running", SeverityNone, ""},
	DiscordSnap:          {"discord_snap", SeverityError, "Discord is installed as a snap package and cannot accept presence connections"},
	DiscordFlatpak:       {"discord_flatpak", SeverityWarning, "Discord is installed as a flatpak package, which may block presence connections"},
	DiscordBrowser:       {"discord_browser", SeverityError, "Discord is running in a web browser, which does not accept presence connections"},
	DiscordAdministrator: {"discord_administrator", SeverityError, "Discord is running with elevated privileges and will refuse presence connections"},
	IntegrationsNone:     {"integrations_none", SeverityNone, ""},
	IntegrationsOne:      {"integrations_one", SeverityWarning, "Another Discord integration plugin is installed and may conflict"},
	IntegrationsMultiple: {"integrations_multiple", SeverityWarning, "Several other Discord integration plugins are installed and may conflict"},
	IntegrationLegacy:    {"integration_legacy", SeverityError, "The legacy Discord Integration plugin is installed; uninstall it"},
	IDEOther:             {"ide_other", SeverityNone, ""},
	IDESnap:              {"ide_snap", SeverityWarning, "The editor is running as a snap package, which will most likely block presence connections"},
	UpdatedVersion:       {"updated_version", SeverityInfo, "presence was updated"},
}

func (o Outcome) String() string { return outcomes[o].name }

// Severity returns how serious o is. SeverityNone outcomes need no
// attention.
func (o Outcome) Severity() Severity { return outcomes[o].severity }

// Message is a human-readable description of o.
func (o Outcome) Message() string { return outcomes[o].message }

// MarshalText encodes o by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Presenter displays outcomes to the user.
type Presenter interface {
	Present(o Outcome)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(o Outcome)

// Present implements Presenter.
func (f PresenterFunc) Present(o Outcome) { f(o) }
