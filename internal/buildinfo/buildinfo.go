// Package buildinfo holds version information injected at build time via ldflags.
package buildinfo

var (
	Version    = "dev"
	Codename   = "unknown"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// PartyID returns the identifier attached to idle presences. Development
// builds have no release version and therefore no party id.
func PartyID() (string, bool) {
	v, err := ParseSemver(Version)
	if err != nil {
		return "", false
	}
	return v.String(), true
}
