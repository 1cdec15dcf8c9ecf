// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global presence directory.
	GlobalDirName = ".presence"

	// HomeEnv overrides the global directory location.
	HomeEnv = "PRESENCE_HOME"

	// IconsDirName is the directory holding user language/theme definitions.
	IconsDirName = "icons"

	// LogsDirName is the name of the logs directory.
	LogsDirName = "logs"
)

// File names
const (
	DaemonFileName       = "daemon.yaml"
	SettingsFileName     = "settings.yaml"
	SettingsTOMLFileName = "settings.toml"
	ActivityFileName     = "activity.yaml"
)

// GlobalDir returns the path to the global presence directory
// (~/.presence/, or $PRESENCE_HOME when set).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

func globalPath(elem ...string) (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{dir}, elem...)...), nil
}

// GlobalDaemonFile returns the path to the daemon.yaml file.
func GlobalDaemonFile() (string, error) {
	return globalPath(DaemonFileName)
}

// GlobalSettingsFile returns the path to the settings file. A settings.toml
// is used when it exists and settings.yaml does not.
func GlobalSettingsFile() (string, error) {
	yamlPath, err := globalPath(SettingsFileName)
	if err != nil {
		return "", err
	}
	if FileExists(yamlPath) {
		return yamlPath, nil
	}
	tomlPath, err := globalPath(SettingsTOMLFileName)
	if err != nil {
		return "", err
	}
	if FileExists(tomlPath) {
		return tomlPath, nil
	}
	return yamlPath, nil
}

// GlobalActivityFile returns the path to the activity.yaml file.
func GlobalActivityFile() (string, error) {
	return globalPath(ActivityFileName)
}

// GlobalIconsDir returns the path to the user definitions directory.
func GlobalIconsDir() (string, error) {
	return globalPath(IconsDirName)
}

// GlobalLogsDir returns the path to the logs directory.
func GlobalLogsDir() (string, error) {
	return globalPath(LogsDirName)
}

// EnsureGlobalDir creates the global presence directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// EnsureGlobalLogsDir creates the global logs directory if it doesn't exist.
func EnsureGlobalLogsDir() error {
	dir, err := GlobalLogsDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// IconsDirExists reports whether the user definitions directory has both
// a languages/ and a themes/ subdirectory.
func IconsDirExists(dir string) bool {
	for _, sub := range []string{"languages", "themes"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}
