package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/models"
)

var (
	flagSettingsTOML  bool
	flagSettingsForce bool
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Manage presence settings",
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GlobalSettingsFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Long: `Write the default settings to ~/.presence/settings.yaml, or
settings.toml with --toml. An existing file is only replaced after
confirmation or with --force.`,
	RunE: runSettingsInit,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings, defaults included",
	RunE:  runSettingsShow,
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the settings file in $EDITOR",
	Long: `Edit the settings file in $EDITOR. The edited file is validated before
it replaces the current one, so a running daemon never sees a broken file.`,
	RunE: runSettingsEdit,
}

func init() {
	settingsInitCmd.Flags().BoolVar(&flagSettingsTOML, "toml", false, "Write settings.toml instead of settings.yaml")
	settingsInitCmd.Flags().BoolVarP(&flagSettingsForce, "force", "f", false, "Replace an existing file without asking")

	settingsCmd.AddCommand(settingsEditCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	dir, err := config.GlobalDir()
	if err != nil {
		return err
	}
	name := config.SettingsFileName
	if flagSettingsTOML {
		name = config.SettingsTOMLFileName
	}
	path := filepath.Join(dir, name)

	out := cmd.OutOrStdout()
	if config.FileExists(path) && !flagSettingsForce {
		in := cmd.InOrStdin()
		if !isTerminal(in) {
			return fmt.Errorf("%s already exists (use --force to replace it)", path)
		}
		reader := bufio.NewReader(in)
		if !promptYesNo(cmd, reader, fmt.Sprintf("Replace %s with the defaults?", path), false) {
			fmt.Fprintln(out, "Settings unchanged.")
			return nil
		}
	}

	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}
	if err := config.SaveFile(path, models.NewSettings()); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	fmt.Fprintf(out, "%s %s\n", styleSuccess.Render("Wrote"), styleValue.Render(path))
	return nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, s)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func runSettingsEdit(cmd *cobra.Command, args []string) error {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}

	var content []byte
	if config.FileExists(path) {
		if content, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	} else if content, err = yaml.Marshal(models.NewSettings()); err != nil {
		return err
	}

	var validated *models.Settings
	edited, err := editInEditor(string(content), filepath.Base(path), func(tmp string) error {
		s, err := config.LoadSettingsFile(tmp)
		validated = s
		return err
	})
	if err != nil {
		return err
	}
	if edited == string(content) {
		fmt.Fprintln(cmd.OutOrStdout(), "Settings unchanged.")
		return nil
	}
	if err := config.SaveFile(path, validated); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("Saved"), styleValue.Render(path))
	return nil
}

// editInEditor opens the content in an external editor and returns the
// edited content once validate accepts the edited file.
func editInEditor(content, filename string, validate func(path string) error) (string, error) {
	editor := findEditor()
	if editor == "" {
		return "", fmt.Errorf("no editor found. Set $EDITOR or $VISUAL environment variable")
	}

	tmpDir, err := os.MkdirTemp("", "presence-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tmpFile := filepath.Join(tmpDir, filename)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	edited, err := os.ReadFile(tmpFile)
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %w", err)
	}
	if err := validate(tmpFile); err != nil {
		return "", fmt.Errorf("edited settings are invalid: %w", err)
	}
	return string(edited), nil
}

// findEditor returns the user's preferred editor.
func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}

	for _, editor := range []string{"vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}

func promptYesNo(cmd *cobra.Command, reader *bufio.Reader, prompt string, defaultVal bool) bool {
	defaultStr := "Y/n"
	if !defaultVal {
		defaultStr = "y/N"
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s [%s]: ", prompt, defaultStr)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	if response == "" {
		return defaultVal
	}
	return response == "y" || response == "yes"
}
