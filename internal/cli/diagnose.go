package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/diagnose"
)

var diagnoseCmd = &cobra.Command{
	Use:     "diagnose",
	Aliases: []string{"doctor"},
	Short:   "Check the environment for problems that keep the presence from showing",
	Long: `Check the environment for problems that keep the presence from showing:
whether Discord is running and reachable, whether other presence plugins
are installed, and whether the editor runs sandboxed.`,
	RunE: runDiagnose,
}

type diagnosisView struct {
	Check    string `json:"check"`
	Outcome  string `json:"outcome"`
	Severity string `json:"severity"`
	Message  string `json:"message,omitempty"`

	severity diagnose.Severity
}

// diagnoseWith runs the checks with lister. Plugins and the editor name
// come from the latest activity report when one exists.
func diagnoseWith(cmd *cobra.Command, lister diagnose.ProcessLister) ([]diagnosisView, error) {
	activityFile, err := config.GlobalActivityFile()
	if err != nil {
		return nil, err
	}
	state, err := config.LoadActivity(activityFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	in := diagnose.Input{Plugins: state.Plugins}
	if state.Application != nil {
		in.ApplicationName = state.Application.Name
	}

	svc := diagnose.NewService(lister, diagnose.WithLogger(log.New(cmd.ErrOrStderr(), "", 0)))
	r := svc.Run(cmd.Context(), in)

	checks := []string{"discord", "integrations", "ide"}
	views := make([]diagnosisView, 0, len(checks))
	for i, o := range r.Outcomes() {
		views = append(views, diagnosisView{
			Check:    checks[i],
			Outcome:  o.String(),
			Severity: o.Severity().String(),
			Message:  o.Message(),
			severity: o.Severity(),
		})
	}
	return views, nil
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	views, err := diagnoseWith(cmd, diagnose.SystemProcessLister{})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return printJSON(out, views)
	}
	printDiagnosis(out, views)
	return nil
}

func printDiagnosis(out io.Writer, views []diagnosisView) {
	fmt.Fprintf(out, "%s\n\n", styleBrand.Render("Diagnosis"))
	for _, v := range views {
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-13s", v.Check)), severityStyle(v.severity).Render(v.Outcome))
		if v.Message != "" {
			fmt.Fprintf(out, "  %-13s %s\n", "", styleHint.Render(v.Message))
		}
	}
}
