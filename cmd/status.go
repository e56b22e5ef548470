package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ljupchokanevche/flutterfire-cli/internal/firebase"
	"github.com/ljupchokanevche/flutterfire-cli/internal/flutter"
	"github.com/ljupchokanevche/flutterfire-cli/internal/ui"
	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

var statusCmd = &cobra.Command{
	Use:   "status [directory]",
	Short: "Show a Flutter app's FlutterFire configuration",
	Long: `Show which platforms of a Flutter app exist on disk and which carry
FlutterFire build configuration in firebase.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	app, err := flutter.FindApp(dir)
	if err != nil {
		return err
	}

	ui.PrintKeyValue("App", ui.ColorBold(app.Name))
	ui.PrintKeyValue("Directory", app.Dir)

	doc, err := firebase.ReadConfig(app.Dir)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrCodeConfigNotFound {
			ui.ShowWarning("No " + firebase.ConfigFileName + " yet. Run 'flutterfire configure' first.")
			return nil
		}
		return err
	}

	fmt.Println()
	fmt.Println(ui.PaddedTable(statusRows(app, firebase.FlutterPlatforms(doc)), 2))
	return nil
}

// statusRows builds the status table: one row per known platform showing
// whether its directory exists and whether firebase.json registers it.
func statusRows(app *flutter.App, scaffolds map[string]firebase.PlatformScaffold) [][]string {
	rows := [][]string{{"PLATFORM", "PROJECT DIR", "FIREBASE CONFIG"}}

	for _, p := range flutter.Platforms {
		dir := "absent"
		if hasPlatform(app, p) {
			dir = "present"
		}

		scaffold, registered := scaffolds[p]
		var state string
		switch {
		case !firebase.ScaffoldedPlatform(p):
			state = ui.ColorDim("n/a")
		case registered:
			state = ui.ColorSuccess("registered")
			if n := scaffold.BuildConfigurations + scaffold.Targets + scaffold.Defaults; n > 0 {
				state = ui.ColorSuccess(fmt.Sprintf("registered, %d entries", n))
			}
		default:
			state = ui.ColorWarning("not registered")
		}

		rows = append(rows, []string{flutter.DisplayName(p), dir, state})
	}

	return rows
}

func hasPlatform(app *flutter.App, p string) bool {
	for _, have := range app.Platforms {
		if have == p {
			return true
		}
	}
	return false
}
