package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ljupchokanevche/flutterfire-cli/internal/config"
	"github.com/ljupchokanevche/flutterfire-cli/internal/firebase"
	"github.com/ljupchokanevche/flutterfire-cli/internal/flutter"
	"github.com/ljupchokanevche/flutterfire-cli/internal/ui"
	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

var configurePlatforms []string

var configureCmd = &cobra.Command{
	Use:   "configure [directory]",
	Short: "Connect a Flutter app to a Firebase project",
	Long: `Connect a Flutter application to a Firebase project.

The command locates the Flutter app, asks which platforms to target and
which Firebase project to use, and registers the FlutterFire build
configuration in the project's firebase.json. Existing firebase.json
content is preserved.

With --project and --platforms the command runs without prompts, which
is what CI pipelines want.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringSliceVar(&configurePlatforms, "platforms", nil,
		"Platforms to configure (skips the platform prompt)")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	ui.ShowHeader("FlutterFire Configuration")

	spinner := ui.NewSpinner("Scanning for a Flutter app...")
	spinner.Start()
	app, err := flutter.FindApp(dir)
	if err != nil {
		spinner.Stop(false, "No Flutter app found")
		return err
	}
	spinner.Stop(true, fmt.Sprintf("Found Flutter app %q in %s", app.Name, app.Dir))

	platforms, err := resolvePlatforms(app)
	if err != nil {
		return err
	}

	store := tokenStore()
	client := firebase.NewClient(firebase.WithToken(firebase.ResolveToken(flagToken, store)))

	projectID, err := resolveProject(cmd.Context(), client)
	if err != nil {
		return err
	}

	if err := firebase.EnsureConfig(app.Dir); err != nil {
		return err
	}

	ui.PrintSection("Summary")
	rows := [][]string{
		{"App", app.Name},
		{"Directory", app.Dir},
		{"Firebase project", projectID},
		{"Platforms", strings.Join(platforms, ", ")},
		{"Config", firebase.ConfigPath(app.Dir)},
	}
	fmt.Println(ui.PaddedTable(rows, 2))
	fmt.Println()

	ui.ShowSuccess("Firebase configuration registered in " + firebase.ConfigFileName)

	rememberDefaults(store, projectID, platforms)

	ui.Box("Next steps", strings.Join([]string{
		"Add the Firebase core plugin: flutter pub add firebase_core",
		"Rebuild your app: flutter run",
	}, "\n"))

	return nil
}

// resolvePlatforms picks the platforms to configure: the --platforms
// flag when given, otherwise a multi-select pre-filled with the
// platform directories detected in the app.
func resolvePlatforms(app *flutter.App) ([]string, error) {
	if len(configurePlatforms) > 0 {
		for _, p := range configurePlatforms {
			if !knownPlatform(p) {
				return nil, errors.ValidationError("platforms", p,
					"expected one of: "+strings.Join(flutter.Platforms, ", "))
			}
		}
		return configurePlatforms, nil
	}

	return ui.MultiSelect("Which platforms should your configuration support?",
		flutter.Platforms, app.Platforms)
}

func knownPlatform(p string) bool {
	for _, known := range flutter.Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// resolveProject picks the Firebase project: the --project flag or the
// configured default first, then a pick from the projects the Firebase
// CLI can list, then manual entry.
func resolveProject(ctx context.Context, client *firebase.Client) (string, error) {
	// The flag is bound over the config default, viper merges both
	if id := viper.GetString("default_project"); id != "" {
		if err := firebase.ValidateProjectID(id); err != nil {
			return "", err
		}
		ui.ShowInfo("Using Firebase project " + id)
		return id, nil
	}

	spinner := ui.NewSpinner("Fetching your Firebase projects...")
	spinner.Start()
	projects, err := client.ListProjects(ctx)
	if err != nil {
		spinner.Stop(false, "Could not list Firebase projects")
		ui.ShowWarning("Falling back to manual entry: " + firstLine(err))
		return ui.Input("Firebase project ID:", "", firebase.ValidateProjectID)
	}
	spinner.Stop(true, fmt.Sprintf("Found %d Firebase projects", len(projects)))

	if len(projects) == 0 {
		return ui.Input("Firebase project ID:", "", firebase.ValidateProjectID)
	}

	options := make([]string, len(projects))
	for i, p := range projects {
		options[i] = p.ID
		if p.DisplayName != "" {
			options[i] = fmt.Sprintf("%s (%s)", p.ID, p.DisplayName)
		}
	}

	// Lists longer than one prompt page get typeahead filtering
	pick := ui.Select
	if len(options) > 10 {
		pick = ui.SearchableSelect
	}

	choice, err := pick("Which Firebase project should the app use?", options)
	if err != nil {
		return "", err
	}

	for i, option := range options {
		if option == choice {
			return projects[i].ID, nil
		}
	}
	return choice, nil
}

// rememberDefaults persists the chosen project and platforms as the
// defaults for the next run. Failures only warn: the app itself is
// already configured.
func rememberDefaults(store *firebase.TokenStore, projectID string, platforms []string) {
	cfg, err := config.Load()
	if err != nil {
		ui.ShowWarning("Could not load tool config: " + firstLine(err))
		return
	}

	cfg.DefaultProject = projectID
	cfg.Platforms = platforms

	if err := config.Save(cfg); err != nil {
		ui.ShowWarning("Could not save tool config: " + firstLine(err))
		return
	}

	if cfg.TokenStore && flagToken != "" && store != nil {
		if err := store.Save(flagToken); err != nil {
			ui.ShowWarning("Could not save the CI token: " + firstLine(err))
			return
		}
		ui.ShowInfo("CI token saved to the credential store")
	}
}

// firstLine trims a structured error down to its headline for inline
// warnings.
func firstLine(err error) string {
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}
