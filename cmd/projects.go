package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ljupchokanevche/flutterfire-cli/internal/firebase"
	"github.com/ljupchokanevche/flutterfire-cli/internal/ui"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the Firebase projects you can access",
	Long: `List the Firebase projects visible to the authenticated account, as
reported by the Firebase CLI.`,
	Args: cobra.NoArgs,
	RunE: runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	store := tokenStore()
	client := firebase.NewClient(firebase.WithToken(firebase.ResolveToken(flagToken, store)))

	spinner := ui.NewSpinner("Fetching your Firebase projects...")
	spinner.Start()
	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		spinner.Stop(false, "Could not list Firebase projects")
		return err
	}
	spinner.Stop(true, fmt.Sprintf("Found %d Firebase projects", len(projects)))

	if len(projects) == 0 {
		ui.ShowInfo("No Firebase projects visible to this account")
		return nil
	}

	fmt.Println()
	renderProjects(os.Stdout, projects, viper.GetString("default_project"))
	return nil
}

// renderProjects writes the project table to w, marking the configured
// default project.
func renderProjects(w io.Writer, projects []firebase.Project, defaultID string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Project ID", "Display Name", "Number"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, p := range projects {
		id := p.ID
		if defaultID != "" && p.ID == defaultID {
			id = color.CyanString("%s (default)", p.ID)
		}
		table.Append([]string{id, p.DisplayName, p.Number})
	}

	table.Render()
}
