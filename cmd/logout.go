package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ljupchokanevche/flutterfire-cli/internal/firebase"
	"github.com/ljupchokanevche/flutterfire-cli/internal/ui"
	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

var logoutForce bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved Firebase CI token",
	Long: `Remove the Firebase CI token from the credential store.

Tokens are saved by 'flutterfire configure --token ...' when token storage
is enabled in the tool config.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)

	logoutCmd.Flags().BoolVarP(&logoutForce, "force", "f", false,
		"Remove the token without asking")
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := firebase.NewTokenStore()
	if err != nil {
		return err
	}

	if _, err := store.Load(); err != nil {
		if errors.GetErrorCode(err) == errors.ErrCodeTokenNotFound {
			ui.ShowInfo("No saved Firebase token")
			return nil
		}
		return err
	}

	if !logoutForce {
		ok, err := ui.Confirm("Remove the saved Firebase token?", true)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	if err := store.Delete(); err != nil {
		return err
	}

	ui.ShowSuccess("Saved Firebase token removed")
	return nil
}
