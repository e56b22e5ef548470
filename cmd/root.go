package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ljupchokanevche/flutterfire-cli/internal/firebase"
	"github.com/ljupchokanevche/flutterfire-cli/internal/ui"
)

var (
	flagProject string
	flagToken   string

	rootCmd = &cobra.Command{
		Use:   "flutterfire",
		Short: "Configure Flutter apps to use Firebase",
		Long: `FlutterFire CLI - A tool for connecting Flutter applications to Firebase.

It inspects your Flutter project, lets you pick the Firebase project and
platforms to target, and registers the FlutterFire build configuration in
the project's firebase.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "Firebase project ID to use")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Firebase CI token (overrides FIREBASE_TOKEN)")

	_ = viper.BindPFlag("default_project", rootCmd.PersistentFlags().Lookup("project"))
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".flutterfire"))
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay for now
	}
}

// tokenStore opens the credential store. Token storage is best effort:
// commands that can work without it get nil when it cannot initialize.
func tokenStore() *firebase.TokenStore {
	store, err := firebase.NewTokenStore()
	if err != nil {
		return nil
	}
	return store
}
