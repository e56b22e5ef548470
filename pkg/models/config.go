package models

// Config holds the CLI's own preferences, stored in the user's home
// directory. Per-project state lives in each project's firebase.json.
type Config struct {
	DefaultProject string   `yaml:"default_project,omitempty"` // Used when --project is not passed
	Platforms      []string `yaml:"platforms,omitempty"`       // Preselects the platform prompt
	TokenStore     bool     `yaml:"token_store"`               // Persist CI tokens between runs
}
