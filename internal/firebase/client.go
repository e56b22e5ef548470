package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

const (
	// firebaseBinary is the npm-installed Firebase CLI executable.
	firebaseBinary = "firebase"

	// EnvFirebaseToken carries a CI token, matching the variable the
	// Firebase CLI itself reads.
	EnvFirebaseToken = "FIREBASE_TOKEN"
)

// runnerFunc creates the exec.Cmd used to invoke the Firebase CLI.
// Tests swap it out so no real binary is needed.
type runnerFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// Client drives the locally installed Firebase CLI.
type Client struct {
	binary string
	token  string
	runner runnerFunc
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken attaches a CI token to every CLI invocation.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithRunner sets a custom command constructor for testing.
func WithRunner(fn runnerFunc) ClientOption {
	return func(c *Client) {
		c.runner = fn
	}
}

// NewClient creates a Firebase CLI client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		binary: firebaseBinary,
		runner: exec.CommandContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Project is one entry reported by `firebase projects:list`.
type Project struct {
	ID          string `json:"projectId"`
	DisplayName string `json:"displayName"`
	Number      string `json:"projectNumber"`
}

// listResponse mirrors the JSON envelope the CLI prints with --json.
type listResponse struct {
	Status string    `json:"status"`
	Result []Project `json:"result"`
}

// Version returns the installed Firebase CLI version.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListProjects returns the Firebase projects the authenticated account
// can access, sorted by project ID.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	out, err := c.run(ctx, "projects:list", "--json")
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, errors.FirebaseCLIError("unexpected projects:list output", err)
	}

	if resp.Status != "success" {
		return nil, errors.FirebaseCLIError(fmt.Sprintf("projects:list returned status %q", resp.Status), nil)
	}

	sort.Slice(resp.Result, func(i, j int) bool {
		return resp.Result[i].ID < resp.Result[j].ID
	})

	return resp.Result, nil
}

// run invokes the Firebase CLI and returns its stdout. The token, when
// set, is passed with --token so CI runs need no login session.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	// display feeds user-facing error text and must not carry the token.
	display := strings.Join(args, " ")
	if c.token != "" {
		args = append(args, "--token", c.token)
	}

	cmd := c.runner(ctx, c.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = fmt.Sprintf("%s %s failed", c.binary, display)
		}
		return nil, errors.FirebaseCLIError(message, err)
	}

	return stdout.Bytes(), nil
}

// ResolveToken picks the CI token to use: an explicit flag value wins,
// then the FIREBASE_TOKEN environment variable, then the credential
// store. Returns "" when no token is available, which means the CLI
// falls back to its own login session.
func ResolveToken(explicit string, store *TokenStore) string {
	if explicit != "" {
		return explicit
	}

	if env := os.Getenv(EnvFirebaseToken); env != "" {
		return env
	}

	if store != nil {
		if token, err := store.Load(); err == nil {
			return token
		}
	}

	return ""
}

// Project IDs are 6-30 characters of lowercase letters, digits and
// hyphens, and start with a letter.
var projectIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{5,29}$`)

// ValidateProjectID checks the Firebase project ID format before any
// round trip to the CLI.
func ValidateProjectID(id string) error {
	if projectIDPattern.MatchString(id) {
		return nil
	}
	return errors.ValidationError("project-id", id,
		"must be 6-30 characters of lowercase letters, digits and hyphens, starting with a letter")
}
