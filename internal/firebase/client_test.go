package firebase

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

// cliStub stands in for the firebase binary by re-running the test
// binary as a helper process with canned output.
type cliStub struct {
	calls    [][]string
	stdout   string
	stderr   string
	exitCode int
}

func (s *cliStub) runner() runnerFunc {
	return func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		s.calls = append(s.calls, append([]string{name}, arg...))

		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, arg...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"GO_HELPER_STDOUT="+s.stdout,
			"GO_HELPER_STDERR="+s.stderr,
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", s.exitCode),
		)
		return cmd
	}
}

// TestHelperProcess is not a real test. cliStub re-executes the test
// binary with this test selected so command output can be scripted.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	fmt.Fprint(os.Stdout, os.Getenv("GO_HELPER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("GO_HELPER_STDERR"))

	code := 0
	fmt.Sscanf(os.Getenv("GO_HELPER_EXIT_CODE"), "%d", &code)
	os.Exit(code)
}

func TestClientVersion(t *testing.T) {
	stub := &cliStub{stdout: "13.35.1\n"}
	client := NewClient(WithRunner(stub.runner()))

	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "13.35.1", version)

	require.Len(t, stub.calls, 1)
	assert.Equal(t, []string{"firebase", "--version"}, stub.calls[0])
}

func TestClientMissingBinary(t *testing.T) {
	client := NewClient(WithRunner(func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "firebase-binary-that-does-not-exist")
	}))

	_, err := client.Version(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFirebaseCLIMissing, errors.GetErrorCode(err))
}

func TestClientListProjects(t *testing.T) {
	stub := &cliStub{stdout: `{
		"status": "success",
		"result": [
			{"projectId": "zeta-app", "displayName": "Zeta", "projectNumber": "200"},
			{"projectId": "alpha-app", "displayName": "Alpha", "projectNumber": "100"}
		]
	}`}
	client := NewClient(WithRunner(stub.runner()))

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	// Sorted by project ID
	assert.Equal(t, "alpha-app", projects[0].ID)
	assert.Equal(t, "Alpha", projects[0].DisplayName)
	assert.Equal(t, "100", projects[0].Number)
	assert.Equal(t, "zeta-app", projects[1].ID)

	require.Len(t, stub.calls, 1)
	assert.Equal(t, []string{"firebase", "projects:list", "--json"}, stub.calls[0])
}

func TestClientListProjectsCLIFailure(t *testing.T) {
	stub := &cliStub{stderr: "Error: Failed to authenticate, have you run firebase login?\n", exitCode: 1}
	client := NewClient(WithRunner(stub.runner()))

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFirebaseCLIFailed, errors.GetErrorCode(err))
	assert.Contains(t, err.Error(), "Failed to authenticate")
}

func TestClientListProjectsMalformedOutput(t *testing.T) {
	stub := &cliStub{stdout: "All projects:\n  alpha-app\n"}
	client := NewClient(WithRunner(stub.runner()))

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFirebaseCLIFailed, errors.GetErrorCode(err))
}

func TestClientListProjectsErrorStatus(t *testing.T) {
	stub := &cliStub{stdout: `{"status": "error", "result": []}`}
	client := NewClient(WithRunner(stub.runner()))

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `status "error"`)
}

func TestClientAppendsToken(t *testing.T) {
	stub := &cliStub{stdout: "13.35.1\n"}
	client := NewClient(WithToken("ci-secret"), WithRunner(stub.runner()))

	_, err := client.Version(context.Background())
	require.NoError(t, err)

	require.Len(t, stub.calls, 1)
	assert.Equal(t, []string{"firebase", "--version", "--token", "ci-secret"}, stub.calls[0])
}

func TestClientErrorOmitsToken(t *testing.T) {
	stub := &cliStub{exitCode: 1}
	client := NewClient(WithToken("super-secret-token"), WithRunner(stub.runner()))

	_, err := client.Version(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFirebaseCLIFailed, errors.GetErrorCode(err))
	assert.NotContains(t, err.Error(), "super-secret-token")
	assert.Contains(t, err.Error(), "firebase --version failed")

	// The invocation itself still carries the token.
	require.Len(t, stub.calls, 1)
	assert.Contains(t, stub.calls[0], "--token")
}

func TestValidateProjectID(t *testing.T) {
	valid := []string{
		"my-app",
		"my-project-123",
		"a23456",
		"flutterfire-demo-app",
	}
	for _, id := range valid {
		assert.NoError(t, ValidateProjectID(id), "expected %q to be valid", id)
	}

	invalid := []string{
		"",
		"short",
		"My-Project",
		"1numeric-start",
		"-hyphen-start",
		"under_score",
		"has space",
		"a" + strings.Repeat("b", 30),
	}
	for _, id := range invalid {
		err := ValidateProjectID(id)
		require.Error(t, err, "expected %q to be rejected", id)
		assert.Equal(t, errors.ErrCodeValidationFailed, errors.GetErrorCode(err))
		assert.True(t, errors.IsRecoverable(err), "validation failures should re-prompt, not abort")
	}
}
