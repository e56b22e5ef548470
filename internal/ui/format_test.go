package ui

import (
	"errors"
	"os"
	"strings"
	"testing"
)

// captureStdout runs fn with stdout redirected to a pipe and returns what
// was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = oldStdout

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	return string(buf[:n])
}

func TestColorFunc(t *testing.T) {
	// Save original state
	originalSupportsColor := supportsColor
	defer func() {
		supportsColor = originalSupportsColor
	}()

	tests := []struct {
		name          string
		supportsColor bool
		input         string
		expectColored bool
	}{
		{
			name:          "with color support",
			supportsColor: true,
			input:         "test text",
			expectColored: true,
		},
		{
			name:          "without color support",
			supportsColor: false,
			input:         "test text",
			expectColored: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			supportsColor = tt.supportsColor

			funcs := []func(string) string{
				ColorSuccess,
				ColorError,
				ColorWarning,
				ColorInfo,
				ColorProgress,
				ColorBold,
				ColorDim,
			}

			for _, colorFunc := range funcs {
				result := colorFunc(tt.input)

				if tt.expectColored && result == tt.input {
					t.Error("Expected colored output, got plain text")
				}

				if !tt.expectColored && result != tt.input {
					t.Error("Expected plain text, got colored output")
				}
			}
		})
	}
}

func TestShowHeader(t *testing.T) {
	output := captureStdout(t, func() {
		ShowHeader("Test Title")
	})

	if !strings.Contains(output, "+") || !strings.Contains(output, "-") {
		t.Error("Header missing border")
	}
	if !strings.Contains(output, "Test Title") {
		t.Error("Header missing title")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 header lines, got %d: %q", len(lines), output)
	}
}

func TestShowHeaderLongTitle(t *testing.T) {
	long := strings.Repeat("x", 120)
	output := captureStdout(t, func() {
		ShowHeader(long)
	})

	if !strings.Contains(output, long) {
		t.Error("Header lost its title")
	}
}

func TestShowSuccess(t *testing.T) {
	output := captureStdout(t, func() {
		ShowSuccess("it worked")
	})

	if !strings.Contains(output, "SUCCESS:") || !strings.Contains(output, "it worked") {
		t.Errorf("unexpected success output: %q", output)
	}
}

func TestShowWarning(t *testing.T) {
	output := captureStdout(t, func() {
		ShowWarning("be careful")
	})

	if !strings.Contains(output, "WARNING:") || !strings.Contains(output, "be careful") {
		t.Errorf("unexpected warning output: %q", output)
	}
}

func TestShowInfo(t *testing.T) {
	output := captureStdout(t, func() {
		ShowInfo("heads up")
	})

	if !strings.Contains(output, "INFO:") || !strings.Contains(output, "heads up") {
		t.Errorf("unexpected info output: %q", output)
	}
}

func TestShowError(t *testing.T) {
	tests := []struct {
		name              string
		err               error
		expectSuggestion  bool
		suggestionKeyword string
	}{
		{
			name:              "missing firebase binary",
			err:               errors.New(`exec: "firebase": executable file not found in $PATH`),
			expectSuggestion:  true,
			suggestionKeyword: "firebase-tools",
		},
		{
			name:              "not a flutter project",
			err:               errors.New("directory is not a Flutter application"),
			expectSuggestion:  true,
			suggestionKeyword: "Flutter project",
		},
		{
			name:              "malformed config",
			err:               errors.New("failed to parse firebase.json: unexpected end of JSON input"),
			expectSuggestion:  true,
			suggestionKeyword: "Fix or remove",
		},
		{
			name:             "unknown error",
			err:              errors.New("something odd happened"),
			expectSuggestion: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureStdout(t, func() {
				ShowError(tt.err)
			})

			if !strings.Contains(output, tt.err.Error()) {
				t.Errorf("output %q missing error message", output)
			}

			hasTip := strings.Contains(output, "TIP:")
			if tt.expectSuggestion != hasTip {
				t.Errorf("suggestion presence = %v, want %v: %q", hasTip, tt.expectSuggestion, output)
			}
			if tt.expectSuggestion && !strings.Contains(output, tt.suggestionKeyword) {
				t.Errorf("output %q missing suggestion keyword %q", output, tt.suggestionKeyword)
			}
		})
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		w.Close()
		r.Close()
		os.Stdout = oldStdout
	}()

	// A pipe has no size; the fallback applies
	if got := TerminalWidth(); got != 80 {
		t.Errorf("TerminalWidth() = %d, want 80", got)
	}
}

func TestBox(t *testing.T) {
	output := captureStdout(t, func() {
		Box("Next steps", "run the app\ncheck the console")
	})

	for _, want := range []string{"Next steps", "run the app", "check the console", "+", "|"} {
		if !strings.Contains(output, want) {
			t.Errorf("box output %q missing %q", output, want)
		}
	}

	// Every content line closes at the same column
	var ends []int
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.HasPrefix(line, "|") {
			ends = append(ends, len(line))
		}
	}
	for _, e := range ends {
		if e != ends[0] {
			t.Errorf("box edges misaligned: %v", ends)
		}
	}
}

func TestPrintKeyValue(t *testing.T) {
	output := captureStdout(t, func() {
		PrintKeyValue("Project", "my-app")
	})

	if !strings.Contains(output, "Project:") || !strings.Contains(output, "my-app") {
		t.Errorf("unexpected key-value output: %q", output)
	}
}

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		message string
		keyword string
	}{
		{"executable file not found in $PATH", "firebase-tools"},
		{"path is not a flutter project", "Flutter project"},
		{"no pubspec.yaml found", "pubspec.yaml"},
		{"failed to parse firebase.json", "firebase.json"},
		{"open firebase.json: permission denied", "permissions"},
		{"request had invalid authentication token", "--token"},
		{"completely unrelated", ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := getSuggestion(tt.message)
			if tt.keyword == "" {
				if got != "" {
					t.Errorf("expected no suggestion, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.keyword) {
				t.Errorf("suggestion %q missing %q", got, tt.keyword)
			}
		})
	}
}
