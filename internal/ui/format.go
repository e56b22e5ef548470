package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"golang.org/x/term"
)

var (
	// Whether stdout is attached to a terminal
	interactive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Check if output supports colors
	supportsColor = interactive && os.Getenv("NO_COLOR") == ""

	// Color functions
	ColorSuccess  = colorFunc(ansi.Green)
	ColorError    = colorFunc(ansi.Red)
	ColorWarning  = colorFunc(ansi.Yellow)
	ColorInfo     = colorFunc(ansi.Cyan)
	ColorProgress = colorFunc(ansi.Blue)
	ColorBold     = colorFunc("default+b")
	ColorDim      = colorFunc("default+h")
)

// colorFunc returns a function that colors text if supported
func colorFunc(color string) func(string) string {
	return func(text string) string {
		if supportsColor {
			return ansi.Color(text, color)
		}
		return text
	}
}

// TerminalWidth returns the current width of the terminal attached to
// stdout, or 80 when stdout is not a terminal or the size is unavailable.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// ShowHeader displays a formatted header
func ShowHeader(title string) {
	width := 50
	if tw := TerminalWidth(); tw < width {
		width = tw
	}

	padding := (width - len(title) - 2) / 2
	if padding < 0 {
		padding = 0
	}
	remainder := width - 2 - padding - len(title)
	if remainder < 0 {
		remainder = 0
	}

	fmt.Println("\n+" + strings.Repeat("-", width-2) + "+")
	fmt.Printf("|%s%s%s|\n",
		strings.Repeat(" ", padding),
		ColorBold(title),
		strings.Repeat(" ", remainder),
	)
	fmt.Println("+" + strings.Repeat("-", width-2) + "+")
}

// ShowError displays a formatted error message
func ShowError(err error) {
	fmt.Printf("\n%s\n", ColorError("Error:"))

	message := err.Error()
	lines := strings.Split(message, "\n")

	for i, line := range lines {
		if i == 0 {
			fmt.Printf("  %s\n", line)
		} else {
			fmt.Printf("  %s\n", ColorDim(line))
		}
	}

	// Add helpful suggestions if applicable
	if suggestion := getSuggestion(message); suggestion != "" {
		fmt.Printf("\n  %s %s\n", ColorInfo("TIP:"), ColorInfo(suggestion))
	}
}

// ShowSuccess displays a success message
func ShowSuccess(message string) {
	fmt.Printf("%s %s\n", ColorSuccess("SUCCESS:"), message)
}

// ShowWarning displays a warning message
func ShowWarning(message string) {
	fmt.Printf("%s %s\n", ColorWarning("WARNING:"), ColorWarning(message))
}

// ShowInfo displays an info message
func ShowInfo(message string) {
	fmt.Printf("%s %s\n", ColorInfo("INFO:"), message)
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Printf("\n%s %s\n", ColorBold("▶"), ColorBold(title))
	fmt.Println(strings.Repeat("─", 50))
}

// PrintKeyValue prints a key-value pair in a formatted way
func PrintKeyValue(key, value string) {
	fmt.Printf("  %-20s %s\n", ColorDim(key+":"), value)
}

// Box draws a box around content
func Box(title, content string) {
	lines := strings.Split(content, "\n")
	maxLen := len(title) + 2

	for _, line := range lines {
		if w := VisualWidth(line); w > maxLen {
			maxLen = w
		}
	}

	borderLen := maxLen - len(title) - 1
	if borderLen < 0 {
		borderLen = 0
	}
	fmt.Printf("+- %s %s+\n",
		ColorBold(title),
		strings.Repeat("-", borderLen),
	)

	for _, line := range lines {
		fmt.Printf("| %s%s |\n",
			line,
			strings.Repeat(" ", maxLen-VisualWidth(line)),
		)
	}

	fmt.Printf("+%s+\n", strings.Repeat("-", maxLen+2))
}

// getSuggestion returns helpful suggestions based on error messages
func getSuggestion(error string) string {
	lower := strings.ToLower(error)

	switch {
	case strings.Contains(lower, "executable file not found"),
		strings.Contains(lower, "firebase cli not found"):
		return "Install the Firebase CLI: npm install -g firebase-tools"
	case strings.Contains(lower, "not a flutter"):
		return "Run this command from the root of your Flutter project"
	case strings.Contains(lower, "pubspec.yaml"):
		return "Ensure the directory contains a valid pubspec.yaml"
	case strings.Contains(lower, "parse firebase.json"),
		strings.Contains(lower, "malformed"):
		return "Fix or remove the malformed firebase.json and run the command again"
	case strings.Contains(lower, "permission denied"):
		return "Check the file permissions in your project directory"
	case strings.Contains(lower, "not logged in"),
		strings.Contains(lower, "token"):
		return "Run 'firebase login', or pass a CI token with --token"
	default:
		return ""
	}
}
