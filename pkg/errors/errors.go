package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Flutter project errors (1xxx)
	ErrCodeProjectNotFound ErrorCode = "FFC1001"
	ErrCodeNotFlutterApp   ErrorCode = "FFC1002"
	ErrCodePubspecInvalid  ErrorCode = "FFC1003"

	// Configuration errors (2xxx)
	ErrCodeConfigParse    ErrorCode = "FFC2001"
	ErrCodeConfigInvalid  ErrorCode = "FFC2002"
	ErrCodeConfigNotFound ErrorCode = "FFC2003"

	// Firebase CLI errors (3xxx)
	ErrCodeFirebaseCLIMissing ErrorCode = "FFC3001"
	ErrCodeFirebaseCLIFailed  ErrorCode = "FFC3002"

	// Credential errors (4xxx)
	ErrCodeTokenNotFound ErrorCode = "FFC4001"
	ErrCodeTokenStorage  ErrorCode = "FFC4002"

	// File system errors (5xxx)
	ErrCodeFileNotFound   ErrorCode = "FFC5001"
	ErrCodeFilePermission ErrorCode = "FFC5002"
	ErrCodeFileOperation  ErrorCode = "FFC5003"

	// Validation errors (6xxx)
	ErrCodeValidationFailed ErrorCode = "FFC6001"
	ErrCodeInvalidInput     ErrorCode = "FFC6002"

	// System errors (9xxx)
	ErrCodeInternal ErrorCode = "FFC9001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // System failure, requires immediate attention
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed, but system continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Recoverable bool
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Severity:    SeverityError,
		Context:     make(map[string]interface{}),
		Stack:       captureStack(),
		Timestamp:   time.Now(),
		Recoverable: false,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit some properties
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// AsRecoverable marks the error as recoverable
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// ParseError creates an error for an unparseable configuration file.
// Parse failures are fatal: the run stops and the file is left untouched.
func ParseError(path string, cause error) *AppError {
	return Wrap(cause, ErrCodeConfigParse, fmt.Sprintf("failed to parse %s", path)).
		WithContext("path", path).
		WithSuggestions(
			"Fix or remove the malformed file and run the command again",
			"Validate the file with a JSON linter",
		)
}

// IOError creates an error for a failed file operation
func IOError(op, path string, cause error) *AppError {
	return Wrap(cause, ErrCodeFileOperation, fmt.Sprintf("failed to %s %s", op, path)).
		WithContext("path", path).
		WithSuggestions(
			"Check that the path exists and is accessible",
			"Check the file permissions in your project directory",
		)
}

// NotFlutterAppError creates an error for a directory that holds no
// Flutter application
func NotFlutterAppError(dir string) *AppError {
	return New(ErrCodeNotFlutterApp, fmt.Sprintf("%s is not a Flutter application directory", dir)).
		WithContext("directory", dir).
		WithSuggestions(
			"Run this command from the root of your Flutter project",
			"Pass the project directory as an argument",
		)
}

// FirebaseCLIError creates an error for a failed Firebase CLI invocation
func FirebaseCLIError(message string, cause error) *AppError {
	err := New(ErrCodeFirebaseCLIFailed, message)
	err.Cause = cause

	if cause != nil && strings.Contains(cause.Error(), "executable file not found") {
		err.Code = ErrCodeFirebaseCLIMissing
		_ = err.WithSuggestions(
			"Install the Firebase CLI: npm install -g firebase-tools",
			"Ensure the firebase binary is on your PATH",
		)
	}

	return err
}

// ValidationError creates a validation error
func ValidationError(field string, value interface{}, reason string) *AppError {
	return New(ErrCodeValidationFailed, fmt.Sprintf("Validation failed for %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value).
		WithSeverity(SeverityWarning).
		AsRecoverable()
}

// IsRecoverable checks if an error is recoverable
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
