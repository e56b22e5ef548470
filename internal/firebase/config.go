package firebase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ljupchokanevche/flutterfire-cli/internal/common"
	"github.com/ljupchokanevche/flutterfire-cli/internal/flutter"
	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

const (
	// ConfigFileName is the project-level configuration file shared with
	// the rest of the Firebase toolchain
	ConfigFileName = "firebase.json"

	// flutterKey is the reserved top-level key this tool owns
	flutterKey = "flutter"
)

// Per-platform scaffold namespaces
const (
	buildConfigurationsKey = "buildConfigurations"
	targetsKey             = "targets"
	defaultConfigKey       = "default"
)

// scaffoldPlatforms are the platforms that receive a scaffold entry in a
// fresh configuration. Build configurations and targets are Xcode concepts,
// so only the Apple platforms appear here.
var scaffoldPlatforms = []string{flutter.PlatformIOS, flutter.PlatformMacOS}

// ScaffoldedPlatform reports whether platform p gets a scaffold entry
// under the reserved key.
func ScaffoldedPlatform(p string) bool {
	for _, sp := range scaffoldPlatforms {
		if p == sp {
			return true
		}
	}
	return false
}

// ConfigPath returns the firebase.json path for a project directory
func ConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ConfigFileName)
}

// DefaultConfig returns a fresh scaffold for the reserved key: one entry
// per scaffolded platform, each holding empty build-configuration, target,
// and default namespaces. The maps are newly allocated on every call.
func DefaultConfig() map[string]interface{} {
	platforms := make(map[string]interface{}, len(scaffoldPlatforms))
	for _, p := range scaffoldPlatforms {
		platforms[p] = map[string]interface{}{
			buildConfigurationsKey: map[string]interface{}{},
			targetsKey:             map[string]interface{}{},
			defaultConfigKey:       map[string]interface{}{},
		}
	}
	return platforms
}

// EnsureConfig makes sure the project's firebase.json carries the reserved
// Flutter key. A missing file is created with only the scaffold; an
// existing file is read once and rewritten once with the scaffold merged in
// next to its other keys. When the reserved key is already present,
// whatever its shape, the file is left completely untouched. Malformed
// JSON stops the run without writing anything.
func EnsureConfig(projectDir string) error {
	path, err := common.CleanPath(ConfigPath(projectDir))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid project directory")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := map[string]interface{}{flutterKey: DefaultConfig()}
			return writeConfig(path, doc)
		}
		return errors.IOError("read", path, err)
	}

	doc, err := parseConfig(path, data)
	if err != nil {
		return err
	}

	// The reserved key is never overwritten or deep-merged
	if v, ok := doc[flutterKey]; ok && v != nil {
		return nil
	}

	doc[flutterKey] = DefaultConfig()
	return writeConfig(path, doc)
}

// ReadConfig loads and parses an existing firebase.json. A missing file
// surfaces ErrCodeConfigNotFound so callers can tell "not configured" from
// a real failure.
func ReadConfig(projectDir string) (map[string]interface{}, error) {
	path, err := common.CleanPath(ConfigPath(projectDir))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid project directory")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeConfigNotFound,
				fmt.Sprintf("no %s found in %s", ConfigFileName, projectDir))
		}
		return nil, errors.IOError("read", path, err)
	}

	return parseConfig(path, data)
}

// PlatformScaffold summarizes one platform entry under the reserved key
type PlatformScaffold struct {
	BuildConfigurations int
	Targets             int
	Defaults            int
}

// FlutterPlatforms returns the per-platform scaffold recorded in doc, or
// nil when the reserved key is absent or not an object. Entries that are
// not objects themselves are skipped.
func FlutterPlatforms(doc map[string]interface{}) map[string]PlatformScaffold {
	block, ok := doc[flutterKey].(map[string]interface{})
	if !ok {
		return nil
	}

	platforms := make(map[string]PlatformScaffold, len(block))
	for name, v := range block {
		entry, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		platforms[name] = PlatformScaffold{
			BuildConfigurations: submapLen(entry, buildConfigurationsKey),
			Targets:             submapLen(entry, targetsKey),
			Defaults:            submapLen(entry, defaultConfigKey),
		}
	}
	return platforms
}

func submapLen(entry map[string]interface{}, key string) int {
	m, _ := entry[key].(map[string]interface{})
	return len(m)
}

// parseConfig decodes firebase.json bytes into a document map. Anything
// that is not a JSON object is a parse failure.
func parseConfig(path string, data []byte) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ParseError(path, err)
	}
	if doc == nil {
		return nil, errors.ParseError(path, fmt.Errorf("document is null, expected an object"))
	}
	return doc, nil
}

// writeConfig serializes doc the way the Firebase toolchain formats the
// file: two-space indentation and a trailing newline.
func writeConfig(path string, doc map[string]interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to serialize configuration")
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, common.FilePermissionNormal); err != nil {
		return errors.IOError("write", path, err)
	}
	return nil
}
