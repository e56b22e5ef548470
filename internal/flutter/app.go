package flutter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"gopkg.in/yaml.v3"

	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

// PubspecFileName marks the root of a Dart or Flutter package
const PubspecFileName = "pubspec.yaml"

// Pubspec is the subset of pubspec.yaml this tool reads
type Pubspec struct {
	Name         string                 `yaml:"name"`
	Description  string                 `yaml:"description"`
	Environment  map[string]string      `yaml:"environment"`
	Dependencies map[string]interface{} `yaml:"dependencies"`
}

// DependsOnFlutter reports whether the package declares the flutter SDK
// dependency that distinguishes an application from a plain Dart package
func (p *Pubspec) DependsOnFlutter() bool {
	_, ok := p.Dependencies["flutter"]
	return ok
}

// App is a Flutter application rooted at Dir
type App struct {
	Name      string
	Dir       string
	Platforms []string
}

// LoadPubspec reads and parses dir/pubspec.yaml
func LoadPubspec(dir string) (*Pubspec, error) {
	path := filepath.Join(dir, PubspecFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeProjectNotFound,
				fmt.Sprintf("no %s in %s", PubspecFileName, dir))
		}
		return nil, errors.IOError("read", path, err)
	}

	var pubspec Pubspec
	if err := yaml.Unmarshal(data, &pubspec); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePubspecInvalid,
			fmt.Sprintf("failed to parse %s", path))
	}
	if pubspec.Name == "" {
		return nil, errors.New(errors.ErrCodePubspecInvalid,
			fmt.Sprintf("%s has no package name", path))
	}

	return &pubspec, nil
}

// DetectPlatforms returns the platform directories present under dir, in
// display order
func DetectPlatforms(dir string) []string {
	var platforms []string
	for _, p := range Platforms {
		if info, err := os.Stat(filepath.Join(dir, p)); err == nil && info.IsDir() {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

// RepoRoot returns the root of the git repository enclosing dir. The
// second return is false when dir is not inside a repository.
func RepoRoot(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", false
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", false
	}

	return worktree.Filesystem.Root(), true
}

// FindApp locates the Flutter application enclosing dir. Relative dir
// arguments, including ones like ../app, are resolved against the working
// directory. The search walks upward until it finds a pubspec.yaml that
// depends on flutter, stopping at the git repository root when inside
// one, otherwise at the filesystem root. Plain Dart packages along the
// way are skipped; an unreadable or malformed pubspec stops the search
// with an error.
func FindApp(dir string) (*App, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid directory")
	}

	boundary, _ := RepoRoot(start)

	current := start
	for {
		pubspec, err := LoadPubspec(current)
		switch {
		case err == nil && pubspec.DependsOnFlutter():
			return &App{
				Name:      pubspec.Name,
				Dir:       current,
				Platforms: DetectPlatforms(current),
			}, nil
		case err != nil && errors.GetErrorCode(err) != errors.ErrCodeProjectNotFound:
			return nil, err
		}

		if current == boundary {
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return nil, errors.NotFlutterAppError(start)
}
