package bundleconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	codeMirrorPackage  = "codemirror"
	highlightJSPackage = "highlight.js"
)

// Layout holds the filesystem locations the config refers to.
type Layout struct {
	Root           string
	SourceDir      string
	NodeModulesDir string
	LoadersDir     string
	CodeMirrorDir  string
	HighlightJSDir string
}

// ResolveLayout derives the source directories from root and locates the
// packages the style guide depends on.
func ResolveLayout(root string) (*Layout, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	codeMirrorDir, err := ResolvePackage(root, codeMirrorPackage)
	if err != nil {
		return nil, err
	}
	highlightJSDir, err := ResolvePackage(root, highlightJSPackage)
	if err != nil {
		return nil, err
	}

	return &Layout{
		Root:           root,
		SourceDir:      filepath.Join(root, "src"),
		NodeModulesDir: filepath.Join(root, "node_modules"),
		LoadersDir:     filepath.Join(root, "loaders"),
		CodeMirrorDir:  codeMirrorDir,
		HighlightJSDir: highlightJSDir,
	}, nil
}

type packageManifest struct {
	Name string `json:"name"`
}

// ResolvePackage returns the install directory of an npm package by locating
// its package.json in node_modules, walking up from dir. The manifest is
// used instead of the main module so a directory is returned, not a file.
func ResolvePackage(dir, name string) (string, error) {
	start := dir
	for {
		manifestPath := filepath.Join(dir, "node_modules", name, "package.json")
		data, err := os.ReadFile(manifestPath)
		if err == nil {
			var manifest packageManifest
			if err := json.Unmarshal(data, &manifest); err != nil {
				return "", fmt.Errorf("failed to parse %s: %w", manifestPath, err)
			}
			if manifest.Name != "" && manifest.Name != name {
				log.Warn().Str("package", name).Str("manifest", manifestPath).Str("name", manifest.Name).
					Msg("package manifest name does not match")
			}
			return filepath.Dir(manifestPath), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read %s: %w", manifestPath, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &PackageResolutionError{Package: name, Root: start}
		}
		dir = parent
	}
}
