package assets

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"maps"
	"path/filepath"
	"sync"

	"github.com/wolfeidau/styleguide/internal/bundleconfig"
)

//go:embed default.html
var defaultTemplate string

var (
	// ErrBuildFailed indicates esbuild reported errors
	ErrBuildFailed = errors.New("esbuild failed with errors")
	// ErrNoEntryPoints indicates the config has no entry point esbuild can load
	ErrNoEntryPoints = errors.New("no entry points found")
	// ErrNotBuilt indicates metadata was requested before a build
	ErrNotBuilt = errors.New("assets not built yet, call Build() first")
)

type BuildMetadata struct {
	Outputs map[string]OutputInfo `json:"outputs"`
}

type OutputInfo struct {
	EntryPoint string       `json:"entryPoint"`
	Imports    []ImportInfo `json:"imports"`
	CSSBundle  string       `json:"cssBundle"`
}

type ImportInfo struct {
	Path string `json:"path"`
}

// Pipeline runs esbuild for a bundler config and renders the style guide page
type Pipeline struct {
	bundle   *bundleconfig.Config
	config   Config
	metadata *BuildMetadata
	tmpl     *template.Template
	mu       sync.RWMutex
}

// New creates a new asset pipeline for the given bundler config. The page
// template is taken from the html plugin, or a built in page when unset.
func New(bundle *bundleconfig.Config, config Config) (*Pipeline, error) {
	return NewWithFuncs(bundle, config, nil)
}

// NewWithFuncs creates a new asset pipeline and loads the page template with custom functions
func NewWithFuncs(bundle *bundleconfig.Config, config Config, customFuncs template.FuncMap) (*Pipeline, error) {
	p := &Pipeline{
		bundle: bundle,
		config: config,
	}

	html, ok := bundle.Plugin(bundleconfig.PluginHTML)
	if !ok {
		return p, nil
	}

	funcs := template.FuncMap{
		"marshal": marshal,
		"safe": func(s string) template.HTML {
			return template.HTML(s) //nolint:gosec
		},
	}

	// Merge custom functions
	maps.Copy(funcs, customFuncs)

	templatePath, _ := html.Options["template"].(string)

	var (
		tmpl *template.Template
		err  error
	)
	if templatePath == "" {
		tmpl, err = template.New("default.html").Funcs(funcs).Parse(defaultTemplate)
	} else {
		tmpl, err = template.New(filepath.Base(templatePath)).Funcs(funcs).ParseFiles(templatePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load page template: %w", err)
	}
	p.tmpl = tmpl
	return p, nil
}

func marshal(value any) string {
	buf := new(bytes.Buffer)

	if err := json.NewEncoder(buf).Encode(value); err != nil {
		panic(errors.New("context can only be json serializable"))
	}

	return buf.String()
}
