package bundleconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	// BundleFilename is the bundle location relative to the style guide directory.
	BundleFilename = "build/bundle.js"
	// HotClientModule is the dev server client prepended to development entries.
	HotClientModule = "webpack-hot-middleware/client"

	localIdentName = "ReactStyleguidist-[name]__[local]"
)

// Builder assembles bundler configs for a style guide installed at Root.
type Builder struct {
	Root string
	// LogWriter receives the verbose config rendering.
	LogWriter io.Writer
}

// New creates a Builder rooted at root which renders to stderr.
func New(root string) *Builder {
	return &Builder{
		Root:      root,
		LogWriter: os.Stderr,
	}
}

// Build assembles the bundler config for env from settings.
//
// The base config is merged with the environment overlay, then passed
// through settings.UpdateConfig when set. The final config is validated
// before it is rendered (when settings.Verbose is set) and returned.
func (b *Builder) Build(settings Settings, env Environment) (*Config, error) {
	if _, err := ParseEnvironment(string(env)); err != nil {
		return nil, err
	}

	layout, err := ResolveLayout(b.Root)
	if err != nil {
		return nil, err
	}

	cfg := baseConfig(layout, settings, env)
	entryScript := filepath.Join(layout.SourceDir, "index")

	if err := Merge(cfg, environmentOverlay(layout, env, entryScript)); err != nil {
		return nil, err
	}

	if settings.UpdateConfig != nil {
		updated, err := settings.UpdateConfig(cfg, env)
		if err != nil {
			return nil, fmt.Errorf("update hook failed: %w", err)
		}
		if updated == nil {
			return nil, ErrNilConfig
		}
		cfg = updated
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	log.Debug().Str("env", string(env)).Int("rules", len(cfg.Module.Rules)).
		Int("plugins", len(cfg.Plugins)).Msg("bundler config built")

	if settings.Verbose {
		w := b.LogWriter
		if w == nil {
			w = os.Stderr
		}
		if err := renderVerbose(w, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func baseConfig(layout *Layout, settings Settings, env Environment) *Config {
	return &Config{
		Output: Output{
			Path:     settings.StyleguideDir,
			Filename: BundleFilename,
		},
		Resolve: Resolve{
			Extensions: []string{"", ".js", ".jsx"},
			Modules: []string{
				layout.SourceDir,
				layout.NodeModulesDir,
				"node_modules",
			},
			Alias: map[string]string{
				codeMirrorPackage: layout.CodeMirrorDir,
			},
		},
		ResolveLoader: ResolveLoader{
			Modules: []string{
				layout.LoadersDir,
				layout.NodeModulesDir,
				"node_modules",
			},
			ModuleExtensions: []string{"-loader", ".loader"},
		},
		Plugins: []Plugin{
			{
				Name: PluginHTML,
				Options: map[string]any{
					"title":    settings.Title,
					"template": settings.Template,
					"inject":   true,
				},
			},
			{
				Name: PluginDefine,
				Options: map[string]any{
					"definitions": map[string]any{
						"process.env.NODE_ENV": fmt.Sprintf("%q", string(env)),
					},
				},
			},
		},
		Module: Module{
			Rules: []Rule{
				{
					// TODO: drop once entities ships a fixed JSON file (https://github.com/fb55/entities/pull/26)
					Test:    `node_modules[/\\]entities[/\\].*\.json$`,
					Include: []string{layout.NodeModulesDir},
					Use:     []Loader{{Name: "json"}},
				},
				{
					Test:    `\.css$`,
					Include: []string{layout.CodeMirrorDir, layout.HighlightJSDir},
					Use:     []Loader{{Name: "style"}, {Name: "css"}},
				},
				{
					Test:    `\.css$`,
					Include: []string{layout.SourceDir},
					Use: []Loader{
						{Name: "style"},
						{Name: "css", Options: map[string]any{
							"modules":        true,
							"importLoaders":  1,
							"localIdentName": localIdentName,
						}},
					},
				},
			},
			NoParse: []Pattern{`babel-standalone`},
		},
	}
}

func environmentOverlay(layout *Layout, env Environment, entryScript string) *Config {
	if env == Production {
		return &Config{
			Entry:   []string{entryScript},
			Devtool: "",
			Debug:   false,
			Cache:   false,
			Plugins: []Plugin{
				{Name: PluginOccurrenceOrder},
				{Name: PluginDedupe},
				{
					Name: PluginUglify,
					Options: map[string]any{
						"compress": map[string]any{"warnings": false},
						"output":   map[string]any{"comments": false},
						"mangle":   false,
					},
				},
			},
			Module: Module{
				Rules: []Rule{scriptRule(layout, env, "es2015", "react", "stage-0")},
			},
		}
	}

	return &Config{
		Entry:   []string{HotClientModule, entryScript},
		Debug:   true,
		Cache:   true,
		Devtool: "eval",
		Stats: &Stats{
			Colors:  true,
			Reasons: true,
		},
		Plugins: []Plugin{
			{Name: PluginHotModuleReplacement},
			{Name: PluginNoErrors},
		},
		Module: Module{
			Rules: []Rule{scriptRule(layout, env, "es2015", "react", "stage-0", "react-hmre")},
		},
	}
}

// scriptRule transpiles the style guide sources. The environment is handed
// to the transpiler as envName rather than through process variables.
func scriptRule(layout *Layout, env Environment, presets ...string) Rule {
	return Rule{
		Test:    `\.jsx?$`,
		Include: []string{layout.SourceDir},
		Use: []Loader{{
			Name: "babel",
			Options: map[string]any{
				"babelrc": false,
				"envName": string(env),
				"presets": presets,
			},
		}},
	}
}
