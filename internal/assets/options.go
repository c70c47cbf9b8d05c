package assets

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/styleguide/internal/bundleconfig"
)

// BuildOptions translates a bundler config into esbuild options. Plugins and
// settings esbuild has no equivalent for are ignored.
func BuildOptions(cfg *bundleconfig.Config, workingDir string) api.BuildOptions {
	opts := api.BuildOptions{
		EntryPoints:       entryPoints(cfg.Entry),
		Bundle:            true,
		Write:             true,
		Metafile:          true,
		Outfile:           cfg.Output.Filename,
		AbsWorkingDir:     workingDir,
		Format:            api.FormatIIFE,
		ResolveExtensions: resolveExtensions(cfg.Resolve.Extensions),
		NodePaths:         nodePaths(cfg.Resolve.Modules),
		Sourcemap:         sourceMap(cfg.Devtool),
		Target:            target(cfg.Module.Rules),
		LogLevel:          api.LogLevelSilent,
		Plugins: []api.Plugin{
			aliasPlugin(cfg.Resolve.Alias),
			rulesPlugin(cfg.Module.Rules),
		},
	}

	if cfg.Stats != nil {
		opts.LogLevel = cond(cfg.Stats.Reasons, api.LogLevelInfo, api.LogLevelWarning)
		opts.Color = cond(cfg.Stats.Colors, api.ColorAlways, api.ColorIfTerminal)
	}

	if define, ok := cfg.Plugin(bundleconfig.PluginDefine); ok {
		if definitions, ok := define.Options["definitions"].(map[string]any); ok {
			opts.Define = make(map[string]string, len(definitions))
			for key, value := range definitions {
				if s, ok := value.(string); ok {
					opts.Define[key] = s
				}
			}
		}
	}

	if uglify, ok := cfg.Plugin(bundleconfig.PluginUglify); ok {
		mangle, _ := uglify.Options["mangle"].(bool)
		opts.MinifyWhitespace = true
		opts.MinifySyntax = true
		opts.MinifyIdentifiers = mangle
		opts.LegalComments = api.LegalCommentsNone
	}

	return opts
}

// entryPoints drops bare module specifiers such as dev server clients which
// only exist when served by a dev server.
func entryPoints(entries []string) []string {
	var out []string
	for _, entry := range entries {
		if filepath.IsAbs(entry) || strings.HasPrefix(entry, ".") {
			out = append(out, entry)
			continue
		}
		log.Debug().Str("entry", entry).Msg("skipping dev server entry")
	}
	return out
}

func resolveExtensions(extensions []string) []string {
	out := []string{}
	for _, ext := range extensions {
		if strings.HasPrefix(ext, ".") {
			out = append(out, ext)
		}
	}
	// esbuild needs to know about the files it bundles beyond scripts
	for _, ext := range []string{".css", ".json"} {
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

// nodePaths keeps absolute module directories, esbuild already walks up the
// node_modules hierarchy on its own.
func nodePaths(modules []string) []string {
	var out []string
	for _, dir := range modules {
		if filepath.IsAbs(dir) {
			out = append(out, dir)
		}
	}
	return out
}

func sourceMap(devtool string) api.SourceMap {
	switch {
	case devtool == "":
		return api.SourceMapNone
	case devtool == "eval", strings.Contains(devtool, "inline"), strings.HasPrefix(devtool, "eval-"):
		return api.SourceMapInline
	default:
		return api.SourceMapLinked
	}
}

// target picks the language level from the transpiler presets.
func target(rules []bundleconfig.Rule) api.Target {
	for _, rule := range rules {
		for _, loader := range rule.Use {
			if loader.Name != "babel" {
				continue
			}
			for _, preset := range presets(loader) {
				if preset == "es2015" {
					return api.ES2015
				}
			}
		}
	}
	return api.ESNext
}

func presets(loader bundleconfig.Loader) []string {
	switch v := loader.Options["presets"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, p := range v {
			if s, ok := p.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
