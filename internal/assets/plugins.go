package assets

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/styleguide/internal/bundleconfig"
)

// aliasPlugin rewrites imports of an aliased package, or a path inside it,
// to the aliased directory.
func aliasPlugin(alias map[string]string) api.Plugin {
	return api.Plugin{
		Name: "styleguide-alias",
		Setup: func(build api.PluginBuild) {
			names := make([]string, 0, len(alias))
			for name := range alias {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				dir := alias[name]
				filter := "^" + regexp.QuoteMeta(name) + "(/.*)?$"

				build.OnResolve(api.OnResolveOptions{Filter: filter}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					target := dir + strings.TrimPrefix(args.Path, name)
					result := build.Resolve(target, api.ResolveOptions{
						Importer:   args.Importer,
						ResolveDir: args.ResolveDir,
						Kind:       args.Kind,
					})
					if len(result.Errors) > 0 {
						return api.OnResolveResult{Errors: result.Errors}, nil
					}
					return api.OnResolveResult{
						Path:      result.Path,
						Namespace: result.Namespace,
						External:  result.External,
					}, nil
				})
			}
		},
	}
}

// rulesPlugin registers one load callback per rule in order, so the first
// rule matching a file decides its loader.
func rulesPlugin(rules []bundleconfig.Rule) api.Plugin {
	return api.Plugin{
		Name: "styleguide-rules",
		Setup: func(build api.PluginBuild) {
			for _, rule := range rules {
				loader, ok := ruleLoader(rule)
				if !ok {
					log.Debug().Str("test", string(rule.Test)).Msg("no esbuild loader for rule, skipping")
					continue
				}

				build.OnLoad(api.OnLoadOptions{Filter: string(rule.Test), Namespace: "file"}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					if !ruleApplies(rule, args.Path) {
						return api.OnLoadResult{}, nil
					}

					data, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					contents := string(data)
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   loader,
					}, nil
				})
			}
		},
	}
}

// ruleLoader maps the stage of a rule pipeline that reads the source to an
// esbuild loader. Stages run last to first.
func ruleLoader(rule bundleconfig.Rule) (api.Loader, bool) {
	for i := len(rule.Use) - 1; i >= 0; i-- {
		stage := rule.Use[i]
		switch stage.Name {
		case "json":
			return api.LoaderJSON, true
		case "css":
			if v, ok := stage.Option("modules"); ok {
				if modules, _ := v.(bool); modules {
					return api.LoaderLocalCSS, true
				}
			}
			return api.LoaderCSS, true
		case "babel":
			return api.LoaderJSX, true
		case "url", "file":
			return api.LoaderFile, true
		case "raw":
			return api.LoaderText, true
		}
	}
	return api.LoaderNone, false
}

func ruleApplies(rule bundleconfig.Rule, path string) bool {
	if !rule.Test.MatchString(path) {
		return false
	}
	if len(rule.Include) > 0 && !withinAny(rule.Include, path) {
		return false
	}
	return !withinAny(rule.Exclude, path)
}

func withinAny(dirs []string, path string) bool {
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if path == dir || strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
