package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/styleguide/internal/bundleconfig"
)

// Build runs esbuild with the configured settings, loads metadata and writes
// the style guide page
func (p *Pipeline) Build() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	outDir, err := p.outputDir()
	if err != nil {
		return err
	}

	opts := BuildOptions(p.bundle, outDir)
	if len(opts.EntryPoints) == 0 {
		return ErrNoEntryPoints
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Info().Strs("entrypoints", opts.EntryPoints).Str("outdir", outDir).Msg("Building assets")

	result := api.Build(opts)

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			ev := log.Error().Str("error", msg.Text)
			if msg.Location != nil {
				ev = ev.Str("file", msg.Location.File).Int("line", msg.Location.Line)
			}
			ev.Msg("Build error")
		}
		return ErrBuildFailed
	}

	for _, msg := range result.Warnings {
		log.Warn().Str("warning", msg.Text).Msg("Build warning")
	}

	for _, file := range result.OutputFiles {
		log.Info().Str("file", file.Path).Msg("Built file")
	}

	// Write metafile
	metafilePath := filepath.Join(outDir, filepath.Dir(p.bundle.Output.Filename), p.config.MetafileName)
	if err := os.WriteFile(metafilePath, []byte(result.Metafile), 0o600); err != nil {
		return err
	}

	// Parse and cache metadata
	var metadata BuildMetadata
	if err := json.Unmarshal([]byte(result.Metafile), &metadata); err != nil {
		return err
	}
	p.metadata = &metadata

	return p.writePage(outDir)
}

// LoadScripts returns the ordered list of scripts and stylesheets produced
// for the entry points, relative to the style guide directory
func (p *Pipeline) LoadScripts() ([]string, []string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.loadScripts()
}

func (p *Pipeline) loadScripts() ([]string, []string, error) {
	if p.metadata == nil {
		return nil, nil, ErrNotBuilt
	}

	outputs := make([]string, 0, len(p.metadata.Outputs))
	for outputPath := range p.metadata.Outputs {
		outputs = append(outputs, outputPath)
	}
	sort.Strings(outputs)

	scripts := []string{}
	styles := []string{}
	visited := make(map[string]bool)

	for _, outputPath := range outputs {
		info := p.metadata.Outputs[outputPath]
		if info.EntryPoint == "" || visited[outputPath] {
			continue
		}
		visited[outputPath] = true

		if strings.HasSuffix(outputPath, ".css") {
			styles = appendUnique(styles, filepath.ToSlash(outputPath))
			continue
		}

		scripts = append(scripts, filepath.ToSlash(outputPath))
		p.addDependencies(info, &scripts, visited)

		if info.CSSBundle != "" {
			styles = appendUnique(styles, filepath.ToSlash(info.CSSBundle))
		}
	}

	return scripts, styles, nil
}

func appendUnique(values []string, value string) []string {
	if slices.Contains(values, value) {
		return values
	}
	return append(values, value)
}

func (p *Pipeline) addDependencies(output OutputInfo, scripts *[]string, visited map[string]bool) {
	for _, imp := range output.Imports {
		if !visited[imp.Path] {
			visited[imp.Path] = true
			*scripts = append(*scripts, filepath.ToSlash(imp.Path))

			if chunkInfo, exists := p.metadata.Outputs[imp.Path]; exists {
				p.addDependencies(chunkInfo, scripts, visited)
			}
		}
	}
}

// writePage renders the page template with the built scripts when the html
// plugin is configured
func (p *Pipeline) writePage(outDir string) error {
	if p.tmpl == nil {
		return nil
	}

	scripts, styles, err := p.loadScripts()
	if err != nil {
		return err
	}

	title := ""
	inject := true
	if html, ok := p.bundle.Plugin(bundleconfig.PluginHTML); ok {
		title, _ = html.Options["title"].(string)
		if v, ok := html.Options["inject"].(bool); ok {
			inject = v
		}
	}
	if !inject {
		scripts, styles = nil, nil
	}

	data := map[string]any{
		"Title":   title,
		"Scripts": scripts,
		"Styles":  styles,
	}

	var page strings.Builder
	if err := p.tmpl.Execute(&page, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	pagePath := filepath.Join(outDir, p.config.HTMLFilename)
	if err := os.WriteFile(pagePath, []byte(page.String()), 0o600); err != nil {
		return err
	}

	log.Info().Str("file", pagePath).Msg("Built page")
	return nil
}

func (p *Pipeline) outputDir() (string, error) {
	dir := p.bundle.Output.Path
	if dir == "" {
		return "", errors.New("output path is required")
	}
	if !filepath.IsAbs(dir) {
		base := p.config.WorkingDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			base = wd
		}
		dir = filepath.Join(base, dir)
	}
	return dir, nil
}
