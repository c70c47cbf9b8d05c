package bundleconfig

import (
	"fmt"
	"regexp"
)

// Environment selects the overlay and optimization profile applied to the base config.
type Environment string

const (
	Production  Environment = "production"
	Development Environment = "development"
)

// ParseEnvironment returns the Environment named by s.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case Production, Development:
		return Environment(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
}

// UpdateFunc post-processes a built config. The returned config replaces the
// one passed in and is validated again before it is used.
type UpdateFunc func(cfg *Config, env Environment) (*Config, error)

// Settings is the user facing input to Build.
type Settings struct {
	StyleguideDir string     `yaml:"styleguideDir"`
	Title         string     `yaml:"title"`
	Template      string     `yaml:"template"`
	Verbose       bool       `yaml:"verbose"`
	UpdateConfig  UpdateFunc `yaml:"-"`
}

// Pattern is a regular expression matched against module file paths.
type Pattern string

// Regexp compiles the pattern.
func (p Pattern) Regexp() (*regexp.Regexp, error) {
	return regexp.Compile(string(p))
}

// MatchString reports whether path matches, an invalid pattern matches nothing.
func (p Pattern) MatchString(path string) bool {
	re, err := p.Regexp()
	if err != nil {
		return false
	}
	return re.MatchString(path)
}

type Config struct {
	Output        Output        `yaml:"output" json:"output"`
	Resolve       Resolve       `yaml:"resolve" json:"resolve"`
	ResolveLoader ResolveLoader `yaml:"resolveLoader" json:"resolveLoader"`
	Plugins       []Plugin      `yaml:"plugins,omitempty" json:"plugins,omitempty"`
	Module        Module        `yaml:"module" json:"module"`
	Entry         []string      `yaml:"entry,omitempty" json:"entry,omitempty"`
	// Devtool names the source map strategy, empty disables source maps.
	Devtool string `yaml:"devtool,omitempty" json:"devtool,omitempty"`
	Debug   bool   `yaml:"debug" json:"debug"`
	Cache   bool   `yaml:"cache" json:"cache"`
	Stats   *Stats `yaml:"stats,omitempty" json:"stats,omitempty"`
}

type Output struct {
	Path     string `yaml:"path" json:"path"`
	Filename string `yaml:"filename" json:"filename"`
}

type Resolve struct {
	Extensions []string          `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Modules    []string          `yaml:"modules,omitempty" json:"modules,omitempty"`
	Alias      map[string]string `yaml:"alias,omitempty" json:"alias,omitempty"`
}

type ResolveLoader struct {
	Modules          []string `yaml:"modules,omitempty" json:"modules,omitempty"`
	ModuleExtensions []string `yaml:"moduleExtensions,omitempty" json:"moduleExtensions,omitempty"`
}

// Plugin names understood by the bundler engine.
const (
	PluginHTML                 = "html"
	PluginDefine               = "define"
	PluginOccurrenceOrder      = "occurrence-order"
	PluginDedupe               = "dedupe"
	PluginUglify               = "uglify"
	PluginHotModuleReplacement = "hot-module-replacement"
	PluginNoErrors             = "no-errors"
)

// Plugin is a named bundler plugin with its options.
type Plugin struct {
	Name    string         `yaml:"name" json:"name"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

type Module struct {
	Rules   []Rule    `yaml:"rules,omitempty" json:"rules,omitempty"`
	NoParse []Pattern `yaml:"noParse,omitempty" json:"noParse,omitempty"`
}

// Rule tells the bundler how to process files matching Test. Include and
// Exclude hold directory filters, at least one of them must be set.
type Rule struct {
	Test    Pattern  `yaml:"test" json:"test"`
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	// Use is the processing pipeline, the last loader runs first.
	Use []Loader `yaml:"use" json:"use"`
}

// Loader is a single stage of a rule pipeline.
type Loader struct {
	Name    string         `yaml:"loader" json:"loader"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

type Stats struct {
	Colors  bool `yaml:"colors" json:"colors"`
	Reasons bool `yaml:"reasons" json:"reasons"`
}

// Plugin returns the first plugin with the given name.
func (c *Config) Plugin(name string) (Plugin, bool) {
	for _, p := range c.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// Option returns a named loader option, ok is false if it is not set.
func (l Loader) Option(name string) (any, bool) {
	v, ok := l.Options[name]
	return v, ok
}
