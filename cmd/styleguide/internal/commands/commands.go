package commands

import (
	"fmt"
	"io"

	"github.com/wolfeidau/styleguide/internal/bundleconfig"
	"github.com/wolfeidau/styleguide/internal/settings"
)

type Globals struct {
	Debug   bool
	Version string
}

// BuilderFlags configures how the bundler config is assembled
type BuilderFlags struct {
	Root     string `help:"style guide root holding src, loaders and node_modules" default:"." env:"STYLEGUIDE_ROOT"`
	Settings string `help:"path to a YAML settings file" default:"" env:"STYLEGUIDE_SETTINGS"`
	Overlay  string `help:"path to a YAML config overlay merged onto the built config" default:"" env:"STYLEGUIDE_OVERLAY"`
	Env      string `help:"build environment" default:"production" env:"STYLEGUIDE_ENV" enum:"production,development"`
	Verbose  bool   `help:"print the resulting bundler config" default:"false" env:"STYLEGUIDE_VERBOSE"`
}

func (f *BuilderFlags) buildConfig(logWriter io.Writer) (*bundleconfig.Config, error) {
	env, err := bundleconfig.ParseEnvironment(f.Env)
	if err != nil {
		return nil, err
	}

	s := settings.Default(f.Root)
	if f.Settings != "" {
		s, err = settings.Load(f.Settings)
		if err != nil {
			return nil, err
		}
	}
	s.Verbose = s.Verbose || f.Verbose

	if f.Overlay != "" {
		hook, err := settings.OverlayHook(f.Overlay)
		if err != nil {
			return nil, err
		}
		s.UpdateConfig = hook
	}

	builder := bundleconfig.New(f.Root)
	builder.LogWriter = logWriter

	cfg, err := builder.Build(s, env)
	if err != nil {
		return nil, fmt.Errorf("failed to build bundler config: %w", err)
	}
	return cfg, nil
}
