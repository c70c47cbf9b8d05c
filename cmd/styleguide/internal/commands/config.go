package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/wolfeidau/styleguide/internal/bundleconfig"
	"github.com/wolfeidau/styleguide/internal/logger"
)

// ConfigCmd prints the bundler config for an environment.
type ConfigCmd struct {
	BuilderFlags `embed:""`

	Format string `help:"output format" default:"yaml" enum:"yaml,json"`
}

func (c *ConfigCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)

	cfg, err := c.buildConfig(os.Stderr)
	if err != nil {
		return err
	}

	log.Debug().Str("env", c.Env).Str("format", c.Format).Msg("printing bundler config")

	return c.write(os.Stdout, cfg)
}

func (c *ConfigCmd) write(w io.Writer, cfg *bundleconfig.Config) error {
	if c.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	}
	return bundleconfig.Render(w, cfg)
}
