package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wolfeidau/styleguide/internal/assets"
	"github.com/wolfeidau/styleguide/internal/logger"
)

// BuildCmd bundles the style guide into its output directory.
type BuildCmd struct {
	BuilderFlags `embed:""`
}

func (c *BuildCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)

	log.Info().Str("version", globals.Version).Str("env", c.Env).Str("root", c.Root).Msg("Building style guide")

	cfg, err := c.buildConfig(os.Stderr)
	if err != nil {
		return err
	}

	pipeline, err := assets.New(cfg, assets.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create asset pipeline: %w", err)
	}

	started := time.Now()
	if err := pipeline.Build(); err != nil {
		return fmt.Errorf("failed to build assets: %w", err)
	}

	log.Info().Dur("duration", time.Since(started)).Str("output", cfg.Output.Path).Msg("Style guide built")

	return nil
}
