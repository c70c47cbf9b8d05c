package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/styleguide/cmd/styleguide/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Config  commands.ConfigCmd `cmd:"" help:"Print the bundler config"`
		Build   commands.BuildCmd  `cmd:"" help:"Bundle the style guide with esbuild"`
		Debug   bool               `help:"Enable debug mode."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
