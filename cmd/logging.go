package cmd

import (
	"github.com/urfave/cli"

	"github.com/spaghettifunk/objview/engine/core"
)

// setupConfig loads the optional TOML config and applies the verbosity
// flags on top of it.
func setupConfig(ctx *cli.Context) (core.Config, error) {
	cfg := core.DefaultConfig()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = core.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalBool("verbose") {
		cfg.LogLevel = "debug"
	}
	if ctx.Bool("strict") {
		cfg.StrictNumbers = true
	}
	return cfg, cfg.Apply()
}
