package cmd

import "github.com/urfave/cli"

// NewApp assembles the objview command line.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "objview"
	app.Usage = "load and inspect Wavefront OBJ/MTL assets"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to an objview.toml file",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable debug logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "inspect",
			Usage: "parse a model and print its geometry and materials",
			Description: `
Fetch an OBJ file from disk or over http(s), optionally together with an MTL
library, and print attribute counts, extents, materials and any records that
were skipped while parsing.`,
			ArgsUsage: "model.obj",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "mtl",
					Usage: "material library loaded with the model",
				},
				cli.BoolFlag{
					Name:  "strict",
					Usage: "reject records with non-numeric values instead of storing NaN",
				},
				cli.BoolFlag{
					Name:  "normals",
					Usage: "generate flat normals when the model has none",
				},
				cli.BoolFlag{
					Name:  "dump",
					Usage: "write the parsed mesh back to stdout as OBJ",
				},
			},
			Action: Inspect,
		},
		{
			Name:      "watch",
			Usage:     "watch an asset directory and reload models on change",
			ArgsUsage: "asset_dir",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "strict",
					Usage: "reject records with non-numeric values instead of storing NaN",
				},
			},
			Action: Watch,
		},
	}
	return app
}
