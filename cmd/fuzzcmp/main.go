package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "fuzzcmp",
		Usage:                  "Compare strings with pluggable fuzzy algorithms and preprocessing",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML config file path",
			},
			&cli.StringFlag{
				Name:    "algorithm",
				Aliases: []string{"a"},
				Usage:   "Scorer name (see 'fuzzcmp list')",
			},
			&cli.StringFlag{
				Name:    "preprocessor",
				Aliases: []string{"p"},
				Usage:   "Preprocessor name, '+' chains several (e.g. fold+default)",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Stemming language for the 'stem' preprocessor",
			},
			&cli.BoolFlag{
				Name:  "no-preprocess",
				Usage: "Disable preprocessing entirely",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print JSON instead of styled text",
			},
			// -v is taken by --version.
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug traces to stderr",
			},
		},
		Commands: []*cli.Command{
			compareCommand(),
			extractCommand(),
			listCommand(),
		},
	}
}
