// Package command provides CLI command definitions for kkokko-cli.
//
// It uses urfave/cli/v2 for command parsing.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/MONGU38/kkokko-project/internal/cli/connection"
	"github.com/MONGU38/kkokko-project/internal/cli/output"
	"github.com/MONGU38/kkokko-project/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "kkokko-cli",
		Usage:   "kkokko command-line management tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RegisterCommand(),
			AnswersCommand(),
			MatchCommand(),
			CompareCommand(),
			StatsCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "kkokko server address (e.g., localhost:3000)",
			EnvVars: []string{"KKOKKO_SERVER"},
			Value:   "localhost:3000",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json",
			Value:   "table",
		},
	}
}

// client builds the HTTP client from the global flags.
func client(c *cli.Context) *connection.HTTPClient {
	return connection.NewHTTPClient(c.String("server"))
}

// formatter builds the output formatter from the global flags.
func formatter(c *cli.Context) output.Formatter {
	return output.NewFormatter(output.Format(c.String("output")))
}
