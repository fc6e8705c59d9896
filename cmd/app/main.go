package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/wikisync/internal"
	"github.com/starford/wikisync/internal/apperr"
	pkgconfig "github.com/starford/wikisync/pkg/config"
)

const argsUsage = "[directory] [outputfile]"

// loadConfig applies the config file named by root's flags, then the
// positional arguments of cmd.
func loadConfig(root, cmd *cli.Command) (*internal.Config, error) {
	configPath := root.String("config")

	cfg := internal.NewDefaultConfig()
	load := pkgconfig.LoadOptional[internal.Config]
	if root.IsSet("config") {
		load = pkgconfig.Load[internal.Config]
	}
	if err := load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.Args().Len() > 2 {
		return nil, fmt.Errorf("expected at most 2 arguments, got %d", cmd.Args().Len())
	}
	if dir := cmd.Args().Get(0); dir != "" {
		cfg.Wiki.Path = dir
	}
	if out := cmd.Args().Get(1); out != "" {
		cfg.Output.Path = out
	}
	if root.Bool("previews") {
		cfg.Index.Previews = true
	}

	return cfg, nil
}

func newCommand() *cli.Command {
	root := &cli.Command{
		Name:      "wikisync",
		Usage:     "Generate a combined markdown index from the pages in a wiki checkout",
		ArgsUsage: argsUsage,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "previews",
				Usage: "Embed each page's preview below its link",
			},
		},
	}

	// action adapts one of the internal runs to a cli action.
	action := func(run func(context.Context, ...internal.Option) error) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(root, cmd)
			if err != nil {
				return err
			}
			if err := run(ctx, internal.WithConfig(cfg)); err != nil {
				return fmt.Errorf("%s: %w", cmd.Name, err)
			}
			return nil
		}
	}

	root.Action = action(internal.Generate)
	root.Commands = []*cli.Command{
		{
			Name:      "check",
			Usage:     "Verify the index is up to date and links only to existing pages",
			ArgsUsage: argsUsage,
			Action:    action(internal.Check),
		},
		{
			Name:      "watch",
			Usage:     "Regenerate the index whenever a wiki page changes; each regeneration is a full, sequential run",
			ArgsUsage: argsUsage,
			Action:    action(internal.Watch),
		},
	}
	return root
}

// run executes the CLI and returns the process exit status. The invalid
// wiki diagnostic is written to stdout.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	cmd := newCommand()
	cmd.Writer = stdout

	if err := cmd.Run(ctx, args); err != nil {
		if errors.Is(err, apperr.ErrInvalidWiki) {
			fmt.Fprintln(stdout, "Incorrect wiki directory.")
		}
		slog.Error("application error", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout))
}
