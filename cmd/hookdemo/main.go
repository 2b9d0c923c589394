package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/hookparty/demos"
	"github.com/delaneyj/hookparty/pkg/observability"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	configKey  = "config"
	verboseKey = "verbose"
	markupKey  = "markup"
)

func main() {
	cmd := &cli.Command{
		Name:  "hookdemo",
		Usage: "Play the hook demo panels against a text host",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configKey,
				Aliases: []string{"c"},
				Usage:   "YAML file selecting routes and output style",
			},
			&cli.BoolFlag{
				Name:    verboseKey,
				Aliases: []string{"v"},
				Usage:   "Log every runtime event to stderr",
			},
			&cli.BoolFlag{
				Name:  markupKey,
				Usage: "Include the presented markup in each frame",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the demo routes",
				Action: list,
			},
			{
				Name:      "run",
				Usage:     "Run the scripts of one or more routes",
				ArgsUsage: "[route...]",
				Action:    run,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func list(ctx context.Context, cmd *cli.Command) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"path", "title", "steps"})
	demos.Walk(func(r *demos.Route, depth int) {
		table.Append([]string{
			strings.Repeat("  ", depth) + r.Path,
			r.Title,
			fmt.Sprint(len(r.Script)),
		})
	})
	table.Render()
	return nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String(configKey))
	if err != nil {
		return err
	}
	if cmd.Bool(markupKey) {
		cfg.Markup = true
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		paths = cfg.Routes
	}
	if len(paths) == 0 {
		demos.Walk(func(r *demos.Route, _ int) {
			paths = append(paths, r.Path)
		})
	}

	var opts []demos.RunOption
	if cmd.Bool(verboseKey) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: observability.LevelRender.SlogLevel()}))
		opts = append(opts, demos.WithEventObserver(observability.NewSlogObserver(logger)))
	}

	style := cfg.tableStyle(isatty.IsTerminal(os.Stdout.Fd()))
	for _, path := range paths {
		start := time.Now()
		trace, err := demos.Run(ctx, path, opts...)
		if err != nil {
			return err
		}
		writeTrace(os.Stdout, trace, cfg, style)
		for _, f := range trace.Faults {
			log.Printf("%s: fault: %v", trace.Path, f)
		}
		log.Printf("%s: %d frames in %v", trace.Path, len(trace.Frames), time.Since(start))
	}
	return nil
}
