package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/dagaz/internal"
	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/editor"
	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/mcpserver"
	pkgconfig "github.com/starford/dagaz/pkg/config"
)

// defaultJournalPath is used when neither --path nor DAGAZ_PATH is set.
func defaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "journal"
	}
	return filepath.Join(home, "journal")
}

// newLogger builds the CLI logger. Command output goes to stdout, so all
// logging is JSON on stderr.
func newLogger(cmd *cli.Command) *slog.Logger {
	lvl := slog.LevelWarn
	if raw := cmd.String("log-level"); raw != "" {
		if err := lvl.UnmarshalText([]byte(raw)); err != nil {
			lvl = slog.LevelWarn
		}
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newService(cmd *cli.Command) (*journal.Service, error) {
	root := cmd.String("path")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return journal.NewService(root, newLogger(cmd)), nil
}

func newEntry(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("entryname is required")
	}

	body := ""
	if cmd.Bool("stdin") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		body = string(data)
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	path, err := svc.Create(ctx, name, cmd.String("tags"), body)
	if err != nil {
		return err
	}
	if err := editor.Open(ctx, path); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func queryTags(ctx context.Context, cmd *cli.Command) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	counts, _ := svc.TagCounts(ctx)
	for _, tc := range counts {
		fmt.Printf("%s %d\n", tc.Tag, tc.Count)
	}
	return nil
}

func queryID(ctx context.Context, cmd *cli.Command) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	id := cmd.Args().First()
	if id == "" {
		ids, _ := svc.IDs(ctx)
		for _, v := range ids {
			fmt.Println(v)
		}
		return nil
	}

	e, err := svc.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			fmt.Printf("Couldn't find entry by id '%s'\n", id)
			return nil
		}
		return err
	}
	if err := editor.Open(ctx, e.Path); err != nil {
		return err
	}
	fmt.Println(e.Path)
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = cmd.String("path")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	return mcpserver.New(svc).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:  "dagaz",
		Usage: "Plain-text journal with tagged entries, concurrent indexing, and an HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Path to the journal contents directory",
				Value:   defaultJournalPath(),
				Sources: cli.EnvVars("DAGAZ_PATH"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "new",
				Aliases:   []string{"n"},
				Usage:     "Create a new entry and open it in the editor",
				ArgsUsage: "<entryname>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "tags",
						Aliases: []string{"t"},
						Usage:   "Tags to apply (comma-separated)",
					},
					&cli.BoolFlag{
						Name:  "stdin",
						Usage: "Read the entry body from stdin",
					},
				},
				Action: newEntry,
			},
			{
				Name:    "tags",
				Aliases: []string{"t"},
				Usage:   "Print tags sorted by associated entry count",
				Action:  queryTags,
			},
			{
				Name:      "id",
				Usage:     "Print all entry ids, or open the entry with the given id",
				ArgsUsage: "[id]",
				Action:    queryID,
			},
			{
				Name:  "serve",
				Usage: "Serve the journal over HTTP with an SSE change feed",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "config",
						Aliases:     []string{"c"},
						Usage:       "Path to config file",
						DefaultText: "config/config.yaml",
						Value:       "config/config.yaml",
						Sources:     cli.EnvVars("APP_CONFIG_FILE"),
					},
				},
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve journal tools over the Model Context Protocol (stdio)",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
