// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/inflow/ai"
	"github.com/poiesic/inflow/ai/mock"
	"github.com/poiesic/inflow/ai/openai"
	"github.com/poiesic/inflow/core"
	"github.com/poiesic/inflow/enrich"
	"github.com/poiesic/inflow/ingest"
	"github.com/poiesic/inflow/parse"
	"github.com/poiesic/inflow/source"
	"github.com/poiesic/inflow/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "inflow",
		Usage: "Fault-tolerant document ingestion for a searchable store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest documents into the store",
				ArgsUsage: "URI [URI...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Strategy mode (sequential, batched, distributed)",
						Value: string(ingest.ModeBatched),
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents per batch",
						Value: 8,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Retry budget per stage call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "backoff-multiplier",
						Usage: "Base delay for full-jitter exponential backoff",
						Value: 500 * time.Millisecond,
					},
					&cli.DurationFlag{
						Name:  "backoff-max",
						Usage: "Ceiling on the backoff delay",
						Value: 30 * time.Second,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "caption-host",
						Usage: "Captioning service host URL (defaults to embedding-host)",
					},
					&cli.StringFlag{
						Name:  "caption-model",
						Usage: "Captioning model name",
						Value: "llava:7b",
					},
					&cli.BoolFlag{
						Name:  "mock-ai",
						Usage: "Use deterministic mock AI services (offline runs)",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List all entries in the store",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:      "purge",
				Usage:     "Remove all entries originating from the given source URIs",
				ArgsUsage: "URI [URI...]",
				Action:    purgeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	uris := c.Args().Slice()
	if len(uris) == 0 {
		return fmt.Errorf("at least one document URI is required")
	}

	store, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	entryStore := badger.NewEntryStore(store)
	defer entryStore.Close()

	provider, err := newProvider(c)
	if err != nil {
		return err
	}
	defer provider.Close()

	resolver, err := newResolver(uris)
	if err != nil {
		return err
	}
	docs, err := resolver.ResolveAll(uris)
	if err != nil {
		return fmt.Errorf("failed to resolve documents: %w", err)
	}

	cfg := ingest.DefaultConfig()
	cfg.Mode = ingest.Mode(c.String("mode"))
	cfg.BatchSize = c.Int("batch-size")
	cfg.Retries = c.Int("max-retries")
	cfg.BackoffMultiplier = c.Duration("backoff-multiplier")
	cfg.BackoffMax = c.Duration("backoff-max")

	strategy, err := ingest.New(
		cfg,
		entryStore,
		parse.DefaultRouter(),
		enrich.DefaultRouter(provider.Captioner()),
		provider.Embedder(),
		ingest.WithProgress(os.Stderr, c.Int("report-interval")),
	)
	if err != nil {
		return fmt.Errorf("failed to build strategy: %w", err)
	}
	defer strategy.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Mode: %s\n", cfg.Mode)
	fmt.Fprintf(os.Stderr, "Documents: %d\n\n", len(docs))

	result := strategy.Ingest(ctx, docs)

	fmt.Printf("Ingested %d/%d documents\n", len(result.Successful), result.Total())
	for _, failed := range result.Failed {
		fmt.Printf("FAILED %s [%s]: %s\n", failed.DocumentURI, failed.Failure.Kind, failed.Failure.Message)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d documents failed", len(result.Failed))
	}
	return nil
}

func listCommand(c *cli.Context) error {
	store, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	entryStore := badger.NewEntryStore(store)
	defer entryStore.Close()

	entries, err := entryStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	for _, entry := range entries {
		text := entry.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", entry.ID, entry.Kind, entry.DocumentURI, text)
	}
	fmt.Fprintf(os.Stderr, "%d entries\n", len(entries))
	return nil
}

func purgeCommand(c *cli.Context) error {
	ctx := context.Background()

	uris := c.Args().Slice()
	if len(uris) == 0 {
		return fmt.Errorf("at least one source URI is required")
	}

	store, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	entryStore := badger.NewEntryStore(store)
	defer entryStore.Close()

	sources := make(map[core.ID]struct{}, len(uris))
	for _, uri := range uris {
		sources[core.IDFromContent(uri)] = struct{}{}
	}

	entries, err := entryStore.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	var stale []core.ID
	for _, entry := range entries {
		if _, ok := sources[entry.SourceID]; ok {
			stale = append(stale, entry.ID)
		}
	}

	if err := entryStore.Remove(ctx, stale...); err != nil {
		return fmt.Errorf("failed to remove entries: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Removed %d entries\n", len(stale))
	return nil
}

// newProvider builds the AI services, real or mock.
func newProvider(c *cli.Context) (ai.AIProvider, error) {
	if c.Bool("mock-ai") {
		return mock.NewProvider(), nil
	}

	captionHost := c.String("caption-host")
	if captionHost == "" {
		captionHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCaptionHost(captionHost),
		ai.WithCaptionModel(c.String("caption-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI provider: %w", err)
	}
	return provider, nil
}

// newResolver builds a URI resolver, connecting to object storage only when
// an s3:// URI is present.
func newResolver(uris []string) (*source.Resolver, error) {
	var opts []source.ResolverOption
	for _, uri := range uris {
		if strings.HasPrefix(uri, "s3://") {
			objStore, err := source.NewObjectStoreFromEnv()
			if err != nil {
				return nil, fmt.Errorf("failed to connect to object storage: %w", err)
			}
			opts = append(opts, source.WithObjectStore(objStore))
			break
		}
	}
	return source.NewResolver(opts...), nil
}

func setup(c *cli.Context) error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
