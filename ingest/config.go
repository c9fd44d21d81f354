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


package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/poiesic/inflow/ai"
	"github.com/poiesic/inflow/core"
	"github.com/poiesic/inflow/enrich"
	"github.com/poiesic/inflow/parse"
	"github.com/poiesic/inflow/storage"
)

// Mode selects which strategy drives the pipeline.
type Mode string

const (
	ModeSequential  Mode = "sequential"
	ModeBatched     Mode = "batched"
	ModeDistributed Mode = "distributed"
)

// Strategy is the pipeline contract. Ingest always returns an
// ExecutionResult and never an error: exhausted-retry failures are recovered
// into per-document results.
type Strategy interface {
	// Ingest drives the documents through parse, enrich, and index stages.
	Ingest(ctx context.Context, docs []core.DocumentMeta) *ExecutionResult

	// Release frees worker pools. The strategy must not be used afterwards.
	Release()
}

// Config holds strategy configuration. Immutable after construction.
type Config struct {
	Mode              Mode
	Retries           int
	BackoffMultiplier time.Duration
	BackoffMax        time.Duration

	// BatchSize applies to the batched and distributed strategies.
	BatchSize int

	// CPUWorkers, IOWorkers, and IOBatchSize apply to the distributed
	// strategy's local cluster backend.
	CPUWorkers  int
	IOWorkers   int
	IOBatchSize int
}

// DefaultConfig returns a sequential configuration with moderate backoff.
func DefaultConfig() Config {
	cpuWorkers := runtime.NumCPU() / 2
	if cpuWorkers < 1 {
		cpuWorkers = 1
	}
	return Config{
		Mode:              ModeSequential,
		Retries:           3,
		BackoffMultiplier: 500 * time.Millisecond,
		BackoffMax:        30 * time.Second,
		BatchSize:         8,
		CPUWorkers:        cpuWorkers,
		IOWorkers:         cpuWorkers * 4,
		IOBatchSize:       32,
	}
}

// Validate checks the configuration for programmer errors.
func (c Config) Validate() error {
	if c.Retries < 0 {
		return ErrInvalidRetries
	}
	if c.BackoffMultiplier <= 0 || c.BackoffMax <= 0 {
		return ErrInvalidBackoff
	}
	switch c.Mode {
	case ModeSequential:
	case ModeBatched:
		if c.BatchSize < 1 {
			return ErrInvalidBatchSize
		}
	case ModeDistributed:
		if c.BatchSize < 1 || c.IOBatchSize < 1 {
			return ErrInvalidBatchSize
		}
		if c.CPUWorkers < 1 || c.IOWorkers < 1 {
			return ErrInvalidWorkers
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}
	return nil
}

// options holds cross-strategy settings applied via Option values.
type options struct {
	logger         *slog.Logger
	progressWriter io.Writer
	progressEvery  int
}

// Option configures a strategy.
type Option func(*options) error

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithProgress enables progress reporting to w, reporting every n documents.
func WithProgress(w io.Writer, every int) Option {
	return func(o *options) error {
		if every < 1 {
			every = 1
		}
		o.progressWriter = w
		o.progressEvery = every
		return nil
	}
}

// New validates the configuration and constructs the selected strategy.
func New(
	cfg Config,
	store storage.Store,
	parsers *parse.Router,
	enrichers *enrich.Router,
	embedder ai.Embedder,
	opts ...Option,
) (Strategy, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if parsers == nil {
		return nil, ErrParserRouterRequired
	}
	if enrichers == nil {
		return nil, ErrEnricherRouterRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	retryer, err := NewRetryer(cfg.Retries, cfg.BackoffMultiplier, cfg.BackoffMax)
	if err != nil {
		return nil, err
	}

	stg := &stages{
		store:     store,
		parsers:   parsers,
		enrichers: enrichers,
		embedder:  embedder,
	}

	switch cfg.Mode {
	case ModeSequential:
		return newSequential(stg, retryer, o), nil
	case ModeBatched:
		return newBatched(stg, retryer, cfg.BatchSize, o)
	case ModeDistributed:
		cluster, err := NewLocalCluster(cfg.CPUWorkers, cfg.IOWorkers)
		if err != nil {
			return nil, err
		}
		return newDistributed(stg, retryer, cluster, cfg.BatchSize, cfg.IOBatchSize, o), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
}

// newTracker creates a progress tracker for a run, or nil when progress
// reporting is disabled.
func (o *options) newTracker(total int) *ProgressTracker {
	if o.progressWriter == nil {
		return nil
	}
	t := NewProgressTracker(o.progressWriter, total, o.progressEvery)
	t.Start()
	return t
}
