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

	"github.com/poiesic/inflow/core"
)

// Distributed re-expresses the stages as chained parallel map-over-batches
// operations on a Cluster: parse+enrich on the CPU pool, remove-stale and
// insert on the IO pool, then a summarize pass. Failure propagation is
// stage-local error carrying: once a document's slot fails, later stages
// skip the real operation for it and the failure rides untouched to
// summarize, which splits slots into successful and failed. Unlike the
// batched strategy there is no batch-level all-or-nothing index call and no
// cross-batch ordering guarantee.
type Distributed struct {
	stages       *stages
	retryer      *Retryer
	cluster      Cluster
	cpuBatchSize int
	ioBatchSize  int
	opts         *options
}

var _ Strategy = (*Distributed)(nil)

func newDistributed(stg *stages, retryer *Retryer, cluster Cluster, cpuBatchSize, ioBatchSize int, opts *options) *Distributed {
	return &Distributed{
		stages:       stg,
		retryer:      retryer,
		cluster:      cluster,
		cpuBatchSize: cpuBatchSize,
		ioBatchSize:  ioBatchSize,
		opts:         opts,
	}
}

// Ingest drives all documents through the cluster stages.
func (d *Distributed) Ingest(ctx context.Context, docs []core.DocumentMeta) *ExecutionResult {
	slots := make([]slot, len(docs))
	for i, doc := range docs {
		slots[i].meta = doc
	}
	tracker := d.opts.newTracker(len(docs))

	// Stage 1 (CPU): parse, then enrich when the parse output needs it.
	d.mapStage(ctx, slots, d.cpuBatchSize, d.cluster.MapCPU, func(ctx context.Context, s *slot) error {
		err := d.retryer.Do(ctx, func(ctx context.Context) error {
			var opErr error
			s.elements, opErr = d.stages.parseDocument(ctx, s.meta)
			return opErr
		})
		if err != nil {
			return err
		}
		if !needsEnrichment(s.elements) {
			return nil
		}
		return d.retryer.Do(ctx, func(ctx context.Context) error {
			enriched, opErr := d.stages.enrichElements(ctx, s.elements)
			if opErr != nil {
				return opErr
			}
			s.elements = enriched
			return nil
		})
	})

	// Stage 2 (IO): remove stale entries per document.
	d.mapStage(ctx, slots, d.ioBatchSize, d.cluster.MapIO, func(ctx context.Context, s *slot) error {
		return d.retryer.Do(ctx, func(ctx context.Context) error {
			return d.stages.removeStale(ctx, s.elements)
		})
	})

	// Stage 3 (IO): insert entries per document.
	d.mapStage(ctx, slots, d.ioBatchSize, d.cluster.MapIO, func(ctx context.Context, s *slot) error {
		return d.retryer.Do(ctx, func(ctx context.Context) error {
			return d.stages.insertElements(ctx, s.elements)
		})
	})

	// Summarize: split slots into successful and failed.
	result := &ExecutionResult{}
	for i := range slots {
		res := &DocumentResult{DocumentURI: slots[i].meta.URI, Failure: slots[i].failure}
		if res.Succeeded() {
			res.NumElements = len(slots[i].elements)
		}
		result.Append(res)
		if tracker != nil {
			tracker.Increment(1)
		}
	}

	if tracker != nil {
		tracker.Finish()
	}
	d.opts.logger.Info("ingestion complete",
		"mode", ModeDistributed,
		"successful", len(result.Successful),
		"failed", len(result.Failed))
	return result
}

// mapStage partitions slots into batches and submits one task per batch to
// the given pool, waiting for all batches. Within a batch, slots are
// processed in order; slots that already carry a failure are skipped so the
// failure rides forward untouched.
func (d *Distributed) mapStage(ctx context.Context, slots []slot, batchSize int, mapFn func([]func()), fn func(ctx context.Context, s *slot) error) {
	var tasks []func()
	for start := 0; start < len(slots); start += batchSize {
		end := start + batchSize
		if end > len(slots) {
			end = len(slots)
		}
		batch := slots[start:end]

		tasks = append(tasks, func() {
			for i := range batch {
				s := &batch[i]
				if s.failure != nil {
					continue
				}
				if err := fn(ctx, s); err != nil {
					s.failure = CaptureFailure(err)
				}
			}
		})
	}
	mapFn(tasks)
}

// Release frees the cluster.
func (d *Distributed) Release() {
	d.cluster.Release()
}
