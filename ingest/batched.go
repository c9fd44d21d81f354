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
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/inflow/core"
)

// Batched slices documents into fixed-size batches and drives each batch
// through four phases: concurrent parse fan-out, a ready/needs-enrichment
// split, concurrent enrich fan-out, and one all-or-nothing index call for
// the whole batch. Parse and enrich fail per document; index failure marks
// every contributing document failed with the same captured failure.
//
// Batch N+1 never starts before batch N's index phase completes. Within a
// batch, results keep batch arrival order, not completion order.
type Batched struct {
	stages    *stages
	retryer   *Retryer
	batchSize int
	pool      *ants.Pool
	opts      *options
}

var _ Strategy = (*Batched)(nil)

func newBatched(stg *stages, retryer *Retryer, batchSize int, opts *options) (*Batched, error) {
	pool, err := ants.NewPool(batchSize)
	if err != nil {
		return nil, err
	}
	return &Batched{
		stages:    stg,
		retryer:   retryer,
		batchSize: batchSize,
		pool:      pool,
		opts:      opts,
	}, nil
}

// slot carries one document's state through a batch's phases. Phase tasks
// write only their own index, so no locking is needed across the fan-out.
type slot struct {
	meta     core.DocumentMeta
	elements []core.Element
	failure  *Failure
}

// Ingest processes documents batch by batch, in input order.
func (b *Batched) Ingest(ctx context.Context, docs []core.DocumentMeta) *ExecutionResult {
	result := &ExecutionResult{}
	tracker := b.opts.newTracker(len(docs))

	for start := 0; start < len(docs); start += b.batchSize {
		end := start + b.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		result.Merge(b.processBatch(ctx, batch))
		if tracker != nil {
			tracker.Increment(len(batch))
		}
	}

	if tracker != nil {
		tracker.Finish()
	}
	b.opts.logger.Info("ingestion complete",
		"mode", ModeBatched,
		"successful", len(result.Successful),
		"failed", len(result.Failed))
	return result
}

// processBatch runs the four phases for one batch and returns its results
// in batch arrival order.
func (b *Batched) processBatch(ctx context.Context, batch []core.DocumentMeta) *ExecutionResult {
	slots := make([]slot, len(batch))
	for i, doc := range batch {
		slots[i].meta = doc
	}

	// Phase 1: parse fan-out, one independently retried task per document.
	b.fanOut(ctx, slots, allIndexes(slots), func(ctx context.Context, s *slot) error {
		var opErr error
		var elements []core.Element
		opErr = b.retryer.Do(ctx, func(ctx context.Context) error {
			var err error
			elements, err = b.stages.parseDocument(ctx, s.meta)
			return err
		})
		s.elements = elements
		return opErr
	})

	// Phase 2: split parsed documents into needs-enrichment and ready.
	var toEnrich []int
	for i := range slots {
		if slots[i].failure == nil && needsEnrichment(slots[i].elements) {
			toEnrich = append(toEnrich, i)
		}
	}

	// Phase 3: enrich fan-out over needs-enrichment documents only.
	b.fanOut(ctx, slots, toEnrich, func(ctx context.Context, s *slot) error {
		var enriched []core.Element
		opErr := b.retryer.Do(ctx, func(ctx context.Context) error {
			var err error
			enriched, err = b.stages.enrichElements(ctx, s.elements)
			return err
		})
		if opErr == nil {
			s.elements = enriched
		}
		return opErr
	})

	// Phase 4: one retry-wrapped remove-then-insert call for the whole batch.
	var contributing []int
	var flattened []core.Element
	for i := range slots {
		if slots[i].failure == nil {
			contributing = append(contributing, i)
			flattened = append(flattened, slots[i].elements...)
		}
	}

	if len(contributing) > 0 {
		err := b.retryer.Do(ctx, func(ctx context.Context) error {
			return b.stages.index(ctx, flattened)
		})
		if err != nil {
			// All-or-nothing: every contributing document fails together.
			b.opts.logger.Warn("batch index failed", "documents", len(contributing), "err", err)
			failure := CaptureFailure(err)
			for _, i := range contributing {
				slots[i].failure = failure
			}
		}
	}

	result := &ExecutionResult{}
	for i := range slots {
		res := &DocumentResult{DocumentURI: slots[i].meta.URI, Failure: slots[i].failure}
		if res.Succeeded() {
			res.NumElements = len(slots[i].elements)
		}
		result.Append(res)
	}
	return result
}

// fanOut runs fn for the given slot indexes concurrently on the pool and
// waits for all of them. A returned error is captured into the slot.
func (b *Batched) fanOut(ctx context.Context, slots []slot, indexes []int, fn func(ctx context.Context, s *slot) error) {
	var wg sync.WaitGroup
	for _, i := range indexes {
		s := &slots[i]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := fn(ctx, s); err != nil {
				s.failure = CaptureFailure(err)
			}
		}
		if err := b.pool.Submit(task); err != nil {
			wg.Done()
			s.failure = CaptureFailure(err)
		}
	}
	wg.Wait()
}

func allIndexes(slots []slot) []int {
	indexes := make([]int, len(slots))
	for i := range slots {
		indexes[i] = i
	}
	return indexes
}

// Release frees the worker pool.
func (b *Batched) Release() {
	b.pool.Release()
}
