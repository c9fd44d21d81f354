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

// Sequential drives documents through the stages one at a time, in input
// order. A failure at any stage stops that document only; processing
// continues with the next. No internal concurrency: this is the
// baseline-correctness strategy.
type Sequential struct {
	stages  *stages
	retryer *Retryer
	opts    *options
}

var _ Strategy = (*Sequential)(nil)

func newSequential(stg *stages, retryer *Retryer, opts *options) *Sequential {
	return &Sequential{stages: stg, retryer: retryer, opts: opts}
}

// Ingest processes each document in input order.
func (s *Sequential) Ingest(ctx context.Context, docs []core.DocumentMeta) *ExecutionResult {
	result := &ExecutionResult{}
	tracker := s.opts.newTracker(len(docs))

	for _, doc := range docs {
		result.Append(s.ingestOne(ctx, doc))
		if tracker != nil {
			tracker.Increment(1)
		}
	}

	if tracker != nil {
		tracker.Finish()
	}
	s.opts.logger.Info("ingestion complete",
		"mode", ModeSequential,
		"successful", len(result.Successful),
		"failed", len(result.Failed))
	return result
}

// ingestOne runs parse, enrich, and index for a single document, each stage
// call under the retryer.
func (s *Sequential) ingestOne(ctx context.Context, doc core.DocumentMeta) *DocumentResult {
	var elements []core.Element
	err := s.retryer.Do(ctx, func(ctx context.Context) error {
		var opErr error
		elements, opErr = s.stages.parseDocument(ctx, doc)
		return opErr
	})
	if err != nil {
		s.opts.logger.Warn("parse failed", "uri", doc.URI, "err", err)
		return &DocumentResult{DocumentURI: doc.URI, Failure: CaptureFailure(err)}
	}

	if needsEnrichment(elements) {
		err = s.retryer.Do(ctx, func(ctx context.Context) error {
			var opErr error
			elements, opErr = s.stages.enrichElements(ctx, elements)
			return opErr
		})
		if err != nil {
			s.opts.logger.Warn("enrich failed", "uri", doc.URI, "err", err)
			return &DocumentResult{DocumentURI: doc.URI, Failure: CaptureFailure(err)}
		}
	}

	err = s.retryer.Do(ctx, func(ctx context.Context) error {
		return s.stages.index(ctx, elements)
	})
	if err != nil {
		s.opts.logger.Warn("index failed", "uri", doc.URI, "err", err)
		return &DocumentResult{DocumentURI: doc.URI, Failure: CaptureFailure(err)}
	}

	return &DocumentResult{DocumentURI: doc.URI, NumElements: len(elements)}
}

// Release is a no-op: the sequential strategy holds no pools.
func (s *Sequential) Release() {}
