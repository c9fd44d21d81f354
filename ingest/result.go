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
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/poiesic/inflow/core"
	"github.com/poiesic/inflow/enrich"
	"github.com/poiesic/inflow/parse"
)

// FailureKind classifies which stage taxonomy a captured failure belongs to.
type FailureKind string

const (
	FailureKindParser          FailureKind = "parser"
	FailureKindUnsupportedType FailureKind = "unsupported_type"
	FailureKindSource          FailureKind = "source"
	FailureKindEnricher        FailureKind = "enricher"
	FailureKindStore           FailureKind = "store"
	FailureKindUnexpected      FailureKind = "unexpected"
)

// Failure is the normalized capture of an exhausted-retry error: taxonomy
// kind, message, and a formatted stack trace. Created at the point of
// failure, never mutated afterward.
type Failure struct {
	Kind    FailureKind
	Message string
	Stack   string
}

// CaptureFailure normalizes an error into a Failure. The stack trace is the
// verbose rendering of the error chain; stage wrappers attach stacks at the
// point the collaborator call failed.
func CaptureFailure(err error) *Failure {
	return &Failure{
		Kind:    classify(err),
		Message: err.Error(),
		Stack:   fmt.Sprintf("%+v", err),
	}
}

// classify maps an error chain onto the failure taxonomy by sentinel.
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, parse.ErrUnsupportedType):
		return FailureKindUnsupportedType
	case errors.Is(err, parse.ErrParse), errors.Is(err, parse.ErrNilParser):
		return FailureKindParser
	case errors.Is(err, core.ErrSource), errors.Is(err, core.ErrNoSource):
		return FailureKindSource
	case errors.Is(err, enrich.ErrEnrich), errors.Is(err, enrich.ErrNoEnricher), errors.Is(err, enrich.ErrMixedKinds):
		return FailureKindEnricher
	case errors.Is(err, ErrStore):
		return FailureKindStore
	default:
		return FailureKindUnexpected
	}
}

// DocumentResult is the per-document outcome of a pipeline run.
// A nil Failure signals success.
type DocumentResult struct {
	DocumentURI string
	NumElements int
	Failure     *Failure
}

// Succeeded reports whether the document was ingested without failure.
func (r *DocumentResult) Succeeded() bool {
	return r.Failure == nil
}

// ExecutionResult is the run-level aggregate of per-document results.
// Append-only during a run, immutable once returned to the caller.
type ExecutionResult struct {
	Successful []*DocumentResult
	Failed     []*DocumentResult
}

// Append records a document result in the matching list.
func (r *ExecutionResult) Append(res *DocumentResult) {
	if res.Succeeded() {
		r.Successful = append(r.Successful, res)
	} else {
		r.Failed = append(r.Failed, res)
	}
}

// Merge concatenates another result's lists onto this one, preserving order.
func (r *ExecutionResult) Merge(other *ExecutionResult) {
	r.Successful = append(r.Successful, other.Successful...)
	r.Failed = append(r.Failed, other.Failed...)
}

// Total returns the number of documents accounted for.
func (r *ExecutionResult) Total() int {
	return len(r.Successful) + len(r.Failed)
}
