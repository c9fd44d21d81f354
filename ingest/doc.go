// Package ingest drives documents through parse, enrich, and index stages
// and commits the results to a storage.Store, tolerating partial failures
// across the input set.
//
// Three strategies implement the same contract. Sequential processes one
// document at a time and is the baseline-correctness reference. Batched
// slices the input into fixed-size batches with concurrent parse and enrich
// fan-out and an all-or-nothing index phase per batch. Distributed
// re-expresses the stages as parallel map-over-batches operations on a
// Cluster backend with separate CPU and IO worker pools, carrying each
// document's first error forward through later stages.
//
// Every stage call is wrapped in bounded retry with full-jitter exponential
// backoff. Exhausted retries are recovered into per-document results rather
// than propagated: Ingest always returns an ExecutionResult and never an
// error. Callers inspect ExecutionResult.Failed for exactly which document
// URIs failed and why.
package ingest
