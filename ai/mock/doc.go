// Package mock provides test doubles for the ai package interfaces.
//
// The mocks produce deterministic output by default (hash-derived vectors,
// size-derived captions) so tests are reproducible without external AI
// services. Behavior can be overridden per test via the exported function
// fields, and call counts are tracked for interaction assertions.
package mock
