// Package badger provides a BadgerDB-backed implementation of storage.Store.
// The backend can run fully in memory, which the test helpers use.
package badger
