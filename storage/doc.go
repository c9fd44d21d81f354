// Package storage defines the persistence contract for index entries.
//
// The Store interface is intentionally small: insert, remove, list, close.
// Backends live in subpackages; storage/badger is the embedded default and
// storage/postgres targets a shared database. Serialization helpers wrap the
// generated MUS code so backends agree on the wire format.
package storage
