// Package postgres provides a PostgreSQL-backed implementation of
// storage.Store for deployments that share an index across machines.
package postgres
