// Package source provides core.Source implementations for local files,
// HTTP endpoints, and S3-compatible object storage, plus a resolver that
// maps URIs to the right implementation by scheme.
package source
