package source

import "errors"

var (
	// ErrUnsupportedScheme indicates a URI scheme no source implementation handles.
	ErrUnsupportedScheme = errors.New("unsupported URI scheme")

	// ErrNoObjectStore indicates an s3:// URI was given without a configured client.
	ErrNoObjectStore = errors.New("no object store client configured")

	// ErrBadStatus indicates an HTTP source responded with a non-2xx status.
	ErrBadStatus = errors.New("unexpected HTTP status")
)
