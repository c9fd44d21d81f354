package source

import (
	"path"
	"strings"

	"github.com/poiesic/inflow/core"
)

// TypeForPath infers a document type from a path's extension.
// Unknown extensions default to plain text.
func TypeForPath(p string) core.DocumentType {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return core.DocumentTypeHTML
	case ".csv":
		return core.DocumentTypeCSV
	default:
		return core.DocumentTypeText
	}
}
