package badger

import (
	"fmt"

	"github.com/poiesic/inflow/core"
)

// Key prefix for index entries
const (
	entryPrefix = "entrec"
)

// makeEntryKey generates a key for an index entry by ID.
func makeEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", entryPrefix, id))
}
