package model

import (
	"strings"

	"github.com/google/uuid"
)

// newID generates a document-unique element id. NeXML ids are NCNames, so
// the id starts with the entity prefix and carries a random UUID suffix.
func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
