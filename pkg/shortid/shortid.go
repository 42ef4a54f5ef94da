// Package shortid generates compact prefixed identifiers for stored records,
// e.g. "user_1f8a03c29b4d" or "job_77b0c4d2e511".
package shortid

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// entropy is the number of hex characters kept from the underlying UUID.
const entropy = 12

// New returns a new identifier with the given prefix.
func New(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:])[:entropy]
}
