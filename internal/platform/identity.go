package platform

import (
	"github.com/google/uuid"
)

// ComputeRoot derives a deterministic UUID v5 from a domain and business key.
//
// The UUID is derived from: hash("cadoz" + domain + business_key)
// using the OID namespace.
func ComputeRoot(domain, businessKey string) uuid.UUID {
	seed := "cadoz" + domain + businessKey
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
}

// SessionRoot computes the storage namespace for a browser session.
func SessionRoot(sessionID string) uuid.UUID {
	return ComputeRoot("session", sessionID)
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// NewEntryID returns a fresh cart entry identifier for a catalogue item.
//
// Entry ids are never derived from the item id alone: the same item may be
// removed and added again and must get a new entry.
func NewEntryID(itemID string) string {
	return "item-" + uuid.NewString() + "-" + itemID
}
