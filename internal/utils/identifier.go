package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// identifierLength is the number of hex characters in a registration
// identifier.  Matches model.IdentifierLength; kept as a local constant
// to avoid an import cycle.
const identifierLength = 20

// NewIdentifier returns the opaque lookup token handed to a registrant:
// the hex SHA-224 digest of 64 bytes of secure random data, truncated
// to 20 characters.  The token is unguessable but short enough to type
// from a printed letter.  Uniqueness is enforced by the registrations
// table, where the identifier is the primary key.
func NewIdentifier() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	sum := sha256.Sum224(buf)
	return hex.EncodeToString(sum[:])[:identifierLength], nil
}
