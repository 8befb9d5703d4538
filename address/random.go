package address

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// NewSecret produces a fresh, uniformly random 256-bit secret, suitable as
// the preimage material for OwnerCommitment or as a seller's reveal secret
// at transfer time.
func NewSecret() (Hash256, error) {
	var out Hash256
	if _, err := rand.Read(out[:]); err != nil {
		return Hash256{}, fmt.Errorf("address: generating random secret: %w", err)
	}
	return out, nil
}

// NewRandomSeed produces a fresh 32-byte seed for ticket address derivation.
// It is produced client-side and must carry no relationship to the owner or
// to any predecessor record.
func NewRandomSeed() (Hash256, error) {
	return NewSecret()
}

// NewStorageID mints a UUID used purely as a non-cryptographic, human
// -legible identifier for off-tree bookkeeping (log correlation, snapshot
// naming) — never as secret material.
func NewStorageID() string {
	return uuid.New().String()
}
