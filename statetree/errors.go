package statetree

import "errors"

// Adapter-level errors. These are deliberately generic — the ticket and
// marketplace packages translate them into the flat, domain-specific
// taxonomy in encoreerr (e.g. a nullifier's ErrAddressExists becomes
// encoreerr.ErrTicketAlreadyTransferred); the event registry returns them
// unchanged.
var (
	// ErrAddressExists is returned when a create targets an address that
	// is already occupied. For a Nullifier this is exactly the
	// double-spend signal: a second transfer attempt from the same secret
	// derives the same address and collides here.
	ErrAddressExists = errors.New("statetree: address already exists")

	// ErrAddressNotFound is returned by ReadRecord and by an update whose
	// target address has no current record.
	ErrAddressNotFound = errors.New("statetree: address not found")

	// ErrStaleRecord is returned when an update's supplied "old" contents
	// do not match what is currently stored at the address — the proof's
	// prior-state reconstruction no longer matches the tree.
	ErrStaleRecord = errors.New("statetree: supplied prior record does not match current state")

	// ErrProofRejected is returned when the injected ProofVerifier
	// rejects a batch. No part of the batch is applied.
	ErrProofRejected = errors.New("statetree: validity proof rejected")
)
