package address

// Address identifies a record in the external compressed state tree.
// Addresses are opaque 256-bit values; this package is the only place that
// knows how to derive them, so all derivation rules stay in one spot.
type Address = Hash256

// Derive combines a namespace seed string with zero or more seed values
// into a single deterministic Address, mirroring how the external ledger's
// program-derived-address scheme combines seeds. The core never talks to
// that scheme directly — program-derived addressing lives entirely in the
// external ledger runtime; this package only needs to predict, client-side,
// the same address the ledger will assign, so that a Batch (see package
// statetree) can name its own outputs before submission.
func Derive(namespace string, seeds ...[]byte) Address {
	parts := make([][]byte, 0, len(seeds)+1)
	parts = append(parts, []byte(namespace))
	parts = append(parts, seeds...)
	return hash(parts...)
}

// DeriveEventAddress derives an Event's address from its authority.
func DeriveEventAddress(authority Hash256) Address {
	return Derive(EventSeed, authority[:])
}

// DeriveTicketAddress derives a Ticket's address from a fresh random seed.
// The seed carries no linkage to the owner or to any prior record, which is
// the entire point: ticket addresses must not leak ownership history.
func DeriveTicketAddress(randomSeed Hash256) Address {
	return Derive(TicketSeed, randomSeed[:])
}

// DeriveNullifierAddress derives a Nullifier's address from the hash of a
// spent secret. Two transfers of the same underlying ticket compute the
// same nullifier address and therefore collide at creation time.
func DeriveNullifierAddress(nullifierSeed Hash256) Address {
	return Derive(NullifierSeed, nullifierSeed[:])
}

// DeriveIdentityCounterAddress derives a per-event, per-buyer identity
// counter's address.
func DeriveIdentityCounterAddress(event, buyer Hash256) Address {
	return Derive(IdentityCounterSeed, event[:], buyer[:])
}

// DeriveListingAddress derives a Listing's address from the seller and the
// ticket commitment being sold.
func DeriveListingAddress(seller, ticketCommitment Hash256) Address {
	return Derive(ListingSeed, seller[:], ticketCommitment[:])
}

// DeriveEscrowAddress derives the Escrow account that custodies funds for a
// given listing.
func DeriveEscrowAddress(listing Address) Address {
	return Derive(EscrowSeed, listing[:])
}
