// Package marketplace implements the listing state machine: escrow
// custody during a claim, claim-timeout release, and atomic sale
// completion against the ticket protocol's commitment+nullifier model.
package marketplace

import "github.com/forestrie/encore/address"

// Status is the listing's closed sum type. Each status-dependent operation
// in this package checks the current status against the one status (or,
// for CloseListing, the two) it accepts and rejects every other; String is
// the only exhaustive switch over it.
type Status uint8

const (
	Active Status = iota
	Claimed
	Completed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Active:
		return "Active"
	case Claimed:
		return "Claimed"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// ClaimTimeoutSeconds is the duration after which a Claimed listing's
// seller may release it back to Active if the sale was never completed.
const ClaimTimeoutSeconds = 86_400

// Listing is keyed by H("listing" || seller || ticket_commitment). It
// references the ticket it sells by commitment, never by address — no
// reference runs the other way; tickets never reference listings.
type Listing struct {
	Address address.Address

	Seller           address.Address
	TicketCommitment address.Address
	EncryptedSecret  address.Hash256
	PriceLamports    uint64

	// OriginalPrice is the ticket's immutable mint-time price, carried
	// through from create_listing and returned unchanged by
	// complete_sale, distinct from PriceLamports (the asking price),
	// which the resale cap is checked against separately by the ticket
	// protocol's Transfer and by create_listing's caller.
	OriginalPrice uint64
	EventConfig   address.Address
	TicketID      uint32

	Buyer           *address.Address
	BuyerCommitment *address.Address
	ClaimedAt       *int64

	Status Status

	CreatedAt int64
	Bump      uint8
}

// EscrowAddress derives this listing's escrow account.
func (l *Listing) EscrowAddress() address.Address {
	return address.DeriveEscrowAddress(l.Address)
}
