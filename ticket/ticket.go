// Package ticket implements the mint and transfer protocol: commitment
// rotation, nullifier-based double-spend prevention, and resale-cap
// enforcement against the originating event.
package ticket

import "github.com/forestrie/encore/address"

// Ticket is a compressed record addressed by a derived identifier from a
// fresh random seed, so the address itself reveals no linkage to the
// owner or to any prior record in its lineage.
type Ticket struct {
	Event           address.Address
	TicketID        uint32
	OwnerCommitment address.Address
	OriginalPrice   uint64
}

// IdentityCounter enforces the optional per-event, per-buyer mint cap.
type IdentityCounter struct {
	Event         address.Address
	Buyer         address.Address
	TicketsMinted uint8
}
