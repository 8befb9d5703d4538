package ticket

import (
	"context"
	"errors"

	"github.com/forestrie/encore/address"
	"github.com/forestrie/encore/encoreerr"
	"github.com/forestrie/encore/event"
	"github.com/forestrie/encore/statetree"
)

// TransferParams carries transfer_ticket's exact argument set. Current
// describes the prior-state ticket record the proof must match; the proof
// construction is the authorization check — knowing SellerSecret is what
// lets the caller build the exact prior record the tree holds. TicketAddress
// is the existing ticket's real tree address, known to the caller since it
// derived the address itself at mint time; Transfer names it in the batch as
// a proof-checked update so the tree — not the caller's local commitment
// check alone — is the source of truth that the ticket exists with exactly
// the stated contents.
type TransferParams struct {
	Proof                *statetree.ValidityProof
	Event                *event.Event
	TreeHandle           statetree.AddressTreeHandle
	TicketAddress        address.Address
	SellerPubkey         address.Address
	SellerSecret         address.Hash256
	Current              Ticket
	NewOwnerCommitment   address.Address
	NewTicketAddressSeed address.Hash256
	ResalePrice          *uint64
}

// Transfer validates and applies a single ticket transfer: it authorizes
// via commitment+secret, enforces the resale cap when a resale price is
// declared, re-asserts the existing ticket record against the tree as a
// no-op update (so VerifyAndApply rejects a fabricated or stale Current
// before anything is written), publishes a nullifier for the spent secret
// (double-spend prevention), and creates the new ticket record preserving
// ticket_id and original_price across the rotation.
func (p *Protocol) Transfer(ctx context.Context, t TransferParams) (*Ticket, error) {
	if t.TreeHandle != statetree.CurrentAddressTreeVersion {
		return nil, encoreerr.ErrInvalidAddressTree
	}

	expectedCommitment := address.OwnerCommitment(t.SellerPubkey, t.SellerSecret)
	if expectedCommitment != t.Current.OwnerCommitment {
		return nil, encoreerr.ErrInvalidTicket
	}

	if t.ResalePrice != nil {
		if *t.ResalePrice > t.Event.MaxResalePrice(t.Current.OriginalPrice) {
			return nil, encoreerr.ErrExceedsResaleCap
		}
	}

	priorData, err := statetree.MarshalRecord(&t.Current)
	if err != nil {
		return nil, err
	}

	nullifierSeed := address.DeriveNullifierSeed(t.SellerSecret)
	nullifierAddr := address.DeriveNullifierAddress(nullifierSeed)

	newTk := &Ticket{
		Event:           t.Event.Address,
		TicketID:        t.Current.TicketID,
		OwnerCommitment: t.NewOwnerCommitment,
		OriginalPrice:   t.Current.OriginalPrice,
	}
	newData, err := statetree.MarshalRecord(newTk)
	if err != nil {
		return nil, err
	}
	newAddr := address.DeriveTicketAddress(t.NewTicketAddressSeed)

	batch := statetree.NewBatch().
		Update(t.TicketAddress, priorData, priorData).
		Create(nullifierAddr, nil, 0).
		Create(newAddr, newData, 0)

	if err := p.adapter.VerifyAndApply(ctx, t.Proof, batch); err != nil {
		if errors.Is(err, statetree.ErrAddressExists) {
			return nil, encoreerr.ErrTicketAlreadyTransferred
		}
		if errors.Is(err, statetree.ErrStaleRecord) || errors.Is(err, statetree.ErrAddressNotFound) {
			return nil, encoreerr.ErrInvalidTicket
		}
		return nil, err
	}

	p.log.Debugf("transferred ticket_id=%d for event %x", t.Current.TicketID, t.Event.Address)
	if p.sink != nil {
		p.sink.Emit(Transferred{Event: t.Event.Address})
	}
	return newTk, nil
}
