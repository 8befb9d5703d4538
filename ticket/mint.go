package ticket

import (
	"context"
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/encore/address"
	"github.com/forestrie/encore/encoreerr"
	"github.com/forestrie/encore/event"
	"github.com/forestrie/encore/statetree"
	"github.com/forestrie/encore/telemetry"
)

// Protocol composes the state-tree adapter and event sink the ticket
// operations need; Mint and Transfer are methods on it so callers thread
// one value through both entry points instead of passing the adapter and
// sink separately at every call.
type Protocol struct {
	adapter statetree.Adapter
	sink    EventSink
	log     logger.Logger
}

// NewProtocol constructs a Protocol. log may be nil.
func NewProtocol(adapter statetree.Adapter, sink EventSink, log logger.Logger) *Protocol {
	return &Protocol{adapter: adapter, sink: sink, log: telemetry.OrNamed(log, "ticket.protocol")}
}

// MintParams carries mint_ticket's exact argument set. IdentityCounter is
// nil on a buyer's first mint for an event; otherwise it is the buyer's
// existing counter record, read by the caller before invoking Mint.
type MintParams struct {
	Proof             *statetree.ValidityProof
	Event             *event.Event
	TreeHandle        statetree.AddressTreeHandle
	OwnerCommitment   address.Address
	PurchasePrice     uint64
	TicketAddressSeed address.Hash256
	IdentityCounter   *IdentityCounter
	Buyer             address.Address
}

// Mint validates and applies a single ticket mint, atomically (within one
// statetree batch) creating the ticket record, creating-or-updating the
// buyer's identity counter, and incrementing the event's tickets_minted.
func (p *Protocol) Mint(ctx context.Context, m MintParams) (*Ticket, error) {
	if m.TreeHandle != statetree.CurrentAddressTreeVersion {
		return nil, encoreerr.ErrInvalidAddressTree
	}
	if !m.Event.CanMint(1) {
		return nil, encoreerr.ErrMaxSupplyReached
	}
	if m.PurchasePrice == 0 {
		return nil, encoreerr.ErrInvalidPurchasePrice
	}

	if m.IdentityCounter != nil {
		if m.IdentityCounter.TicketsMinted >= m.Event.MaxTicketsPerPerson {
			return nil, encoreerr.ErrMaxTicketsPerPersonReached
		}
	} else if m.Event.MaxTicketsPerPerson < 1 {
		return nil, encoreerr.ErrMaxTicketsPerPersonReached
	}

	ticketAddr := address.DeriveTicketAddress(m.TicketAddressSeed)
	tk := &Ticket{
		Event:           m.Event.Address,
		TicketID:        m.Event.TicketsMinted + 1,
		OwnerCommitment: m.OwnerCommitment,
		OriginalPrice:   m.PurchasePrice,
	}
	tkData, err := statetree.MarshalRecord(tk)
	if err != nil {
		return nil, err
	}

	batch := statetree.NewBatch().Create(ticketAddr, tkData, 0)

	counterAddr := address.DeriveIdentityCounterAddress(m.Event.Address, m.Buyer)
	if m.IdentityCounter == nil {
		counter := &IdentityCounter{Event: m.Event.Address, Buyer: m.Buyer, TicketsMinted: 1}
		counterData, err := statetree.MarshalRecord(counter)
		if err != nil {
			return nil, err
		}
		batch.Create(counterAddr, counterData, 0)
	} else {
		oldData, err := statetree.MarshalRecord(m.IdentityCounter)
		if err != nil {
			return nil, err
		}
		updated := *m.IdentityCounter
		updated.TicketsMinted++
		newData, err := statetree.MarshalRecord(&updated)
		if err != nil {
			return nil, err
		}
		batch.Update(counterAddr, oldData, newData)
	}

	if err := p.adapter.VerifyAndApply(ctx, m.Proof, batch); err != nil {
		return nil, fmt.Errorf("ticket: minting %x for event %x: %w", ticketAddr, m.Event.Address, err)
	}

	m.Event.TicketsMinted++

	p.log.Debugf("minted ticket %x for event %x, ticket_id=%d", ticketAddr, m.Event.Address, tk.TicketID)
	if p.sink != nil {
		p.sink.Emit(Minted{Event: m.Event.Address, PurchasePrice: m.PurchasePrice})
	}
	return tk, nil
}
