package marketplace

import (
	"context"
	"errors"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/encore/address"
	"github.com/forestrie/encore/encoreerr"
	"github.com/forestrie/encore/runtime"
	"github.com/forestrie/encore/statetree"
	"github.com/forestrie/encore/telemetry"
	"github.com/forestrie/encore/ticket"
)

// Protocol composes the collaborators the listing state machine needs:
// value transfer for escrow custody, a clock for the claim-timeout rule,
// signer authentication for every seller/buyer-gated operation, and a
// state-tree adapter for the nullifier and new ticket record complete_sale
// creates.
type Protocol struct {
	transferer runtime.ValueTransferer
	clock      runtime.Clock
	auth       runtime.SignerAuth
	adapter    statetree.Adapter
	sink       EventSink
	log        logger.Logger
}

// NewProtocol constructs a Protocol. log may be nil.
func NewProtocol(transferer runtime.ValueTransferer, clock runtime.Clock, auth runtime.SignerAuth, adapter statetree.Adapter, sink EventSink, log logger.Logger) *Protocol {
	return &Protocol{
		transferer: transferer,
		clock:      clock,
		auth:       auth,
		adapter:    adapter,
		sink:       sink,
		log:        telemetry.OrNamed(log, "marketplace.protocol"),
	}
}

func (p *Protocol) requireSigner(ctx context.Context, addr address.Address) bool {
	if p.auth == nil {
		return true
	}
	return p.auth.IsSigner(ctx, addr)
}

// CreateListingParams carries create_listing's exact argument set.
type CreateListingParams struct {
	Seller           address.Address
	TicketCommitment address.Address
	EncryptedSecret  address.Hash256
	PriceLamports    uint64
	OriginalPrice    uint64
	EventConfig      address.Address
	TicketID         uint32
	Bump             uint8
}

// CreateListing validates p and returns a new Active listing. It performs
// no state-tree mutation of its own — the listing account itself is the
// new state; callers persist it the way their surrounding transaction
// handles non-compressed accounts.
func (p *Protocol) CreateListing(params CreateListingParams, now int64) (*Listing, error) {
	if params.PriceLamports == 0 {
		return nil, encoreerr.ErrInvalidPrice
	}

	l := &Listing{
		Seller:           params.Seller,
		TicketCommitment: params.TicketCommitment,
		EncryptedSecret:  params.EncryptedSecret,
		PriceLamports:    params.PriceLamports,
		OriginalPrice:    params.OriginalPrice,
		EventConfig:      params.EventConfig,
		TicketID:         params.TicketID,
		Status:           Active,
		CreatedAt:        now,
		Bump:             params.Bump,
	}
	l.Address = address.DeriveListingAddress(params.Seller, params.TicketCommitment)
	p.log.Debugf("created listing %x price=%d", l.Address, l.PriceLamports)
	return l, nil
}

// ClaimListing requires an Active listing. It transfers price_lamports
// from buyer to the listing's escrow address and records the claim.
func (p *Protocol) ClaimListing(ctx context.Context, l *Listing, buyer, buyerCommitment address.Address) error {
	if l.Status != Active {
		return encoreerr.ErrListingNotActive
	}

	if err := p.transferer.Transfer(ctx, buyer, l.EscrowAddress(), l.PriceLamports); err != nil {
		return err
	}

	now := p.clock.Now().Unix()
	l.Buyer = &buyer
	l.BuyerCommitment = &buyerCommitment
	l.ClaimedAt = &now
	l.Status = Claimed
	p.log.Debugf("claimed listing %x buyer=%x", l.Address, buyer)
	return nil
}

// CancelClaim is the buyer-initiated exit from Claimed: the full escrow
// balance is refunded to the buyer and the listing resets to Active.
func (p *Protocol) CancelClaim(ctx context.Context, l *Listing, signer address.Address) error {
	if l.Status != Claimed {
		return encoreerr.ErrListingNotClaimed
	}
	if l.Buyer == nil || signer != *l.Buyer || !p.requireSigner(ctx, signer) {
		return encoreerr.ErrNotBuyer
	}
	return p.refundAndResetToActive(ctx, l, *l.Buyer)
}

// SellerCancelClaim is the seller-initiated exit from Claimed (e.g. the
// seller lost the ticket secret or wants to relist). Escrow is refunded to
// the buyer, not the seller, before the listing resets to Active.
func (p *Protocol) SellerCancelClaim(ctx context.Context, l *Listing, signer address.Address) error {
	if l.Status != Claimed {
		return encoreerr.ErrListingNotClaimed
	}
	if signer != l.Seller || !p.requireSigner(ctx, signer) {
		return encoreerr.ErrNotSeller
	}
	if l.Buyer == nil {
		return encoreerr.ErrListingNotClaimed
	}
	return p.refundAndResetToActive(ctx, l, *l.Buyer)
}

// ReleaseClaim lets the seller reclaim an abandoned claim once the timeout
// has strictly elapsed. It refunds the full escrow balance to the buyer
// before resetting to Active — the same refund-then-reset shape as
// CancelClaim and SellerCancelClaim, so the escrow-balance-zero-in-Active
// invariant holds mechanically on every exit from Claimed, not only when
// the buyer never paid.
func (p *Protocol) ReleaseClaim(ctx context.Context, l *Listing, signer address.Address) error {
	if l.Status != Claimed {
		return encoreerr.ErrListingNotClaimed
	}
	if signer != l.Seller || !p.requireSigner(ctx, signer) {
		return encoreerr.ErrNotSeller
	}
	if l.ClaimedAt == nil {
		return encoreerr.ErrListingNotClaimed
	}
	elapsed := p.clock.Now().Unix() - *l.ClaimedAt
	if elapsed <= ClaimTimeoutSeconds {
		return encoreerr.ErrClaimTimeoutNotReached
	}
	if l.Buyer == nil {
		return encoreerr.ErrListingNotClaimed
	}
	return p.refundAndResetToActive(ctx, l, *l.Buyer)
}

// refundAndResetToActive transfers the escrow's current balance to buyer
// and clears the claim fields, shared by every Claimed-exit path that
// returns to Active.
func (p *Protocol) refundAndResetToActive(ctx context.Context, l *Listing, buyer address.Address) error {
	escrow := l.EscrowAddress()
	balance, err := p.transferer.BalanceOf(ctx, escrow)
	if err != nil {
		return err
	}
	if balance > 0 {
		if err := p.transferer.Transfer(ctx, escrow, buyer, balance); err != nil {
			return err
		}
	}
	l.Buyer = nil
	l.BuyerCommitment = nil
	l.ClaimedAt = nil
	l.Status = Active
	return nil
}

// CompleteSaleParams carries complete_sale's exact argument set.
type CompleteSaleParams struct {
	Proof                *statetree.ValidityProof
	SellerPubkey         address.Address
	SellerSecret         address.Hash256
	NewTicketAddressSeed address.Hash256
}

// CompleteSale requires a Claimed listing with a recorded buyer
// commitment. It authorizes the seller via commitment+secret exactly like
// a direct ticket transfer, publishes a nullifier, creates the new ticket
// record under buyer_commitment preserving ticket_id/original_price, pays
// the seller the full escrow balance, and marks the listing Completed.
func (p *Protocol) CompleteSale(ctx context.Context, l *Listing, params CompleteSaleParams) error {
	if l.Status != Claimed {
		return encoreerr.ErrListingNotClaimed
	}
	if l.BuyerCommitment == nil || l.Buyer == nil {
		return encoreerr.ErrListingNotClaimed
	}

	expected := address.OwnerCommitment(params.SellerPubkey, params.SellerSecret)
	if expected != l.TicketCommitment {
		return encoreerr.ErrNotTicketOwner
	}

	nullifierSeed := address.DeriveNullifierSeed(params.SellerSecret)
	nullifierAddr := address.DeriveNullifierAddress(nullifierSeed)

	newTk := newTicketRecord(l)
	newData, err := statetree.MarshalRecord(newTk)
	if err != nil {
		return err
	}
	newAddr := address.DeriveTicketAddress(params.NewTicketAddressSeed)

	batch := statetree.NewBatch().
		Create(nullifierAddr, nil, 0).
		Create(newAddr, newData, 0)

	if err := p.adapter.VerifyAndApply(ctx, params.Proof, batch); err != nil {
		if errors.Is(err, statetree.ErrAddressExists) {
			return encoreerr.ErrTicketAlreadyTransferred
		}
		return err
	}

	escrow := l.EscrowAddress()
	balance, err := p.transferer.BalanceOf(ctx, escrow)
	if err != nil {
		return err
	}
	if err := p.transferer.Transfer(ctx, escrow, l.Seller, balance); err != nil {
		return err
	}

	l.Status = Completed
	p.log.Debugf("completed sale for listing %x price=%d", l.Address, l.PriceLamports)
	if p.sink != nil {
		p.sink.Emit(SaleCompleted{
			Listing:       l.Address,
			Seller:        l.Seller,
			Buyer:         *l.Buyer,
			Event:         l.EventConfig,
			TicketID:      l.TicketID,
			PriceLamports: l.PriceLamports,
		})
	}
	return nil
}

// newTicketRecord builds the ticket record complete_sale creates under the
// listing's recorded buyer commitment, preserving ticket_id and
// original_price from the listing across the rotation.
func newTicketRecord(l *Listing) *ticket.Ticket {
	return &ticket.Ticket{
		Event:           l.EventConfig,
		TicketID:        l.TicketID,
		OwnerCommitment: *l.BuyerCommitment,
		OriginalPrice:   l.OriginalPrice,
	}
}

// CancelListing requires an Active listing and signer == seller. It marks
// the listing Cancelled; returning the storage deposit to the seller is a
// ledger-level concern (out of scope) the caller's surrounding transaction
// handles once Status observes Cancelled.
func (p *Protocol) CancelListing(ctx context.Context, l *Listing, signer address.Address) error {
	if l.Status != Active {
		return encoreerr.ErrListingNotActive
	}
	if signer != l.Seller || !p.requireSigner(ctx, signer) {
		return encoreerr.ErrNotSeller
	}
	l.Status = Cancelled
	return nil
}

// CloseListing is idempotent cleanup for a Cancelled or Completed listing.
// It performs no further state change beyond validating the status; the
// account's closure is, like CancelListing's deposit return, a ledger-level
// concern.
func (p *Protocol) CloseListing(l *Listing) error {
	if l.Status != Cancelled && l.Status != Completed {
		return encoreerr.ErrListingNotCancelled
	}
	return nil
}
