package ticket

import (
	"context"
	"testing"

	"github.com/forestrie/encore/address"
	"github.com/forestrie/encore/encoreerr"
	"github.com/forestrie/encore/statetree"
	"github.com/stretchr/testify/require"
)

func TestTransferSucceedsUnderResaleCap(t *testing.T) {
	adapter := statetree.NewMemoryAdapter(nil)
	p := NewProtocol(adapter, nil, nil)
	ev := testEvent()
	ev.ResaleCapBPS = 15_000 // 1.5x

	secret := address.Hash256{42}
	pk := address.Hash256{7}
	commitment := address.OwnerCommitment(pk, secret)
	seed := address.Hash256{1}

	tk, err := p.Mint(context.Background(), MintParams{
		Proof:             &statetree.ValidityProof{},
		Event:             ev,
		TreeHandle:        statetree.CurrentAddressTreeVersion,
		OwnerCommitment:   commitment,
		PurchasePrice:     1_000_000_000,
		TicketAddressSeed: seed,
		Buyer:             pk,
	})
	require.NoError(t, err)
	ticketAddr := address.DeriveTicketAddress(seed)

	resale := uint64(1_400_000_000)
	newTk, err := p.Transfer(context.Background(), TransferParams{
		Proof:                &statetree.ValidityProof{},
		Event:                ev,
		TreeHandle:           statetree.CurrentAddressTreeVersion,
		TicketAddress:        ticketAddr,
		SellerPubkey:         pk,
		SellerSecret:         secret,
		Current:              *tk,
		NewOwnerCommitment:   address.Hash256{99},
		NewTicketAddressSeed: address.Hash256{2},
		ResalePrice:          &resale,
	})
	require.NoError(t, err)
	require.Equal(t, tk.TicketID, newTk.TicketID)
	require.Equal(t, tk.OriginalPrice, newTk.OriginalPrice)
}

func TestTransferRejectsResaleOverCap(t *testing.T) {
	adapter := statetree.NewMemoryAdapter(nil)
	p := NewProtocol(adapter, nil, nil)
	ev := testEvent()
	ev.ResaleCapBPS = 15_000

	secret := address.Hash256{42}
	pk := address.Hash256{7}
	commitment := address.OwnerCommitment(pk, secret)
	seed := address.Hash256{1}

	tk, err := p.Mint(context.Background(), MintParams{
		Proof:             &statetree.ValidityProof{},
		Event:             ev,
		TreeHandle:        statetree.CurrentAddressTreeVersion,
		OwnerCommitment:   commitment,
		PurchasePrice:     1_000_000_000,
		TicketAddressSeed: seed,
		Buyer:             pk,
	})
	require.NoError(t, err)
	ticketAddr := address.DeriveTicketAddress(seed)

	overCap := uint64(1_500_000_001)
	_, err = p.Transfer(context.Background(), TransferParams{
		Proof:                &statetree.ValidityProof{},
		Event:                ev,
		TreeHandle:           statetree.CurrentAddressTreeVersion,
		TicketAddress:        ticketAddr,
		SellerPubkey:         pk,
		SellerSecret:         secret,
		Current:              *tk,
		NewOwnerCommitment:   address.Hash256{99},
		NewTicketAddressSeed: address.Hash256{2},
		ResalePrice:          &overCap,
	})
	require.ErrorIs(t, err, encoreerr.ErrExceedsResaleCap)
}

func TestTransferRejectsWrongSecret(t *testing.T) {
	adapter := statetree.NewMemoryAdapter(nil)
	p := NewProtocol(adapter, nil, nil)
	ev := testEvent()

	pk := address.Hash256{7}
	commitment := address.OwnerCommitment(pk, address.Hash256{42})
	seed := address.Hash256{1}

	tk, err := p.Mint(context.Background(), MintParams{
		Proof:             &statetree.ValidityProof{},
		Event:             ev,
		TreeHandle:        statetree.CurrentAddressTreeVersion,
		OwnerCommitment:   commitment,
		PurchasePrice:     1,
		TicketAddressSeed: seed,
		Buyer:             pk,
	})
	require.NoError(t, err)
	ticketAddr := address.DeriveTicketAddress(seed)

	_, err = p.Transfer(context.Background(), TransferParams{
		Proof:                &statetree.ValidityProof{},
		Event:                ev,
		TreeHandle:           statetree.CurrentAddressTreeVersion,
		TicketAddress:        ticketAddr,
		SellerPubkey:         pk,
		SellerSecret:         address.Hash256{99}, // wrong secret
		Current:              *tk,
		NewOwnerCommitment:   address.Hash256{1},
		NewTicketAddressSeed: address.Hash256{2},
	})
	require.ErrorIs(t, err, encoreerr.ErrInvalidTicket)
}

func TestDoubleSpendPreventedByNullifier(t *testing.T) {
	adapter := statetree.NewMemoryAdapter(nil)
	p := NewProtocol(adapter, nil, nil)
	ev := testEvent()

	secret := address.Hash256{42}
	pk := address.Hash256{7}
	commitment := address.OwnerCommitment(pk, secret)
	seed := address.Hash256{1}

	tk, err := p.Mint(context.Background(), MintParams{
		Proof:             &statetree.ValidityProof{},
		Event:             ev,
		TreeHandle:        statetree.CurrentAddressTreeVersion,
		OwnerCommitment:   commitment,
		PurchasePrice:     1,
		TicketAddressSeed: seed,
		Buyer:             pk,
	})
	require.NoError(t, err)
	ticketAddr := address.DeriveTicketAddress(seed)

	_, err = p.Transfer(context.Background(), TransferParams{
		Proof:                &statetree.ValidityProof{},
		Event:                ev,
		TreeHandle:           statetree.CurrentAddressTreeVersion,
		TicketAddress:        ticketAddr,
		SellerPubkey:         pk,
		SellerSecret:         secret,
		Current:              *tk,
		NewOwnerCommitment:   address.Hash256{1},
		NewTicketAddressSeed: address.Hash256{2},
	})
	require.NoError(t, err)

	// Second transfer attempt reusing the same secret must fail: the
	// nullifier address is already occupied.
	_, err = p.Transfer(context.Background(), TransferParams{
		Proof:                &statetree.ValidityProof{},
		Event:                ev,
		TreeHandle:           statetree.CurrentAddressTreeVersion,
		TicketAddress:        ticketAddr,
		SellerPubkey:         pk,
		SellerSecret:         secret,
		Current:              *tk,
		NewOwnerCommitment:   address.Hash256{3},
		NewTicketAddressSeed: address.Hash256{4},
	})
	require.ErrorIs(t, err, encoreerr.ErrTicketAlreadyTransferred)
}

// TestTransferRejectsFabricatedTicket proves that a caller cannot mint
// itself a ticket record merely by constructing a plausible-looking Current
// and matching commitment: with no real mint behind TicketAddress, the tree
// has nothing there to update, and VerifyAndApply rejects the whole batch.
func TestTransferRejectsFabricatedTicket(t *testing.T) {
	adapter := statetree.NewMemoryAdapter(nil)
	p := NewProtocol(adapter, nil, nil)
	ev := testEvent()

	secret := address.Hash256{42}
	pk := address.Hash256{7}
	commitment := address.OwnerCommitment(pk, secret)

	fabricated := Ticket{
		Event:           ev.Address,
		TicketID:        1,
		OwnerCommitment: commitment,
		OriginalPrice:   1,
	}
	// A caller who never actually minted still has to name some address;
	// pick one that was never created.
	neverMinted := address.DeriveTicketAddress(address.Hash256{255})

	_, err := p.Transfer(context.Background(), TransferParams{
		Proof:                &statetree.ValidityProof{},
		Event:                ev,
		TreeHandle:           statetree.CurrentAddressTreeVersion,
		TicketAddress:        neverMinted,
		SellerPubkey:         pk,
		SellerSecret:         secret,
		Current:              fabricated,
		NewOwnerCommitment:   address.Hash256{1},
		NewTicketAddressSeed: address.Hash256{2},
	})
	require.ErrorIs(t, err, encoreerr.ErrInvalidTicket)
}

func TestTransferRejectsStaleAddressTreeHandle(t *testing.T) {
	adapter := statetree.NewMemoryAdapter(nil)
	p := NewProtocol(adapter, nil, nil)
	ev := testEvent()

	secret := address.Hash256{42}
	pk := address.Hash256{7}
	commitment := address.OwnerCommitment(pk, secret)
	current := Ticket{Event: ev.Address, TicketID: 1, OwnerCommitment: commitment, OriginalPrice: 1}

	_, err := p.Transfer(context.Background(), TransferParams{
		Proof:                &statetree.ValidityProof{},
		Event:                ev,
		TreeHandle:           statetree.CurrentAddressTreeVersion + 1,
		TicketAddress:        address.DeriveTicketAddress(address.Hash256{1}),
		SellerPubkey:         pk,
		SellerSecret:         secret,
		Current:              current,
		NewOwnerCommitment:   address.Hash256{1},
		NewTicketAddressSeed: address.Hash256{2},
	})
	require.ErrorIs(t, err, encoreerr.ErrInvalidAddressTree)
}
