package runtime

import (
	"context"

	"github.com/forestrie/encore/address"
)

// ValueTransferer moves the ledger's native token between addresses and
// reports balances. marketplace uses it for escrow custody: funds move to
// the escrow address on claim_listing, and out again on every exit from
// Claimed. event and ticket never call it — minting charges no
// protocol-level transfer, and purchase_price is informational only.
type ValueTransferer interface {
	Transfer(ctx context.Context, from, to address.Address, lamports uint64) error
	BalanceOf(ctx context.Context, addr address.Address) (uint64, error)
}
