package runtime

import (
	"context"

	"github.com/forestrie/encore/address"
)

// SignerAuth reports whether addr authorized the current invocation.
// marketplace consults it wherever an operation requires "signer =="
// authorization (cancel_claim, seller_cancel_claim, release_claim,
// cancel_listing), and event consults it for
// update_event's authority check.
type SignerAuth interface {
	IsSigner(ctx context.Context, addr address.Address) bool
}
