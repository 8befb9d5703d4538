package statetree

import (
	"context"

	"github.com/forestrie/encore/address"
)

// Adapter is the exact four-operation surface the core consumes from the
// external state-tree service. The ticket and marketplace packages make
// every create/update inside a Batch submitted through VerifyAndApply, so
// that atomicity is the adapter's responsibility, not the caller's; the
// event registry writes its single Event record with CreateRecord and
// UpdateRecord.
type Adapter interface {
	// CreateRecord creates a single new record outside of a batch, for a
	// single create that needs no proof. The event registry uses it for
	// new Event records; ticket and marketplace code routes through
	// VerifyAndApply instead.
	CreateRecord(ctx context.Context, addr address.Address, data []byte, hint OutputTreeHint) error

	// UpdateRecord replaces old with newData at addr, having already been
	// authorized by proof. The event registry uses it for Event updates;
	// ticket and marketplace code routes through VerifyAndApply instead.
	UpdateRecord(ctx context.Context, addr address.Address, old, newData []byte, proof *ValidityProof) error

	// ReadRecord returns the current contents at addr, or
	// ErrAddressNotFound.
	ReadRecord(ctx context.Context, addr address.Address) ([]byte, error)

	// VerifyAndApply submits proof and batch together. The proof
	// predicate guarantees every update's declared prior contents
	// currently exist at their addresses and that every create's address
	// does not. On any mismatch the whole batch is rejected and no part
	// of it is applied: all-or-nothing.
	VerifyAndApply(ctx context.Context, proof *ValidityProof, batch *Batch) error
}
