package statetree

import "github.com/forestrie/encore/address"

// OutputTreeHint names which output tree a newly created record should
// land in. The external ledger runtime assigns the real tree; the core
// only needs to carry the caller's chosen index through to the proof
// verifier untouched.
type OutputTreeHint uint8

// AddressTreeHandle identifies which version of the external address-tree
// scheme a caller derived its addresses against. mint_ticket and
// transfer_ticket reject a stale handle before touching the tree at all,
// since addresses derived under a retired scheme would never match what
// the tree actually assigns.
type AddressTreeHandle uint32

// CurrentAddressTreeVersion is the only AddressTreeHandle this module
// accepts.
const CurrentAddressTreeVersion AddressTreeHandle = 1

// RecordCreate describes one new record a Batch will add, at an address
// the caller has already derived (see package address) and that must not
// currently exist.
type RecordCreate struct {
	Address  address.Address
	Data     []byte
	TreeHint OutputTreeHint
}

// RecordUpdate describes one record a Batch will replace: the proof must
// show that Old currently exists at Address before New may be written.
type RecordUpdate struct {
	Address address.Address
	Old     []byte
	New     []byte
}

// Batch accumulates the creates and updates a single invocation wants to
// commit to the state tree in one atomic step. Nothing in a Batch is
// applied until it is submitted to Adapter.VerifyAndApply; the core never
// mutates the tree directly.
type Batch struct {
	Creates []RecordCreate
	Updates []RecordUpdate
}

// NewBatch returns an empty Batch ready for composition.
func NewBatch() *Batch {
	return &Batch{}
}

// Create appends a record-creation to the batch and returns the batch for
// chaining.
func (b *Batch) Create(addr address.Address, data []byte, hint OutputTreeHint) *Batch {
	b.Creates = append(b.Creates, RecordCreate{Address: addr, Data: data, TreeHint: hint})
	return b
}

// Update appends a record-update to the batch and returns the batch for
// chaining.
func (b *Batch) Update(addr address.Address, old, newData []byte) *Batch {
	b.Updates = append(b.Updates, RecordUpdate{Address: addr, Old: old, New: newData})
	return b
}
