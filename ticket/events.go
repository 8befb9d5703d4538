package ticket

import "github.com/forestrie/encore/address"

// EventSink receives ticket domain events. Both events are deliberately
// sparse — Minted excludes ticket_id and commitment, Transferred carries no
// ticket-identifying data at all — to limit linkability between mint and
// transfer activity and any particular ticket.
type EventSink interface {
	Emit(any)
}

// Minted is emitted once per successful Mint.
type Minted struct {
	Event         address.Address
	PurchasePrice uint64
}

// Transferred is emitted once per successful Transfer.
type Transferred struct {
	Event address.Address
}
