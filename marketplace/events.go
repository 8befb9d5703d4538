package marketplace

import "github.com/forestrie/encore/address"

// EventSink receives marketplace domain events.
type EventSink interface {
	Emit(any)
}

// SaleCompleted is emitted once, at the end of a successful CompleteSale.
type SaleCompleted struct {
	Listing       address.Address
	Seller        address.Address
	Buyer         address.Address
	Event         address.Address
	TicketID      uint32
	PriceLamports uint64
}
