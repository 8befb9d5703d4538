// Package event implements the event registry: per-organizer event
// configuration and the supply accounting every mint checks against.
package event

import (
	"math/bits"

	"github.com/forestrie/encore/address"
)

const (
	MinTicketSupply         = 1
	MaxTicketSupply         = 1_000_000
	MinResaleCapBPS         = 10_000
	MaxResaleCapBPS         = 100_000
	MaxNameLen              = 64
	MaxLocationLen          = 64
	MaxDescriptionLen       = 200
	ResaleCapDenominatorBPS = 10_000
)

// Event is owned by exactly one authority for its entire lifetime.
type Event struct {
	Address   address.Address
	Authority address.Address

	MaxSupply           uint32
	TicketsMinted       uint32
	ResaleCapBPS        uint32
	Name                string
	Location            string
	Description         string
	MaxTicketsPerPerson uint8
	EventTimestamp      int64

	CreatedAt int64
	UpdatedAt int64
	Bump      uint8
}

// CanMint reports whether n additional tickets can be minted without
// exceeding MaxSupply. Arithmetic is wrap-safe: an overflowing addition is
// treated as "cannot mint" rather than wrapping to a small number that
// would falsely permit it.
func (e *Event) CanMint(n uint32) bool {
	sum := uint64(e.TicketsMinted) + uint64(n)
	return sum <= uint64(e.MaxSupply)
}

// MaxResalePrice computes original * resale_cap_bps / 10_000 using a
// 128-bit intermediate so the multiplication cannot silently wrap; an
// overflow is treated as a zero cap, which blocks every resale rather than
// permitting an unbounded one.
func (e *Event) MaxResalePrice(original uint64) uint64 {
	hi, lo := bits.Mul64(original, uint64(e.ResaleCapBPS))
	if hi != 0 {
		return 0
	}
	return lo / ResaleCapDenominatorBPS
}
