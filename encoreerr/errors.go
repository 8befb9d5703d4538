// Package encoreerr defines the flat sentinel-error taxonomy shared by every
// core package. Every state mutation aborts the whole transaction on the
// first error; there is no partial application and no internal recovery.
package encoreerr

import "errors"

// Validation errors are raised by create_event/update_event and the ticket
// and marketplace entry points before any state is touched.
var (
	ErrInvalidTicketSupply     = errors.New("encore: ticket supply must be greater than zero")
	ErrTicketSupplyTooLarge    = errors.New("encore: ticket supply exceeds maximum allowed")
	ErrResaleCapTooLow         = errors.New("encore: resale cap must be at least 1.0x (10000 basis points)")
	ErrResaleCapTooHigh        = errors.New("encore: resale cap exceeds maximum allowed (10.0x)")
	ErrEventNameEmpty          = errors.New("encore: event name cannot be empty")
	ErrEventNameTooLong        = errors.New("encore: event name exceeds maximum length")
	ErrEventLocationTooLong    = errors.New("encore: event location exceeds maximum length")
	ErrEventDescriptionTooLong = errors.New("encore: event description exceeds maximum length")
	ErrEventTimestampInPast    = errors.New("encore: event timestamp must be in the future")
	ErrInvalidPurchasePrice    = errors.New("encore: purchase price must be greater than zero")
	ErrInvalidPrice            = errors.New("encore: listing price must be greater than zero")
)

// Authorization errors are raised when the signer presented to an operation
// does not match the identity the operation requires.
var (
	ErrUnauthorized   = errors.New("encore: signer is not the event authority")
	ErrNotSeller      = errors.New("encore: signer is not the listing seller")
	ErrNotBuyer       = errors.New("encore: signer is not the listing buyer")
	ErrNotTicketOwner = errors.New("encore: commitment does not match ticket owner")
)

// Invariant/capacity errors are raised when an operation would violate a
// supply, per-person, or resale-cap limit.
var (
	ErrMaxSupplyReached           = errors.New("encore: maximum ticket supply reached")
	ErrMaxTicketsPerPersonReached = errors.New("encore: maximum tickets per person reached")
	ErrExceedsResaleCap           = errors.New("encore: resale price exceeds the event's resale cap")
)

// Protocol errors are raised by the state-tree adapter layer: tree
// mismatches, malformed prior-state reconstruction, or nullifier reuse.
var (
	ErrInvalidAddressTree       = errors.New("encore: address tree handle is not the required version")
	ErrInvalidTicket            = errors.New("encore: ticket record does not match the constructed prior state")
	ErrTicketAlreadyTransferred = errors.New("encore: nullifier already exists, ticket already transferred")
)

// State-machine errors are raised when a marketplace operation is invoked
// against a listing status that does not permit it.
var (
	ErrListingNotActive       = errors.New("encore: listing is not active")
	ErrListingNotClaimed      = errors.New("encore: listing is not claimed")
	ErrListingNotCancelled    = errors.New("encore: listing is not cancelled or completed")
	ErrClaimTimeoutNotReached = errors.New("encore: claim timeout has not been reached")
)
