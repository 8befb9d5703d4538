package event

import (
	"context"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/encore/address"
	"github.com/forestrie/encore/encoreerr"
	"github.com/forestrie/encore/runtime"
	"github.com/forestrie/encore/statetree"
	"github.com/forestrie/encore/telemetry"
)

// EventSink receives domain events as they are emitted. An indexer
// (external, out of scope) is the typical consumer; tests substitute a
// slice-collecting fake.
type EventSink interface {
	Emit(any)
}

// Created is emitted once, at the end of a successful CreateEvent.
type Created struct {
	Event               address.Address
	Authority           address.Address
	MaxSupply           uint32
	ResaleCapBPS        uint32
	Name                string
	Location            string
	Description         string
	MaxTicketsPerPerson uint8
	EventTimestamp      int64
}

// Updated is emitted once, at the end of a successful UpdateEvent.
type Updated struct {
	Event        address.Address
	Authority    address.Address
	ResaleCapBPS uint32
}

// Registry is the event-registry component: it validates and applies
// create/update operations, persisting the resulting record through a
// statetree.Adapter and emitting domain events through an EventSink.
type Registry struct {
	adapter statetree.Adapter
	clock   runtime.Clock
	auth    runtime.SignerAuth
	sink    EventSink
	log     logger.Logger
}

// NewRegistry constructs a Registry. log may be nil.
func NewRegistry(adapter statetree.Adapter, clock runtime.Clock, auth runtime.SignerAuth, sink EventSink, log logger.Logger) *Registry {
	return &Registry{
		adapter: adapter,
		clock:   clock,
		auth:    auth,
		sink:    sink,
		log:     telemetry.OrNamed(log, "event.registry"),
	}
}

// CreateEventParams carries create_event's exact argument set.
type CreateEventParams struct {
	Authority           address.Address
	MaxSupply           uint32
	ResaleCapBPS        uint32
	Name                string
	Location            string
	Description         string
	MaxTicketsPerPerson uint8
	EventTimestamp      int64
}

func validateCreate(p CreateEventParams, now int64) error {
	switch {
	case p.MaxSupply == 0:
		return encoreerr.ErrInvalidTicketSupply
	case p.MaxSupply > MaxTicketSupply:
		return encoreerr.ErrTicketSupplyTooLarge
	case p.ResaleCapBPS < MinResaleCapBPS:
		return encoreerr.ErrResaleCapTooLow
	case p.ResaleCapBPS > MaxResaleCapBPS:
		return encoreerr.ErrResaleCapTooHigh
	case p.Name == "":
		return encoreerr.ErrEventNameEmpty
	case len(p.Name) > MaxNameLen:
		return encoreerr.ErrEventNameTooLong
	case len(p.Location) > MaxLocationLen:
		return encoreerr.ErrEventLocationTooLong
	case len(p.Description) > MaxDescriptionLen:
		return encoreerr.ErrEventDescriptionTooLong
	case p.EventTimestamp <= now:
		return encoreerr.ErrEventTimestampInPast
	}
	return nil
}

// CreateEvent validates p, derives the event's address from its authority,
// creates the record in the state tree, and emits Created. now is the
// ledger's current time (seconds), used both for the creation timestamp
// and the EventTimestampInPast check.
func (r *Registry) CreateEvent(ctx context.Context, p CreateEventParams, now int64) (*Event, error) {
	if err := validateCreate(p, now); err != nil {
		return nil, err
	}

	addr := address.DeriveEventAddress(p.Authority)
	ev := &Event{
		Address:             addr,
		Authority:           p.Authority,
		MaxSupply:           p.MaxSupply,
		TicketsMinted:       0,
		ResaleCapBPS:        p.ResaleCapBPS,
		Name:                p.Name,
		Location:            p.Location,
		Description:         p.Description,
		MaxTicketsPerPerson: p.MaxTicketsPerPerson,
		EventTimestamp:      p.EventTimestamp,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	data, err := statetree.MarshalRecord(ev)
	if err != nil {
		return nil, err
	}
	if err := r.adapter.CreateRecord(ctx, addr, data, 0); err != nil {
		return nil, err
	}

	r.log.Debugf("created event %x with max_supply=%d resale_cap_bps=%d", addr, ev.MaxSupply, ev.ResaleCapBPS)
	if r.sink != nil {
		r.sink.Emit(Created{
			Event:               addr,
			Authority:           p.Authority,
			MaxSupply:           p.MaxSupply,
			ResaleCapBPS:        p.ResaleCapBPS,
			Name:                p.Name,
			Location:            p.Location,
			Description:         p.Description,
			MaxTicketsPerPerson: p.MaxTicketsPerPerson,
			EventTimestamp:      p.EventTimestamp,
		})
	}
	return ev, nil
}

// UpdateEvent applies a resale-cap change to an existing event. Only the
// event's own authority may call it; bounds are re-checked exactly as at
// creation.
func (r *Registry) UpdateEvent(ctx context.Context, ev *Event, signer address.Address, newResaleCapBPS uint32, now int64) error {
	if ev.Authority != signer || (r.auth != nil && !r.auth.IsSigner(ctx, signer)) {
		return encoreerr.ErrUnauthorized
	}
	if newResaleCapBPS < MinResaleCapBPS {
		return encoreerr.ErrResaleCapTooLow
	}
	if newResaleCapBPS > MaxResaleCapBPS {
		return encoreerr.ErrResaleCapTooHigh
	}

	old, err := statetree.MarshalRecord(ev)
	if err != nil {
		return err
	}

	updated := *ev
	updated.ResaleCapBPS = newResaleCapBPS
	updated.UpdatedAt = now

	newData, err := statetree.MarshalRecord(&updated)
	if err != nil {
		return err
	}
	if err := r.adapter.UpdateRecord(ctx, ev.Address, old, newData, nil); err != nil {
		return err
	}

	*ev = updated
	r.log.Debugf("updated event %x resale_cap_bps=%d", ev.Address, ev.ResaleCapBPS)
	if r.sink != nil {
		r.sink.Emit(Updated{Event: ev.Address, Authority: signer, ResaleCapBPS: newResaleCapBPS})
	}
	return nil
}
