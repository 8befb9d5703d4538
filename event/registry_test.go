package event

import (
	"context"
	"testing"
	"time"

	"github.com/forestrie/encore/address"
	"github.com/forestrie/encore/encoreerr"
	"github.com/forestrie/encore/runtime"
	"github.com/forestrie/encore/statetree"
	"github.com/stretchr/testify/require"
)

type collectingSink struct {
	events []any
}

func (s *collectingSink) Emit(e any) { s.events = append(s.events, e) }

func newTestRegistry() (*Registry, *collectingSink, *runtime.Simulator) {
	adapter := statetree.NewMemoryAdapter(nil)
	sim := runtime.NewSimulator(time.Unix(0, 0))
	sink := &collectingSink{}
	return NewRegistry(adapter, sim, sim, sink, nil), sink, sim
}

func validParams(authority address.Address) CreateEventParams {
	return CreateEventParams{
		Authority:           authority,
		MaxSupply:           100,
		ResaleCapBPS:        15_000,
		Name:                "Gig",
		Location:            "Venue",
		Description:         "desc",
		MaxTicketsPerPerson: 4,
		EventTimestamp:      2_000,
	}
}

func TestCreateEventSucceedsAndEmits(t *testing.T) {
	r, sink, _ := newTestRegistry()
	authority := address.Hash256{1}

	ev, err := r.CreateEvent(context.Background(), validParams(authority), 1_000)
	require.NoError(t, err)
	require.Equal(t, uint32(0), ev.TicketsMinted)
	require.Len(t, sink.events, 1)
	require.IsType(t, Created{}, sink.events[0])
}

func TestCreateEventValidation(t *testing.T) {
	r, _, _ := newTestRegistry()
	authority := address.Hash256{2}

	cases := []struct {
		name    string
		mutate  func(p CreateEventParams) CreateEventParams
		wantErr error
	}{
		{"zero supply", func(p CreateEventParams) CreateEventParams { p.MaxSupply = 0; return p }, encoreerr.ErrInvalidTicketSupply},
		{"supply too large", func(p CreateEventParams) CreateEventParams { p.MaxSupply = MaxTicketSupply + 1; return p }, encoreerr.ErrTicketSupplyTooLarge},
		{"cap too low", func(p CreateEventParams) CreateEventParams { p.ResaleCapBPS = MinResaleCapBPS - 1; return p }, encoreerr.ErrResaleCapTooLow},
		{"cap too high", func(p CreateEventParams) CreateEventParams { p.ResaleCapBPS = MaxResaleCapBPS + 1; return p }, encoreerr.ErrResaleCapTooHigh},
		{"empty name", func(p CreateEventParams) CreateEventParams { p.Name = ""; return p }, encoreerr.ErrEventNameEmpty},
		{"timestamp in past", func(p CreateEventParams) CreateEventParams { p.EventTimestamp = 500; return p }, encoreerr.ErrEventTimestampInPast},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.CreateEvent(context.Background(), tc.mutate(validParams(authority)), 1_000)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateEventRequiresAuthority(t *testing.T) {
	r, _, sim := newTestRegistry()
	authority := address.Hash256{3}
	sim.Authorize(authority)

	ev, err := r.CreateEvent(context.Background(), validParams(authority), 1_000)
	require.NoError(t, err)

	intruder := address.Hash256{4}
	err = r.UpdateEvent(context.Background(), ev, intruder, 20_000, 2_000)
	require.ErrorIs(t, err, encoreerr.ErrUnauthorized)

	require.NoError(t, r.UpdateEvent(context.Background(), ev, authority, 20_000, 2_000))
	require.Equal(t, uint32(20_000), ev.ResaleCapBPS)
}
