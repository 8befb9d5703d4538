package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/forestrie/encore/address"
	"github.com/stretchr/testify/require"
)

func TestSimulatorTransferMovesBalance(t *testing.T) {
	sim := NewSimulator(time.Unix(0, 0))
	ctx := context.Background()
	from, to := address.Hash256{1}, address.Hash256{2}
	sim.Fund(from, 100)

	require.NoError(t, sim.Transfer(ctx, from, to, 40))

	fromBal, err := sim.BalanceOf(ctx, from)
	require.NoError(t, err)
	require.Equal(t, uint64(60), fromBal)

	toBal, err := sim.BalanceOf(ctx, to)
	require.NoError(t, err)
	require.Equal(t, uint64(40), toBal)
}

func TestSimulatorTransferRejectsInsufficientBalance(t *testing.T) {
	sim := NewSimulator(time.Unix(0, 0))
	ctx := context.Background()
	from, to := address.Hash256{1}, address.Hash256{2}

	err := sim.Transfer(ctx, from, to, 1)
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestSimulatorAdvanceMovesClock(t *testing.T) {
	start := time.Unix(1000, 0)
	sim := NewSimulator(start)
	require.Equal(t, start, sim.Now())

	sim.Advance(86_401 * time.Second)
	require.Equal(t, start.Add(86_401*time.Second), sim.Now())
}

func TestSimulatorIsSignerRequiresAuthorization(t *testing.T) {
	sim := NewSimulator(time.Unix(0, 0))
	addr := address.Hash256{9}
	require.False(t, sim.IsSigner(context.Background(), addr))

	sim.Authorize(addr)
	require.True(t, sim.IsSigner(context.Background(), addr))
}
