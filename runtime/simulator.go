package runtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/forestrie/encore/address"
)

// ErrInsufficientBalance is returned by Simulator.Transfer when from does
// not hold enough to cover the requested amount. A real ledger's native
// token transfer fails the same way, aborting the whole invocation.
var ErrInsufficientBalance = errors.New("runtime: insufficient balance for transfer")

// Simulator is a reference Clock + ValueTransferer + SignerAuth backing the
// test suite. It is not meant for production use any more than a hand
// rolled test harness is: balances live only in memory, and "signers" are
// whatever the test declares them to be.
type Simulator struct {
	mu       sync.Mutex
	balances map[address.Address]uint64
	signers  map[address.Address]bool
	now      time.Time
}

// NewSimulator returns a Simulator with no balances and no signers,
// clocked at the given time. Tests that don't care about absolute time
// values pass any fixed instant and advance it with Advance.
func NewSimulator(now time.Time) *Simulator {
	return &Simulator{
		balances: make(map[address.Address]uint64),
		signers:  make(map[address.Address]bool),
		now:      now,
	}
}

// Now implements Clock.
func (s *Simulator) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the simulated clock forward by d, the way tests exercise
// the CLAIM_TIMEOUT_SECONDS boundary without sleeping.
func (s *Simulator) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

// Fund credits addr with lamports, establishing an initial balance for a
// test's buyer or seller.
func (s *Simulator) Fund(addr address.Address, lamports uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[addr] += lamports
}

// Authorize marks addr as a valid signer for subsequent IsSigner checks.
func (s *Simulator) Authorize(addr address.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signers[addr] = true
}

// IsSigner implements SignerAuth.
func (s *Simulator) IsSigner(_ context.Context, addr address.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signers[addr]
}

// Transfer implements ValueTransferer. It refuses to move more than from
// currently holds rather than allowing a negative balance, mirroring a
// real ledger's native-token transfer failing the whole transaction.
func (s *Simulator) Transfer(_ context.Context, from, to address.Address, lamports uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances[from] < lamports {
		return ErrInsufficientBalance
	}
	s.balances[from] -= lamports
	s.balances[to] += lamports
	return nil
}

// BalanceOf implements ValueTransferer.
func (s *Simulator) BalanceOf(_ context.Context, addr address.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[addr], nil
}
