package statetree

import (
	"bytes"
	"context"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/encore/address"
	"github.com/forestrie/encore/telemetry"
)

// MemoryAdapter is the reference Adapter implementation used by this
// module's own tests. It is the in-workspace stand-in for the external
// compressed state tree, which remains an out-of-process collaborator in
// any real deployment; production deployments replace it with a client for
// the real ledger's state-tree RPC. Every mutation is serialized through a
// single mutex, modeling the "each invocation executes atomically with
// respect to every other" guarantee the ledger itself provides.
type MemoryAdapter struct {
	mu       sync.RWMutex
	records  map[address.Address][]byte
	verifier ProofVerifier
	log      logger.Logger
}

// NewMemoryAdapter returns an empty MemoryAdapter. A nil log falls back to
// a named default logger (see package telemetry).
func NewMemoryAdapter(log logger.Logger) *MemoryAdapter {
	return &MemoryAdapter{
		records: make(map[address.Address][]byte),
		log:     telemetry.OrNamed(log, "statetree.memory"),
	}
}

// CreateRecord implements Adapter.
func (m *MemoryAdapter) CreateRecord(_ context.Context, addr address.Address, data []byte, _ OutputTreeHint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[addr]; exists {
		return ErrAddressExists
	}
	m.records[addr] = append([]byte(nil), data...)
	return nil
}

// UpdateRecord implements Adapter.
func (m *MemoryAdapter) UpdateRecord(_ context.Context, addr address.Address, old, newData []byte, _ *ValidityProof) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, exists := m.records[addr]
	if !exists {
		return ErrAddressNotFound
	}
	if !bytes.Equal(current, old) {
		return ErrStaleRecord
	}
	m.records[addr] = append([]byte(nil), newData...)
	return nil
}

// ReadRecord implements Adapter.
func (m *MemoryAdapter) ReadRecord(_ context.Context, addr address.Address) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, exists := m.records[addr]
	if !exists {
		return nil, ErrAddressNotFound
	}
	return append([]byte(nil), data...), nil
}

// VerifyAndApply implements Adapter. It validates every create and update
// in the batch against the current state before mutating anything, so a
// batch that would partially fail never partially applies.
func (m *MemoryAdapter) VerifyAndApply(ctx context.Context, proof *ValidityProof, batch *Batch) error {
	verifier := ProofVerifier(AlwaysValid{})
	if m.verifier != nil {
		verifier = m.verifier
	}
	if err := verifier.Verify(ctx, proof, batch); err != nil {
		m.log.Debugf("batch rejected by proof verifier: %v", err)
		return ErrProofRejected
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range batch.Creates {
		if _, exists := m.records[c.Address]; exists {
			return ErrAddressExists
		}
	}
	for _, u := range batch.Updates {
		current, exists := m.records[u.Address]
		if !exists {
			return ErrAddressNotFound
		}
		if !bytes.Equal(current, u.Old) {
			return ErrStaleRecord
		}
	}

	for _, c := range batch.Creates {
		m.records[c.Address] = append([]byte(nil), c.Data...)
	}
	for _, u := range batch.Updates {
		m.records[u.Address] = append([]byte(nil), u.New...)
	}
	return nil
}

// WithVerifier installs a non-default ProofVerifier and returns the
// adapter for chaining. Tests that want to exercise a rejecting verifier
// use this instead of AlwaysValid.
func (m *MemoryAdapter) WithVerifier(v ProofVerifier) *MemoryAdapter {
	m.verifier = v
	return m
}

// CurrentSeal returns a RootSeal describing the adapter's state right now,
// ready to hand to a CheckpointSigner. batchDigest should commit to
// whatever batch the caller just applied; callers with no batch context
// pass nil.
func (m *MemoryAdapter) CurrentSeal(batchDigest []byte) RootSeal {
	m.mu.RLock()
	count := uint64(len(m.records))
	m.mu.RUnlock()
	return RootSeal{
		Version:     RootSealVersionCurrent,
		RecordCount: count,
		BatchDigest: batchDigest,
		Timestamp:   nowUnix(),
	}
}
