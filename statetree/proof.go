package statetree

import "context"

// ValidityProof is opaque to the core: it verifies a relation over (prior
// record contents at given addresses, new address uniqueness, tree roots).
// The core's only obligation is to hand the proof, unexamined, to a
// ProofVerifier together with the batch it claims to authorize.
type ValidityProof struct {
	Opaque []byte
}

// ProofVerifier is the external zero-knowledge proof generation and
// verification collaborator: the core only ever consumes a verified-proof
// predicate, never generates or checks a proof itself. A real
// implementation checks the proof against live tree roots;
// Adapter.VerifyAndApply treats a non-nil error as a rejection of the
// entire batch, with nothing applied.
type ProofVerifier interface {
	Verify(ctx context.Context, proof *ValidityProof, batch *Batch) error
}

// AlwaysValid is a ProofVerifier that accepts every batch unconditionally.
// It exists only for tests that want to exercise Adapter atomicity without
// also standing up proof-verification plumbing; production callers must
// supply a real verifier.
type AlwaysValid struct{}

// Verify implements ProofVerifier.
func (AlwaysValid) Verify(context.Context, *ValidityProof, *Batch) error {
	return nil
}
