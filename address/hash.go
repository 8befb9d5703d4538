package address

import "crypto/sha256"

// Size is the fixed width of every hash, commitment, secret, and derived
// address in the protocol.
const Size = 32

// Hash256 is a 256-bit digest.
type Hash256 = [Size]byte

// hash concatenates every part byte-exact, with no length prefixes, and
// returns the SHA-256 digest.
func hash(parts ...[]byte) Hash256 {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash256
	copy(out[:], h.Sum(nil))
	return out
}

// Hash is the general-purpose entry point used by callers outside this
// package that need a raw domain hash (e.g. a seller's secret -> nullifier
// seed) without going through one of the named derivations below.
func Hash(parts ...[]byte) Hash256 {
	return hash(parts...)
}

// OwnerCommitment computes owner_commitment = H(owner_pubkey || secret).
// It hides ownership while binding it: only someone who knows secret can
// reconstruct the preimage the state-tree proof will accept.
func OwnerCommitment(ownerPubkey, secret Hash256) Hash256 {
	return hash(ownerPubkey[:], secret[:])
}

// DeriveNullifierSeed computes nullifier_seed = H(secret). The nullifier
// address is later derived from this seed, never from secret directly, so
// that observing the nullifier never reveals the secret itself.
func DeriveNullifierSeed(secret Hash256) Hash256 {
	return hash(secret[:])
}
