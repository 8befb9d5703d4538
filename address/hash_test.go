package address

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOwnerCommitmentMatchesDirectHash(t *testing.T) {
	pk := Hash256{1}
	secret := Hash256{42}

	got := OwnerCommitment(pk, secret)

	want := sha256.Sum256(append(append([]byte{}, pk[:]...), secret[:]...))
	require.Equal(t, Hash256(want), got)
}

func TestOwnerCommitmentDiffersBySecret(t *testing.T) {
	pk := Hash256{1}
	c1 := OwnerCommitment(pk, Hash256{42})
	c2 := OwnerCommitment(pk, Hash256{43})
	require.NotEqual(t, c1, c2)
}

func TestDeriveNullifierSeedIsOneWay(t *testing.T) {
	secret := Hash256{7}
	seed := DeriveNullifierSeed(secret)
	require.NotEqual(t, secret, seed)

	// Same secret always yields the same seed (determinism), and the seed
	// depends on every byte of the secret.
	require.Equal(t, seed, DeriveNullifierSeed(secret))
	other := DeriveNullifierSeed(Hash256{8})
	require.NotEqual(t, seed, other)
}

func TestHashIsByteExactConcatenation(t *testing.T) {
	a := Hash([]byte("ab"), []byte("c"))
	b := Hash([]byte("a"), []byte("bc"))
	require.Equal(t, a, b, "concatenation must be byte-exact with no length prefixes")
}
