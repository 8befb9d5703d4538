package statetree

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"time"

	"github.com/veraison/go-cose"
)

// ErrCheckpointNotSigned is returned when a checkpoint is requested before
// any state has been sealed.
var ErrCheckpointNotSigned = errors.New("statetree: no checkpoint has been signed yet")

// RootSeal is the payload a Checkpoint commits to: a compact attestation of
// the tree's state at the moment of signing, narrowed to what a
// keyed-commitment store needs to attest to — there is no Merkle peak list
// here, only the record count and a digest of the addresses touched by the
// most recent batch.
type RootSeal struct {
	// Version lets future seal formats coexist with this one.
	Version int `cbor:"1,keyasint"`
	// RecordCount is the number of records held at the moment of sealing.
	RecordCount uint64 `cbor:"2,keyasint"`
	// BatchDigest commits to the addresses and contents touched by the
	// batch this seal follows; callers use it to correlate a seal with the
	// VerifyAndApply call that produced it.
	BatchDigest []byte `cbor:"3,keyasint"`
	// Timestamp is the unix time (seconds) the seal was produced.
	Timestamp int64 `cbor:"4,keyasint"`
}

const RootSealVersionCurrent = 1

// Checkpoint pairs a RootSeal with the COSE_Sign1 signature over it. Holding
// the signed message (rather than just the signature bytes) lets a verifier
// check headers and payload together with a single Verify call.
type Checkpoint struct {
	Seal    RootSeal
	Message *cose.Sign1Message
}

// CheckpointSigner produces signed checkpoints over a RootSeal using an
// ECDSA key. issuer identifies the signer in logs and error messages; it
// is not itself placed in the COSE headers, since CWT claim handling is an
// out-of-scope, external-ledger concern.
type CheckpointSigner struct {
	issuer string
	key    *ecdsa.PrivateKey
	alg    cose.Algorithm
}

// NewCheckpointSigner returns a signer for issuer using key, which must be
// on a curve supported by the chosen algorithm (ES256 expects P-256).
func NewCheckpointSigner(issuer string, key *ecdsa.PrivateKey) *CheckpointSigner {
	return &CheckpointSigner{issuer: issuer, key: key, alg: cose.AlgorithmES256}
}

// Sign encodes seal as CBOR and produces a COSE_Sign1 checkpoint over it,
// with the encoded seal carried as the message's embedded payload.
func (s *CheckpointSigner) Sign(seal RootSeal) (*Checkpoint, error) {
	payload, err := MarshalRecord(seal)
	if err != nil {
		return nil, err
	}

	signer, err := cose.NewSigner(s.alg, s.key)
	if err != nil {
		return nil, err
	}

	msg := &cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: s.alg,
			},
		},
		Payload: payload,
	}
	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, err
	}

	return &Checkpoint{Seal: seal, Message: msg}, nil
}

// Verify checks the checkpoint's COSE_Sign1 signature against pub and that
// the signed payload still decodes to the checkpoint's Seal.
func (c *Checkpoint) Verify(pub *ecdsa.PublicKey) error {
	verifier, err := cose.NewVerifier(cose.AlgorithmES256, pub)
	if err != nil {
		return err
	}
	if err := c.Message.Verify(nil, verifier); err != nil {
		return err
	}
	var decoded RootSeal
	if err := UnmarshalRecord(c.Message.Payload, &decoded); err != nil {
		return err
	}
	if decoded.Version != c.Seal.Version ||
		decoded.RecordCount != c.Seal.RecordCount ||
		decoded.Timestamp != c.Seal.Timestamp ||
		!bytes.Equal(decoded.BatchDigest, c.Seal.BatchDigest) {
		return errors.New("statetree: checkpoint payload does not match its seal")
	}
	return nil
}

func nowUnix() int64 {
	return time.Now().Unix()
}
