package oracle

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/hash"
)

// LocalECDSASigner wraps a single secp256k1 private key held in process
// memory and signs ECDSA digests directly against it. It ignores the
// derivation path entirely — there is only ever one key. This exists for
// local testing and development only; the whole point of the oracle
// boundary is that the core library never holds key material itself, and
// nothing about this type changes that for a real deployment.
type LocalECDSASigner struct {
	key *secp256k1.PrivateKey
}

// NewLocalECDSASigner builds a LocalECDSASigner from a 32-byte raw private
// key.
func NewLocalECDSASigner(rawPrivateKey []byte) (*LocalECDSASigner, error) {
	if len(rawPrivateKey) != 32 {
		return nil, errors.Errorf("oracle: private key must be 32 bytes, got %d", len(rawPrivateKey))
	}
	return &LocalECDSASigner{key: secp256k1.PrivKeyFromBytes(rawPrivateKey)}, nil
}

// SignSchnorr is unimplemented: LocalECDSASigner only ever signs the ECDSA
// variant. Use oracle.StubSchnorrSigner or a real Schnorr oracle for
// Schnorr addresses.
func (s *LocalECDSASigner) SignSchnorr(digest hash.Digest, path []DerivationStep) ([]byte, error) {
	return nil, errors.New("oracle: LocalECDSASigner does not support Schnorr signing")
}

// SignECDSA signs digest and returns the raw 64-byte (r‖s) pair. decred's
// ecdsa.Sign already enforces low-S internally, but txbuilder.EncodeDER
// re-normalizes explicitly regardless of which oracle produced the
// signature, since the oracle contract only promises a raw (r,s) pair, not
// a low-S one.
func (s *LocalECDSASigner) SignECDSA(digest hash.Digest, path []DerivationStep) ([]byte, error) {
	sig := ecdsa.Sign(s.key, digest[:])
	r := sig.R()
	s2 := sig.S()
	rBytes := r.Bytes() // fixed-size, big-endian, zero-padded to 32 bytes
	sBytes := s2.Bytes()
	out := make([]byte, 64)
	copy(out[0:32], rBytes[:])
	copy(out[32:64], sBytes[:])
	return out, nil
}
