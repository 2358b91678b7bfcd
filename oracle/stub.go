package oracle

import "github.com/codecustard/kaspa/hash"

// StubSchnorrSigner implements Signer by returning 64 zero bytes for every
// Schnorr signature request, and is NOT suitable for production use — it
// exists so the txbuilder sign-integrate loop has a deterministic
// collaborator to call in tests without depending on real key material.
// A production deployment signs Schnorr digests with LocalSchnorrSigner
// or an equivalent oracle backed by a real key store.
type StubSchnorrSigner struct{}

// SignSchnorr always returns 64 zero bytes.
func (StubSchnorrSigner) SignSchnorr(digest hash.Digest, path []DerivationStep) ([]byte, error) {
	return make([]byte, 64), nil
}

// SignECDSA always returns 64 zero bytes, split as a zero r and a zero s.
// Like SignSchnorr, this is for tests only.
func (StubSchnorrSigner) SignECDSA(digest hash.Digest, path []DerivationStep) ([]byte, error) {
	return make([]byte, 64), nil
}
