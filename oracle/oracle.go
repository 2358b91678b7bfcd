// Package oracle defines the signing-oracle contract: the external
// collaborator that holds private key material and turns a digest into a
// signature. Nothing under txbuilder, sighash, script, address, or
// transaction imports this package's concrete implementations — only the
// Signer interface crosses that boundary, so the core library never
// depends on how or where keys are actually held.
package oracle

import "github.com/codecustard/kaspa/hash"

// DerivationStep is one 4-byte little-endian component of a derivation
// path, as the oracle contract specifies.
type DerivationStep uint32

// Signer is the oracle contract: a digest and a derivation path in, a raw
// signature out. SignSchnorr returns a 64-byte BIP-340-style signature;
// SignECDSA returns a 64-byte raw (r‖s) pair, leaving DER encoding and
// low-S normalization to the caller (txbuilder.EncodeDER) since those are
// encoding concerns, not signing ones.
type Signer interface {
	SignSchnorr(digest hash.Digest, path []DerivationStep) ([]byte, error)
	SignECDSA(digest hash.Digest, path []DerivationStep) ([]byte, error)
}
