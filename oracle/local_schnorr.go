package oracle

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/hash"
)

// LocalSchnorrSigner wraps a single secp256k1 Schnorr key pair held in
// process memory. Like LocalECDSASigner, it ignores the derivation path
// and exists for local testing and development; it is the concrete
// implementation the StubSchnorrSigner doc comment points a production
// deployment at.
type LocalSchnorrSigner struct {
	key *secp256k1.SchnorrKeyPair
}

// NewLocalSchnorrSigner builds a LocalSchnorrSigner from a 32-byte raw
// private key.
func NewLocalSchnorrSigner(rawPrivateKey []byte) (*LocalSchnorrSigner, error) {
	key, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(rawPrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "oracle: deserializing Schnorr private key")
	}
	return &LocalSchnorrSigner{key: key}, nil
}

// SignSchnorr signs digest and returns the serialized 64-byte signature.
func (s *LocalSchnorrSigner) SignSchnorr(digest hash.Digest, path []DerivationStep) ([]byte, error) {
	secpHash := secp256k1.Hash(digest)
	signature, err := s.key.SchnorrSign(&secpHash)
	if err != nil {
		return nil, errors.Wrap(err, "oracle: Schnorr signing failed")
	}
	serialized := signature.Serialize()
	return serialized[:], nil
}

// SignECDSA is unimplemented: LocalSchnorrSigner only ever signs the
// Schnorr variant. Use LocalECDSASigner for ECDSA addresses.
func (s *LocalSchnorrSigner) SignECDSA(digest hash.Digest, path []DerivationStep) ([]byte, error) {
	return nil, errors.New("oracle: LocalSchnorrSigner does not support ECDSA signing")
}
