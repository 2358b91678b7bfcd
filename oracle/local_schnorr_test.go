package oracle

import (
	"bytes"
	"testing"

	"github.com/kaspanet/go-secp256k1"

	"github.com/codecustard/kaspa/hash"
)

func TestLocalSchnorrSignerProducesA64ByteSignature(t *testing.T) {
	rawKey := bytes.Repeat([]byte{0x07}, 32)
	signer, err := NewLocalSchnorrSigner(rawKey)
	if err != nil {
		t.Fatalf("NewLocalSchnorrSigner: %v", err)
	}

	digest := hash.Digest{}
	for i := range digest {
		digest[i] = byte(i)
	}

	sig, err := signer.SignSchnorr(digest, nil)
	if err != nil {
		t.Fatalf("SignSchnorr: %v", err)
	}
	if len(sig) != 64 {
		t.Fatalf("expected a 64-byte Schnorr signature, got %d", len(sig))
	}

	// The underlying library draws fresh BIP-340 auxiliary randomness on
	// every call, so two signatures over the same digest need not be equal,
	// but each must verify against the key's public key.
	sig2, err := signer.SignSchnorr(digest, nil)
	if err != nil {
		t.Fatalf("SignSchnorr (second call): %v", err)
	}
	pub, err := signer.key.SchnorrPublicKey()
	if err != nil {
		t.Fatalf("SchnorrPublicKey: %v", err)
	}
	secpHash := secp256k1.Hash(digest)
	for i, s := range [][]byte{sig, sig2} {
		parsed, err := secp256k1.DeserializeSchnorrSignatureFromSlice(s)
		if err != nil {
			t.Fatalf("signature %d does not deserialize: %v", i, err)
		}
		if !pub.SchnorrVerify(&secpHash, parsed) {
			t.Fatalf("signature %d does not verify against the signer's public key", i)
		}
	}
}

func TestLocalSchnorrSignerRejectsECDSA(t *testing.T) {
	rawKey := bytes.Repeat([]byte{0x08}, 32)
	signer, err := NewLocalSchnorrSigner(rawKey)
	if err != nil {
		t.Fatalf("NewLocalSchnorrSigner: %v", err)
	}
	if _, err := signer.SignECDSA(hash.Digest{}, nil); err == nil {
		t.Fatal("expected an error: LocalSchnorrSigner must not sign ECDSA digests")
	}
}

func TestNewLocalSchnorrSignerRejectsWrongLength(t *testing.T) {
	if _, err := NewLocalSchnorrSigner(make([]byte, 31)); err == nil {
		t.Fatal("expected an error for a non-32-byte private key")
	}
}
