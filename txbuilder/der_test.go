package txbuilder

import (
	"bytes"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func TestEncodeDERRejectsWrongLength(t *testing.T) {
	if _, err := EncodeDER(make([]byte, 63)); err == nil {
		t.Fatal("expected an error for a non-64-byte raw signature")
	}
}

func TestEncodeDERLowSNormalization(t *testing.T) {
	// Build a raw (r, s) pair where s is in the high half of the curve
	// order, and confirm the DER encoding carries the normalized low-S
	// value instead.
	r := bytes.Repeat([]byte{0x11}, 32)

	var highS secp256k1.ModNScalar
	highS.SetInt(1)
	highS.Negate() // s = n - 1, the largest representable value, definitely over half order

	sBytes := highS.Bytes()
	raw := append(append([]byte{}, r...), sBytes[:]...)

	der, err := EncodeDER(raw)
	if err != nil {
		t.Fatalf("EncodeDER: %v", err)
	}

	decodedR, decodedS, err := DecodeDER(der)
	if err != nil {
		t.Fatalf("DecodeDER: %v", err)
	}
	if !bytes.Equal(decodedR, r) {
		t.Fatalf("r did not round-trip: got %x, want %x", decodedR, r)
	}

	var decodedSScalar secp256k1.ModNScalar
	decodedSScalar.SetByteSlice(decodedS)
	if decodedSScalar.IsOverHalfOrder() {
		t.Fatal("decoded s must be in low-S form (s <= n/2)")
	}

	// Re-encoding the decoded (r, s) must be byte-identical (property 4).
	reencoded := derEncodeSignature(decodedR, decodedS)
	if !bytes.Equal(reencoded, der) {
		t.Fatalf("re-encoding the decoded signature must be byte-identical:\n got  %x\n want %x", reencoded, der)
	}
}

func TestEncodeDERLeavesLowSUnchanged(t *testing.T) {
	r := bytes.Repeat([]byte{0x22}, 32)
	var lowS secp256k1.ModNScalar
	lowS.SetInt(42)
	sBytes := lowS.Bytes()
	raw := append(append([]byte{}, r...), sBytes[:]...)

	der, err := EncodeDER(raw)
	if err != nil {
		t.Fatalf("EncodeDER: %v", err)
	}
	_, decodedS, err := DecodeDER(der)
	if err != nil {
		t.Fatalf("DecodeDER: %v", err)
	}
	var s secp256k1.ModNScalar
	s.SetByteSlice(decodedS)
	if s.IsOverHalfOrder() {
		t.Fatal("a low-S input must remain low-S after normalization")
	}
}
