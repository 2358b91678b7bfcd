package address

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestRoundTripSchnorr(t *testing.T) {
	// S1: payload = 32 bytes of 0xAA, type Schnorr, prefix "kaspa".
	payload := bytes.Repeat([]byte{0xaa}, 32)
	addr, err := Encode(payload, TypeSchnorr, PrefixMainnet)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	info, err := Decode(addr)
	if err != nil {
		t.Fatalf("Decode(%q): %v", addr, err)
	}
	if info.Type != TypeSchnorr {
		t.Fatalf("got type %d, want %d", info.Type, TypeSchnorr)
	}
	if !bytes.Equal(info.Payload, payload) {
		t.Fatalf("payload mismatch: got %x, want %x", info.Payload, payload)
	}

	wantScript := "20" + hex.EncodeToString(payload) + "ac"
	if hex.EncodeToString(info.ScriptPublicKey) != wantScript {
		t.Fatalf("script-pubkey = %x, want %s", info.ScriptPublicKey, wantScript)
	}
}

func TestRoundTripECDSA(t *testing.T) {
	payload := append([]byte{0x02}, bytes.Repeat([]byte{0xbb}, 32)...)
	for _, prefix := range []Prefix{PrefixMainnet, PrefixTestnet} {
		addr, err := Encode(payload, TypeECDSA, prefix)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		info, err := Decode(addr)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if info.Type != TypeECDSA || !bytes.Equal(info.Payload, payload) {
			t.Fatalf("round-trip mismatch for prefix %s", prefix)
		}
	}
}

func TestRoundTripP2SH(t *testing.T) {
	payload := bytes.Repeat([]byte{0xcc}, 32)
	addr, err := Encode(payload, TypeP2SH, PrefixTestnet)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	info, err := Decode(addr)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if info.Type != TypeP2SH || !bytes.Equal(info.Payload, payload) {
		t.Fatal("P2SH round-trip mismatch")
	}
	if len(info.ScriptPublicKey) != 35 {
		t.Fatalf("P2SH script-pubkey must be 35 bytes, got %d", len(info.ScriptPublicKey))
	}
}

func TestBitFlipBreaksChecksum(t *testing.T) {
	payload := bytes.Repeat([]byte{0x11}, 32)
	addr, err := Encode(payload, TypeSchnorr, PrefixMainnet)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Replace the first character of the body (just after the separator)
	// with a different valid charset character, and confirm decode rejects it.
	colon := len(string(PrefixMainnet))
	bodyStart := colon + 1
	runes := []byte(addr)
	original := runes[bodyStart]
	for _, c := range []byte(charset) {
		if c != original {
			runes[bodyStart] = c
			break
		}
	}
	mutated := string(runes)

	_, err = Decode(mutated)
	if err == nil {
		t.Fatal("expected a single-character mutation to break the checksum")
	}
	ia, ok := err.(*InvalidAddressError)
	if !ok {
		t.Fatalf("expected *InvalidAddressError, got %T", err)
	}
	if ia.Reason != ReasonBadChecksum && ia.Reason != ReasonBadChar {
		t.Fatalf("expected bad_checksum or bad_char, got %s", ia.Reason)
	}
}

func TestDecodeRejectsBadChar(t *testing.T) {
	// "1", "b", "i", "o" are not in the CashAddr charset.
	_, err := Decode("kaspa:qq1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq1b")
	if err == nil {
		t.Fatal("expected bad_char error")
	}
}

func TestDecodeRejectsBadPrefix(t *testing.T) {
	payload := bytes.Repeat([]byte{0x01}, 32)
	addr, err := Encode(payload, TypeSchnorr, PrefixMainnet)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	mutated := "bitcoincash" + addr[len(string(PrefixMainnet)):]
	if _, err := Decode(mutated); err == nil {
		t.Fatal("expected bad_prefix error for an unrecognized prefix")
	}
}

func TestDecodeEmptyAddress(t *testing.T) {
	_, err := Decode("")
	if err == nil {
		t.Fatal("expected an error decoding an empty address")
	}
	if err.(*InvalidAddressError).Reason != ReasonEmpty {
		t.Fatalf("expected empty reason, got %s", err.(*InvalidAddressError).Reason)
	}
}

func TestEncodeRejectsWrongPayloadLength(t *testing.T) {
	if _, err := Encode(make([]byte, 31), TypeSchnorr, PrefixMainnet); err == nil {
		t.Fatal("expected an error for a 31-byte Schnorr payload")
	}
	if _, err := Encode(make([]byte, 32), TypeECDSA, PrefixMainnet); err == nil {
		t.Fatal("expected an error for a 32-byte ECDSA payload")
	}
}

func TestEncodeRejectsInvalidECDSAPrefixByte(t *testing.T) {
	payload := append([]byte{0x05}, bytes.Repeat([]byte{0x01}, 32)...)
	if _, err := Encode(payload, TypeECDSA, PrefixMainnet); err == nil {
		t.Fatal("expected an error for an ECDSA payload not starting with 0x02/0x03/0x04")
	}
}
