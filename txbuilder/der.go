package txbuilder

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/kerrors"
)

// EncodeDER takes a raw 64-byte (r‖s) ECDSA signature, as produced by the
// signing oracle contract, normalizes s to its low-S form (s ≤ n/2,
// replacing s with n−s otherwise), and returns the DER encoding:
//
//	30 <len> 02 <rlen> [00]? r 02 <slen> [00]? s
//
// The n−s subtraction runs through secp256k1.ModNScalar, which does wide
// modular arithmetic internally — the naive signed-integer subtraction a
// direct byte-array port would use is underflow-prone, since s and n are
// both 256-bit values with no native signed-integer width that holds
// their difference safely.
func EncodeDER(rawSignature []byte) ([]byte, error) {
	if len(rawSignature) != 64 {
		return nil, &kerrors.CryptographicError{Message: errors.Errorf(
			"raw ECDSA signature must be 64 bytes, got %d", len(rawSignature)).Error()}
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(rawSignature[:32]); overflow {
		return nil, &kerrors.CryptographicError{Message: "signature r component overflows the curve order"}
	}
	if overflow := s.SetByteSlice(rawSignature[32:]); overflow {
		return nil, &kerrors.CryptographicError{Message: "signature s component overflows the curve order"}
	}

	if s.IsOverHalfOrder() {
		s.Negate()
	}

	rBytes := r.Bytes()
	sBytes := s.Bytes()

	return derEncodeSignature(rBytes[:], sBytes[:]), nil
}

// derEncodeSignature builds the DER sequence for r and s, each given as a
// big-endian byte slice with no sign-extension applied yet. derEncodeInteger
// strips leading zero bytes (but never below one byte), and a single 0x00
// padding byte is prepended whenever the resulting high bit is set, per
// DER's requirement that integers be interpreted as non-negative.
func derEncodeSignature(r, s []byte) []byte {
	rEnc := derEncodeInteger(r)
	sEnc := derEncodeInteger(s)

	body := make([]byte, 0, len(rEnc)+len(sEnc))
	body = append(body, rEnc...)
	body = append(body, sEnc...)

	out := make([]byte, 0, len(body)+2)
	out = append(out, 0x30, byte(len(body)))
	out = append(out, body...)
	return out
}

func derEncodeInteger(v []byte) []byte {
	trimmed := v
	for len(trimmed) > 1 && trimmed[0] == 0x00 {
		trimmed = trimmed[1:]
	}
	padded := trimmed
	if len(trimmed) > 0 && trimmed[0]&0x80 != 0 {
		padded = make([]byte, 0, len(trimmed)+1)
		padded = append(padded, 0x00)
		padded = append(padded, trimmed...)
	}
	out := make([]byte, 0, len(padded)+2)
	out = append(out, 0x02, byte(len(padded)))
	out = append(out, padded...)
	return out
}

// DecodeDER parses a DER-encoded ECDSA signature back into its raw 32-byte
// r and s components, rejecting malformed encodings. Used by this
// package's own tests to verify round-trip byte-identity (testable
// property 4).
func DecodeDER(der []byte) (r, s []byte, err error) {
	if len(der) < 8 || der[0] != 0x30 {
		return nil, nil, &kerrors.CryptographicError{Message: "malformed DER signature: missing sequence tag"}
	}
	totalLen := int(der[1])
	if totalLen != len(der)-2 {
		return nil, nil, &kerrors.CryptographicError{Message: "malformed DER signature: length mismatch"}
	}
	rest := der[2:]

	r, rest, err = decodeDERInteger(rest)
	if err != nil {
		return nil, nil, err
	}
	s, rest, err = decodeDERInteger(rest)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) != 0 {
		return nil, nil, &kerrors.CryptographicError{Message: "malformed DER signature: trailing bytes"}
	}
	return padTo32(r), padTo32(s), nil
}

func decodeDERInteger(buf []byte) (value, rest []byte, err error) {
	if len(buf) < 2 || buf[0] != 0x02 {
		return nil, nil, &kerrors.CryptographicError{Message: "malformed DER signature: missing integer tag"}
	}
	n := int(buf[1])
	if len(buf) < 2+n {
		return nil, nil, &kerrors.CryptographicError{Message: "malformed DER signature: truncated integer"}
	}
	return buf[2 : 2+n], buf[2+n:], nil
}

func padTo32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}
