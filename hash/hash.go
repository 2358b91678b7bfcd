// Package hash provides the BLAKE2b-256 and SHA-256 primitives the rest of
// this module builds on, plus the hex codec the wire and REST boundaries
// route through. A few other places still use encoding/hex or their own
// formatter directly: transaction's outpoint helpers, script.Disassemble,
// and the CLI's flag parsing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"

	blake2b "github.com/minio/blake2b-simd"
	"github.com/pkg/errors"
)

// Size is the length in bytes of every digest this package produces.
const Size = 32

// Digest is a 32-byte BLAKE2b-256 or SHA-256 digest.
type Digest [Size]byte

// Bytes returns the digest's bytes as a freshly allocated slice.
func (d Digest) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, d[:])
	return b
}

// String hex-encodes the digest, lowercase.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Writer incrementally hashes data with a fixed BLAKE2b-256 personalization,
// avoiding the need to concatenate every part into one buffer first. It
// mirrors the shape of kaspad's domain/consensus/utils/hashes.HashWriter.
type Writer struct {
	h hashWriterHash
}

type hashWriterHash interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}

// NewBlake2b256Writer returns a Writer keyed with the given domain
// personalization string. blake2b-simd's Config.Person caps out at 16 bytes,
// too short for names like "TransactionSigningHash", so domain separation is
// done via Config.Key instead, which allows up to 64 bytes.
func NewBlake2b256Writer(personalization string) *Writer {
	h, err := blake2b.New(&blake2b.Config{
		Size: Size,
		Key:  []byte(personalization),
	})
	if err != nil {
		// Only reachable if personalization exceeds 64 bytes, which is a
		// programming error in this module, not a runtime condition.
		panic(errors.Wrapf(err, "invalid blake2b personalization %q", personalization))
	}
	return &Writer{h: h}
}

// InfallibleWrite writes p to the underlying hash. hash.Hash.Write never
// returns an error per its interface contract, so this panics instead of
// forcing every call site to check an error that cannot occur.
func (w *Writer) InfallibleWrite(p []byte) {
	if _, err := w.h.Write(p); err != nil {
		panic(errors.Wrap(err, "hash.Writer: Write returned an error, which violates hash.Hash's contract"))
	}
}

// Finalize returns the digest accumulated so far.
func (w *Writer) Finalize() Digest {
	var d Digest
	copy(d[:], w.h.Sum(nil))
	return d
}

// Blake2b256 is a one-shot personalized BLAKE2b-256 digest over the
// concatenation of parts.
func Blake2b256(personalization string, parts ...[]byte) Digest {
	w := NewBlake2b256Writer(personalization)
	for _, p := range parts {
		w.InfallibleWrite(p)
	}
	return w.Finalize()
}

// Blake2b256NoPersonalization hashes parts with plain, unkeyed BLAKE2b-256.
// Used for the redeem-script hash in the P2SH commit path, which the
// consensus layer computes without domain separation.
func Blake2b256NoPersonalization(parts ...[]byte) Digest {
	h, err := blake2b.New(&blake2b.Config{Size: Size})
	if err != nil {
		panic(errors.Wrap(err, "hash.Blake2b256NoPersonalization: blake2b.New failed"))
	}
	for _, p := range parts {
		if _, err := h.Write(p); err != nil {
			panic(errors.Wrap(err, "hash.Blake2b256NoPersonalization: Write returned an error"))
		}
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Sha256 is a one-shot SHA-256 digest over the concatenation of parts.
func Sha256(parts ...[]byte) Digest {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// DoubleSha256ECDSA implements the ECDSA sighash composition:
// SHA-256(SHA-256("TransactionSigningHashECDSA") ‖ schnorrDigest).
func DoubleSha256ECDSA(schnorrDigest Digest) Digest {
	inner := sha256.Sum256([]byte(ECDSAPersonalization))
	return Sha256(inner[:], schnorrDigest[:])
}

// Personalization strings used across the sighash engine. Kept here, not in
// package sighash, because they're pure hashing inputs, not sighash logic.
const (
	// TransactionSigningHashPersonalization keys every Schnorr sighash
	// subhash and the final preimage digest.
	TransactionSigningHashPersonalization = "TransactionSigningHash"
	// ECDSAPersonalization is hashed (unkeyed) to build the ECDSA sighash
	// domain separator; it is not itself used as a blake2b Person value.
	ECDSAPersonalization = "TransactionSigningHashECDSA"
)

// ToHex hex-encodes b, lowercase, with no "0x" prefix.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// FromHex decodes a hex string with no "0x" prefix.
func FromHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex string %q", s)
	}
	return b, nil
}
