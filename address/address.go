// Package address implements Kaspa's CashAddr-style address codec: encode
// and decode with checksum, version-byte discrimination between Schnorr,
// ECDSA, and P2SH payloads, and script-pubkey synthesis. It exposes the
// same Encode/Decode-shaped API btcutil's bech32 package does, though the
// polymod generator constants and payload layout are Kaspa's own.
package address

import (
	"strings"

	"github.com/codecustard/kaspa/opcode"
	"github.com/codecustard/kaspa/script"
	"github.com/pkg/errors"
)

// Type discriminates the three address payload kinds.
type Type byte

const (
	// TypeSchnorr is a P2PK-Schnorr address: 32-byte payload, version 0.
	TypeSchnorr Type = 0
	// TypeECDSA is a P2PK-ECDSA address: 33-byte payload, version 1.
	TypeECDSA Type = 1
	// TypeP2SH is a pay-to-script-hash address: 32-byte payload, version 8.
	TypeP2SH Type = 8
)

// Prefix is one of the two network prefixes this module recognizes.
type Prefix string

const (
	PrefixMainnet Prefix = "kaspa"
	PrefixTestnet Prefix = "kaspatest"
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Info is the decoded form of a Kaspa address.
type Info struct {
	String          string // canonical "<prefix>:<body>" form
	Prefix          Prefix
	Type            Type
	Payload         []byte
	ScriptPublicKey []byte // synthesized script-pubkey, per §4.1
}

// Reason names why an address failed to decode.
type Reason string

const (
	ReasonEmpty           Reason = "empty"
	ReasonBadPrefix       Reason = "bad_prefix"
	ReasonBadChar         Reason = "bad_char"
	ReasonBadChecksum     Reason = "bad_checksum"
	ReasonBadPadding      Reason = "bad_padding"
	ReasonBadVersion      Reason = "bad_version"
	ReasonBadPayloadLength Reason = "bad_payload_length"
)

// InvalidAddressError reports why an address string was rejected.
type InvalidAddressError struct {
	Reason Reason
	Detail string
}

func (e *InvalidAddressError) Error() string {
	if e.Detail == "" {
		return "invalid address: " + string(e.Reason)
	}
	return "invalid address: " + string(e.Reason) + ": " + e.Detail
}

func invalid(reason Reason, detail string) error {
	return &InvalidAddressError{Reason: reason, Detail: detail}
}

// payloadLength returns the exact payload length required for t, and
// whether t is a recognized type at all.
func payloadLength(t Type) (int, bool) {
	switch t {
	case TypeSchnorr, TypeP2SH:
		return 32, true
	case TypeECDSA:
		return 33, true
	default:
		return 0, false
	}
}

// Encode builds the canonical "<prefix>:<body>" address string for payload
// under addrType.
func Encode(payload []byte, addrType Type, prefix Prefix) (string, error) {
	wantLen, ok := payloadLength(addrType)
	if !ok {
		return "", invalid(ReasonBadVersion, "unrecognized address type")
	}
	if len(payload) != wantLen {
		return "", invalid(ReasonBadPayloadLength,
			errors.Errorf("type %d requires %d-byte payload, got %d", addrType, wantLen, len(payload)).Error())
	}
	if addrType == TypeECDSA {
		switch payload[0] {
		case 0x02, 0x03, 0x04:
		default:
			return "", invalid(ReasonBadPayloadLength, "ECDSA payload must start with 0x02, 0x03, or 0x04")
		}
	}

	versioned := make([]byte, 0, len(payload)+1)
	versioned = append(versioned, byte(addrType))
	versioned = append(versioned, payload...)

	fiveBit := convertBits(versioned, 8, 5, true)
	checksum := polymodChecksum(prefix, fiveBit)

	var body strings.Builder
	for _, b := range fiveBit {
		body.WriteByte(charset[b])
	}
	for _, b := range checksum {
		body.WriteByte(charset[b])
	}

	return string(prefix) + ":" + body.String(), nil
}

// Decode parses a CashAddr address string, verifying its checksum and
// payload shape, and synthesizes its script-pubkey.
func Decode(addr string) (*Info, error) {
	if addr == "" {
		return nil, invalid(ReasonEmpty, "")
	}

	colon := strings.LastIndexByte(addr, ':')
	if colon < 0 {
		return nil, invalid(ReasonBadPrefix, "missing ':' separator")
	}
	prefixStr, body := addr[:colon], addr[colon+1:]
	prefix := Prefix(strings.ToLower(prefixStr))
	if prefix != PrefixMainnet && prefix != PrefixTestnet {
		return nil, invalid(ReasonBadPrefix, prefixStr)
	}
	if len(body) < 8 {
		return nil, invalid(ReasonBadChecksum, "body shorter than checksum")
	}

	fiveBitAll := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		c := strings.IndexByte(charset, lower(body[i]))
		if c < 0 {
			return nil, invalid(ReasonBadChar, string(body[i]))
		}
		fiveBitAll[i] = byte(c)
	}

	payloadFiveBit := fiveBitAll[:len(fiveBitAll)-8]
	checksum := fiveBitAll[len(fiveBitAll)-8:]
	if !verifyChecksum(prefix, payloadFiveBit, checksum) {
		return nil, invalid(ReasonBadChecksum, "")
	}

	versioned, err := convertBitsStrict(payloadFiveBit, 5, 8)
	if err != nil {
		return nil, invalid(ReasonBadPadding, err.Error())
	}
	if len(versioned) == 0 {
		return nil, invalid(ReasonBadPayloadLength, "empty payload")
	}

	addrType := Type(versioned[0])
	payload := versioned[1:]
	wantLen, ok := payloadLength(addrType)
	if !ok {
		return nil, invalid(ReasonBadVersion, errors.Errorf("unrecognized version byte %d", versioned[0]).Error())
	}
	if len(payload) != wantLen {
		return nil, invalid(ReasonBadPayloadLength,
			errors.Errorf("type %d requires %d-byte payload, got %d", addrType, wantLen, len(payload)).Error())
	}
	if addrType == TypeECDSA {
		switch payload[0] {
		case 0x02, 0x03, 0x04:
		default:
			return nil, invalid(ReasonBadPayloadLength, "ECDSA payload must start with 0x02, 0x03, or 0x04")
		}
	}

	spk, err := ScriptPublicKey(payload, addrType)
	if err != nil {
		return nil, err
	}

	return &Info{
		String:          string(prefix) + ":" + strings.ToLower(body),
		Prefix:          prefix,
		Type:            addrType,
		Payload:         payload,
		ScriptPublicKey: spk,
	}, nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// ScriptPublicKey synthesizes the scriptPubKey for payload/addrType:
//
//	Schnorr: OP_DATA_32 <payload> OP_CHECKSIG            (34 bytes)
//	ECDSA:   OP_DATA_33 <payload> OP_CHECKSIG_ECDSA       (35 bytes)
//	P2SH:    OP_BLAKE2B OP_DATA_32 <payload> OP_EQUAL     (35 bytes)
//
// P2SH here uses OP_BLAKE2B rather than OP_HASH256 so that an address's
// synthesized script-pubkey agrees byte-for-byte with
// script.P2SHCommitScript's output for the same hash.
func ScriptPublicKey(payload []byte, addrType Type) ([]byte, error) {
	switch addrType {
	case TypeSchnorr:
		if len(payload) != 32 {
			return nil, invalid(ReasonBadPayloadLength, "Schnorr script-pubkey requires a 32-byte payload")
		}
		return script.NewBuilder().AddData(payload).AddOp(opcode.OpCheckSig).Script()
	case TypeECDSA:
		if len(payload) != 33 {
			return nil, invalid(ReasonBadPayloadLength, "ECDSA script-pubkey requires a 33-byte payload")
		}
		return script.NewBuilder().AddData(payload).AddOp(opcode.OpCheckSigECDSA).Script()
	case TypeP2SH:
		if len(payload) != 32 {
			return nil, invalid(ReasonBadPayloadLength, "P2SH script-pubkey requires a 32-byte hash payload")
		}
		return script.NewBuilder().AddOp(opcode.OpBlake2b).AddData(payload).AddOp(opcode.OpEqual).Script()
	default:
		return nil, invalid(ReasonBadVersion, "unrecognized address type")
	}
}
