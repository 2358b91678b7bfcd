// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package opcode names the Kaspa/Bitcoin-compatible script opcodes this
// module's script builder and script classifier use. Only the opcodes
// actually needed by address, script, and krc20 are named; this is not a
// full script-engine opcode table.
package opcode

// Opcode is a single Kaspa script opcode.
type Opcode = byte

const (
	// Op0 pushes an empty byte array onto the stack. Also used as OpFalse.
	Op0    Opcode = 0x00
	OpFalse        = Op0

	// OpPushData1/2/4 are followed by a 1/2/4-byte little-endian length and
	// then that many bytes of data to push.
	OpPushData1 Opcode = 0x4c
	OpPushData2 Opcode = 0x4d
	OpPushData4 Opcode = 0x4e

	// Op1Negate pushes the value -1.
	Op1Negate Opcode = 0x4f

	// Op1 through Op16 push the values 1 through 16. Op1 doubles as the
	// Kasplex envelope's literal metadata-marker byte.
	Op1 Opcode = 0x51

	// OpIf and OpEndIf bracket the unexecuted branch the data envelope
	// lives in.
	OpIf    Opcode = 0x63
	OpEndIf Opcode = 0x68

	// OpEqual pops two values and pushes true if they are byte-identical.
	OpEqual Opcode = 0x87

	// OpCheckSig verifies a Schnorr signature against the top-of-stack
	// pubkey and signature.
	OpCheckSig Opcode = 0xac

	// OpCheckSigECDSA verifies an ECDSA signature. Not present in Bitcoin's
	// opcode table; Kaspa added it to discriminate ECDSA P2PK outputs from
	// Schnorr ones.
	OpCheckSigECDSA Opcode = 0xb5

	// OpBlake2b hashes the top stack item with BLAKE2B-256. This is the
	// opcode the script builder's P2SH commit script uses — see DESIGN.md
	// for why it was chosen over OpHash256.
	OpBlake2b Opcode = 0xb3

	// OpHash256 double-SHA256-hashes the top stack item. Retained as a
	// named constant but not on the live encode/decode path in this
	// module; see DESIGN.md.
	OpHash256 Opcode = 0xaa
)

// For opcodes below OpPushData1 the push length is the opcode's own value: an
// opcode byte in [0x01, 0x4b] means "push the next N bytes" where N is the
// opcode value itself.
const (
	// MaxSingleByteDataPush is the largest N for which the push opcode IS
	// N (no OpPushData* prefix needed).
	MaxSingleByteDataPush = 75

	// MaxPushDataOne is the largest length encodable with OpPushData1's
	// single-byte length prefix.
	MaxPushDataOne = 255

	// MaxPushDataTwo is the largest length encodable with OpPushData2's
	// two-byte little-endian length prefix.
	MaxPushDataTwo = 65535

	// MaxScriptElementSize is the largest single data push the script
	// engine accepts; longer payloads must be chunked.
	MaxScriptElementSize = 520
)
