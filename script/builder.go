// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package script builds opcode-level Kaspa scripts: data pushes, the
// Kasplex data envelope, P2PK/P2SH redeem and commit scripts, and
// signature scripts. It has no notion of a transaction or a sighash; it
// only assembles and chunks bytes.
package script

import (
	"encoding/binary"

	"github.com/codecustard/kaspa/hash"
	"github.com/codecustard/kaspa/opcode"
	"github.com/pkg/errors"
)

// Builder accumulates opcodes and data pushes into a script. The zero value
// is ready to use.
type Builder struct {
	script []byte
	err    error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{script: make([]byte, 0, 64)}
}

// AddOp appends a single literal opcode byte, unwrapped by any push
// encoding. Used for opcodes like Op1/Op0 when they act as markers rather
// than as "push N bytes" instructions, and for control opcodes like OpIf.
func (b *Builder) AddOp(op opcode.Opcode) *Builder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, op)
	return b
}

// AddData appends data, push-encoded with a single-byte length prefix for
// 1-75 bytes, OpPushData1/2/4 beyond that. Data longer than
// opcode.MaxScriptElementSize is rejected; callers that need to carry more
// must use AddChunkedData.
func (b *Builder) AddData(data []byte) *Builder {
	if b.err != nil {
		return b
	}
	if len(data) > opcode.MaxScriptElementSize {
		b.err = errors.Errorf("script: data push of %d bytes exceeds max element size %d",
			len(data), opcode.MaxScriptElementSize)
		return b
	}
	b.script = append(b.script, PushDataPrefix(len(data))...)
	b.script = append(b.script, data...)
	return b
}

// AddRaw appends already-assembled script bytes verbatim, with no push
// encoding. Used to splice a previously built sub-script (e.g. a data
// envelope) into a larger one.
func (b *Builder) AddRaw(rawScript []byte) *Builder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, rawScript...)
	return b
}

// AddChunkedData splits data into successive pushes of at most
// opcode.MaxScriptElementSize bytes each and appends them all in order.
// Used for KRC20 content payloads, which routinely exceed a single push.
func (b *Builder) AddChunkedData(data []byte) *Builder {
	if b.err != nil {
		return b
	}
	for _, chunk := range Chunk(data, opcode.MaxScriptElementSize) {
		b.AddData(chunk)
	}
	return b
}

// Script returns the assembled script, or any error recorded while building
// it. Once an error has been recorded, further Add calls are no-ops.
func (b *Builder) Script() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]byte, len(b.script))
	copy(out, b.script)
	return out, nil
}

// PushDataPrefix returns the push-encoding prefix (opcode byte plus any
// length bytes, but not the data itself) for a data push of length n.
func PushDataPrefix(n int) []byte {
	switch {
	case n == 0:
		return []byte{opcode.Op0}
	case n <= opcode.MaxSingleByteDataPush:
		return []byte{byte(n)}
	case n <= opcode.MaxPushDataOne:
		return []byte{opcode.OpPushData1, byte(n)}
	case n <= opcode.MaxPushDataTwo:
		buf := make([]byte, 3)
		buf[0] = opcode.OpPushData2
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
		return buf
	default:
		buf := make([]byte, 5)
		buf[0] = opcode.OpPushData4
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
		return buf
	}
}

// Push push-encodes data on its own, with no builder involved. Equivalent
// to NewBuilder().AddData(data).Script() for data within the single-push
// size limit.
func Push(data []byte) ([]byte, error) {
	return NewBuilder().AddData(data).Script()
}

// Chunk splits data into successive slices of at most maxSize bytes. The
// last chunk may be shorter. Chunk(data, n) applied to data of length L
// yields ceil(L/n) chunks, all but the last exactly n bytes long.
func Chunk(data []byte, maxSize int) [][]byte {
	if len(data) == 0 {
		return nil
	}
	chunks := make([][]byte, 0, (len(data)+maxSize-1)/maxSize)
	for len(data) > 0 {
		n := maxSize
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return chunks
}

// Envelope assembles the Kasplex data envelope:
//
//	OP_FALSE OP_IF
//	  push(protocol)
//	  OP_1
//	  push(metadata)
//	  OP_0
//	  push(content) [chunked]
//	OP_ENDIF
//
// OP_1 and OP_0 here are literal marker opcodes, not push operations — the
// Kasplex indexer distinguishes the metadata and content sections by their
// presence as bare opcodes in the disassembled script.
func Envelope(protocol string, metadata, content []byte) ([]byte, error) {
	if protocol == "" {
		return nil, errors.New("script: envelope protocol tag must not be empty")
	}
	b := NewBuilder().
		AddOp(opcode.OpFalse).
		AddOp(opcode.OpIf).
		AddData([]byte(protocol)).
		AddOp(opcode.Op1).
		AddData(metadata).
		AddOp(opcode.Op0).
		AddChunkedData(content).
		AddOp(opcode.OpEndIf)
	return b.Script()
}

// RedeemScript assembles the P2SH redeem script: push(pubkey) <checksig
// opcode> <envelope>. useECDSA selects
// OpCheckSigECDSA over OpCheckSig and therefore a 33-byte pubkey over a
// 32-byte one; callers are responsible for passing a pubkey of the matching
// length.
func RedeemScript(pubKey, envelope []byte, useECDSA bool) ([]byte, error) {
	checkSigOp := opcode.OpCheckSig
	if useECDSA {
		checkSigOp = opcode.OpCheckSigECDSA
	}
	return NewBuilder().
		AddData(pubKey).
		AddOp(checkSigOp).
		AddRaw(envelope).
		Script()
}

// P2SHCommitScript returns the 35-byte scriptPublicKey a P2SH deposit pays
// to: OP_BLAKE2B OP_DATA_32 <hash(redeemScript)> OP_EQUAL. This is the
// script the commit transaction's output carries, and the script whose
// hash must match the pushed redeem script at reveal time.
func P2SHCommitScript(redeemScript []byte) ([]byte, error) {
	h := hash.Blake2b256NoPersonalization(redeemScript)
	return NewBuilder().
		AddOp(opcode.OpBlake2b).
		AddData(h[:]).
		AddOp(opcode.OpEqual).
		Script()
}

// P2SHSignatureScript returns the signature script that spends a P2SH
// output: push(signature‖hashtype) push(redeemScript). No witness
// separator — Kaspa's script VM runs the push-only signature script, then
// re-executes the top-of-stack item (the redeem script) against the
// resulting stack.
// P2SHSignatureScript's redeem script push must fit in a single element
// like any other push; the signature script must consist of exactly two
// pushes, which rules out chunking either one.
func P2SHSignatureScript(signatureWithHashType, redeemScript []byte) ([]byte, error) {
	return NewBuilder().
		AddData(signatureWithHashType).
		AddData(redeemScript).
		Script()
}

// P2PKSignatureScript returns the signature script for a plain P2PK spend:
// push(signature‖hashtype). Kaspa's P2PK script VM derives the pubkey from
// the scriptPublicKey being spent, so no pubkey push is needed here (unlike
// Bitcoin P2PKH, which has no scriptPubKey-embedded pubkey).
func P2PKSignatureScript(signatureWithHashType []byte) ([]byte, error) {
	return NewBuilder().AddData(signatureWithHashType).Script()
}
