// Package transaction holds the Kaspa transaction data model and its JSON
// wire serialization. It has no knowledge of signing, coin selection, or
// fee policy — those live in txbuilder.
package transaction

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// Outpoint identifies a previous transaction output being spent.
type Outpoint struct {
	TransactionID [32]byte
	Index         uint32
}

// Input is one transaction input. SignatureScript is empty before signing.
type Input struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       uint8
}

// ScriptPublicKey is a versioned output script.
type ScriptPublicKey struct {
	Version uint16
	Script  []byte
}

// Output is one transaction output.
type Output struct {
	Value           uint64
	ScriptPublicKey ScriptPublicKey
}

// SubnetworkID is the 20-byte subnetwork discriminator carried by every
// transaction.
type SubnetworkID [20]byte

// SubnetworkIDNative is the default subnetwork used by transactions with no
// associated payload semantics.
var SubnetworkIDNative = SubnetworkID{}

// Transaction is a Kaspa transaction.
type Transaction struct {
	Version      uint16
	Inputs       []*Input
	Outputs      []*Output
	LockTime     uint64
	SubnetworkID SubnetworkID
	Gas          uint64
	Payload      []byte
}

// UTXO is an unspent output as fetched from the network, together with the
// address metadata needed to reconstruct its spending script.
type UTXO struct {
	Outpoint        Outpoint
	Amount          uint64
	ScriptVersion   uint16
	ScriptPublicKey []byte
	Address         string // owning address, canonical string form
}

// Clone returns a deep copy of tx, safe to mutate independently.
func (tx *Transaction) Clone() *Transaction {
	clone := &Transaction{
		Version:      tx.Version,
		LockTime:     tx.LockTime,
		SubnetworkID: tx.SubnetworkID,
		Gas:          tx.Gas,
		Payload:      append([]byte(nil), tx.Payload...),
	}
	clone.Inputs = make([]*Input, len(tx.Inputs))
	for i, in := range tx.Inputs {
		inCopy := *in
		inCopy.SignatureScript = append([]byte(nil), in.SignatureScript...)
		clone.Inputs[i] = &inCopy
	}
	clone.Outputs = make([]*Output, len(tx.Outputs))
	for i, out := range tx.Outputs {
		outCopy := *out
		outCopy.ScriptPublicKey.Script = append([]byte(nil), out.ScriptPublicKey.Script...)
		clone.Outputs[i] = &outCopy
	}
	return clone
}

// TotalOutputValue sums every output's value.
func (tx *Transaction) TotalOutputValue() uint64 {
	var total uint64
	for _, out := range tx.Outputs {
		total += out.Value
	}
	return total
}

// OutpointFromTransactionIDHex builds an Outpoint from a 64-char lowercase
// hex transaction ID and an output index.
func OutpointFromTransactionIDHex(txIDHex string, index uint32) (Outpoint, error) {
	raw, err := hex.DecodeString(txIDHex)
	if err != nil {
		return Outpoint{}, errors.Wrapf(err, "invalid transaction id hex %q", txIDHex)
	}
	if len(raw) != 32 {
		return Outpoint{}, errors.Errorf("transaction id must be 32 bytes, got %d", len(raw))
	}
	var op Outpoint
	copy(op.TransactionID[:], raw)
	op.Index = index
	return op, nil
}

// TransactionIDHex renders the outpoint's transaction ID as 64-char lowercase hex.
func (o Outpoint) TransactionIDHex() string {
	return hex.EncodeToString(o.TransactionID[:])
}
