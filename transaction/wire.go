package transaction

import (
	"encoding/json"

	"github.com/codecustard/kaspa/hash"
	"github.com/pkg/errors"
)

// wireOutpoint, wireInput, wireScriptPublicKey, wireOutput, and wireTx mirror
// the JSON wire form field-for-field, in field order — Go's encoding/json
// emits struct fields in declaration order, so that order IS the wire
// order; this file's struct field order is the contract.
type wireOutpoint struct {
	TransactionID string `json:"transactionId"`
	Index         uint32 `json:"index"`
}

type wireInput struct {
	PreviousOutpoint wireOutpoint `json:"previousOutpoint"`
	SignatureScript  string       `json:"signatureScript"`
	Sequence         uint64       `json:"sequence"`
	SigOpCount       uint8        `json:"sigOpCount"`
}

type wireScriptPublicKey struct {
	Version         uint16 `json:"version"`
	ScriptPublicKey string `json:"scriptPublicKey"`
}

type wireOutput struct {
	Amount          uint64               `json:"amount"`
	ScriptPublicKey wireScriptPublicKey `json:"scriptPublicKey"`
}

type wireTx struct {
	Version      uint16       `json:"version"`
	Inputs       []wireInput  `json:"inputs"`
	Outputs      []wireOutput `json:"outputs"`
	LockTime     uint64       `json:"lockTime"`
	SubnetworkID string       `json:"subnetworkId"`
	Gas          uint64       `json:"gas"`
	Payload      string       `json:"payload"`
}

type wireEnvelope struct {
	Transaction wireTx `json:"transaction"`
}

// MarshalJSON renders tx in the REST API's exact wire shape, wrapped in the
// {"transaction": {...}} envelope the broadcast endpoint expects.
func MarshalJSON(tx *Transaction) ([]byte, error) {
	w := wireTx{
		Version:      tx.Version,
		LockTime:     tx.LockTime,
		SubnetworkID: hash.ToHex(tx.SubnetworkID[:]),
		Gas:          tx.Gas,
		Payload:      hash.ToHex(tx.Payload),
	}
	w.Inputs = make([]wireInput, len(tx.Inputs))
	for i, in := range tx.Inputs {
		w.Inputs[i] = wireInput{
			PreviousOutpoint: wireOutpoint{
				TransactionID: in.PreviousOutpoint.TransactionIDHex(),
				Index:         in.PreviousOutpoint.Index,
			},
			SignatureScript: hash.ToHex(in.SignatureScript),
			Sequence:        in.Sequence,
			SigOpCount:      in.SigOpCount,
		}
	}
	w.Outputs = make([]wireOutput, len(tx.Outputs))
	for i, out := range tx.Outputs {
		w.Outputs[i] = wireOutput{
			Amount: out.Value,
			ScriptPublicKey: wireScriptPublicKey{
				Version:         out.ScriptPublicKey.Version,
				ScriptPublicKey: hash.ToHex(out.ScriptPublicKey.Script),
			},
		}
	}
	return json.Marshal(wireEnvelope{Transaction: w})
}

// UnmarshalJSON parses the REST API's wire shape back into a Transaction. It
// accepts either the {"transaction": {...}} envelope or the bare inner
// object, since some callers (tests, the reveal path re-reading a
// previously-built commit) only have the inner object on hand.
func UnmarshalJSON(data []byte) (*Transaction, error) {
	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "transaction: invalid wire JSON")
	}
	w := env.Transaction
	if len(w.Inputs) == 0 && len(w.Outputs) == 0 && w.SubnetworkID == "" {
		// Possibly a bare (unwrapped) transaction object.
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, errors.Wrap(err, "transaction: invalid wire JSON")
		}
	}

	tx := &Transaction{
		Version:  w.Version,
		LockTime: w.LockTime,
		Gas:      w.Gas,
	}

	subnetworkBytes, err := hash.FromHex(w.SubnetworkID)
	if err != nil {
		return nil, errors.Wrap(err, "transaction: invalid subnetworkId")
	}
	if len(subnetworkBytes) != 20 {
		return nil, errors.Errorf("transaction: subnetworkId must be 20 bytes, got %d", len(subnetworkBytes))
	}
	copy(tx.SubnetworkID[:], subnetworkBytes)

	tx.Payload, err = hash.FromHex(w.Payload)
	if err != nil {
		return nil, errors.Wrap(err, "transaction: invalid payload hex")
	}

	tx.Inputs = make([]*Input, len(w.Inputs))
	for i, wi := range w.Inputs {
		outpoint, err := OutpointFromTransactionIDHex(wi.PreviousOutpoint.TransactionID, wi.PreviousOutpoint.Index)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction: input %d", i)
		}
		sigScript, err := hash.FromHex(wi.SignatureScript)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction: input %d signatureScript", i)
		}
		tx.Inputs[i] = &Input{
			PreviousOutpoint: outpoint,
			SignatureScript:  sigScript,
			Sequence:         wi.Sequence,
			SigOpCount:       wi.SigOpCount,
		}
	}

	tx.Outputs = make([]*Output, len(w.Outputs))
	for i, wo := range w.Outputs {
		spk, err := hash.FromHex(wo.ScriptPublicKey.ScriptPublicKey)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction: output %d scriptPublicKey", i)
		}
		tx.Outputs[i] = &Output{
			Value: wo.Amount,
			ScriptPublicKey: ScriptPublicKey{
				Version: wo.ScriptPublicKey.Version,
				Script:  spk,
			},
		}
	}

	return tx, nil
}
