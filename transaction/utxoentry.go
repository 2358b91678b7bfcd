package transaction

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/hash"
)

// restOutpoint mirrors the outpoint shape nested under a UTXO REST response
// element, per spec.md §6.
type restOutpoint struct {
	TransactionID string `json:"transactionId"`
	Index         uint32 `json:"index"`
}

// restScriptPublicKey mirrors the scriptPublicKey shape nested under
// utxoEntry.
type restScriptPublicKey struct {
	Version         uint16 `json:"version"`
	ScriptPublicKey string `json:"scriptPublicKey"`
}

// restUTXOEntry mirrors a single UTXO REST response element's utxoEntry
// object. Amount is left as json.RawMessage because the REST API is known
// to emit it as a string, a single-element array, or a JSON number — see
// decodeAmount.
type restUTXOEntry struct {
	Amount          json.RawMessage     `json:"amount"`
	ScriptPublicKey restScriptPublicKey `json:"scriptPublicKey"`
	IsCoinbase      bool                `json:"isCoinbase"`
}

type restUTXOElement struct {
	Outpoint  restOutpoint  `json:"outpoint"`
	UTXOEntry restUTXOEntry `json:"utxoEntry"`
}

// decodeAmount accepts amount in any of the three shapes the REST API is
// known to use: a JSON string ("12345"), a single-element array of one
// string (["12345"]), or a bare JSON number (12345). Any other shape is
// rejected with an error (kasparest reports it as kerrors.InternalError).
func decodeAmount(raw json.RawMessage) (uint64, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return parseUint64(asString)
	}

	var asArray []string
	if err := json.Unmarshal(raw, &asArray); err == nil {
		if len(asArray) != 1 {
			return 0, errors.Errorf("transaction: amount array must have exactly one element, got %d", len(asArray))
		}
		return parseUint64(asArray[0])
	}

	var asNumber uint64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, nil
	}

	return 0, errors.Errorf("transaction: amount %s is neither a string, a single-element string array, nor a number", raw)
}

func parseUint64(s string) (uint64, error) {
	var v uint64
	var n int
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errors.Errorf("transaction: amount %q is not a decimal integer", s)
		}
		v = v*10 + uint64(c-'0')
		n++
	}
	if n == 0 {
		return 0, errors.New("transaction: amount string must not be empty")
	}
	return v, nil
}

// DecodeUTXOResponse parses a UTXO REST response body (a JSON array, per
// spec.md §6) into UTXOs, resolving each element's amount shape and
// attaching owningAddress to every result — the REST response itself
// carries no address, since it's fetched per-address.
func DecodeUTXOResponse(body []byte, owningAddress string) ([]*UTXO, error) {
	var elements []restUTXOElement
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, errors.Wrap(err, "transaction: invalid UTXO response body")
	}

	utxos := make([]*UTXO, len(elements))
	for i, el := range elements {
		outpoint, err := OutpointFromTransactionIDHex(el.Outpoint.TransactionID, el.Outpoint.Index)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction: UTXO %d outpoint", i)
		}
		amount, err := decodeAmount(el.UTXOEntry.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction: UTXO %d", i)
		}
		scriptBytes, err := hash.FromHex(el.UTXOEntry.ScriptPublicKey.ScriptPublicKey)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction: UTXO %d scriptPublicKey", i)
		}
		utxos[i] = &UTXO{
			Outpoint:        outpoint,
			Amount:          amount,
			ScriptVersion:   el.UTXOEntry.ScriptPublicKey.Version,
			ScriptPublicKey: scriptBytes,
			Address:         owningAddress,
		}
	}
	return utxos, nil
}
