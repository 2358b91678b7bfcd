// Package txbuilder assembles unsigned transactions from a recipient,
// amount, fee policy, and UTXO set, then signs and installs each input's
// signature script by dispatching through the signing oracle.
package txbuilder

import (
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/address"
	"github.com/codecustard/kaspa/kerrors"
	"github.com/codecustard/kaspa/logger"
	"github.com/codecustard/kaspa/oracle"
	"github.com/codecustard/kaspa/script"
	"github.com/codecustard/kaspa/sighash"
	"github.com/codecustard/kaspa/transaction"
)

var log *logger.Logger

// SetLogger installs the Logger this package uses for Trace/Debug output
// on the build and sign-integrate path. Callers that never call this get
// silent operation — every log.* call below is guarded against a nil log.
func SetLogger(l *logger.Logger) {
	log = l
}

func trace(format string, args ...interface{}) {
	if log != nil {
		log.Tracef(format, args...)
	}
}

// Policy is the fee and dust policy a Build call enforces.
type Policy struct {
	MinFee  uint64
	MaxFee  uint64
	FeeRate uint64 // sompi per estimated byte; used only if Fee is unset in BuildRequest
}

// BuildRequest describes an unsigned send: pay amount to recipient,
// funding it from available, with an explicit fee or FeeRate-estimated one.
type BuildRequest struct {
	Recipient *address.Info
	Change    *address.Info // where residual change, if any, is paid
	Amount    uint64
	Fee       uint64 // zero means "estimate from Policy.FeeRate"
	Available []*transaction.UTXO
	Policy    Policy
}

// Build selects coins, assembles the outputs per the dust/change rule, and
// returns an unsigned transaction together with the UTXOs it spends (in
// input order, which SignInputs and the sighash engine both index against).
func Build(req *BuildRequest) (*transaction.Transaction, []*transaction.UTXO, error) {
	if req.Amount == 0 {
		return nil, nil, &kerrors.InvalidAmount{Actual: 0, Reason: "amount must be positive"}
	}
	if req.Amount > MaxSupplySompi {
		return nil, nil, &kerrors.InvalidAmount{Max: MaxSupplySompi, Actual: req.Amount, Reason: "exceeds max supply"}
	}

	fee := req.Fee
	numOutputs := 2 // recipient + change; the estimate is not revised if the change output is later dropped
	if fee == 0 {
		rate := req.Policy.FeeRate
		if rate == 0 {
			rate = DefaultFeeRate
		}
		fee = EstimateFee(len(req.Available), numOutputs, rate)
	}
	if err := CheckFee(fee, req.Policy.MinFee, req.Policy.MaxFee); err != nil {
		return nil, nil, err
	}

	selected, err := SelectCoins(req.Available, req.Amount+fee)
	if err != nil {
		return nil, nil, err
	}
	trace("selected %d UTXOs for amount=%d fee=%d", len(selected), req.Amount, fee)

	var inputTotal uint64
	for _, u := range selected {
		inputTotal += u.Amount
	}

	changeAmount, hasChange := SplitChange(inputTotal, req.Amount, fee)

	tx := &transaction.Transaction{
		Version:      0,
		SubnetworkID: transaction.SubnetworkIDNative,
	}
	tx.Inputs = make([]*transaction.Input, len(selected))
	for i, u := range selected {
		tx.Inputs[i] = &transaction.Input{
			PreviousOutpoint: u.Outpoint,
			SigOpCount:       1,
			Sequence:         0,
		}
	}

	tx.Outputs = append(tx.Outputs, &transaction.Output{
		Value: req.Amount,
		ScriptPublicKey: transaction.ScriptPublicKey{
			Script: req.Recipient.ScriptPublicKey,
		},
	})
	if hasChange {
		if req.Change == nil {
			return nil, nil, &kerrors.InvalidTransaction{Message: "change is due but no change address was supplied"}
		}
		tx.Outputs = append(tx.Outputs, &transaction.Output{
			Value: changeAmount,
			ScriptPublicKey: transaction.ScriptPublicKey{
				Script: req.Change.ScriptPublicKey,
			},
		})
	}

	return tx, selected, nil
}

// SignInputs runs the sign-integrate loop: for each input, compute the
// matching sighash digest (Schnorr for a Schnorr-owned UTXO, ECDSA for an
// ECDSA or P2SH-owned one), forward it to signer, and install the
// resulting signature script. prevUTXOs must be in the same order as
// tx.Inputs — Build returns them that way.
//
// PrefillReusedValues is not called here; callers that want to sign inputs
// concurrently must call sighash.PrefillReusedValues(tx, types) themselves
// first and pass a single shared *sighash.ReusedValues into every
// goroutine's SignInputs-equivalent call — see sighash's doc comments for
// why an un-prefilled cache is single-producer only.
func SignInputs(tx *transaction.Transaction, prevUTXOs []*transaction.UTXO, addrTypes []address.Type,
	redeemScripts [][]byte, signer oracle.Signer, path []oracle.DerivationStep, sighashType sighash.Type) error {

	if len(prevUTXOs) != len(tx.Inputs) || len(addrTypes) != len(tx.Inputs) || len(redeemScripts) != len(tx.Inputs) {
		return &kerrors.InvalidTransaction{Message: "prevUTXOs/addrTypes/redeemScripts must have one entry per input"}
	}

	rv := &sighash.ReusedValues{}
	for i := range tx.Inputs {
		useECDSA := addrTypes[i] == address.TypeECDSA || addrTypes[i] == address.TypeP2SH
		sigScript, err := signAndBuildScript(tx, i, prevUTXOs[i], useECDSA, redeemScripts[i], signer, path, sighashType, rv)
		if err != nil {
			return errors.Wrapf(err, "signing input %d", i)
		}
		tx.Inputs[i].SignatureScript = sigScript
		trace("installed signature script for input %d (%d bytes)", i, len(sigScript))
	}
	return nil
}

func signAndBuildScript(tx *transaction.Transaction, idx int, prevUTXO *transaction.UTXO, useECDSA bool,
	redeemScript []byte, signer oracle.Signer, path []oracle.DerivationStep, sighashType sighash.Type,
	rv *sighash.ReusedValues) ([]byte, error) {

	isP2SH := len(redeemScript) > 0

	var rawSig []byte
	var signatureWithHashType []byte
	if useECDSA {
		digest, err := sighash.ECDSA(tx, idx, prevUTXO, sighashType, rv)
		if err != nil {
			return nil, err
		}
		rawSig, err = signer.SignECDSA(digest, path)
		if err != nil {
			return nil, &kerrors.CryptographicError{Message: errors.Wrap(err, "signing oracle SignECDSA failed").Error()}
		}
		der, err := EncodeDER(rawSig)
		if err != nil {
			return nil, err
		}
		signatureWithHashType = append(der, byte(sighashType))
	} else {
		digest, err := sighash.Schnorr(tx, idx, prevUTXO, sighashType, rv)
		if err != nil {
			return nil, err
		}
		rawSig, err = signer.SignSchnorr(digest, path)
		if err != nil {
			return nil, &kerrors.CryptographicError{Message: errors.Wrap(err, "signing oracle SignSchnorr failed").Error()}
		}
		if len(rawSig) != 64 {
			return nil, &kerrors.CryptographicError{Message: "signing oracle returned a malformed Schnorr signature"}
		}
		signatureWithHashType = append(append([]byte{}, rawSig...), byte(sighashType))
	}

	if isP2SH {
		return script.P2SHSignatureScript(signatureWithHashType, redeemScript)
	}
	return script.P2PKSignatureScript(signatureWithHashType)
}
