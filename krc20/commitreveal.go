package krc20

import (
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/hash"
	"github.com/codecustard/kaspa/kerrors"
	"github.com/codecustard/kaspa/script"
	"github.com/codecustard/kaspa/transaction"
)

// Protocol is the data-envelope protocol tag every KRC20 operation carries.
const Protocol = "kasplex"

const sompiPerKAS = 100_000_000

// DefaultCommitAmount is what build_commit pays to the P2SH commit output
// when the caller doesn't override it.
const DefaultCommitAmount uint64 = 10000

// MinCommitAmount is the floor build_commit enforces on CommitAmount.
const MinCommitAmount uint64 = 1000

// RevealFee returns the protocol-mandated reveal fee for op, in sompi, per
// spec.md §4.5's reveal fee policy table: 1000 KAS for deploy, 1 KAS for
// mint, and a negligible network fee for transfer/burn/list/send.
func RevealFee(op string) (uint64, error) {
	switch op {
	case "deploy":
		return 1000 * sompiPerKAS, nil
	case "mint":
		return 1 * sompiPerKAS, nil
	case "transfer", "burn", "list", "send", "issue":
		return NetworkFee, nil
	default:
		return 0, errors.Errorf("krc20: unrecognized operation %q", op)
	}
}

// NetworkFee is the negligible static fee charged on reveal for
// transfer/burn/list/send/issue, where the protocol itself imposes no
// deposit requirement.
const NetworkFee uint64 = 1000

// CommitRevealPair is the artifact that must survive between broadcasting
// the commit transaction and building the reveal: the redeem script is
// opaque to callers beyond this package, but must be persisted by whoever
// holds it (txbuilder and the core library keep no state between calls).
type CommitRevealPair struct {
	Commit          *transaction.Transaction
	CommitUTXOs     []*transaction.UTXO // inputs Commit spends, in input order
	RedeemScript    []byte
	P2SHScript      []byte     // the scriptPublicKey the commit output pays to
	ScriptHash      hash.Digest // BLAKE2B-256(RedeemScript)
	CommitOutputIdx uint32      // index of the P2SH output within Commit.Outputs
}

// BuildCommitRequest describes everything build_commit needs: the
// operation JSON already formatted (by one of the Format* functions), the
// pubkey that will later sign the reveal, the funding UTXOs, and where
// change goes.
type BuildCommitRequest struct {
	OperationJSON []byte
	PubKey        []byte // 32-byte Schnorr or 33-byte ECDSA
	UseECDSA      bool
	CommitAmount  uint64 // zero means DefaultCommitAmount
	Change        *transaction.Output
	Available     []*transaction.UTXO
	Fee           uint64 // zero means estimate at FeeRate
	FeeRate       uint64 // zero means 1000 sompi/byte (txbuilder.DefaultFeeRate's value)
}

// BuildCommit assembles the unsigned commit transaction: format operation
// JSON (done by the caller already), wrap it in a data envelope, build the
// redeem script, hash it, build the P2SH commit scriptPublicKey, and pay
// CommitAmount to it. The redeem script inside the returned
// CommitRevealPair is the only thing the caller must persist to build the
// matching reveal later.
func BuildCommit(req *BuildCommitRequest) (*CommitRevealPair, []*transaction.UTXO, error) {
	commitAmount := req.CommitAmount
	if commitAmount == 0 {
		commitAmount = DefaultCommitAmount
	}
	if commitAmount < MinCommitAmount {
		return nil, nil, &kerrors.InvalidAmount{Min: MinCommitAmount, Actual: commitAmount, Reason: "commit amount below minimum"}
	}

	envelope, err := script.Envelope(Protocol, nil, req.OperationJSON)
	if err != nil {
		return nil, nil, errors.Wrap(err, "krc20: building data envelope")
	}
	redeemScript, err := script.RedeemScript(req.PubKey, envelope, req.UseECDSA)
	if err != nil {
		return nil, nil, errors.Wrap(err, "krc20: building redeem script")
	}
	p2shScript, err := script.P2SHCommitScript(redeemScript)
	if err != nil {
		return nil, nil, errors.Wrap(err, "krc20: building P2SH commit script")
	}
	scriptHash := hash.Blake2b256NoPersonalization(redeemScript)

	fee := req.Fee
	if fee == 0 {
		rate := req.FeeRate
		if rate == 0 {
			rate = 1000
		}
		fee = estimateCommitFee(len(req.Available), rate)
	}

	selected, changeAmount, hasChange, err := selectForCommit(req.Available, commitAmount, fee)
	if err != nil {
		return nil, nil, err
	}

	tx := &transaction.Transaction{
		Version:      0,
		SubnetworkID: transaction.SubnetworkIDNative,
	}
	tx.Inputs = make([]*transaction.Input, len(selected))
	for i, u := range selected {
		tx.Inputs[i] = &transaction.Input{PreviousOutpoint: u.Outpoint, SigOpCount: 1}
	}
	tx.Outputs = append(tx.Outputs, &transaction.Output{
		Value:           commitAmount,
		ScriptPublicKey: transaction.ScriptPublicKey{Script: p2shScript},
	})
	commitOutputIdx := uint32(0)
	if hasChange {
		if req.Change == nil {
			return nil, nil, &kerrors.InvalidTransaction{Message: "change is due but no change output was supplied"}
		}
		changeOut := *req.Change
		changeOut.Value = changeAmount
		tx.Outputs = append(tx.Outputs, &changeOut)
	}

	pair := &CommitRevealPair{
		Commit:          tx,
		CommitUTXOs:     selected,
		RedeemScript:    redeemScript,
		P2SHScript:      p2shScript,
		ScriptHash:      scriptHash,
		CommitOutputIdx: commitOutputIdx,
	}
	return pair, selected, nil
}

func estimateCommitFee(numAvailable int, feeRate uint64) uint64 {
	// One input, up to two outputs (commit + change); mirrors
	// txbuilder.EstimateFee's shape rather than importing txbuilder, since
	// krc20 has no other dependency on the transaction-builder package.
	estimatedSize := uint64(150) + uint64(2)*35 + 10
	return estimatedSize * feeRate
}

func selectForCommit(available []*transaction.UTXO, commitAmount, fee uint64) (selected []*transaction.UTXO, changeAmount uint64, hasChange bool, err error) {
	target := commitAmount + fee
	var total uint64
	for _, u := range available {
		selected = append(selected, u)
		total += u.Amount
		if total >= target {
			break
		}
	}
	if total < target {
		return nil, 0, false, &kerrors.InsufficientFunds{Required: target, Available: total}
	}
	residual := total - target
	const dustThreshold = 1000
	if residual >= dustThreshold {
		return selected, residual, true, nil
	}
	return selected, 0, false, nil
}

// BuildRevealRequest describes build_reveal's inputs: the P2SH UTXO
// discovered after commit confirmation, the redeem script saved from the
// matching CommitRevealPair, and the recipient of the remainder.
type BuildRevealRequest struct {
	RedeemScript []byte
	P2SHUTXO     *transaction.UTXO // ScriptPublicKey must be the P2SH commit script, not the redeem script
	Recipient    *transaction.Output
	RevealFee    uint64
}

// BuildReveal assembles the unsigned reveal transaction spending the P2SH
// UTXO. Sighash computation (by the caller, via sighash.ECDSA/Schnorr)
// MUST pass P2SHUTXO.ScriptPublicKey as the spent script — never the
// redeem script — per spec.md §4.3's critical P2SH rule. The signature
// script is installed by the caller after signing, as
// script.P2SHSignatureScript(sig‖hashtype, redeemScript).
func BuildReveal(req *BuildRevealRequest) (*transaction.Transaction, error) {
	if req.P2SHUTXO == nil {
		return nil, &kerrors.InvalidTransaction{Message: "krc20: reveal requires the committed P2SH UTXO"}
	}
	if req.P2SHUTXO.Amount <= req.RevealFee {
		return nil, &kerrors.InvalidAmount{Actual: req.P2SHUTXO.Amount, Reason: "commit amount does not cover the reveal fee"}
	}
	outputAmount := req.P2SHUTXO.Amount - req.RevealFee

	tx := &transaction.Transaction{
		Version:      0,
		SubnetworkID: transaction.SubnetworkIDNative,
		Inputs: []*transaction.Input{
			{PreviousOutpoint: req.P2SHUTXO.Outpoint, SigOpCount: 1},
		},
	}
	out := *req.Recipient
	out.Value = outputAmount
	tx.Outputs = []*transaction.Output{&out}
	return tx, nil
}
