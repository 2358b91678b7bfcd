package txbuilder

import "github.com/codecustard/kaspa/kerrors"

// DefaultFeeRate is the fee rate used when the caller supplies none, in
// sompi per estimated byte.
const DefaultFeeRate uint64 = 1000

// DustThreshold is the smallest change amount this builder will create a
// change output for; smaller residuals are folded into the fee instead.
const DustThreshold uint64 = 1000

// MaxSupplySompi is 21,000,000 KAS expressed in sompi (1 KAS = 1e8 sompi),
// the ceiling InvalidAmount enforces against.
const MaxSupplySompi uint64 = 21_000_000 * 100_000_000

// EstimateFee approximates a transaction's fee from its shape, before any
// signature bytes exist: (inputs*150 + outputs*35 + 10) * feeRate.
func EstimateFee(numInputs, numOutputs int, feeRate uint64) uint64 {
	estimatedSize := uint64(numInputs)*150 + uint64(numOutputs)*35 + 10
	return estimatedSize * feeRate
}

// CheckFee enforces minFee <= fee <= maxFee, returning InvalidFee
// otherwise.
func CheckFee(fee, minFee, maxFee uint64) error {
	if fee < minFee || fee > maxFee {
		return &kerrors.InvalidFee{Min: minFee, Max: maxFee, Actual: fee}
	}
	return nil
}

// SplitChange decides between a single recipient output and a
// recipient+change pair: if the residual (inputTotal - amount - fee) is at
// least DustThreshold, it becomes a change output; otherwise it is
// implicitly burned into the fee and omitted entirely. Returns the change
// amount (zero if none) and whether a change output should be created.
func SplitChange(inputTotal, amount, fee uint64) (changeAmount uint64, hasChange bool) {
	residual := inputTotal - amount - fee
	if residual >= DustThreshold {
		return residual, true
	}
	return 0, false
}
