package txbuilder

import (
	"bytes"
	"sort"

	"github.com/codecustard/kaspa/kerrors"
	"github.com/codecustard/kaspa/transaction"
)

// SelectCoins picks UTXOs from available whose summed amount is at least
// target, by descending-amount greedy accumulation. Ties are broken by
// (transaction_id, index) lexicographically, so selection is deterministic
// given the same input set regardless of its original order.
//
// SelectCoins never mutates available.
func SelectCoins(available []*transaction.UTXO, target uint64) ([]*transaction.UTXO, error) {
	sorted := make([]*transaction.UTXO, len(available))
	copy(sorted, available)
	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	var selected []*transaction.UTXO
	var total uint64
	for _, u := range sorted {
		selected = append(selected, u)
		total += u.Amount
		if total >= target {
			return selected, nil
		}
	}

	var available64 uint64
	for _, u := range available {
		available64 += u.Amount
	}
	return nil, &kerrors.InsufficientFunds{Required: target, Available: available64}
}

// SelectSingleUTXO returns the first UTXO, sorted the same way SelectCoins
// sorts, whose amount alone covers target — the single-input fast path for
// callers that specifically need one large input rather than an
// accumulated set.
func SelectSingleUTXO(available []*transaction.UTXO, target uint64) (*transaction.UTXO, error) {
	sorted := make([]*transaction.UTXO, len(available))
	copy(sorted, available)
	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	for _, u := range sorted {
		if u.Amount >= target {
			return u, nil
		}
	}
	var available64 uint64
	for _, u := range available {
		available64 += u.Amount
	}
	return nil, &kerrors.InsufficientFunds{Required: target, Available: available64}
}

// less orders a before b: descending by amount, then ascending by
// (transaction_id, index) to break ties deterministically.
func less(a, b *transaction.UTXO) bool {
	if a.Amount != b.Amount {
		return a.Amount > b.Amount
	}
	cmp := bytes.Compare(a.Outpoint.TransactionID[:], b.Outpoint.TransactionID[:])
	if cmp != 0 {
		return cmp < 0
	}
	return a.Outpoint.Index < b.Outpoint.Index
}
