// Package krc20 formats Kasplex KRC20 operation JSON and assembles the
// commit/reveal transaction pairs that carry it inside a data envelope.
// Nothing here talks to a network or a signing oracle — commit/reveal
// assembly stops at an unsigned transaction, exactly like txbuilder.
package krc20

import (
	"strings"

	"github.com/pkg/errors"
)

// Ticker is a validated KRC20 ticker symbol: 4 to 6 uppercase ASCII
// letters, per Kasplex convention. Deploy/mint/transfer/burn formatters
// render a Ticker case-preserved; List/Send formatters lowercase it.
// Keeping the validation in the type, rather than duplicated in each
// formatter, is what makes the case-preservation invariant hold once
// instead of eight times.
type Ticker string

// NewTicker validates s and returns it as a Ticker, unchanged.
func NewTicker(s string) (Ticker, error) {
	if len(s) < 4 || len(s) > 6 {
		return "", errors.Errorf("krc20: ticker %q must be 4-6 characters, got %d", s, len(s))
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return "", errors.Errorf("krc20: ticker %q must be uppercase ASCII letters only", s)
		}
	}
	return Ticker(s), nil
}

// String returns the ticker case-preserved, as deploy/mint/transfer/burn
// require.
func (t Ticker) String() string {
	return string(t)
}

// Lower returns the ticker lowercased, as list/send require.
func (t Ticker) Lower() string {
	return strings.ToLower(string(t))
}
