// Package kerrors defines the tagged error kinds shared across the module's
// packages: the ones that cross package boundaries and that callers branch
// on, rather than package-local sentinel errors like
// address.InvalidAddressError that only ever arise inside their own
// package.
package kerrors

import "fmt"

// InvalidPublicKey reports a public key of the wrong length or an invalid
// ECDSA prefix byte.
type InvalidPublicKey struct {
	ExpectedLength int
	ActualLength   int
}

func (e *InvalidPublicKey) Error() string {
	return fmt.Sprintf("invalid public key: expected %d bytes, got %d", e.ExpectedLength, e.ActualLength)
}

// InvalidAmount reports an amount outside the bounds a caller or policy
// requires — below dust, above the 21M-KAS max supply, or zero where
// disallowed.
type InvalidAmount struct {
	Min, Max, Actual uint64
	Reason           string
}

func (e *InvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount %d (min %d, max %d): %s", e.Actual, e.Min, e.Max, e.Reason)
}

// InvalidFee reports a fee outside the builder's configured policy bounds.
type InvalidFee struct {
	Min, Max, Actual uint64
}

func (e *InvalidFee) Error() string {
	return fmt.Sprintf("invalid fee %d: must be between %d and %d", e.Actual, e.Min, e.Max)
}

// InsufficientFunds reports that coin selection could not cover
// amount+fee from the supplied UTXO set.
type InsufficientFunds struct {
	Required, Available uint64
}

func (e *InsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: required %d, available %d", e.Required, e.Available)
}

// CryptographicError reports a digest computation, signature, or signing
// oracle failure.
type CryptographicError struct {
	Message string
}

func (e *CryptographicError) Error() string {
	return "cryptographic error: " + e.Message
}

// NetworkError reports an HTTP non-200 response or transport failure.
type NetworkError struct {
	Message    string
	StatusCode int // zero when the failure never reached the transport layer
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error (status %d): %s", e.StatusCode, e.Message)
	}
	return "network error: " + e.Message
}

// InvalidTransaction reports a builder invariant broken by caller input,
// such as a reveal referencing a UTXO the builder never saw committed.
type InvalidTransaction struct {
	Message string
}

func (e *InvalidTransaction) Error() string {
	return "invalid transaction: " + e.Message
}

// InternalError reports a parse failure of external JSON or an internal
// configuration inconsistency — never a caller input error.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}
