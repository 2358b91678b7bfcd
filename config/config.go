// Package config holds the plain, explicitly-constructed configuration
// every builder, oracle client, and REST client in this module takes at
// construction. There are no package-level globals: every collaborator
// that needs configuration takes a *Config explicitly.
package config

import (
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/address"
)

// Network selects which Kaspa network a Config targets.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// Prefix returns the CashAddr prefix this network uses.
func (n Network) Prefix() (address.Prefix, error) {
	switch n {
	case NetworkMainnet:
		return address.PrefixMainnet, nil
	case NetworkTestnet:
		return address.PrefixTestnet, nil
	default:
		return "", errors.Errorf("config: unrecognized network %q", string(n))
	}
}

// Config holds what every signing-oracle and REST collaborator needs: a
// key identifier the caller resolves against its own key store, the REST
// API host, the active network, and fee policy bounds.
type Config struct {
	KeyName        string
	APIHost        string
	Network        Network
	MaxFee         uint64
	DefaultFeeRate uint64
}

// Validate checks the fields that have a fixed universe of valid values.
// It does not reach out to the network or resolve KeyName against any key
// store — that happens lazily, at the oracle boundary.
func (c *Config) Validate() error {
	if _, err := c.Network.Prefix(); err != nil {
		return err
	}
	if c.APIHost == "" {
		return errors.New("config: api_host must not be empty")
	}
	if c.DefaultFeeRate == 0 {
		return errors.New("config: default_fee_rate must be positive")
	}
	return nil
}
