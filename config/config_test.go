package config

import "testing"

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	c := &Config{APIHost: "api.kaspa.org", Network: NetworkMainnet, DefaultFeeRate: 1000}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsUnknownNetwork(t *testing.T) {
	c := &Config{APIHost: "api.kaspa.org", Network: Network("devnet"), DefaultFeeRate: 1000}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for an unrecognized network")
	}
}

func TestValidateRejectsEmptyAPIHost(t *testing.T) {
	c := &Config{Network: NetworkTestnet, DefaultFeeRate: 1000}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for an empty api_host")
	}
}

func TestValidateRejectsZeroFeeRate(t *testing.T) {
	c := &Config{APIHost: "api.kaspa.org", Network: NetworkMainnet}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for a zero default fee rate")
	}
}

func TestNetworkPrefixMatchesCashAddrPrefixes(t *testing.T) {
	mainnetPrefix, err := NetworkMainnet.Prefix()
	if err != nil {
		t.Fatalf("NetworkMainnet.Prefix: %v", err)
	}
	if mainnetPrefix != "kaspa" {
		t.Fatalf("mainnet prefix = %q, want %q", mainnetPrefix, "kaspa")
	}

	testnetPrefix, err := NetworkTestnet.Prefix()
	if err != nil {
		t.Fatalf("NetworkTestnet.Prefix: %v", err)
	}
	if testnetPrefix != "kaspatest" {
		t.Fatalf("testnet prefix = %q, want %q", testnetPrefix, "kaspatest")
	}
}
