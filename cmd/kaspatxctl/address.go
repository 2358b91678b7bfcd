package main

import (
	"fmt"
)

func runAddress(cfg *addressConfig) error {
	c, err := cfg.commonFlags.resolve()
	if err != nil {
		return err
	}
	prefix, err := c.Network.Prefix()
	if err != nil {
		return err
	}

	pubKey, err := decodeHex("public-key", cfg.PublicKey)
	if err != nil {
		return err
	}

	info, err := selfAddress(pubKey, cfg.ECDSA, prefix)
	if err != nil {
		return err
	}
	fmt.Println(info.String)
	return nil
}
