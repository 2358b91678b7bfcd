package main

import (
	"context"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	kaspasecp256k1 "github.com/kaspanet/go-secp256k1"

	"github.com/codecustard/kaspa/address"
	"github.com/codecustard/kaspa/oracle"
	"github.com/codecustard/kaspa/sighash"
	"github.com/codecustard/kaspa/transaction"
	"github.com/codecustard/kaspa/txbuilder"
)

func runSend(cfg *sendConfig) error {
	c, err := cfg.commonFlags.resolve()
	if err != nil {
		return err
	}
	prefix, err := c.Network.Prefix()
	if err != nil {
		return err
	}

	rawKey, err := decodeHex("private-key", cfg.PrivateKey)
	if err != nil {
		return err
	}
	if len(rawKey) != 32 {
		return fmt.Errorf("private-key must decode to 32 bytes, got %d", len(rawKey))
	}

	var pubKey []byte
	var signer oracle.Signer
	if cfg.ECDSA {
		pubKey = secp256k1.PrivKeyFromBytes(rawKey).PubKey().SerializeCompressed()
		signer, err = oracle.NewLocalECDSASigner(rawKey)
	} else {
		var schnorrSigner *oracle.LocalSchnorrSigner
		schnorrSigner, err = oracle.NewLocalSchnorrSigner(rawKey)
		if err == nil {
			pubKey, err = schnorrPublicKeyBytes(rawKey)
			signer = schnorrSigner
		}
	}
	if err != nil {
		return err
	}

	sender, err := selfAddress(pubKey, cfg.ECDSA, prefix)
	if err != nil {
		return err
	}
	recipient, err := address.Decode(cfg.ToAddress)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newClient(c.APIHost, cfg.LogDir)
	if err != nil {
		return err
	}
	available, err := client.FetchUTXOs(ctx, sender.String)
	if err != nil {
		return err
	}

	req := &txbuilder.BuildRequest{
		Recipient: recipient,
		Change:    sender,
		Amount:    cfg.Amount,
		Fee:       cfg.Fee,
		Available: available,
		Policy:    txbuilder.Policy{MaxFee: c.MaxFee, FeeRate: c.DefaultFeeRate},
	}
	tx, selected, err := txbuilder.Build(req)
	if err != nil {
		return err
	}

	prevUTXOs := make([]*transaction.UTXO, len(selected))
	addrTypes := make([]address.Type, len(selected))
	redeemScripts := make([][]byte, len(selected))
	senderType := address.TypeSchnorr
	if cfg.ECDSA {
		senderType = address.TypeECDSA
	}
	for i, u := range selected {
		prevUTXOs[i] = u
		addrTypes[i] = senderType
	}

	if err := txbuilder.SignInputs(tx, prevUTXOs, addrTypes, redeemScripts, signer, nil, sighash.All); err != nil {
		return err
	}

	txID, err := client.Broadcast(ctx, tx)
	if err != nil {
		return err
	}
	fmt.Println(txID)
	return nil
}

// schnorrPublicKeyBytes derives the 32-byte x-only public key matching
// rawKey, for building the sender's own Schnorr address.
func schnorrPublicKeyBytes(rawKey []byte) ([]byte, error) {
	keyPair, err := kaspasecp256k1.DeserializeSchnorrPrivateKeyFromSlice(rawKey)
	if err != nil {
		return nil, err
	}
	pub, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return nil, err
	}
	serialized, err := pub.Serialize()
	if err != nil {
		return nil, err
	}
	return serialized[:], nil
}
