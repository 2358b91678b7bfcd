package main

import (
	"context"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/codecustard/kaspa/address"
	"github.com/codecustard/kaspa/krc20"
	"github.com/codecustard/kaspa/oracle"
	"github.com/codecustard/kaspa/script"
	"github.com/codecustard/kaspa/sighash"
	"github.com/codecustard/kaspa/transaction"
	"github.com/codecustard/kaspa/txbuilder"
)

// buildAndBroadcastCommit is shared by every krc20-* commit subcommand:
// fetch UTXOs for the funder, build the commit transaction around opJSON,
// sign its plain ECDSA P2PK inputs, and broadcast it. The caller must save
// the printed redeem script; it is required to build the matching reveal.
func buildAndBroadcastCommit(c *commonFlagsResolved, rawKey, pubKey []byte, opJSON []byte) error {
	ctx := context.Background()
	client, err := newClient(c.apiHost, c.logDir)
	if err != nil {
		return err
	}

	funder, err := selfAddress(pubKey, true, c.prefix)
	if err != nil {
		return err
	}
	available, err := client.FetchUTXOs(ctx, funder.String)
	if err != nil {
		return err
	}

	pair, selected, err := krc20.BuildCommit(&krc20.BuildCommitRequest{
		OperationJSON: opJSON,
		PubKey:        pubKey,
		UseECDSA:      true,
		Change:        &transaction.Output{ScriptPublicKey: transaction.ScriptPublicKey{Script: funder.ScriptPublicKey}},
		Available:     available,
		FeeRate:       1000,
	})
	if err != nil {
		return err
	}

	prevUTXOs := make([]*transaction.UTXO, len(selected))
	addrTypes := make([]address.Type, len(selected))
	redeemScripts := make([][]byte, len(selected))
	for i, u := range selected {
		prevUTXOs[i] = u
		addrTypes[i] = address.TypeECDSA
	}

	signer, err := oracle.NewLocalECDSASigner(rawKey)
	if err != nil {
		return err
	}
	if err := txbuilder.SignInputs(pair.Commit, prevUTXOs, addrTypes, redeemScripts, signer, nil, sighash.All); err != nil {
		return err
	}

	txID, err := client.Broadcast(ctx, pair.Commit)
	if err != nil {
		return err
	}
	fmt.Printf("commit txid: %s\n", txID)
	fmt.Printf("commit output index: %d\n", pair.CommitOutputIdx)
	fmt.Printf("commit amount: %d\n", pair.Commit.Outputs[pair.CommitOutputIdx].Value)
	fmt.Printf("redeem script (save this for the reveal): %x\n", pair.RedeemScript)
	return nil
}

// commonFlagsResolved is the CLI's own trimmed-down view of a resolved
// commonFlags block, since the krc20 commit helper only needs the API
// host and address prefix, not the full config.Config.
type commonFlagsResolved struct {
	apiHost string
	prefix  address.Prefix
	logDir  string
}

func resolveCommon(f commonFlags) (*commonFlagsResolved, error) {
	c, err := f.resolve()
	if err != nil {
		return nil, err
	}
	prefix, err := c.Network.Prefix()
	if err != nil {
		return nil, err
	}
	return &commonFlagsResolved{apiHost: c.APIHost, prefix: prefix, logDir: f.LogDir}, nil
}

func keyPairFromHex(rawKeyHex string) (rawKey, pubKey []byte, err error) {
	rawKey, err = decodeHex("private-key", rawKeyHex)
	if err != nil {
		return nil, nil, err
	}
	if len(rawKey) != 32 {
		return nil, nil, fmt.Errorf("private-key must decode to 32 bytes, got %d", len(rawKey))
	}
	pubKey = secp256k1.PrivKeyFromBytes(rawKey).PubKey().SerializeCompressed()
	return rawKey, pubKey, nil
}

func runKRC20Deploy(cfg *krc20DeployConfig) error {
	c, err := resolveCommon(cfg.commonFlags)
	if err != nil {
		return err
	}
	rawKey, pubKey, err := keyPairFromHex(cfg.PrivateKey)
	if err != nil {
		return err
	}
	tick, err := krc20.NewTicker(cfg.Tick)
	if err != nil {
		return err
	}
	opJSON, err := krc20.FormatDeployMint(krc20.DeployMintParams{
		Tick: tick,
		Max:  cfg.Max,
		Lim:  cfg.Lim,
		Dec:  cfg.Dec,
	})
	if err != nil {
		return err
	}
	return buildAndBroadcastCommit(c, rawKey, pubKey, opJSON)
}

func runKRC20Mint(cfg *krc20MintConfig) error {
	c, err := resolveCommon(cfg.commonFlags)
	if err != nil {
		return err
	}
	rawKey, pubKey, err := keyPairFromHex(cfg.PrivateKey)
	if err != nil {
		return err
	}
	tick, err := krc20.NewTicker(cfg.Tick)
	if err != nil {
		return err
	}
	opJSON, err := krc20.FormatMint(krc20.MintParams{Tick: tick})
	if err != nil {
		return err
	}
	return buildAndBroadcastCommit(c, rawKey, pubKey, opJSON)
}

func runKRC20Transfer(cfg *krc20TransferConfig) error {
	c, err := resolveCommon(cfg.commonFlags)
	if err != nil {
		return err
	}
	rawKey, pubKey, err := keyPairFromHex(cfg.PrivateKey)
	if err != nil {
		return err
	}
	tick, err := krc20.NewTicker(cfg.Tick)
	if err != nil {
		return err
	}
	opJSON, err := krc20.FormatTransfer(krc20.TransferParams{Tick: tick, Amt: cfg.Amount, To: cfg.To})
	if err != nil {
		return err
	}
	return buildAndBroadcastCommit(c, rawKey, pubKey, opJSON)
}

func runKRC20Reveal(cfg *krc20RevealConfig) error {
	c, err := resolveCommon(cfg.commonFlags)
	if err != nil {
		return err
	}
	rawKey, _, err := keyPairFromHex(cfg.PrivateKey)
	if err != nil {
		return err
	}
	if _, err := decodeHex("public-key", cfg.PublicKey); err != nil {
		return err
	}

	redeemScript, err := decodeHex("redeem-script", cfg.RedeemScript)
	if err != nil {
		return err
	}
	outpoint, err := transaction.OutpointFromTransactionIDHex(cfg.CommitTxID, cfg.CommitIndex)
	if err != nil {
		return err
	}
	p2shScript, err := script.P2SHCommitScript(redeemScript)
	if err != nil {
		return err
	}
	p2shUTXO := &transaction.UTXO{
		Outpoint:        outpoint,
		Amount:          cfg.CommitAmount,
		ScriptPublicKey: p2shScript,
	}

	recipient, err := address.Decode(cfg.ToAddress)
	if err != nil {
		return err
	}
	revealFee, err := krc20.RevealFee(cfg.Op)
	if err != nil {
		return err
	}

	tx, err := krc20.BuildReveal(&krc20.BuildRevealRequest{
		RedeemScript: redeemScript,
		P2SHUTXO:     p2shUTXO,
		Recipient:    &transaction.Output{ScriptPublicKey: transaction.ScriptPublicKey{Script: recipient.ScriptPublicKey}},
		RevealFee:    revealFee,
	})
	if err != nil {
		return err
	}

	rv := &sighash.ReusedValues{}
	digest, err := sighash.ECDSA(tx, 0, p2shUTXO, sighash.All, rv)
	if err != nil {
		return err
	}
	signer, err := oracle.NewLocalECDSASigner(rawKey)
	if err != nil {
		return err
	}
	rawSig, err := signer.SignECDSA(digest, nil)
	if err != nil {
		return err
	}
	der, err := txbuilder.EncodeDER(rawSig)
	if err != nil {
		return err
	}
	sigWithHashType := append(der, byte(sighash.All))
	tx.Inputs[0].SignatureScript, err = script.P2SHSignatureScript(sigWithHashType, redeemScript)
	if err != nil {
		return err
	}

	client, err := newClient(c.apiHost, c.logDir)
	if err != nil {
		return err
	}
	txID, err := client.Broadcast(context.Background(), tx)
	if err != nil {
		return err
	}
	fmt.Println(txID)
	return nil
}
