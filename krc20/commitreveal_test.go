package krc20

import (
	"bytes"
	"testing"

	"github.com/codecustard/kaspa/transaction"
)

const fundingTxID = "4444444444444444444444444444444444444444444444444444444444444444"

func fundingUTXO(amount uint64) *transaction.UTXO {
	op, err := transaction.OutpointFromTransactionIDHex(fundingTxID, 0)
	if err != nil {
		panic(err)
	}
	return &transaction.UTXO{Outpoint: op, Amount: amount}
}

func TestBuildCommitAssemblesP2SHOutput(t *testing.T) {
	opJSON, err := FormatDeployMint(DeployMintParams{Tick: "KASP", Max: "1000", Lim: "10"})
	if err != nil {
		t.Fatalf("FormatDeployMint: %v", err)
	}
	pubKey := bytes.Repeat([]byte{0x01}, 32)

	req := &BuildCommitRequest{
		OperationJSON: opJSON,
		PubKey:        pubKey,
		UseECDSA:      false,
		Change:        &transaction.Output{ScriptPublicKey: transaction.ScriptPublicKey{Script: []byte{0xac}}},
		Available:     []*transaction.UTXO{fundingUTXO(2_000_000)},
		Fee:           1000,
	}
	pair, _, err := BuildCommit(req)
	if err != nil {
		t.Fatalf("BuildCommit: %v", err)
	}
	if len(pair.Commit.Outputs) == 0 {
		t.Fatal("commit transaction must have at least one output")
	}
	commitOut := pair.Commit.Outputs[pair.CommitOutputIdx]
	if commitOut.Value != DefaultCommitAmount {
		t.Fatalf("expected commit output of %d sompi, got %d", DefaultCommitAmount, commitOut.Value)
	}
	if len(commitOut.ScriptPublicKey.Script) != 35 {
		t.Fatalf("commit scriptPublicKey must be 35 bytes, got %d", len(commitOut.ScriptPublicKey.Script))
	}
	if !bytes.Equal(commitOut.ScriptPublicKey.Script, pair.P2SHScript) {
		t.Fatal("commit output's scriptPublicKey must match the pair's P2SHScript")
	}
}

func TestBuildCommitRejectsBelowMinimum(t *testing.T) {
	opJSON, _ := FormatMint(MintParams{Tick: "KASP"})
	req := &BuildCommitRequest{
		OperationJSON: opJSON,
		PubKey:        bytes.Repeat([]byte{0x02}, 32),
		CommitAmount:  500,
		Available:     []*transaction.UTXO{fundingUTXO(2_000_000)},
	}
	if _, _, err := BuildCommit(req); err == nil {
		t.Fatal("expected an error for a commit amount below MinCommitAmount")
	}
}

func TestBuildRevealDeductsFee(t *testing.T) {
	p2shUTXO := fundingUTXO(DefaultCommitAmount)
	recipient := &transaction.Output{ScriptPublicKey: transaction.ScriptPublicKey{Script: []byte{0xac}}}

	fee, err := RevealFee("mint")
	if err != nil {
		t.Fatalf("RevealFee: %v", err)
	}
	// DefaultCommitAmount (10000 sompi) is far smaller than the mint reveal
	// fee (1 KAS), so this exercises the error path instead.
	_, err = BuildReveal(&BuildRevealRequest{
		RedeemScript: []byte{0x01},
		P2SHUTXO:     p2shUTXO,
		Recipient:    recipient,
		RevealFee:    fee,
	})
	if err == nil {
		t.Fatal("expected an InvalidAmount error: the commit amount can't cover the real mint reveal fee")
	}

	// With a fee the commit amount genuinely covers:
	smallFee := uint64(1000)
	tx, err := BuildReveal(&BuildRevealRequest{
		RedeemScript: []byte{0x01},
		P2SHUTXO:     p2shUTXO,
		Recipient:    recipient,
		RevealFee:    smallFee,
	})
	if err != nil {
		t.Fatalf("BuildReveal: %v", err)
	}
	if len(tx.Inputs) != 1 || tx.Inputs[0].PreviousOutpoint != p2shUTXO.Outpoint {
		t.Fatal("reveal transaction must spend exactly the P2SH UTXO")
	}
	wantOut := p2shUTXO.Amount - smallFee
	if tx.Outputs[0].Value != wantOut {
		t.Fatalf("expected reveal output of %d, got %d", wantOut, tx.Outputs[0].Value)
	}
}

func TestRevealFeeTable(t *testing.T) {
	cases := map[string]uint64{
		"deploy":   1000 * sompiPerKAS,
		"mint":     1 * sompiPerKAS,
		"transfer": NetworkFee,
		"burn":     NetworkFee,
		"list":     NetworkFee,
		"send":     NetworkFee,
	}
	for op, want := range cases {
		got, err := RevealFee(op)
		if err != nil {
			t.Fatalf("RevealFee(%q): %v", op, err)
		}
		if got != want {
			t.Errorf("RevealFee(%q) = %d, want %d", op, got, want)
		}
	}
}

func TestRevealFeeRejectsUnknownOp(t *testing.T) {
	if _, err := RevealFee("frobnicate"); err == nil {
		t.Fatal("expected an error for an unrecognized operation")
	}
}
