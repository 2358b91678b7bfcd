package sighash

import (
	"testing"

	"github.com/codecustard/kaspa/hash"
	"github.com/codecustard/kaspa/transaction"
)

const (
	txidA = "1111111111111111111111111111111111111111111111111111111111111111"
	txidB = "2222222222222222222222222222222222222222222222222222222222222222"
)

func sampleTx() *transaction.Transaction {
	op1, _ := transaction.OutpointFromTransactionIDHex(txidA, 0)
	op2, _ := transaction.OutpointFromTransactionIDHex(txidB, 1)
	return &transaction.Transaction{
		Version: 0,
		Inputs: []*transaction.Input{
			{PreviousOutpoint: op1, Sequence: 0, SigOpCount: 1},
			{PreviousOutpoint: op2, Sequence: 1, SigOpCount: 1},
		},
		Outputs: []*transaction.Output{
			{Value: 1000, ScriptPublicKey: transaction.ScriptPublicKey{Version: 0, Script: []byte{0x20}}},
			{Value: 2000, ScriptPublicKey: transaction.ScriptPublicKey{Version: 0, Script: []byte{0x21}}},
		},
		LockTime:     0,
		SubnetworkID: transaction.SubnetworkIDNative,
		Gas:          0,
		Payload:      nil,
	}
}

func samplePrevUTXO() *transaction.UTXO {
	return &transaction.UTXO{
		Amount:          5000,
		ScriptVersion:   0,
		ScriptPublicKey: []byte{0xaa, 0xbb, 0xcc},
	}
}

func TestSchnorrDeterministic(t *testing.T) {
	tx := sampleTx()
	prevUTXO := samplePrevUTXO()
	d1, err := Schnorr(tx, 0, prevUTXO, All, nil)
	if err != nil {
		t.Fatalf("Schnorr: %v", err)
	}
	d2, err := Schnorr(tx, 0, prevUTXO, All, nil)
	if err != nil {
		t.Fatalf("Schnorr: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("Schnorr digest not deterministic: %x != %x", d1, d2)
	}
}

func TestSchnorrDiffersByInput(t *testing.T) {
	tx := sampleTx()
	prevUTXO := samplePrevUTXO()
	d0, err := Schnorr(tx, 0, prevUTXO, All, nil)
	if err != nil {
		t.Fatalf("Schnorr(0): %v", err)
	}
	d1, err := Schnorr(tx, 1, prevUTXO, All, nil)
	if err != nil {
		t.Fatalf("Schnorr(1): %v", err)
	}
	if d0 == d1 {
		t.Fatal("digests for distinct inputs must differ")
	}
}

func TestECDSAComposesOverSchnorr(t *testing.T) {
	tx := sampleTx()
	prevUTXO := samplePrevUTXO()
	schnorrDigest, err := Schnorr(tx, 0, prevUTXO, All, nil)
	if err != nil {
		t.Fatalf("Schnorr: %v", err)
	}
	ecdsaDigest, err := ECDSA(tx, 0, prevUTXO, All, nil)
	if err != nil {
		t.Fatalf("ECDSA: %v", err)
	}

	// Property 3: sighash_ecdsa = SHA-256(SHA-256("TransactionSigningHashECDSA") || sighash_schnorr).
	want := hash.DoubleSha256ECDSA(schnorrDigest)
	if ecdsaDigest != want {
		t.Fatalf("ECDSA digest does not match the required composition:\n got  %x\n want %x", ecdsaDigest, want)
	}
}

func TestPrefillMatchesLazy(t *testing.T) {
	tx := sampleTx()
	prevUTXO := samplePrevUTXO()

	lazy, err := Schnorr(tx, 1, prevUTXO, Single, nil)
	if err != nil {
		t.Fatalf("lazy Schnorr: %v", err)
	}

	rv := &ReusedValues{}
	if err := PrefillReusedValues(tx, []Type{Single}); err != nil {
		t.Fatalf("PrefillReusedValues: %v", err)
	}
	prefilled, err := Schnorr(tx, 1, prevUTXO, Single, rv)
	if err != nil {
		t.Fatalf("prefilled Schnorr: %v", err)
	}
	if lazy != prefilled {
		t.Fatalf("prefilled digest disagrees with lazily computed digest: %x != %x", prefilled, lazy)
	}
}

func TestSingleOutOfBoundsIndexFails(t *testing.T) {
	tx := sampleTx()
	tx.Inputs = append(tx.Inputs, &transaction.Input{Sequence: 0, SigOpCount: 1})
	prevUTXO := samplePrevUTXO()
	if _, err := Schnorr(tx, 2, prevUTXO, Single, nil); err == nil {
		t.Fatal("expected an error for SigHashSingle with no matching output")
	}
}

func TestInvalidSighashType(t *testing.T) {
	tx := sampleTx()
	prevUTXO := samplePrevUTXO()
	for _, bad := range []Type{0x00, 0x03, 0x05, 0x80, 0xff} {
		if _, err := Schnorr(tx, 0, prevUTXO, bad, nil); err == nil {
			t.Fatalf("expected InvalidSighashType for 0x%02x", byte(bad))
		}
	}
}

func TestAnyOneCanPayChangesDigest(t *testing.T) {
	tx := sampleTx()
	prevUTXO := samplePrevUTXO()
	a, err := Schnorr(tx, 0, prevUTXO, All, nil)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	b, err := Schnorr(tx, 0, prevUTXO, All|AnyOneCanPay, nil)
	if err != nil {
		t.Fatalf("All|AnyOneCanPay: %v", err)
	}
	if a == b {
		t.Fatal("AnyOneCanPay must change the digest relative to plain All")
	}
}

func TestP2SHUsesSpentScriptPublicKey(t *testing.T) {
	tx := sampleTx()
	p2shUTXO := &transaction.UTXO{Amount: 5000, ScriptVersion: 0, ScriptPublicKey: []byte{0xb3, 0x20, 0x01}}
	redeemAsIfSpent := &transaction.UTXO{Amount: 5000, ScriptVersion: 0, ScriptPublicKey: []byte{0x02}}

	d1, err := Schnorr(tx, 0, p2shUTXO, All, nil)
	if err != nil {
		t.Fatalf("Schnorr(p2sh scriptPubKey): %v", err)
	}
	d2, err := Schnorr(tx, 0, redeemAsIfSpent, All, nil)
	if err != nil {
		t.Fatalf("Schnorr(redeem script): %v", err)
	}
	if d1 == d2 {
		t.Fatal("digest must depend on which script bytes are passed as the spent scriptPublicKey")
	}
}
