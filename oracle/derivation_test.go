package oracle

import (
	"testing"

	"github.com/tyler-smith/go-bip39"
)

func TestParsePathDefaultAccount(t *testing.T) {
	steps, err := ParsePath("m/44'/111111'/0'")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	want := []DerivationStep{
		DerivationStep(hardenedIndexStart + 44),
		DerivationStep(hardenedIndexStart + 111111),
		DerivationStep(hardenedIndexStart + 0),
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("step %d = %#x, want %#x", i, uint32(steps[i]), uint32(want[i]))
		}
		if !IsHardened(steps[i]) {
			t.Fatalf("step %d must be hardened", i)
		}
	}
}

func TestParsePathRejectsMissingM(t *testing.T) {
	if _, err := ParsePath("44'/0'"); err == nil {
		t.Fatal("expected an error for a path missing the leading \"m\"")
	}
}

func TestParsePathRejectsOutOfRangeIndex(t *testing.T) {
	if _, err := ParsePath("m/4294967296"); err == nil {
		t.Fatal("expected an error for an index beyond a 31-bit range")
	}
}

func TestParsePathMixedHardenedAndNormal(t *testing.T) {
	steps, err := ParsePath("m/44'/111111'/0'/0/5")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if IsHardened(steps[3]) || IsHardened(steps[4]) {
		t.Fatal("the receiving chain and address index components must not be hardened")
	}
	if uint32(steps[4]) != 5 {
		t.Fatalf("final component = %d, want 5", uint32(steps[4]))
	}
}

func TestStringRoundTripsThroughParsePath(t *testing.T) {
	paths := []string{
		"m/44'/111111'/0'",
		"m/45'",
		"m/44'/111111'/0'/0/5",
		"m",
	}
	for _, p := range paths {
		steps, err := ParsePath(p)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", p, err)
		}
		if got := String(steps); got != p {
			t.Errorf("String(ParsePath(%q)) = %q, want %q", p, got, p)
		}
	}
}

func TestDefaultAccountPathMatchesKaspadConvention(t *testing.T) {
	if got, want := String(DefaultAccountPath()), "m/44'/111111'/0'"; got != want {
		t.Fatalf("DefaultAccountPath() = %q, want %q", got, want)
	}
}

// TestValidateMnemonicAgreesWithBIP39 proves ValidateMnemonic is a thin,
// faithful wrapper over go-bip39's own validity check rather than a
// reimplementation that could silently drift from it.
func TestValidateMnemonicAgreesWithBIP39(t *testing.T) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		t.Fatalf("bip39.NewEntropy: %v", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		t.Fatalf("bip39.NewMnemonic: %v", err)
	}
	if err := ValidateMnemonic(mnemonic); err != nil {
		t.Fatalf("ValidateMnemonic rejected a freshly generated mnemonic: %v", err)
	}

	if err := ValidateMnemonic("not a real mnemonic at all"); err == nil {
		t.Fatal("expected ValidateMnemonic to reject a bogus phrase")
	}
}
