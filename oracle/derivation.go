package oracle

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// hardenedIndexStart is BIP-32's offset marking a hardened child index,
// matching bip32.hardenedIndexStart: indexes at or above this value are
// hardened, below it are normal.
const hardenedIndexStart uint32 = 0x80000000

// ParsePath parses a BIP-32 path string such as "m/44'/111111'/0'" into the
// []DerivationStep sequence the Signer contract expects. A component
// suffixed with ' or h is hardened (its 4-byte index has bit 31 set);
// the leading "m" is required and contributes no step.
func ParsePath(pathString string) ([]DerivationStep, error) {
	components := strings.Split(pathString, "/")
	if len(components) == 0 || components[0] != "m" {
		return nil, errors.Errorf("oracle: derivation path %q must start with \"m\"", pathString)
	}
	components = components[1:]

	steps := make([]DerivationStep, 0, len(components))
	for _, component := range components {
		if component == "" {
			return nil, errors.Errorf("oracle: derivation path %q has an empty component", pathString)
		}

		hardened := false
		switch component[len(component)-1] {
		case '\'', 'h', 'H':
			hardened = true
			component = component[:len(component)-1]
		}

		index, err := strconv.ParseUint(component, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "oracle: derivation path %q has an invalid component %q", pathString, component)
		}
		if index >= uint64(hardenedIndexStart) {
			return nil, errors.Errorf("oracle: derivation path %q component %q is out of range for a 31-bit index", pathString, component)
		}

		step := DerivationStep(index)
		if hardened {
			step += DerivationStep(hardenedIndexStart)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// String renders steps back into the "m/44'/0'/..." form ParsePath
// accepts, so a Signer implementation and its caller can agree on a
// derivation path without sharing the []DerivationStep encoding directly.
func String(steps []DerivationStep) string {
	var b strings.Builder
	b.WriteString("m")
	for _, step := range steps {
		b.WriteString("/")
		index := uint32(step)
		if index >= hardenedIndexStart {
			b.WriteString(strconv.FormatUint(uint64(index-hardenedIndexStart), 10))
			b.WriteString("'")
		} else {
			b.WriteString(strconv.FormatUint(uint64(index), 10))
		}
	}
	return b.String()
}

// IsHardened reports whether step's index carries BIP-32's hardened bit.
func IsHardened(step DerivationStep) bool {
	return uint32(step) >= hardenedIndexStart
}

// DefaultAccountPath is the non-multisig account path kaspad wallets derive
// from, m/44'/111111'/0' (111111 is Kaspa's registered BIP-44 coin type).
func DefaultAccountPath() []DerivationStep {
	steps, err := ParsePath("m/44'/111111'/0'")
	if err != nil {
		panic(err)
	}
	return steps
}

// ValidateMnemonic reports whether mnemonic is a well-formed BIP-39
// mnemonic. The oracle contract never requires the core library to hold
// the mnemonic or the seed it derives from; this exists so a caller
// assembling its own oracle.Signer can validate operator input before
// handing it to an external signer, without the core depending on any
// particular key-management scheme.
func ValidateMnemonic(mnemonic string) error {
	if !bip39.IsMnemonicValid(mnemonic) {
		return errors.New("oracle: invalid BIP-39 mnemonic")
	}
	return nil
}
