package address

import "github.com/pkg/errors"

// polymodGenerators are the five CashAddr polymod generator constants.
var polymodGenerators = [5]uint64{
	0x98f2bc8e61,
	0x79b76d99e2,
	0xf33e5fb3c4,
	0xae2eabe2a8,
	0x1e4f43e470,
}

// polymod runs the CashAddr polymod step function over values, seeded at 1,
// and returns the final 40-bit accumulator. Each value absorbed must
// already be masked to 5 bits.
func polymod(values []byte) uint64 {
	c := uint64(1)
	for _, v := range values {
		topByte := byte(c >> 35)
		c = ((c & (1<<35 - 1)) << 5) ^ uint64(v)
		for i := 0; i < 5; i++ {
			if (topByte>>uint(i))&1 != 0 {
				c ^= polymodGenerators[i]
			}
		}
	}
	return c
}

// checksumInput builds the full value sequence absorbed by polymod: the
// prefix's low-5-bit symbols, a zero separator, the payload's 5-bit
// symbols, and (for encoding) eight trailing zero steps reserved for the
// checksum digits themselves.
func checksumInput(prefix Prefix, fiveBitPayload []byte, trailingZeros int) []byte {
	values := make([]byte, 0, len(prefix)+1+len(fiveBitPayload)+trailingZeros)
	for i := 0; i < len(prefix); i++ {
		values = append(values, prefix[i]&0x1f)
	}
	values = append(values, 0)
	values = append(values, fiveBitPayload...)
	for i := 0; i < trailingZeros; i++ {
		values = append(values, 0)
	}
	return values
}

// polymodChecksum computes the 8-symbol checksum for encoding: the payload
// is already 5-bit-packed. The checksum digits are the eight 5-bit groups
// of (polymod(...) XOR 1), most-significant group first.
func polymodChecksum(prefix Prefix, fiveBitPayload []byte) [8]byte {
	c := polymod(checksumInput(prefix, fiveBitPayload, 8)) ^ 1
	var digits [8]byte
	for i := 7; i >= 0; i-- {
		digits[i] = byte(c & 0x1f)
		c >>= 5
	}
	return digits
}

// verifyChecksum recomputes the polymod over the prefix, payload, and the
// claimed checksum digits, and checks the result is 1 — encoding XORs the
// raw polymod with 1, so a valid checksum polymods to exactly 1, not 0.
func verifyChecksum(prefix Prefix, fiveBitPayload, checksum []byte) bool {
	values := checksumInput(prefix, fiveBitPayload, 0)
	values = append(values, checksum...)
	return polymod(values) == 1
}

// convertBits repacks data from fromBits-wide groups to toBits-wide groups.
// When pad is true, a terminal partial group is padded with zero low bits
// to a full group — used during encoding, where 8-to-5 conversion of
// arbitrary-length payloads must produce a whole number of 5-bit groups.
func convertBits(data []byte, fromBits, toBits uint, pad bool) []byte {
	var acc uint32
	var bits uint
	maxVal := uint32(1)<<toBits - 1
	out := make([]byte, 0, (len(data)*int(fromBits)+int(toBits)-1)/int(toBits))
	for _, value := range data {
		acc = (acc << fromBits) | uint32(value)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte((acc>>bits)&maxVal))
		}
	}
	if pad && bits > 0 {
		out = append(out, byte((acc<<(toBits-bits))&maxVal))
	}
	return out
}

// convertBitsStrict is convertBits's decode-direction counterpart: it
// refuses any non-zero residual bits left over after unpacking — decoding
// unpacks 5-bit groups back to bytes with no pad tolerance.
func convertBitsStrict(data []byte, fromBits, toBits uint) ([]byte, error) {
	var acc uint32
	var bits uint
	maxVal := uint32(1)<<toBits - 1
	out := make([]byte, 0, (len(data)*int(fromBits))/int(toBits))
	for _, value := range data {
		acc = (acc << fromBits) | uint32(value)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte((acc>>bits)&maxVal))
		}
	}
	if bits > 0 && (acc&(1<<bits-1)) != 0 {
		return nil, errors.New("non-zero padding in final bit group")
	}
	return out, nil
}
