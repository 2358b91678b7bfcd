package script

import (
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/opcode"
)

// Item is one parsed script element: either a literal opcode with no data,
// or a data push.
type Item struct {
	Op   opcode.Opcode
	Data []byte // nil for non-push opcodes
	Push bool
}

// Parse walks script and returns its opcodes/pushes in order. It only
// understands the subset of opcodes this package emits (pushes,
// OpPushData1/2/4, and the handful of literal control/marker opcodes used
// by Envelope and RedeemScript); anything else is returned as a bare,
// non-push Item so callers that only care about push data can ignore it.
func Parse(s []byte) ([]Item, error) {
	var items []Item
	for i := 0; i < len(s); {
		op := s[i]
		switch {
		case op == opcode.Op0:
			items = append(items, Item{Op: op, Push: true, Data: []byte{}})
			i++
		case op <= opcode.MaxSingleByteDataPush:
			n := int(op)
			if i+1+n > len(s) {
				return nil, errors.Errorf("script: truncated push at offset %d, want %d bytes", i, n)
			}
			items = append(items, Item{Op: op, Push: true, Data: s[i+1 : i+1+n]})
			i += 1 + n
		case op == opcode.OpPushData1:
			if i+2 > len(s) {
				return nil, errors.New("script: truncated OP_PUSHDATA1 length byte")
			}
			n := int(s[i+1])
			if i+2+n > len(s) {
				return nil, errors.Errorf("script: truncated OP_PUSHDATA1 payload, want %d bytes", n)
			}
			items = append(items, Item{Op: op, Push: true, Data: s[i+2 : i+2+n]})
			i += 2 + n
		case op == opcode.OpPushData2:
			if i+3 > len(s) {
				return nil, errors.New("script: truncated OP_PUSHDATA2 length bytes")
			}
			n := int(s[i+1]) | int(s[i+2])<<8
			if i+3+n > len(s) {
				return nil, errors.Errorf("script: truncated OP_PUSHDATA2 payload, want %d bytes", n)
			}
			items = append(items, Item{Op: op, Push: true, Data: s[i+3 : i+3+n]})
			i += 3 + n
		case op == opcode.OpPushData4:
			if i+5 > len(s) {
				return nil, errors.New("script: truncated OP_PUSHDATA4 length bytes")
			}
			n := int(s[i+1]) | int(s[i+2])<<8 | int(s[i+3])<<16 | int(s[i+4])<<24
			if i+5+n > len(s) {
				return nil, errors.Errorf("script: truncated OP_PUSHDATA4 payload, want %d bytes", n)
			}
			items = append(items, Item{Op: op, Push: true, Data: s[i+5 : i+5+n]})
			i += 5 + n
		default:
			items = append(items, Item{Op: op, Push: false})
			i++
		}
	}
	return items, nil
}

// PushedData returns the concatenation of data carried by every push item in
// items, in order — the inverse of chunking: PushedData(Parse(s)) for a
// script s built by AddChunkedData(d) returns d.
func PushedData(items []Item) []byte {
	var out []byte
	for _, it := range items {
		if it.Push {
			out = append(out, it.Data...)
		}
	}
	return out
}

// Disassemble renders script as a human-readable opcode/push listing, the
// way txscript.DisasmString does. It is a debugging aid only — nothing in
// the signing path calls it.
func Disassemble(s []byte) (string, error) {
	items, err := Parse(s)
	if err != nil {
		return "", err
	}
	out := ""
	for i, it := range items {
		if i > 0 {
			out += " "
		}
		if it.Push {
			out += opcodeName(it.Op) + ":" + hexString(it.Data)
		} else {
			out += opcodeName(it.Op)
		}
	}
	return out, nil
}

func hexString(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}

func opcodeName(op opcode.Opcode) string {
	switch op {
	case opcode.Op0:
		return "OP_0"
	case opcode.OpPushData1:
		return "OP_PUSHDATA1"
	case opcode.OpPushData2:
		return "OP_PUSHDATA2"
	case opcode.OpPushData4:
		return "OP_PUSHDATA4"
	case opcode.Op1:
		return "OP_1"
	case opcode.OpIf:
		return "OP_IF"
	case opcode.OpEndIf:
		return "OP_ENDIF"
	case opcode.OpEqual:
		return "OP_EQUAL"
	case opcode.OpCheckSig:
		return "OP_CHECKSIG"
	case opcode.OpCheckSigECDSA:
		return "OP_CHECKSIG_ECDSA"
	case opcode.OpBlake2b:
		return "OP_BLAKE2B"
	case opcode.OpHash256:
		return "OP_HASH256"
	default:
		return "OP_DATA"
	}
}
