package krc20

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// protocolTag is the literal "p" value every KRC20 operation carries.
const protocolTag = "krc-20"

// objectBuilder assembles a JSON object with a caller-chosen key order and
// no inserted whitespace, matching the wire format Kasplex's indexer
// expects byte-for-byte. encoding/json's map marshaling would sort keys
// alphabetically, which is wrong here — field order is part of the spec,
// not an implementation detail — so this hand-writes the object instead.
type objectBuilder struct {
	buf   bytes.Buffer
	empty bool
}

func newObjectBuilder() *objectBuilder {
	b := &objectBuilder{empty: true}
	b.buf.WriteByte('{')
	return b
}

// field appends key:value with value JSON-string-encoded (handles
// escaping); every KRC20 field is string-typed, per spec.md §4.5.
func (b *objectBuilder) field(key, value string) *objectBuilder {
	if !b.empty {
		b.buf.WriteByte(',')
	}
	b.empty = false
	b.buf.WriteByte('"')
	b.buf.WriteString(key)
	b.buf.WriteString(`":`)
	encoded, _ := json.Marshal(value)
	b.buf.Write(encoded)
	return b
}

// optionalField appends key:value only if value is non-empty; omitted
// fields per spec.md §4.5's "optional fields are omitted when absent".
func (b *objectBuilder) optionalField(key, value string) *objectBuilder {
	if value == "" {
		return b
	}
	return b.field(key, value)
}

func (b *objectBuilder) bytes() []byte {
	out := append([]byte(nil), b.buf.Bytes()...)
	out = append(out, '}')
	return out
}

// DeployMintParams formats a mint-mode "deploy" operation: a fixed-supply
// token with a per-mint limit.
type DeployMintParams struct {
	Tick Ticker
	Max  string
	Lim  string
	To   string // optional
	Dec  string // optional
	Pre  string // optional
}

// FormatDeployMint renders p.Tick case-preserved, per spec.md §3.
func FormatDeployMint(p DeployMintParams) ([]byte, error) {
	if p.Tick == "" || p.Max == "" || p.Lim == "" {
		return nil, errors.New("krc20: deploy (mint-mode) requires tick, max, and lim")
	}
	b := newObjectBuilder().
		field("p", protocolTag).
		field("op", "deploy").
		field("tick", p.Tick.String()).
		field("max", p.Max).
		field("lim", p.Lim).
		optionalField("dec", p.Dec).
		optionalField("pre", p.Pre).
		optionalField("to", p.To)
	return b.bytes(), nil
}

// DeployIssueParams formats an issue-mode "deploy" operation: a module-
// governed token identified by name rather than a fixed-limit ticker.
type DeployIssueParams struct {
	Mod  string
	Name string
	Max  string
	To   string // optional
	Dec  string // optional
	Pre  string // optional
}

func FormatDeployIssue(p DeployIssueParams) ([]byte, error) {
	if p.Mod == "" || p.Name == "" || p.Max == "" {
		return nil, errors.New("krc20: deploy (issue-mode) requires mod, name, and max")
	}
	b := newObjectBuilder().
		field("p", protocolTag).
		field("op", "deploy").
		field("mod", p.Mod).
		field("name", p.Name).
		field("max", p.Max).
		optionalField("dec", p.Dec).
		optionalField("pre", p.Pre).
		optionalField("to", p.To)
	return b.bytes(), nil
}

// MintParams formats a "mint" operation.
type MintParams struct {
	Tick Ticker
	To   string // optional
}

func FormatMint(p MintParams) ([]byte, error) {
	if p.Tick == "" {
		return nil, errors.New("krc20: mint requires tick")
	}
	b := newObjectBuilder().
		field("p", protocolTag).
		field("op", "mint").
		field("tick", p.Tick.String()).
		optionalField("to", p.To)
	return b.bytes(), nil
}

// TransferParams formats a "transfer" operation.
type TransferParams struct {
	Tick Ticker
	Amt  string
	To   string
}

func FormatTransfer(p TransferParams) ([]byte, error) {
	if p.Tick == "" || p.Amt == "" || p.To == "" {
		return nil, errors.New("krc20: transfer requires tick, amt, and to")
	}
	b := newObjectBuilder().
		field("p", protocolTag).
		field("op", "transfer").
		field("tick", p.Tick.String()).
		field("amt", p.Amt).
		field("to", p.To)
	return b.bytes(), nil
}

// BurnParams formats a "burn" operation.
type BurnParams struct {
	Tick Ticker
	Amt  string
}

func FormatBurn(p BurnParams) ([]byte, error) {
	if p.Tick == "" || p.Amt == "" {
		return nil, errors.New("krc20: burn requires tick and amt")
	}
	b := newObjectBuilder().
		field("p", protocolTag).
		field("op", "burn").
		field("tick", p.Tick.String()).
		field("amt", p.Amt)
	return b.bytes(), nil
}

// ListParams formats a "list" operation. Tick is rendered lowercased, per
// spec.md §3's list/send case-folding rule.
type ListParams struct {
	Tick Ticker
	Amt  string
}

func FormatList(p ListParams) ([]byte, error) {
	if p.Tick == "" || p.Amt == "" {
		return nil, errors.New("krc20: list requires tick and amt")
	}
	b := newObjectBuilder().
		field("p", protocolTag).
		field("op", "list").
		field("tick", p.Tick.Lower()).
		field("amt", p.Amt)
	return b.bytes(), nil
}

// SendParams formats a "send" operation. Tick is rendered lowercased, like
// list.
type SendParams struct {
	Tick Ticker
}

func FormatSend(p SendParams) ([]byte, error) {
	if p.Tick == "" {
		return nil, errors.New("krc20: send requires tick")
	}
	b := newObjectBuilder().
		field("p", protocolTag).
		field("op", "send").
		field("tick", p.Tick.Lower())
	return b.bytes(), nil
}

// IssueParams formats an "issue" operation: the KRC20A variant, addressed
// by contract address (Ca) rather than ticker.
type IssueParams struct {
	Ca  string
	Amt string
	To  string // optional
}

func FormatIssue(p IssueParams) ([]byte, error) {
	if p.Ca == "" || p.Amt == "" {
		return nil, errors.New("krc20: issue requires ca and amt")
	}
	b := newObjectBuilder().
		field("p", protocolTag).
		field("op", "issue").
		field("ca", p.Ca).
		field("amt", p.Amt).
		optionalField("to", p.To)
	return b.bytes(), nil
}
