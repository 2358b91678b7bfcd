package krc20

import (
	"strings"
	"testing"
)

func TestFormatDeployMintExact(t *testing.T) {
	tick, err := NewTicker("KASP")
	if err != nil {
		t.Fatalf("NewTicker: %v", err)
	}
	got, err := FormatDeployMint(DeployMintParams{
		Tick: tick,
		Max:  "2100000000000000",
		Lim:  "100000000000",
	})
	if err != nil {
		t.Fatalf("FormatDeployMint: %v", err)
	}
	want := `{"p":"krc-20","op":"deploy","tick":"KASP","max":"2100000000000000","lim":"100000000000"}`
	if string(got) != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestFormatDeployMintWithOptionalFields(t *testing.T) {
	tick, err := NewTicker("KASP")
	if err != nil {
		t.Fatalf("NewTicker: %v", err)
	}
	got, err := FormatDeployMint(DeployMintParams{
		Tick: tick,
		Max:  "2100000000000000",
		Lim:  "100000000000",
		Dec:  "8",
		Pre:  "500000",
		To:   "kaspa:qq123",
	})
	if err != nil {
		t.Fatalf("FormatDeployMint: %v", err)
	}
	s := string(got)
	for _, want := range []string{`"dec":"8"`, `"pre":"500000"`, `"to":"kaspa:qq123"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("rendered JSON %s missing %s", s, want)
		}
	}
	decIdx := strings.Index(s, `"dec"`)
	preIdx := strings.Index(s, `"pre"`)
	toIdx := strings.Index(s, `"to"`)
	if !(decIdx < preIdx && preIdx < toIdx) {
		t.Fatalf("optional fields must render dec, pre, to in that order (spec.md S2): %s", s)
	}
	if strings.Contains(s, " ") {
		t.Fatalf("rendered JSON must contain no whitespace: %s", s)
	}
}

func TestFormatListLowercasesTicker(t *testing.T) {
	tick, err := NewTicker("TEST")
	if err != nil {
		t.Fatalf("NewTicker: %v", err)
	}
	got, err := FormatList(ListParams{Tick: tick, Amt: "100"})
	if err != nil {
		t.Fatalf("FormatList: %v", err)
	}
	if !strings.Contains(string(got), `"tick":"test"`) {
		t.Fatalf("expected lowercased tick, got %s", got)
	}
}

func TestFormatSendLowercasesTicker(t *testing.T) {
	tick, _ := NewTicker("TEST")
	got, err := FormatSend(SendParams{Tick: tick})
	if err != nil {
		t.Fatalf("FormatSend: %v", err)
	}
	if strings.ToUpper(string(got)) == string(got) {
		// sanity: the JSON does contain non-letters, this just checks tick casing below
	}
	if !strings.Contains(string(got), `"tick":"test"`) {
		t.Fatalf("expected lowercased tick, got %s", got)
	}
}

func TestFormatTransferPreservesCase(t *testing.T) {
	tick, _ := NewTicker("TEST")
	got, err := FormatTransfer(TransferParams{Tick: tick, Amt: "100", To: "kaspa:qq123"})
	if err != nil {
		t.Fatalf("FormatTransfer: %v", err)
	}
	if !strings.Contains(string(got), `"tick":"TEST"`) {
		t.Fatalf("transfer must case-preserve tick, got %s", got)
	}
}

func TestFormatMintRequiresTick(t *testing.T) {
	if _, err := FormatMint(MintParams{}); err == nil {
		t.Fatal("expected error for missing tick")
	}
}

func TestTickerValidation(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"KASP", false},
		{"AB", true},        // too short
		{"ABCDEFG", true},   // too long
		{"kasp", true},      // lowercase
		{"KA5P", true},      // non-letter
	}
	for _, c := range cases {
		_, err := NewTicker(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("NewTicker(%q): err=%v, wantErr=%v", c.in, err, c.wantErr)
		}
	}
}
