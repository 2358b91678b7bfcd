package kasparest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codecustard/kaspa/transaction"
)

func TestFetchUTXOsParsesResponse(t *testing.T) {
	txID := "5555555555555555555555555555555555555555555555555555555555555555"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"outpoint":{"transactionId":"` + txID +
			`","index":0},"utxoEntry":{"amount":"42000","scriptPublicKey":{"version":0,"scriptPublicKey":"ac"},"isCoinbase":false}}]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil)
	utxos, err := c.FetchUTXOs(context.Background(), "kaspa:example")
	if err != nil {
		t.Fatalf("FetchUTXOs: %v", err)
	}
	if len(utxos) != 1 {
		t.Fatalf("expected 1 UTXO, got %d", len(utxos))
	}
	if utxos[0].Amount != 42000 {
		t.Fatalf("expected amount 42000, got %d", utxos[0].Amount)
	}
}

func TestFetchUTXOsRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil)
	if _, err := c.FetchUTXOs(context.Background(), "kaspa:example"); err == nil {
		t.Fatal("expected a NetworkError for a 500 response")
	}
}

func TestBroadcastResolvesAllThreeFieldNames(t *testing.T) {
	cases := []string{
		`{"transactionId":"abc123"}`,
		`{"txid":"abc123"}`,
		`{"id":"abc123"}`,
	}
	for _, body := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}))

		c := NewClient(server.URL, server.Client(), nil)
		tx := &transaction.Transaction{SubnetworkID: transaction.SubnetworkIDNative}
		got, err := c.Broadcast(context.Background(), tx)
		server.Close()
		if err != nil {
			t.Fatalf("Broadcast with body %s: %v", body, err)
		}
		if got != "abc123" {
			t.Fatalf("Broadcast with body %s = %q, want abc123", body, got)
		}
	}
}

func TestBroadcastRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil)
	tx := &transaction.Transaction{SubnetworkID: transaction.SubnetworkIDNative}
	if _, err := c.Broadcast(context.Background(), tx); err == nil {
		t.Fatal("expected a NetworkError for a 500 response")
	}
}

func TestBroadcastRejectsMissingIDField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"accepted"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil)
	tx := &transaction.Transaction{SubnetworkID: transaction.SubnetworkIDNative}
	if _, err := c.Broadcast(context.Background(), tx); err == nil {
		t.Fatal("expected an InternalError when no transactionId/txid/id field is present")
	}
}
