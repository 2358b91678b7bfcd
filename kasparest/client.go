// Package kasparest is a thin REST client implementing spec.md §6's
// UTXO-fetch and broadcast contracts. It lives outside the core's import
// graph: address, script, sighash, transaction, txbuilder, and krc20 never
// import it, so the core stays usable inside a TEE with no outbound
// network access of its own. The untrusted caller owns this package's
// instantiation and the network round-trip.
package kasparest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/kerrors"
	"github.com/codecustard/kaspa/logger"
	"github.com/codecustard/kaspa/transaction"
)

// Client is a minimal REST client against a Kaspa node's UTXO and
// broadcast endpoints. The zero value is not ready to use; construct with
// NewClient.
type Client struct {
	httpClient *http.Client
	apiHost    string
	log        *logger.Logger
}

// NewClient builds a Client targeting apiHost (e.g. "api.kaspa.org"). If
// httpClient is nil, http.DefaultClient is used.
func NewClient(apiHost string, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, apiHost: apiHost, log: log}
}

func (c *Client) trace(format string, args ...interface{}) {
	if c.log != nil {
		c.log.Tracef(format, args...)
	}
}

// baseURL returns apiHost as-is if it already carries a scheme (as
// httptest servers' addresses do, for tests), or prepends "https://"
// otherwise, which is always what a real deployment's api_host config
// value needs.
func (c *Client) baseURL() string {
	if strings.HasPrefix(c.apiHost, "http://") || strings.HasPrefix(c.apiHost, "https://") {
		return strings.TrimSuffix(c.apiHost, "/")
	}
	return "https://" + c.apiHost
}

// FetchUTXOs fetches every UTXO currently owned by address, per spec.md
// §6's UTXO REST response shape.
func (c *Client) FetchUTXOs(ctx context.Context, address string) ([]*transaction.UTXO, error) {
	url := c.baseURL() + "/addresses/" + address + "/utxos"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "kasparest: building UTXO fetch request")
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)
	c.trace("fetching UTXOs for %s (request %s)", address, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &kerrors.NetworkError{Message: errors.Wrap(err, "UTXO fetch transport failure").Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &kerrors.NetworkError{Message: errors.Wrap(err, "reading UTXO fetch response body").Error(), StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &kerrors.NetworkError{Message: string(body), StatusCode: resp.StatusCode}
	}

	utxos, err := transaction.DecodeUTXOResponse(body, address)
	if err != nil {
		return nil, &kerrors.InternalError{Message: errors.Wrap(err, "decoding UTXO fetch response").Error()}
	}
	return utxos, nil
}

// broadcastResponse covers the three field names spec.md §6 says a
// broadcast endpoint may use for the returned transaction ID.
type broadcastResponse struct {
	TransactionID string `json:"transactionId"`
	TxID          string `json:"txid"`
	ID            string `json:"id"`
}

func (r broadcastResponse) resolve() (string, bool) {
	switch {
	case r.TransactionID != "":
		return r.TransactionID, true
	case r.TxID != "":
		return r.TxID, true
	case r.ID != "":
		return r.ID, true
	default:
		return "", false
	}
}

// Broadcast POSTs tx's wire JSON to the node's /transactions endpoint and
// returns the broadcast transaction ID.
func (c *Client) Broadcast(ctx context.Context, tx *transaction.Transaction) (string, error) {
	body, err := transaction.MarshalJSON(tx)
	if err != nil {
		return "", errors.Wrap(err, "kasparest: marshaling transaction for broadcast")
	}

	url := c.baseURL() + "/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "kasparest: building broadcast request")
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)
	c.trace("broadcasting transaction (request %s)", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &kerrors.NetworkError{Message: errors.Wrap(err, "broadcast transport failure").Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &kerrors.NetworkError{Message: errors.Wrap(err, "reading broadcast response body").Error(), StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &kerrors.NetworkError{Message: string(respBody), StatusCode: resp.StatusCode}
	}

	var parsed broadcastResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &kerrors.InternalError{Message: errors.Wrap(err, "decoding broadcast response").Error()}
	}
	txID, ok := parsed.resolve()
	if !ok {
		return "", &kerrors.InternalError{Message: "broadcast response carried no transactionId/txid/id field"}
	}
	return txID, nil
}

// BroadcastWithRetry calls Broadcast up to maxAttempts times in total,
// waiting backoff×attempt between attempts, and returns the first success
// or the last error. Each attempt carries its own X-Request-Id.
func (c *Client) BroadcastWithRetry(ctx context.Context, tx *transaction.Transaction, maxAttempts int, backoff time.Duration) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		txID, err := c.Broadcast(ctx, tx)
		if err == nil {
			return txID, nil
		}
		lastErr = err
		c.trace("broadcast attempt %d/%d failed: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			select {
			case <-time.After(backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", lastErr
}
