// internal/provisioning/client.go
package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	commonhttp "nbn-order-service/internal/common/http"
)

const statusSuccessful = "Successful"

// OrderRequest is the submission payload. Field names and presence are fixed
// by the provider contract.
type OrderRequest struct {
	Address1 string  `json:"address_1"`
	Address2 *string `json:"address_2"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Postcode string  `json:"postcode"`
	PlanName string  `json:"plan_name"`
}

// OrderResult is the provider's answer. Only status and id are consumed; any
// other response fields are ignored.
type OrderResult struct {
	Status string `json:"status"`
	ID     string `json:"id"`

	// HTTPStatus is the transport status code of the response.
	HTTPStatus int `json:"-"`
}

// Successful reports whether the provider accepted the order.
func (r *OrderResult) Successful() bool {
	return r.HTTPStatus >= 200 && r.HTTPStatus < 300 && r.Status == statusSuccessful
}

// Client submits orders to the external provisioning endpoint.
type Client struct {
	endpointURL string
	httpClient  *commonhttp.Client
}

func NewClient(endpointURL string, timeout time.Duration) *Client {
	return &Client{
		endpointURL: endpointURL,
		httpClient:  commonhttp.NewClient(timeout),
	}
}

// Submit sends one order to the provisioning endpoint. The idempotency key
// lets the provider de-duplicate if we crash between their write and ours.
//
// Errors are transport-level only (dial, timeout, unparseable body). A
// reachable endpoint that declines the order is reported through the result,
// not the error.
func (c *Client) Submit(ctx context.Context, order *OrderRequest, idempotencyKey string) (*OrderResult, error) {
	jsonData, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result := &OrderResult{HTTPStatus: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Declined before the body matters; nothing in it is consumed.
		return result, nil
	}

	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return result, nil
}
