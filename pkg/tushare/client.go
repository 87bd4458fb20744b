// Package tushare provides a minimal client for the TuShare Pro HTTP API,
// sufficient for verifying account tokens against the user quota endpoint.
package tushare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseURL is the public TuShare Pro API endpoint.
const DefaultBaseURL = "https://api.tushare.pro"

// Client calls the TuShare Pro JSON-over-HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the given endpoint. An empty baseURL
// selects the public TuShare Pro API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// apiRequest is the envelope every TuShare Pro call uses.
type apiRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params,omitempty"`
	Fields  string            `json:"fields,omitempty"`
}

// apiResponse carries the columnar result: data.fields names the columns,
// data.items holds the rows.
type apiResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data *struct {
		Fields []string        `json:"fields"`
		Items  [][]interface{} `json:"items"`
	} `json:"data"`
}

// QuotaRecord is one row of the user quota endpoint, keyed by field name.
// The endpoint returns multiple rows when several quotas are expiring.
type QuotaRecord map[string]string

// UserID returns the record's user_id field, if present.
func (r QuotaRecord) UserID() string {
	return r["user_id"]
}

// String renders the record as compact JSON with stable key order.
func (r QuotaRecord) String() string {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("%v", map[string]string(r))
	}
	return string(raw)
}

// User verifies a token by calling the account quota endpoint and returns
// the quota records associated with it. An invalid token surfaces as an
// API-level error.
func (c *Client) User(ctx context.Context, token string) ([]QuotaRecord, error) {
	resp, err := c.call(ctx, apiRequest{
		APIName: "user",
		Token:   token,
		Params:  map[string]string{"token": token},
	})
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, nil
	}

	records := make([]QuotaRecord, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		record := make(QuotaRecord, len(resp.Data.Fields))
		for i, field := range resp.Data.Fields {
			if i >= len(item) || item[i] == nil {
				continue
			}
			record[field] = formatValue(item[i])
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *Client) call(ctx context.Context, req apiRequest) (*apiResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tushare request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build tushare request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tushare request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tushare returned HTTP %d", httpResp.StatusCode)
	}

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode tushare response: %w", err)
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("tushare API error %d: %s", resp.Code, resp.Msg)
	}
	return &resp, nil
}

// formatValue renders a decoded JSON value without float artifacts on
// whole numbers.
func formatValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
