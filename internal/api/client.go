package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Client is the shared JSON-over-HTTP transport for the billing server.
// Domain repositories wrap it instead of holding their own http.Client.
type Client struct {
	baseURL string
	http    *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server root, used to construct reference links
// (print views) that the terminal opens but never fetches itself.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, "build request GET %s", path)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return errors.Errorf("GET %s: unexpected status %d", path, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode response GET %s", path)
	}
	return nil
}

// PostJSON sends body and decodes the response into out. Non-2xx statuses
// are not treated as transport errors when the body still decodes: the
// invoice endpoint returns its failure payload with a 4xx/5xx status.
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "encode request POST %s", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "build request POST %s", path)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s", path)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "read response POST %s", path)
	}

	if err := json.Unmarshal(data, out); err != nil {
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return errors.Errorf("POST %s: unexpected status %d", path, res.StatusCode)
		}
		return errors.Wrapf(err, "decode response POST %s", path)
	}
	return nil
}

// PrintPath builds the reference to the printer-friendly invoice view.
func (c *Client) PrintPath(invoiceFile string) string {
	return fmt.Sprintf("%s/print_invoice/%s", c.baseURL, invoiceFile)
}
