// Package transport serializes a completed Draft and posts it to the relay
// endpoint. A failed submission leaves the draft untouched so the caller can
// simply retry, or fall back to a plain mailto link.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tiertech/blueprint/internal/planner/catalog"
	"github.com/tiertech/blueprint/internal/planner/draft"
)

// DefaultTimeout bounds one submission attempt.
const DefaultTimeout = 15 * time.Second

// Payload is the wire form accepted by the relay. Reasons are submitted as
// display labels so the relay can embed them verbatim in the email subject.
type Payload struct {
	Reasons   []string `json:"reasons"`
	Followups []string `json:"followups"`
	Message   string   `json:"message"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Site      string   `json:"site"`
	When      string   `json:"when"`
}

// ClientOption configures the submission client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithSite overrides the derived submission origin.
func WithSite(site string) ClientOption {
	return func(c *Client) { c.site = site }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpc = h }
}

// WithNow replaces the clock used for the submission timestamp.
func WithNow(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// Client posts drafts to one relay endpoint.
type Client struct {
	endpoint string
	site     string
	httpc    *http.Client
	now      func() time.Time
}

// NewClient builds a client for the given relay URL. When no site override
// is supplied the local hostname stands in for the browser origin.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: DefaultTimeout},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.site == "" {
		host, err := os.Hostname()
		if err == nil {
			c.site = host
		}
	}
	return c
}

// BuildPayload derives the wire payload from a draft: every draft field plus
// the submission origin and an RFC 3339 UTC timestamp.
func (c *Client) BuildPayload(d draft.Draft) Payload {
	return Payload{
		Reasons:   catalog.Labels(d.Reasons),
		Followups: append([]string{}, d.Followups...),
		Message:   d.Message,
		Email:     d.Email,
		Name:      d.Name,
		Site:      c.site,
		When:      c.now().UTC().Format(time.RFC3339),
	}
}

// Submit posts the draft as JSON. Any non-2xx status or network failure is
// returned as a descriptive error; the draft itself is never modified.
func (c *Client) Submit(ctx context.Context, d draft.Draft) error {
	body, err := json.Marshal(c.BuildPayload(d))
	if err != nil {
		return fmt.Errorf("transport: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		msg := strings.TrimSpace(string(detail))
		if msg == "" {
			return fmt.Errorf("transport: request failed (%d)", resp.StatusCode)
		}
		return fmt.Errorf("transport: request failed (%d): %s", resp.StatusCode, msg)
	}
	return nil
}

// MailtoFallback renders the manual fallback link used when automated send
// fails: the support address with the current message pre-filled.
func MailtoFallback(supportAddr string, d draft.Draft) string {
	esc := func(s string) string {
		return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return "mailto:" + supportAddr + "?subject=" + esc("Chat fallback") + "&body=" + esc(d.Message)
}
