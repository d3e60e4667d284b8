package lnurl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// maxResponseSize caps how much of a pay-service response is read.
const maxResponseSize = 1 << 20

// HTTPClient is the transport used for pay-service round trips.
// *http.Client satisfies it; tests substitute fakes.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// PayParams is the round-1 metadata a pay service reports for a
// pointer. Sendable bounds are in millisatoshis on the wire.
type PayParams struct {
	Callback        string `json:"callback" validate:"required,url"`
	MinSendableMsat int64  `json:"minSendable" validate:"required,gt=0"`
	MaxSendableMsat int64  `json:"maxSendable" validate:"required,gtefield=MinSendableMsat"`
	Metadata        string `json:"metadata"`
	Tag             string `json:"tag" validate:"required,eq=payRequest"`
	// CommentAllowed is the maximum comment length the service
	// accepts; 0 means comments are not accepted.
	CommentAllowed int `json:"commentAllowed"`

	// MetadataPlaintext is the text/plain entry extracted from
	// Metadata, for display.
	MetadataPlaintext string `json:"-"`
}

// MinSendableSat returns the inclusive lower bound in satoshis,
// rounded up so the sat range never admits an amount below the msat
// minimum.
func (p *PayParams) MinSendableSat() int64 {
	return (p.MinSendableMsat + 999) / 1000
}

// MaxSendableSat returns the inclusive upper bound in satoshis,
// rounded down.
func (p *PayParams) MaxSendableSat() int64 {
	return p.MaxSendableMsat / 1000
}

// errorEnvelope is the LNURL error shape: {"status":"ERROR","reason":...}.
type errorEnvelope struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// invoiceResponse is the round-2 callback response.
type invoiceResponse struct {
	PR string `json:"pr"`
}

// Client performs lnurl-pay round trips.
type Client struct {
	http     HTTPClient
	validate *validator.Validate
}

// NewClient returns a Client using the given transport, or a default
// 30-second-timeout http.Client when nil.
func NewClient(httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		http:     httpClient,
		validate: validator.New(),
	}
}

// FetchPayParams performs round 1: fetch and validate the pay-service
// metadata behind a decoded pointer endpoint.
func (c *Client) FetchPayParams(ctx context.Context, endpoint string) (*PayParams, error) {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if reason, isErr := serviceError(body); isErr {
		return nil, fmt.Errorf("%w: %s", ErrServiceError, reason)
	}

	var params PayParams
	if err := json.Unmarshal(body, &params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if err := c.validate.Struct(&params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	params.MetadataPlaintext = plaintextEntry(params.Metadata)
	return &params, nil
}

// FetchInvoice performs round 2: call the service's callback URL with
// the amount (millisatoshis) and optional comment, returning the
// bolt11 invoice string.
func (c *Client) FetchInvoice(ctx context.Context, callback string, amountMsat int64, comment string) (string, error) {
	u, err := url.Parse(callback)
	if err != nil {
		return "", fmt.Errorf("%w: callback %q: %v", ErrBadResponse, callback, err)
	}
	q := u.Query()
	q.Set("amount", strconv.FormatInt(amountMsat, 10))
	if comment != "" {
		q.Set("comment", comment)
	}
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return "", err
	}

	if reason, isErr := serviceError(body); isErr {
		return "", fmt.Errorf("%w: %s", ErrServiceError, reason)
	}

	var resp invoiceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if resp.PR == "" {
		return "", fmt.Errorf("%w: response has no invoice", ErrBadResponse)
	}
	return resp.PR, nil
}

// get issues a GET and returns the size-limited body.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTTP, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrHTTP, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned status %d", ErrHTTP, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrHTTP, err)
	}
	return body, nil
}

// serviceError reports whether body is an LNURL error envelope.
func serviceError(body []byte) (string, bool) {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", false
	}
	if env.Status != "ERROR" {
		return "", false
	}
	reason := env.Reason
	if reason == "" {
		reason = "unspecified"
	}
	return reason, true
}

// plaintextEntry extracts the text/plain entry from the metadata JSON
// array. A missing or malformed entry is not an error; display text is
// best effort.
func plaintextEntry(metadata string) string {
	if metadata == "" {
		return ""
	}
	var entries [][2]string
	if err := json.Unmarshal([]byte(metadata), &entries); err != nil {
		return ""
	}
	for _, e := range entries {
		if e[0] == "text/plain" {
			return e[1]
		}
	}
	return ""
}
