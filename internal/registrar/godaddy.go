package registrar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jonesrussell/domain-scout/internal/httpclient"
)

// priceMicroUnits is the scale factor of the GoDaddy price field.
// The API reports prices in micro-units of USD.
const priceMicroUnits = 1_000_000

// maxErrorBodyBytes bounds how much of an error response body is read.
const maxErrorBodyBytes = 2048

// GoDaddy is a registrar adapter for the GoDaddy availability API.
type GoDaddy struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// GoDaddyOption customizes a GoDaddy adapter.
type GoDaddyOption func(*GoDaddy)

// WithHTTPClient overrides the underlying HTTP client. Used in tests.
func WithHTTPClient(client *http.Client) GoDaddyOption {
	return func(g *GoDaddy) {
		g.client = client
	}
}

// NewGoDaddy creates a GoDaddy adapter. Per-call timeouts come from the
// caller's context, so the underlying client carries no timeout of its own.
func NewGoDaddy(baseURL, apiKey, apiSecret string, opts ...GoDaddyOption) *GoDaddy {
	g := &GoDaddy{
		baseURL:   baseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    httpclient.New(&httpclient.Config{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name identifies the adapter in logs and metrics.
func (g *GoDaddy) Name() string {
	return "godaddy"
}

// availableResponse is the JSON shape of the GoDaddy availability endpoint.
type availableResponse struct {
	Available  bool    `json:"available"`
	Price      float64 `json:"price"`
	Definitive bool    `json:"definitive"`
}

// Check looks up a single domain against the GoDaddy availability endpoint.
func (g *GoDaddy) Check(ctx context.Context, domain string) (Availability, error) {
	if g.apiKey == "" || g.apiSecret == "" {
		return Availability{}, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/v1/domains/available?domain=%s",
		g.baseURL, url.QueryEscape(domain))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return Availability{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("sso-key %s:%s", g.apiKey, g.apiSecret))
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Availability{}, fmt.Errorf("call registrar: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return Availability{}, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return Availability{}, fmt.Errorf("registrar returned status %d: %s",
			resp.StatusCode, string(body))
	}

	var parsed availableResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Availability{}, fmt.Errorf("decode registrar response: %w", err)
	}

	result := Availability{Available: parsed.Available}
	if parsed.Price > 0 {
		result.Price = parsed.Price / priceMicroUnits
		result.HasPrice = true
	}

	return result, nil
}
