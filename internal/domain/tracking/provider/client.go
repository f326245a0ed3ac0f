package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"bagtrack-server-go/internal/domain/tracking/aggregate"
	"bagtrack-server-go/internal/platform/config"
	"bagtrack-server-go/internal/platform/errors"
)

// Client talks to the external GPS-tracking provider. It exposes the two
// provider operations this system consumes: credential exchange and
// telemetry fetch. Both calls share one bounded-timeout HTTP client; no
// retries.
type Client struct {
	baseURL      string
	authPath     string
	locationPath string
	httpClient   *http.Client
}

func NewClient(cfg config.ProviderConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New(errors.KindConfig, "provider.new", "provider url is required")
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		authPath:     cfg.AuthPath,
		locationPath: cfg.LocationPath,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
	}, nil
}

type tokenRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Authenticate exchanges account credentials for a short-lived access
// token. A credential rejection returns an empty token with a nil error so
// the caller can tell bad credentials apart from provider faults; transport
// failures and unexpected statuses surface as provider-kind errors.
func (c *Client) Authenticate(ctx context.Context, account, password string) (string, error) {
	const op = "provider.authenticate"

	body, err := json.Marshal(tokenRequest{Account: account, Password: password})
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, op, "provider request failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.authPath, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, op, "provider request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, op, "provider request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Rejected credentials are not a fault; report an absent token.
		return "", nil
	case resp.StatusCode != http.StatusOK:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errors.Wrap(errors.KindProvider, op, "provider request failed",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", errors.Wrap(errors.KindProvider, op, "provider request failed", err)
	}

	return token.AccessToken, nil
}

// GetLocation retrieves the current location and battery level for a
// device. The token is used once for this call and never cached.
func (c *Client) GetLocation(ctx context.Context, token, imei string) (*aggregate.Telemetry, error) {
	const op = "provider.get_location"

	if token == "" {
		return nil, errors.New(errors.KindProvider, op, "access token required")
	}

	url := fmt.Sprintf("%s%s?imei=%s", c.baseURL, c.locationPath, imei)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, op, "provider request failed", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, op, "provider request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Wrap(errors.KindProvider, op, "provider request failed",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload))
	}

	var reading aggregate.Telemetry
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return nil, errors.Wrap(errors.KindProvider, op, "provider request failed", err)
	}
	if reading.IMEI == "" {
		reading.IMEI = imei
	}

	return &reading, nil
}
