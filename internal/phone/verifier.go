// Package phone wraps the SMS phone-verification provider.
package phone

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
)

// Verifier starts and checks phone number verifications. The provider keeps
// the code; the core only holds the opaque session handle.
type Verifier interface {
	StartVerification(ctx context.Context, phone string) (sessionID string, err error)
	CheckCode(ctx context.Context, sessionID, code string) error
}

// Client talks to a 2Factor-style SMS verification API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

var _ Verifier = (*Client)(nil)

// NewClient builds a Verifier against the given provider base URL.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type providerResponse struct {
	Status  string `json:"Status"`
	Details string `json:"Details"`
}

// StartVerification triggers an SMS with an auto-generated code and returns
// the provider session ID.
func (c *Client) StartVerification(ctx context.Context, phone string) (string, error) {
	url := fmt.Sprintf("%s/%s/SMS/%s/AUTOGEN", c.baseURL, c.apiKey, phone)
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	if resp.Status != "Success" {
		return "", apperr.WithMessage(apperr.ErrUpstreamFailure, "phone verification: send failed")
	}
	return resp.Details, nil
}

// CheckCode verifies the user-entered code against the provider session.
func (c *Client) CheckCode(ctx context.Context, sessionID, code string) error {
	url := fmt.Sprintf("%s/%s/SMS/VERIFY/%s/%s", c.baseURL, c.apiKey, sessionID, code)
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if resp.Status != "Success" {
		return apperr.WithMessage(apperr.ErrInvalidInput, "invalid OTP")
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) (*providerResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build verification request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.WithMessage(apperr.ErrUpstreamFailure, fmt.Sprintf("phone verification: %v", err))
	}
	defer resp.Body.Close()

	var parsed providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperr.WithMessage(apperr.ErrUpstreamFailure, fmt.Sprintf("phone verification: decode response: %v", err))
	}
	return &parsed, nil
}
