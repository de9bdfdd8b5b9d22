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

	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/internal/log"
	"github.com/lil-gargs/portal/ports"
)

const defaultTimeout = 15 * time.Second

// Client talks to the verification backend over HTTP. It performs no retries:
// transient failures propagate to the caller classified as core.ErrNetwork.
type Client struct {
	base    *http.Client
	baseURL string
}

// New returns a SessionAPI client for the given base URL. A trailing slash on
// the base URL is tolerated and trimmed.
func New(baseURL string, httpClient *http.Client) ports.SessionAPI {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		base:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type sessionEnvelope struct {
	Success bool                      `json:"success"`
	Session *core.VerificationSession `json:"session"`
}

type verifyRequest struct {
	Token     string `json:"token"`
	Signature string `json:"signature"`
	Username  string `json:"username,omitempty"`
}

type verifyEnvelope struct {
	Verification *core.VerificationResult `json:"verification"`
	Error        string                   `json:"error,omitempty"`
}

// FetchSession resolves a session by token.
func (c *Client) FetchSession(ctx context.Context, token string) (*core.VerificationSession, error) {
	url := fmt.Sprintf("%s/api/verification/session/%s", c.baseURL, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	defer closeBody(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w: %s", core.ErrSessionNotFound, serverMessage(body, "session not found or expired"))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d: %s", core.ErrNetwork, resp.StatusCode, serverMessage(body, "unexpected response"))
	}

	var envelope sessionEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed session payload: %v", core.ErrNetwork, err)
	}
	if !envelope.Success || envelope.Session == nil {
		return nil, fmt.Errorf("%w: backend reported failure", core.ErrSessionNotFound)
	}

	return envelope.Session, nil
}

// SubmitSignature posts the base58 signature for verification.
func (c *Client) SubmitSignature(ctx context.Context, token, signatureBase58, username string) (*core.VerificationResult, error) {
	url := c.baseURL + "/api/verification/session/verify"

	payload, err := json.Marshal(verifyRequest{Token: token, Signature: signatureBase58, Username: username})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	defer closeBody(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}

	switch {
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: %s", core.ErrValidation, serverMessage(body, "signature rejected"))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d: %s", core.ErrNetwork, resp.StatusCode, serverMessage(body, "unexpected response"))
	}

	var envelope verifyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed verification payload: %v", core.ErrNetwork, err)
	}
	if envelope.Verification == nil {
		return nil, fmt.Errorf("%w: verification result missing", core.ErrNetwork)
	}

	return envelope.Verification, nil
}

// serverMessage extracts the backend's error message when one is present.
func serverMessage(body []byte, fallback string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fallback
}

func closeBody(ctx context.Context, body io.ReadCloser) {
	if err := body.Close(); err != nil {
		log.Error(ctx, "can not close response body", err)
	}
}
