package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"shiftlink/internal/pkg/backoff"
	"shiftlink/internal/pkg/config"
	"shiftlink/internal/pkg/errs"
	"shiftlink/internal/usecase/commands"

	"github.com/google/uuid"
)

// Client talks to the external payment collaborator over HTTP. Declines are
// terminal; 5xx and transport failures are retried with backoff before being
// surfaced as unavailability.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	retry   backoff.Policy
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		retry:   backoff.DefaultPolicy(),
	}
}

type authorizeRequest struct {
	ShiftID        uuid.UUID `json:"shift_id"`
	VenueID        uuid.UUID `json:"venue_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	AmountCents    int64     `json:"amount_cents"`
}

type authorizeResponse struct {
	AuthorizationRef string `json:"authorization_ref"`
}

func (c *Client) Authorize(ctx context.Context, req commands.AuthorizationRequest) (commands.AuthorizationRef, error) {
	body := authorizeRequest{
		ShiftID:        req.ShiftID,
		VenueID:        req.VenueID,
		ProfessionalID: req.ProfessionalID,
		AmountCents:    req.AmountCents,
	}

	var resp authorizeResponse
	err := c.retry.Retry(ctx, func(ctx context.Context) error {
		return c.post(ctx, "/v1/authorizations", body, &resp)
	}, isRetryable)
	if err != nil {
		return "", err
	}
	if resp.AuthorizationRef == "" {
		return "", errs.Mark(errs.New("empty authorization reference"), commands.ErrGatewayUnavailable)
	}

	return commands.AuthorizationRef(resp.AuthorizationRef), nil
}

type captureRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

func (c *Client) Capture(ctx context.Context, ref commands.AuthorizationRef, amountCents int64) error {
	path := "/v1/authorizations/" + string(ref) + "/capture"
	return c.retry.Retry(ctx, func(ctx context.Context) error {
		return c.post(ctx, path, captureRequest{AmountCents: amountCents}, nil)
	}, isRetryable)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode payment request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build payment request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Mark(err, commands.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return commands.ErrCardDeclined
	case resp.StatusCode >= 500:
		return errs.Mark(
			fmt.Errorf("payment collaborator returned %d", resp.StatusCode),
			commands.ErrGatewayUnavailable,
		)
	case resp.StatusCode >= 400:
		return errs.New(fmt.Sprintf("payment request rejected with %d", resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errs.Mark(err, commands.ErrGatewayUnavailable)
		}
	}
	return nil
}

func isRetryable(err error) bool {
	return errors.Is(err, commands.ErrGatewayUnavailable)
}
