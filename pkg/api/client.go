package api

// CRM API CLIENT

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
	maxRetry   time.Duration
}

type OrderRequest struct {
	ExternalID    string   `json:"external_id"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email,omitempty"`
	GarmentType   string   `json:"garment_type"`
	Description   string   `json:"description,omitempty"`
	Deadline      string   `json:"deadline,omitempty"`
	EstimateTotal *int64   `json:"estimate_total,omitempty"`
	Services      []string `json:"services,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:   logger,
		maxRetry: 30 * time.Second,
	}
}

// CreateOrder posts a lead to the CRM. 5xx responses and transport errors are
// retried with exponential backoff; 4xx are not.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.maxRetry

	return backoff.RetryNotify(
		func() error {
			return c.postOrder(ctx, body)
		},
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			c.logger.Warn("CRM request failed, retrying...",
				zap.String("external_id", req.ExternalID),
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
}

func (c *Client) postOrder(ctx context.Context, body []byte) error {
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/api/orders", c.baseURL),
		bytes.NewReader(body),
	)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode >= 500:
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	default:
		return backoff.Permanent(fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}
}
