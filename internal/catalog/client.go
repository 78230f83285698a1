package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"presskit/internal/config"
	"presskit/internal/logging"
	"presskit/internal/services"
)

const userAgent = "presskit/0.1.0"

// RejectionError carries server-side validation failures keyed by field.
type RejectionError struct {
	FieldErrors map[string]string
}

func (e *RejectionError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "release rejected by catalog"
	}
	parts := make([]string, 0, len(e.FieldErrors))
	for field, reason := range e.FieldErrors {
		parts = append(parts, field+": "+reason)
	}
	return "release rejected by catalog: " + strings.Join(parts, "; ")
}

// Client is the persistence contract consumed by the submission coordinator.
type Client interface {
	CreateRelease(ctx context.Context, token string, payload ReleasePayload) (string, error)
}

// HTTPClient submits releases to the configured catalog endpoint.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPClient builds a catalog client from configuration.
func NewHTTPClient(cfg *config.Config, logger *slog.Logger) *HTTPClient {
	timeout := time.Duration(cfg.Catalog.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: cfg.Catalog.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logging.NewComponentLogger(logger, "catalog"),
	}
}

type createResponse struct {
	ReleaseID string `json:"release_id"`
}

type rejectionResponse struct {
	Errors map[string]string `json:"errors"`
}

// CreateRelease performs the single creation call against the persistence
// API and returns the new release identifier.
func (c *HTTPClient) CreateRelease(ctx context.Context, token string, payload ReleasePayload) (string, error) {
	if strings.TrimSpace(c.baseURL) == "" {
		return "", services.Wrap(services.ErrConfiguration,
			"catalog", "create release", "catalog.base_url is not configured", nil)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrValidation,
			"catalog", "encode payload", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/releases", bytes.NewReader(body))
	if err != nil {
		return "", services.Wrap(services.ErrTransient,
			"catalog", "build request", "", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient,
			"catalog", "create release", "", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", services.Wrap(services.ErrUnauthenticated,
			"catalog", "create release", fmt.Sprintf("catalog returned %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", services.Wrap(services.ErrRateLimited,
			"catalog", "create release", "catalog rate limit exceeded", nil)
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		return "", c.decodeRejection(resp.Body)
	case resp.StatusCode >= 300:
		return "", services.Wrap(services.ErrTransient,
			"catalog", "create release", fmt.Sprintf("catalog returned %d: %s", resp.StatusCode, readErrorBody(resp.Body)), nil)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", services.Wrap(services.ErrTransient,
			"catalog", "decode response", "", err)
	}
	if created.ReleaseID == "" {
		return "", services.Wrap(services.ErrTransient,
			"catalog", "decode response", "catalog response missing release_id", nil)
	}

	c.logger.Info("release created", logging.String("release_id", created.ReleaseID))
	return created.ReleaseID, nil
}

func (c *HTTPClient) decodeRejection(body io.Reader) error {
	var rejection rejectionResponse
	raw, _ := io.ReadAll(io.LimitReader(body, 64*1024))
	if err := json.Unmarshal(raw, &rejection); err != nil || len(rejection.Errors) == 0 {
		return fmt.Errorf("%w: %w", services.ErrRejected,
			&RejectionError{FieldErrors: map[string]string{"_": strings.TrimSpace(string(raw))}})
	}
	return fmt.Errorf("%w: %w", services.ErrRejected, &RejectionError{FieldErrors: rejection.Errors})
}

func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 2048))
	return strings.TrimSpace(string(body))
}
