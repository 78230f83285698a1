package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"presskit/internal/config"
	"presskit/internal/logging"
	"presskit/internal/services"
)

const userAgent = "presskit/0.1.0"

// AssetLocation is the durable remote reference returned for an uploaded
// asset.
type AssetLocation struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// PutRequest describes one asset upload.
type PutRequest struct {
	Body      io.Reader
	SizeBytes int64
	Filename  string
	Folder    string
	MIMEType  string
	// Progress receives the cumulative byte count as the body is consumed.
	Progress func(sentBytes int64)
}

// Client is the upload contract consumed by the orchestrator.
type Client interface {
	PutAsset(ctx context.Context, req PutRequest) (AssetLocation, error)
}

// HTTPClient uploads assets to the configured storage endpoint.
type HTTPClient struct {
	baseURL string
	token   string
	folder  string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPClient builds a storage client from configuration.
func NewHTTPClient(cfg *config.Config, logger *slog.Logger) *HTTPClient {
	timeout := time.Duration(cfg.Storage.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: cfg.Storage.BaseURL,
		token:   cfg.Storage.Token,
		folder:  cfg.Storage.Folder,
		client:  &http.Client{Timeout: timeout},
		logger:  logging.NewComponentLogger(logger, "storage"),
	}
}

// PutAsset streams the asset to the storage API and returns its remote
// reference.
func (c *HTTPClient) PutAsset(ctx context.Context, req PutRequest) (AssetLocation, error) {
	if strings.TrimSpace(c.baseURL) == "" {
		return AssetLocation{}, services.Wrap(services.ErrConfiguration,
			"storage", "put asset", "storage.base_url is not configured", nil)
	}

	folder := req.Folder
	if folder == "" {
		folder = c.folder
	}

	body := req.Body
	if req.Progress != nil {
		body = &countingReader{reader: req.Body, report: req.Progress}
	}

	endpoint := fmt.Sprintf("%s/v1/assets?folder=%s", c.baseURL, url.QueryEscape(folder))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return AssetLocation{}, services.Wrap(services.ErrTransient,
			"storage", "build request", "", err)
	}
	httpReq.ContentLength = req.SizeBytes
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Content-Type", req.MIMEType)
	if req.Filename != "" {
		httpReq.Header.Set("X-Asset-Filename", req.Filename)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return AssetLocation{}, services.Wrap(services.ErrTransient,
			"storage", "put asset", "", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return AssetLocation{}, services.Wrap(services.ErrUnauthenticated,
			"storage", "put asset", fmt.Sprintf("storage returned %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return AssetLocation{}, services.Wrap(services.ErrRateLimited,
			"storage", "put asset", "storage rate limit exceeded", nil)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return AssetLocation{}, services.Wrap(services.ErrRejected,
			"storage", "put asset", fmt.Sprintf("storage rejected upload: %s", readErrorBody(resp.Body)), nil)
	case resp.StatusCode >= 300:
		return AssetLocation{}, services.Wrap(services.ErrTransient,
			"storage", "put asset", fmt.Sprintf("storage returned %d: %s", resp.StatusCode, readErrorBody(resp.Body)), nil)
	}

	var location AssetLocation
	if err := json.NewDecoder(resp.Body).Decode(&location); err != nil {
		return AssetLocation{}, services.Wrap(services.ErrTransient,
			"storage", "decode response", "", err)
	}
	if location.ID == "" || location.URL == "" {
		return AssetLocation{}, services.Wrap(services.ErrTransient,
			"storage", "decode response", "storage response missing url or id", nil)
	}

	c.logger.Debug("asset uploaded",
		logging.String("remote_id", location.ID),
		logging.Int64("size_bytes", req.SizeBytes),
	)
	return location, nil
}

func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 2048))
	return strings.TrimSpace(string(body))
}

// countingReader reports the cumulative number of bytes consumed from the
// wrapped reader.
type countingReader struct {
	reader io.Reader
	sent   int64
	report func(int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	if n > 0 {
		c.sent += int64(n)
		c.report(c.sent)
	}
	return n, err
}
