package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"presskit/internal/config"
)

const userAgent = "presskit/0.1.0"

// Service defines the notification surface exposed to the submission flow.
type Service interface {
	NotifyUploadComplete(ctx context.Context, releaseTitle string) error
	NotifyUploadFailed(ctx context.Context, releaseTitle string, failed int) error
	NotifySubmissionAccepted(ctx context.Context, releaseTitle, releaseID string) error
	NotifySubmissionFailed(ctx context.Context, releaseTitle string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyUploadComplete(ctx context.Context, releaseTitle string) error {
	releaseTitle = strings.TrimSpace(releaseTitle)
	data := payload{
		title:   "Presskit - Upload Complete",
		message: fmt.Sprintf("All assets uploaded: %s", releaseTitle),
		tags:    []string{"presskit", "upload", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyUploadFailed(ctx context.Context, releaseTitle string, failed int) error {
	releaseTitle = strings.TrimSpace(releaseTitle)
	data := payload{
		title:    "Presskit - Upload Failed",
		message:  fmt.Sprintf("%d asset(s) failed to upload for %s", failed, releaseTitle),
		tags:     []string{"presskit", "upload", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySubmissionAccepted(ctx context.Context, releaseTitle, releaseID string) error {
	releaseTitle = strings.TrimSpace(releaseTitle)
	data := payload{
		title:    "Presskit - Release Submitted",
		message:  fmt.Sprintf("Submitted for distribution: %s (%s)", releaseTitle, releaseID),
		tags:     []string{"presskit", "submission", "accepted"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySubmissionFailed(ctx context.Context, releaseTitle string, err error) error {
	releaseTitle = strings.TrimSpace(releaseTitle)
	reason := "unknown"
	if err != nil {
		reason = strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "Presskit - Submission Failed",
		message:  fmt.Sprintf("Submission failed for %s: %s", releaseTitle, reason),
		tags:     []string{"presskit", "submission", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Presskit - Test",
		message:  "Notification system test",
		tags:     []string{"presskit", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyUploadComplete(context.Context, string) error            { return nil }
func (noopService) NotifyUploadFailed(context.Context, string, int) error         { return nil }
func (noopService) NotifySubmissionAccepted(context.Context, string, string) error { return nil }
func (noopService) NotifySubmissionFailed(context.Context, string, error) error   { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
