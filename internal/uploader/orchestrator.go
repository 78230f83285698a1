package uploader

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"presskit/internal/config"
	"presskit/internal/logging"
	"presskit/internal/notifications"
	"presskit/internal/release"
	"presskit/internal/services"
	"presskit/internal/storage"
)

// Orchestrator uploads a draft's pending assets through a bounded worker
// pool. The zero value is not usable; construct with New.
type Orchestrator struct {
	client      storage.Client
	notifier    notifications.Service
	concurrency int
	logger      *slog.Logger
}

// New builds an orchestrator. Concurrency values below 1 are raised to 1. A
// nil notifier disables push notifications.
func New(client storage.Client, notifier notifications.Service, concurrency int, logger *slog.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		client:      client,
		notifier:    notifier,
		concurrency: concurrency,
		logger:      logging.NewComponentLogger(logger, "uploader"),
	}
}

// NewFromConfig builds an orchestrator using the configured upload
// concurrency and notification settings.
func NewFromConfig(cfg *config.Config, client storage.Client, logger *slog.Logger) *Orchestrator {
	return New(client, notifications.NewService(cfg), cfg.Uploads.Concurrency, logger)
}

type job struct {
	index int
	asset *release.Asset
}

// Upload pushes every pending asset on the draft and blocks until all jobs
// settle. Assets that were already resolved are skipped entirely, so calling
// Upload on a fully resolved draft performs no network activity and returns
// nil immediately.
//
// Individual failures do not cancel sibling jobs. When any job fails the
// returned error is an *UploadError listing each failed asset; successful
// siblings stay resolved. Cancelling the context stops queued jobs from
// starting and aborts in-flight transfers, preserving whatever resolved
// before the cancellation.
func (o *Orchestrator) Upload(ctx context.Context, draft *release.Draft, onProgress ProgressFunc) error {
	ctx = services.WithDraftID(ctx, draft.ID)
	logger := logging.WithContext(ctx, o.logger)

	pending := draft.PendingAssets()
	if len(pending) == 0 {
		logger.Debug("no pending assets")
		return nil
	}

	totals := make([]int64, len(pending))
	for i, asset := range pending {
		totals[i] = asset.SizeBytes
	}
	progress := newTracker(totals, onProgress)

	logger.Info("starting upload",
		logging.Int("assets", len(pending)),
		logging.Int64("total_bytes", progress.total),
	)

	jobs := make(chan job)
	workers := o.concurrency
	if workers > len(pending) {
		workers = len(pending)
	}

	var (
		wg         sync.WaitGroup
		failuresMu sync.Mutex
		failures   []FailedAsset
	)
	recordFailure := func(index int, asset *release.Asset, err error) {
		asset.MarkFailed(err)
		progress.fail(index)
		failuresMu.Lock()
		failures = append(failures, FailedAsset{
			AssetID: asset.ID,
			Kind:    asset.Kind,
			Name:    asset.DisplayName(),
			Err:     err,
		})
		failuresMu.Unlock()
		logger.Warn("asset upload failed",
			logging.String("asset", asset.DisplayName()),
			logging.Error(err),
		)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if err := o.runJob(ctx, j, progress, logger); err != nil {
					recordFailure(j.index, j.asset, err)
				} else {
					progress.complete(j.index)
				}
			}
		}()
	}

feed:
	for i, asset := range pending {
		select {
		case jobs <- job{index: i, asset: asset}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logger.Info("upload cancelled", logging.Int("completed", progress.completed))
		return err
	}
	if len(failures) > 0 {
		sort.Slice(failures, func(a, b int) bool { return failures[a].Name < failures[b].Name })
		logger.Error("upload finished with failures",
			logging.Int("failed", len(failures)),
			logging.String(logging.FieldErrorHint, "re-run upload to retry the failed assets"),
		)
		o.notifyAsync(logger, func(ctx context.Context) error {
			return o.notifier.NotifyUploadFailed(ctx, draft.DisplayTitle(), len(failures))
		})
		return &UploadError{Failures: failures}
	}

	logger.Info("upload complete", logging.Int("assets", len(pending)))
	o.notifyAsync(logger, func(ctx context.Context) error {
		return o.notifier.NotifyUploadComplete(ctx, draft.DisplayTitle())
	})
	return nil
}

// notifyAsync delivers a notification without blocking the upload path. The
// detached context keeps delivery alive past the caller's cancellation.
func (o *Orchestrator) notifyAsync(logger *slog.Logger, fn func(context.Context) error) {
	if o.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Warn("notification delivery failed", logging.Error(err))
		}
	}()
}

func (o *Orchestrator) runJob(ctx context.Context, j job, progress *tracker, logger *slog.Logger) error {
	file, err := os.Open(j.asset.LocalPath)
	if err != nil {
		return services.Wrap(services.ErrValidation,
			"uploader", "open asset", "asset file is no longer readable", err)
	}
	defer file.Close()

	location, err := o.client.PutAsset(ctx, storage.PutRequest{
		Body:      file,
		SizeBytes: j.asset.SizeBytes,
		Filename:  j.asset.DisplayName(),
		MIMEType:  j.asset.MIMEType,
		Progress: func(sentBytes int64) {
			progress.update(j.index, sentBytes)
		},
	})
	if err != nil {
		return err
	}

	j.asset.Resolve(location.URL, location.ID)
	logger.Debug("asset resolved",
		logging.String("asset", j.asset.DisplayName()),
		logging.String("remote_id", location.ID),
	)
	return nil
}
