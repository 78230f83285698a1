package uploader_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"presskit/internal/assetcheck"
	"presskit/internal/logging"
	"presskit/internal/release"
	"presskit/internal/storage"
	"presskit/internal/testsupport"
	"presskit/internal/uploader"
)

// fakeStorage resolves every upload unless the filename is registered as
// failing. It consumes the request body so progress callbacks fire.
type fakeStorage struct {
	mu    sync.Mutex
	calls int
	fail  map[string]error
}

func (f *fakeStorage) PutAsset(ctx context.Context, req storage.PutRequest) (storage.AssetLocation, error) {
	f.mu.Lock()
	f.calls++
	failErr := f.fail[req.Filename]
	f.mu.Unlock()

	if _, err := io.Copy(io.Discard, req.Body); err != nil {
		return storage.AssetLocation{}, err
	}
	if failErr != nil {
		return storage.AssetLocation{}, failErr
	}
	if err := ctx.Err(); err != nil {
		return storage.AssetLocation{}, err
	}
	return storage.AssetLocation{
		URL: "https://cdn.example/" + req.Filename,
		ID:  "remote-" + req.Filename,
	}, nil
}

func (f *fakeStorage) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type tempChecker struct{}

func (tempChecker) CheckAudio(path string) (assetcheck.AudioInfo, error) {
	return assetcheck.AudioInfo{Format: "wav", MIMEType: "audio/x-wav", SizeBytes: 4096, DurationSeconds: 60}, nil
}

type tempImage struct{}

func (tempImage) CheckImage(path string) (assetcheck.ImageInfo, error) {
	return assetcheck.ImageInfo{Format: "png", MIMEType: "image/png", SizeBytes: 2048, Width: 3000, Height: 3000}, nil
}

// newDraftWithFiles builds a draft whose assets point at real temp files so
// workers can open them.
func newDraftWithFiles(t *testing.T, trackCount int) *release.Draft {
	t.Helper()

	dir := t.TempDir()
	draft := release.New(release.TypeAlbum)

	cover := filepath.Join(dir, "cover.png")
	testsupport.WriteFile(t, cover, 2048)
	if err := draft.SetCoverArt(tempImage{}, cover); err != nil {
		t.Fatalf("SetCoverArt failed: %v", err)
	}

	paths := make([]string, 0, trackCount)
	for i := 1; i <= trackCount; i++ {
		path := filepath.Join(dir, fmt.Sprintf("track%d.wav", i))
		testsupport.WriteFile(t, path, 4096)
		paths = append(paths, path)
	}
	result := draft.AddTracks(tempChecker{}, paths...)
	if len(result.Added) != trackCount {
		t.Fatalf("expected %d tracks, got %d", trackCount, len(result.Added))
	}
	return draft
}

func TestUploadResolvesAllAssets(t *testing.T) {
	draft := newDraftWithFiles(t, 3)
	store := &fakeStorage{}
	orchestrator := uploader.New(store, nil, 2, logging.NewNop())

	var lastProgress uploader.Progress
	var progressMu sync.Mutex
	err := orchestrator.Upload(context.Background(), draft, func(p uploader.Progress) {
		progressMu.Lock()
		lastProgress = p
		progressMu.Unlock()
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if !draft.AllAssetsResolved() {
		t.Fatal("expected every asset resolved")
	}
	if store.callCount() != 4 {
		t.Fatalf("expected 4 uploads (cover + 3 tracks), got %d", store.callCount())
	}
	if lastProgress.Completed != 4 || lastProgress.Failed != 0 {
		t.Fatalf("unexpected final progress: %+v", lastProgress)
	}
	if lastProgress.Percent < 99.9 {
		t.Fatalf("expected 100%% progress, got %f", lastProgress.Percent)
	}
}

func TestUploadFailureDoesNotStopSiblings(t *testing.T) {
	draft := newDraftWithFiles(t, 3)
	store := &fakeStorage{fail: map[string]error{
		"track2.wav": errors.New("connection reset"),
	}}
	orchestrator := uploader.New(store, nil, 2, logging.NewNop())

	err := orchestrator.Upload(context.Background(), draft, nil)
	var uploadErr *uploader.UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if len(uploadErr.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(uploadErr.Failures))
	}
	if uploadErr.Failures[0].Name != "track2.wav" {
		t.Fatalf("unexpected failed asset: %s", uploadErr.Failures[0].Name)
	}

	if draft.AllAssetsResolved() {
		t.Fatal("the failed asset must stay pending")
	}
	pending := draft.PendingAssets()
	if len(pending) != 1 {
		t.Fatalf("expected exactly 1 pending asset, got %d", len(pending))
	}
	if pending[0].LastError == "" {
		t.Fatal("expected the failure to be recorded on the asset")
	}
}

func TestUploadRetrySkipsResolvedAssets(t *testing.T) {
	draft := newDraftWithFiles(t, 2)
	store := &fakeStorage{fail: map[string]error{
		"track1.wav": errors.New("transient fault"),
	}}
	orchestrator := uploader.New(store, nil, 2, logging.NewNop())

	if err := orchestrator.Upload(context.Background(), draft, nil); err == nil {
		t.Fatal("expected first pass to fail")
	}
	firstPassCalls := store.callCount()
	if firstPassCalls != 3 {
		t.Fatalf("expected 3 uploads in first pass, got %d", firstPassCalls)
	}

	store.mu.Lock()
	store.fail = nil
	store.mu.Unlock()

	if err := orchestrator.Upload(context.Background(), draft, nil); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if got := store.callCount() - firstPassCalls; got != 1 {
		t.Fatalf("retry must upload only the pending asset, got %d calls", got)
	}
	if !draft.AllAssetsResolved() {
		t.Fatal("expected every asset resolved after retry")
	}
}

func TestUploadFullyResolvedDraftIsNoop(t *testing.T) {
	draft := newDraftWithFiles(t, 2)
	for _, asset := range draft.PendingAssets() {
		asset.Resolve("https://cdn.example/x", "id-"+asset.ID)
	}

	store := &fakeStorage{}
	orchestrator := uploader.New(store, nil, 4, logging.NewNop())
	if err := orchestrator.Upload(context.Background(), draft, nil); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if store.callCount() != 0 {
		t.Fatalf("expected zero uploads, got %d", store.callCount())
	}
}

func TestUploadProgressAggregatesBytes(t *testing.T) {
	draft := newDraftWithFiles(t, 2)
	store := &fakeStorage{}
	orchestrator := uploader.New(store, nil, 1, logging.NewNop())

	var mu sync.Mutex
	var events []uploader.Progress
	err := orchestrator.Upload(context.Background(), draft, func(p uploader.Progress) {
		mu.Lock()
		events = append(events, p)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected progress events")
	}

	var wantTotal int64
	for _, asset := range draft.Assets() {
		wantTotal += asset.SizeBytes
	}
	final := events[len(events)-1]
	if final.BytesTotal != wantTotal {
		t.Fatalf("expected total %d bytes, got %d", wantTotal, final.BytesTotal)
	}
	if final.BytesSent != wantTotal {
		t.Fatalf("expected all bytes reported sent, got %d of %d", final.BytesSent, wantTotal)
	}
	for i := 1; i < len(events); i++ {
		if events[i].BytesSent < events[i-1].BytesSent {
			t.Fatalf("aggregate bytes went backwards at event %d", i)
		}
	}
}

func TestUploadCancellationPreservesPartialResults(t *testing.T) {
	draft := newDraftWithFiles(t, 4)
	ctx, cancel := context.WithCancel(context.Background())

	var done atomic.Int32
	store := &cancellingStorage{cancel: cancel, done: &done}
	orchestrator := uploader.New(store, nil, 1, logging.NewNop())

	err := orchestrator.Upload(ctx, draft, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	resolved := 0
	for _, asset := range draft.Assets() {
		if asset.Resolved() {
			resolved++
		}
	}
	if resolved == 0 {
		t.Fatal("expected the first asset to stay resolved")
	}
	if resolved == len(draft.Assets()) {
		t.Fatal("expected cancellation to leave some assets pending")
	}
}

// recordingNotifier captures upload notifications and signals delivery so
// tests can wait for the fire-and-forget goroutine.
type recordingNotifier struct {
	mu        sync.Mutex
	completed []string
	failed    []int
	done      chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 4)}
}

func (n *recordingNotifier) NotifyUploadComplete(_ context.Context, title string) error {
	n.mu.Lock()
	n.completed = append(n.completed, title)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

func (n *recordingNotifier) NotifyUploadFailed(_ context.Context, title string, failed int) error {
	n.mu.Lock()
	n.failed = append(n.failed, failed)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

func (n *recordingNotifier) NotifySubmissionAccepted(context.Context, string, string) error {
	return nil
}
func (n *recordingNotifier) NotifySubmissionFailed(context.Context, string, error) error { return nil }
func (n *recordingNotifier) TestNotification(context.Context) error                      { return nil }

func (n *recordingNotifier) wait(t *testing.T) {
	t.Helper()
	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never delivered")
	}
}

func TestUploadNotifiesCompletion(t *testing.T) {
	draft := newDraftWithFiles(t, 2)
	draft.Title = "Night Drive"
	notifier := newRecordingNotifier()
	orchestrator := uploader.New(&fakeStorage{}, notifier, 2, logging.NewNop())

	if err := orchestrator.Upload(context.Background(), draft, nil); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	notifier.wait(t)
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.completed) != 1 || notifier.completed[0] != "Night Drive" {
		t.Fatalf("expected completion notification for the release, got %v", notifier.completed)
	}
	if len(notifier.failed) != 0 {
		t.Fatalf("unexpected failure notification: %v", notifier.failed)
	}
}

func TestUploadNotifiesFailureCount(t *testing.T) {
	draft := newDraftWithFiles(t, 3)
	store := &fakeStorage{fail: map[string]error{
		"track1.wav": errors.New("connection reset"),
		"track3.wav": errors.New("connection reset"),
	}}
	notifier := newRecordingNotifier()
	orchestrator := uploader.New(store, notifier, 2, logging.NewNop())

	err := orchestrator.Upload(context.Background(), draft, nil)
	var uploadErr *uploader.UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}

	notifier.wait(t)
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.failed) != 1 || notifier.failed[0] != 2 {
		t.Fatalf("expected failure notification counting 2 assets, got %v", notifier.failed)
	}
	if len(notifier.completed) != 0 {
		t.Fatalf("unexpected completion notification: %v", notifier.completed)
	}
}

// cancellingStorage succeeds once, then cancels the upload context.
type cancellingStorage struct {
	cancel context.CancelFunc
	done   *atomic.Int32
}

func (c *cancellingStorage) PutAsset(ctx context.Context, req storage.PutRequest) (storage.AssetLocation, error) {
	if _, err := io.Copy(io.Discard, req.Body); err != nil {
		return storage.AssetLocation{}, err
	}
	if c.done.Add(1) == 1 {
		defer c.cancel()
		return storage.AssetLocation{URL: "https://cdn.example/" + req.Filename, ID: "remote-" + req.Filename}, nil
	}
	return storage.AssetLocation{}, ctx.Err()
}
