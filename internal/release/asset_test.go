package release_test

import (
	"errors"
	"sync"
	"testing"

	"presskit/internal/release"
)

func newPendingAsset(t *testing.T) *release.Asset {
	t.Helper()

	draft := release.New(release.TypeSingle)
	draft.AddTracks(&fakeAudioChecker{}, "/music/one.wav")
	if len(draft.Tracks) != 1 || draft.Tracks[0].Audio == nil {
		t.Fatal("expected a track with an audio asset")
	}
	return draft.Tracks[0].Audio
}

func TestAssetResolutionIsMonotonic(t *testing.T) {
	asset := newPendingAsset(t)
	if !asset.Pending() {
		t.Fatal("new asset must start pending")
	}

	asset.Resolve("https://cdn.example/a", "asset-1")
	if !asset.Resolved() {
		t.Fatal("asset should be resolved")
	}

	asset.MarkFailed(errors.New("late failure"))
	if !asset.Resolved() {
		t.Fatal("failure after resolution must be ignored")
	}
	url, id := asset.RemoteRef()
	if url != "https://cdn.example/a" || id != "asset-1" {
		t.Fatalf("remote ref changed: %s %s", url, id)
	}

	asset.Resolve("https://cdn.example/other", "asset-2")
	if _, id := asset.RemoteRef(); id != "asset-1" {
		t.Fatalf("second resolve must keep the first reference, got %s", id)
	}
}

func TestAssetFailureLeavesPending(t *testing.T) {
	asset := newPendingAsset(t)

	asset.MarkFailed(errors.New("connection reset"))
	if asset.Resolved() {
		t.Fatal("failed asset must stay pending")
	}
	if !asset.Pending() {
		t.Fatal("failed asset must remain eligible for retry")
	}
	if asset.LastError != "connection reset" {
		t.Fatalf("expected recorded error, got %q", asset.LastError)
	}

	asset.Resolve("https://cdn.example/a", "asset-1")
	if asset.LastError != "" {
		t.Fatalf("resolution must clear the recorded error, got %q", asset.LastError)
	}
}

func TestAssetConcurrentResolution(t *testing.T) {
	asset := newPendingAsset(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if n%2 == 0 {
				asset.Resolve("https://cdn.example/a", "asset-1")
			} else {
				asset.MarkFailed(errors.New("racing failure"))
			}
		}(i)
	}
	wg.Wait()

	if !asset.Resolved() {
		t.Fatal("asset should end resolved")
	}
	if _, id := asset.RemoteRef(); id != "asset-1" {
		t.Fatalf("unexpected remote id %s", id)
	}
}

func TestPendingAssetsOrdering(t *testing.T) {
	draft := release.New(release.TypeEP)
	if err := draft.SetCoverArt(&fakeImageChecker{}, "/art/cover.png"); err != nil {
		t.Fatalf("SetCoverArt failed: %v", err)
	}
	draft.AddTracks(&fakeAudioChecker{}, "/a.wav", "/b.wav")

	pending := draft.PendingAssets()
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending assets, got %d", len(pending))
	}
	if pending[0].Kind != release.AssetCoverArt {
		t.Fatal("cover art must come first")
	}

	pending[1].Resolve("https://cdn.example/a", "id-a")
	remaining := draft.PendingAssets()
	if len(remaining) != 2 {
		t.Fatalf("expected 2 pending after one resolution, got %d", len(remaining))
	}

	if draft.AllAssetsResolved() {
		t.Fatal("draft is not fully resolved yet")
	}
	for _, asset := range draft.PendingAssets() {
		asset.Resolve("https://cdn.example/x", "id-"+asset.ID)
	}
	if !draft.AllAssetsResolved() {
		t.Fatal("expected all assets resolved")
	}
}

func TestAllAssetsResolvedEmptyDraft(t *testing.T) {
	draft := release.New(release.TypeSingle)
	if draft.AllAssetsResolved() {
		t.Fatal("a draft with no assets must not count as resolved")
	}
}
