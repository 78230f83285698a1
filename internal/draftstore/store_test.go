package draftstore_test

import (
	"context"
	"testing"
	"time"

	"presskit/internal/assetcheck"
	"presskit/internal/draftstore"
	"presskit/internal/release"
	"presskit/internal/testsupport"
	"presskit/internal/wizard"
)

type stubAudio struct{}

func (stubAudio) CheckAudio(path string) (assetcheck.AudioInfo, error) {
	return assetcheck.AudioInfo{Format: "wav", MIMEType: "audio/x-wav", SizeBytes: 512, DurationSeconds: 95.5}, nil
}

func sampleRecord(t *testing.T) *draftstore.Record {
	t.Helper()

	draft := release.New(release.TypeEP)
	draft.Title = "Harbor Lights"
	draft.PrimaryArtist = "Gulf Current"
	draft.ReleaseDate = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	draft.SetGenres("Ambient")
	draft.AddTracks(stubAudio{}, "/music/one.wav", "/music/two.wav")
	return &draftstore.Record{
		Draft: draft,
		Stage: wizard.StageTracks,
		State: wizard.StateActive,
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := sampleRecord(t)
	rec.Draft.Tracks[0].Audio.Resolve("https://cdn.example/a", "remote-a")
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, rec.Draft.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected a stored record")
	}
	if fetched.Draft.Title != "Harbor Lights" {
		t.Fatalf("title not persisted: %q", fetched.Draft.Title)
	}
	if fetched.Stage != wizard.StageTracks || fetched.State != wizard.StateActive {
		t.Fatalf("wizard position not persisted: %s %s", fetched.Stage, fetched.State)
	}
	if len(fetched.Draft.Tracks) != 2 {
		t.Fatalf("tracks not persisted: %d", len(fetched.Draft.Tracks))
	}
	if !fetched.Draft.Tracks[0].Audio.Resolved() {
		t.Fatal("asset resolution not persisted")
	}
	if fetched.Draft.Tracks[1].Audio.Resolved() {
		t.Fatal("pending asset must stay pending after reload")
	}
}

func TestGetMissingDraftReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	rec, err := store.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil for missing draft, got %#v", rec)
	}
}

func TestSaveIsUpsert(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := sampleRecord(t)
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	rec.Draft.Title = "Harbor Lights (Deluxe)"
	rec.Stage = wizard.StageDistribution
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after upsert, got %d", len(records))
	}
	if records[0].Draft.Title != "Harbor Lights (Deluxe)" || records[0].Stage != wizard.StageDistribution {
		t.Fatalf("upsert did not replace fields: %+v", records[0])
	}
}

func TestListFiltersByState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	active := sampleRecord(t)
	cancelled := sampleRecord(t)
	cancelled.State = wizard.StateCancelled
	for _, rec := range []*draftstore.Record{active, cancelled} {
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	records, err := store.List(ctx, wizard.StateActive)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].Draft.ID != active.Draft.ID {
		t.Fatalf("unexpected filtered records: %d", len(records))
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats[wizard.StateActive] != 1 || stats[wizard.StateCancelled] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestMarkSubmitted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := sampleRecord(t)
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.MarkSubmitted(ctx, rec.Draft.ID, "rel-500"); err != nil {
		t.Fatalf("MarkSubmitted failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, rec.Draft.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.State != wizard.StateSubmitted {
		t.Fatalf("expected submitted state, got %s", fetched.State)
	}
	if fetched.ReleaseID != "rel-500" {
		t.Fatalf("expected release id, got %q", fetched.ReleaseID)
	}

	if err := store.MarkSubmitted(ctx, "missing", "rel-0"); err == nil {
		t.Fatal("expected MarkSubmitted on a missing draft to fail")
	}
}

func TestDelete(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := sampleRecord(t)
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := store.Delete(ctx, rec.Draft.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Fatal("expected a row to be removed")
	}
	removed, err = store.Delete(ctx, rec.Draft.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if removed {
		t.Fatal("expected no row on second delete")
	}
}

func TestOpenRefusesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	if _, err := draftstore.Open(cfg); err == nil {
		t.Fatal("expected second Open on the same data directory to fail")
	}
}
