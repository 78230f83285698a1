package wizard_test

import (
	"errors"
	"testing"
	"time"

	"presskit/internal/assetcheck"
	"presskit/internal/logging"
	"presskit/internal/release"
	"presskit/internal/wizard"
)

type acceptAllAudio struct{}

func (acceptAllAudio) CheckAudio(path string) (assetcheck.AudioInfo, error) {
	return assetcheck.AudioInfo{
		Format: "wav", MIMEType: "audio/x-wav", SizeBytes: 1024, DurationSeconds: 120,
	}, nil
}

type acceptAllImage struct{}

func (acceptAllImage) CheckImage(path string) (assetcheck.ImageInfo, error) {
	return assetcheck.ImageInfo{
		Format: "png", MIMEType: "image/png", SizeBytes: 2048, Width: 3000, Height: 3000,
	}, nil
}

func newWizard(t *testing.T) *wizard.Wizard {
	t.Helper()
	return wizard.New(release.New(release.TypeEP), logging.NewNop())
}

func fillBasics(t *testing.T, w *wizard.Wizard) {
	t.Helper()

	if err := w.Mutate(func(d *release.Draft) {
		d.Title = "Harbor Lights"
		d.PrimaryArtist = "Gulf Current"
		d.SetGenres("Ambient")
	}); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	if err := w.SetCoverArt(acceptAllImage{}, "/art/cover.png"); err != nil {
		t.Fatalf("SetCoverArt failed: %v", err)
	}
}

func fillThroughCredits(t *testing.T, w *wizard.Wizard) {
	t.Helper()

	fillBasics(t, w)
	if _, err := w.AddTracks(acceptAllAudio{}, "/music/one.wav", "/music/two.wav"); err != nil {
		t.Fatalf("AddTracks failed: %v", err)
	}
	if err := w.Mutate(func(d *release.Draft) {
		d.ReleaseDate = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
		d.ApplyLegalNameToAll("Jordan Smith")
	}); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
}

func TestAdvanceRefusedWithReasons(t *testing.T) {
	w := newWizard(t)

	err := w.Advance()
	var gateErr *wizard.GateError
	if !errors.As(err, &gateErr) {
		t.Fatalf("expected GateError, got %v", err)
	}
	if gateErr.Stage != wizard.StageBasics {
		t.Fatalf("expected basics stage, got %s", gateErr.Stage)
	}
	if len(gateErr.Reasons) < 3 {
		t.Fatalf("expected every failing reason, got %v", gateErr.Reasons)
	}
	if w.Stage() != wizard.StageBasics {
		t.Fatalf("refused advance must not move stage, now at %s", w.Stage())
	}
}

func TestAdvanceThroughAllStages(t *testing.T) {
	w := newWizard(t)
	fillThroughCredits(t, w)

	want := []wizard.Stage{
		wizard.StageTracks,
		wizard.StageDistribution,
		wizard.StageCredits,
		wizard.StageReview,
	}
	for _, expected := range want {
		if err := w.Advance(); err != nil {
			t.Fatalf("Advance to %s failed: %v", expected, err)
		}
		if w.Stage() != expected {
			t.Fatalf("expected stage %s, got %s", expected, w.Stage())
		}
	}

	// Advancing from Review revalidates and stays put.
	if err := w.Advance(); err != nil {
		t.Fatalf("Advance at review failed: %v", err)
	}
	if w.Stage() != wizard.StageReview {
		t.Fatalf("expected to stay at review, got %s", w.Stage())
	}
}

func TestRetreatKeepsData(t *testing.T) {
	w := newWizard(t)
	fillThroughCredits(t, w)
	for i := 0; i < 4; i++ {
		if err := w.Advance(); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
	}

	tracksBefore := len(w.Draft().Tracks)
	for w.Retreat() {
	}
	if w.Stage() != wizard.StageBasics {
		t.Fatalf("expected to land at basics, got %s", w.Stage())
	}
	if len(w.Draft().Tracks) != tracksBefore {
		t.Fatal("retreat must not discard entered data")
	}
	if !w.Draft().HasCoverArt() {
		t.Fatal("retreat must keep the cover art")
	}
	if w.Retreat() {
		t.Fatal("retreat at basics must report false")
	}

	// Forward movement still revalidates each gate.
	if err := w.Advance(); err != nil {
		t.Fatalf("re-advance failed: %v", err)
	}
	if w.Stage() != wizard.StageTracks {
		t.Fatalf("expected tracks stage, got %s", w.Stage())
	}
}

func TestGateReasonsRecomputedAfterMutation(t *testing.T) {
	w := newWizard(t)

	reasons := w.GateReasons(wizard.StageBasics)
	if len(reasons) == 0 {
		t.Fatal("expected basics gate to fail on an empty draft")
	}

	fillBasics(t, w)
	if reasons := w.GateReasons(wizard.StageBasics); len(reasons) != 0 {
		t.Fatalf("expected basics gate to pass after mutation, got %v", reasons)
	}
}

func TestMarkSubmittedRequiresReview(t *testing.T) {
	w := newWizard(t)
	fillThroughCredits(t, w)

	if err := w.MarkSubmitted(); err == nil {
		t.Fatal("expected MarkSubmitted to fail before review")
	}
	for i := 0; i < 4; i++ {
		if err := w.Advance(); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
	}
	if err := w.MarkSubmitted(); err != nil {
		t.Fatalf("MarkSubmitted failed: %v", err)
	}
	if w.State() != wizard.StateSubmitted {
		t.Fatalf("expected submitted state, got %s", w.State())
	}

	if err := w.Mutate(func(d *release.Draft) { d.Title = "changed" }); !errors.Is(err, wizard.ErrFinished) {
		t.Fatalf("expected ErrFinished after submission, got %v", err)
	}
}

func TestCancelStopsFurtherOperations(t *testing.T) {
	w := newWizard(t)
	w.Cancel()
	if w.State() != wizard.StateCancelled {
		t.Fatalf("expected cancelled state, got %s", w.State())
	}
	if _, err := w.AddTracks(acceptAllAudio{}, "/music/one.wav"); !errors.Is(err, wizard.ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
	if err := w.Advance(); !errors.Is(err, wizard.ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
}

func TestResumeRestoresStage(t *testing.T) {
	draft := release.New(release.TypeSingle)
	w := wizard.Resume(draft, wizard.StageDistribution, logging.NewNop())
	if w.Stage() != wizard.StageDistribution {
		t.Fatalf("expected distribution stage, got %s", w.Stage())
	}
	if w.State() != wizard.StateActive {
		t.Fatalf("expected active state, got %s", w.State())
	}
}
