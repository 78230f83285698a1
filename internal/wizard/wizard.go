package wizard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"presskit/internal/logging"
	"presskit/internal/release"
)

// ErrFinished is returned when an operation runs against a wizard whose draft
// has already been submitted or cancelled.
var ErrFinished = errors.New("wizard already finished")

// GateError reports a refused stage transition with every failing reason.
type GateError struct {
	Stage   Stage
	Reasons []string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("stage %s validation failed: %s", e.Stage, strings.Join(e.Reasons, "; "))
}

// Wizard drives a draft through the composition stages.
type Wizard struct {
	draft  *release.Draft
	logger *slog.Logger
	stage  Stage
	state  State
	cache  map[Stage][]string
}

// New starts a wizard at the Basics stage for the given draft.
func New(draft *release.Draft, logger *slog.Logger) *Wizard {
	return &Wizard{
		draft:  draft,
		logger: logging.NewComponentLogger(logger, "wizard"),
		stage:  StageBasics,
		state:  StateActive,
		cache:  make(map[Stage][]string),
	}
}

// Resume starts a wizard at a persisted stage, used when reloading a stored
// draft.
func Resume(draft *release.Draft, stage Stage, logger *slog.Logger) *Wizard {
	w := New(draft, logger)
	if stage >= StageBasics && stage <= StageReview {
		w.stage = stage
	}
	return w
}

// Draft exposes the underlying draft for read-only inspection. Mutations must
// go through Mutate so cached stage validation is invalidated.
func (w *Wizard) Draft() *release.Draft { return w.draft }

// Stage returns the active stage.
func (w *Wizard) Stage() Stage { return w.stage }

// State returns the wizard lifecycle state.
func (w *Wizard) State() State { return w.state }

// Mutate applies fn to the draft and invalidates cached stage validation.
func (w *Wizard) Mutate(fn func(*release.Draft)) error {
	if w.state != StateActive {
		return ErrFinished
	}
	fn(w.draft)
	w.invalidate()
	return nil
}

// AddTracks validates and appends candidate audio files through the draft's
// batch gate, logging each rejection.
func (w *Wizard) AddTracks(checker release.AudioChecker, paths ...string) (release.AddResult, error) {
	if w.state != StateActive {
		return release.AddResult{}, ErrFinished
	}
	result := w.draft.AddTracks(checker, paths...)
	for _, rejection := range result.Rejected {
		w.logger.Warn("rejected audio file",
			logging.String("file", rejection.Filename),
			logging.String("reason_kind", string(rejection.Err.Kind)),
			logging.String("reason", rejection.Err.Message),
			logging.String(logging.FieldEventType, "track_rejected"),
		)
	}
	if len(result.Added) > 0 {
		w.invalidate()
	}
	return result, nil
}

// SetCoverArt validates and installs a cover art candidate.
func (w *Wizard) SetCoverArt(checker release.ImageChecker, path string) error {
	if w.state != StateActive {
		return ErrFinished
	}
	if err := w.draft.SetCoverArt(checker, path); err != nil {
		return err
	}
	w.invalidate()
	return nil
}

// Advance validates the active stage and moves forward when the gate passes.
// A refused transition leaves the stage unchanged and returns a GateError
// listing every failing reason. Advancing from Review revalidates the full
// draft and, on success, stays at Review: submission is a separate step.
func (w *Wizard) Advance() error {
	if w.state != StateActive {
		return ErrFinished
	}
	if reasons := w.gate(w.stage); len(reasons) > 0 {
		w.logger.Info("stage advance refused",
			logging.String("stage", w.stage.String()),
			logging.Int("reasons", len(reasons)),
		)
		return &GateError{Stage: w.stage, Reasons: reasons}
	}
	if w.stage < StageReview {
		w.stage++
		w.logger.Debug("stage advanced", logging.String("stage", w.stage.String()))
	}
	return nil
}

// Retreat moves one stage back. It never fails and never mutates the draft;
// returning to an earlier stage clears nothing. Reports false at Basics.
func (w *Wizard) Retreat() bool {
	if w.state != StateActive || w.stage == StageBasics {
		return false
	}
	w.stage--
	return true
}

// GateReasons returns the failing reasons for a stage, using the cached
// result when no mutation occurred since it was computed. An empty slice
// means the stage passes.
func (w *Wizard) GateReasons(stage Stage) []string {
	return w.gate(stage)
}

// Cancel abandons the draft. The wizard accepts no further operations.
func (w *Wizard) Cancel() {
	if w.state != StateActive {
		return
	}
	w.state = StateCancelled
	w.logger.Info("draft cancelled", logging.String(logging.FieldDraftID, w.draft.ID))
}

// MarkSubmitted records a successful submission. Only valid at Review with a
// passing gate.
func (w *Wizard) MarkSubmitted() error {
	if w.state != StateActive {
		return ErrFinished
	}
	if w.stage != StageReview {
		return fmt.Errorf("cannot submit from stage %s", w.stage)
	}
	if reasons := w.gate(StageReview); len(reasons) > 0 {
		return &GateError{Stage: StageReview, Reasons: reasons}
	}
	w.state = StateSubmitted
	return nil
}

func (w *Wizard) invalidate() {
	for stage := range w.cache {
		delete(w.cache, stage)
	}
}

func (w *Wizard) gate(stage Stage) []string {
	if cached, ok := w.cache[stage]; ok {
		return cached
	}
	reasons := w.validate(stage)
	w.cache[stage] = reasons
	return reasons
}

func (w *Wizard) validate(stage Stage) []string {
	d := w.draft
	var reasons []string
	switch stage {
	case StageBasics:
		if strings.TrimSpace(d.Title) == "" {
			reasons = append(reasons, "release title is required")
		}
		if strings.TrimSpace(d.PrimaryArtist) == "" {
			reasons = append(reasons, "primary artist is required")
		}
		if !d.HasCoverArt() {
			reasons = append(reasons, "cover art is required")
		}
		if len(d.Genres) == 0 {
			reasons = append(reasons, "at least one genre is required")
		}
	case StageTracks:
		if len(d.Tracks) == 0 {
			reasons = append(reasons, "at least one track is required")
		}
		for i, track := range d.Tracks {
			if strings.TrimSpace(track.Title) == "" {
				reasons = append(reasons, fmt.Sprintf("track %d needs a title", i+1))
			}
		}
	case StageDistribution:
		if d.ReleaseDate.IsZero() {
			reasons = append(reasons, "release date is required")
		}
		if d.ExistingRelease && strings.TrimSpace(d.UPC) == "" {
			reasons = append(reasons, "UPC is required for an existing release")
		}
	case StageCredits:
		for i, track := range d.Tracks {
			if strings.TrimSpace(track.LegalName) == "" {
				reasons = append(reasons, fmt.Sprintf("track %d needs a songwriter legal name", i+1))
			}
		}
	case StageReview:
		reasons = d.SubmitBlockers()
	}
	return reasons
}
