package submission

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"presskit/internal/catalog"
	"presskit/internal/logging"
	"presskit/internal/notifications"
	"presskit/internal/release"
	"presskit/internal/services"
)

// Identity carries the authenticated artist performing the submission.
type Identity struct {
	ArtistID string
	Token    string
}

// Coordinator owns the submit step: precondition checks, payload assembly,
// and the single catalog creation call.
type Coordinator struct {
	catalog  catalog.Client
	notifier notifications.Service
	logger   *slog.Logger
}

// NewCoordinator builds a coordinator. The notifier may be the noop service.
func NewCoordinator(client catalog.Client, notifier notifications.Service, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		catalog:  client,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "submission"),
	}
}

// Submit validates the draft locally and, when every precondition holds,
// performs the catalog creation call. On acceptance it returns the catalog's
// release identifier; the caller is responsible for marking the draft
// submitted. Precondition failures return *NotReadyError before any network
// traffic; catalog failures return a classified *Error.
func (c *Coordinator) Submit(ctx context.Context, draft *release.Draft, identity Identity) (string, error) {
	ctx = services.WithDraftID(ctx, draft.ID)
	logger := logging.WithContext(ctx, c.logger)

	if strings.TrimSpace(identity.Token) == "" {
		return "", &Error{Kind: KindUnauthenticated}
	}

	var reasons []string
	if !draft.AllAssetsResolved() {
		reasons = append(reasons, "not all assets are uploaded")
	}
	reasons = append(reasons, draft.SubmitBlockers()...)
	if len(reasons) > 0 {
		logger.Debug("submission blocked", logging.Int("reasons", len(reasons)))
		return "", &NotReadyError{Reasons: reasons}
	}

	payload := buildPayload(draft, identity)
	logger.Info("submitting release",
		logging.String("title", draft.DisplayTitle()),
		logging.Int("tracks", len(payload.Tracks)),
	)

	releaseID, err := c.catalog.CreateRelease(ctx, identity.Token, payload)
	if err != nil {
		classified := classify(err)
		logger.Error("submission failed",
			logging.String("kind", string(classified.Kind)),
			logging.Error(err),
		)
		c.notifyAsync(func(ctx context.Context) error {
			return c.notifier.NotifySubmissionFailed(ctx, draft.DisplayTitle(), classified)
		})
		return "", classified
	}

	logger.Info("release accepted", logging.String("release_id", releaseID))
	c.notifyAsync(func(ctx context.Context) error {
		return c.notifier.NotifySubmissionAccepted(ctx, draft.DisplayTitle(), releaseID)
	})
	return releaseID, nil
}

// notifyAsync delivers a notification without blocking the submit path. The
// detached context keeps delivery alive past the caller's cancellation.
func (c *Coordinator) notifyAsync(fn func(context.Context) error) {
	if c.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			c.logger.Warn("notification delivery failed", logging.Error(err))
		}
	}()
}

func buildPayload(draft *release.Draft, identity Identity) catalog.ReleasePayload {
	coverURL, coverID := draft.CoverArt.RemoteRef()
	payload := catalog.ReleasePayload{
		ArtistID:        identity.ArtistID,
		Type:            string(draft.Type),
		Title:           draft.Title,
		PrimaryArtist:   draft.PrimaryArtist,
		LabelName:       draft.LabelName,
		Description:     draft.Description,
		Genres:          draft.Genres,
		CustomGenre:     draft.CustomGenre,
		ReleaseDate:     draft.ReleaseDate.Format("2006-01-02"),
		ExistingRelease: draft.ExistingRelease,
		UPC:             draft.UPC,
		Platforms:       draft.Platforms,
		CoverArtURL:     coverURL,
		CoverArtAssetID: coverID,
		Tracks:          make([]catalog.TrackPayload, 0, len(draft.Tracks)),
	}
	for i, track := range draft.Tracks {
		audioURL, audioID := track.Audio.RemoteRef()
		payload.Tracks = append(payload.Tracks, catalog.TrackPayload{
			Position:        i + 1,
			Title:           track.Title,
			AudioURL:        audioURL,
			AudioAssetID:    audioID,
			DurationSeconds: track.DurationSeconds,
			FeaturedArtists: track.FeaturedArtists,
			Producers:       track.Producers,
			Songwriters:     track.Songwriters,
			Explicit:        track.Explicit == release.ExplicitExplicit,
			Lyrics:          track.Lyrics,
			LegalName:       track.LegalName,
			ISRC:            track.ISRC,
		})
	}
	return payload
}
