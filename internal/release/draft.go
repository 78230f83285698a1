package release

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"presskit/internal/textutil"
)

// Draft is the in-progress release: release-wide metadata, the ordered track
// collection, and the single cover art slot. It is the unit of validation,
// upload resolution, and submission.
type Draft struct {
	ID            string
	Type          Type
	Title         string
	PrimaryArtist string
	LabelName     string
	Description   string
	Genres        []string
	CustomGenre   string
	ReleaseDate   time.Time
	// ExistingRelease marks a previously issued release; UPC is required
	// only in that case.
	ExistingRelease bool
	UPC             string
	Platforms       []string
	CoverArt        *Asset
	Tracks          []*TrackEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// New creates an empty draft of the given type.
func New(releaseType Type) *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:        uuid.NewString(),
		Type:      releaseType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetGenres replaces the genre list, primary genre first. Blank entries are
// dropped.
func (d *Draft) SetGenres(genres ...string) {
	d.Genres = textutil.CleanList(genres)
	d.touch()
}

// PrimaryGenre returns the first genre, or the empty string.
func (d *Draft) PrimaryGenre() string {
	if len(d.Genres) == 0 {
		return ""
	}
	return d.Genres[0]
}

// SetPlatforms replaces the distribution platform set.
func (d *Draft) SetPlatforms(platforms ...string) {
	d.Platforms = textutil.CleanList(platforms)
	d.touch()
}

// HasCoverArt reports whether a cover art asset occupies the slot.
func (d *Draft) HasCoverArt() bool {
	return d.CoverArt != nil
}

// Track returns the entry with the given id, or nil.
func (d *Draft) Track(id string) *TrackEntry {
	for _, track := range d.Tracks {
		if track.ID == id {
			return track
		}
	}
	return nil
}

// TrackNumber returns the 1-based position of a track, or 0 when absent.
// Position is recomputed from insertion order, never stored.
func (d *Draft) TrackNumber(id string) int {
	for i, track := range d.Tracks {
		if track.ID == id {
			return i + 1
		}
	}
	return 0
}

// Assets returns the cover art asset (when present) followed by every track's
// audio asset in track order.
func (d *Draft) Assets() []*Asset {
	assets := make([]*Asset, 0, len(d.Tracks)+1)
	if d.CoverArt != nil {
		assets = append(assets, d.CoverArt)
	}
	for _, track := range d.Tracks {
		if track.Audio != nil {
			assets = append(assets, track.Audio)
		}
	}
	return assets
}

// PendingAssets returns every asset still awaiting a successful upload.
func (d *Draft) PendingAssets() []*Asset {
	var pending []*Asset
	for _, asset := range d.Assets() {
		if asset.Pending() {
			pending = append(pending, asset)
		}
	}
	return pending
}

// AllAssetsResolved reports whether every referenced asset has a remote
// reference. A draft with no assets at all is not considered resolved.
func (d *Draft) AllAssetsResolved() bool {
	assets := d.Assets()
	if len(assets) == 0 {
		return false
	}
	for _, asset := range assets {
		if !asset.Resolved() {
			return false
		}
	}
	return true
}

func (d *Draft) touch() {
	d.UpdatedAt = time.Now().UTC()
}

// DisplayTitle returns the draft title or a placeholder for untitled drafts.
func (d *Draft) DisplayTitle() string {
	if title := strings.TrimSpace(d.Title); title != "" {
		return title
	}
	if d.Type == "" {
		return "Untitled Draft"
	}
	return "Untitled " + strings.ToUpper(string(d.Type)[:1]) + string(d.Type)[1:]
}
