package release

import "strings"

// TrackEntry is one audio recording within a draft. Its identifier is
// assigned at creation and never reused; position within the release is the
// entry's index in Draft.Tracks, not a stored field.
type TrackEntry struct {
	ID              string
	Title           string
	Audio           *Asset
	DurationSeconds float64
	FeaturedArtists []string
	Producers       []string
	Songwriters     []string
	Explicit        Explicit
	Lyrics          string
	LegalName       string
	ISRC            string
}

// Complete reports whether the track satisfies the per-track submission
// invariant: audio attached, title and legal name non-empty.
func (t *TrackEntry) Complete() bool {
	if t == nil || t.Audio == nil {
		return false
	}
	return strings.TrimSpace(t.Title) != "" && strings.TrimSpace(t.LegalName) != ""
}
