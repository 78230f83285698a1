package release

import (
	"fmt"
	"strings"
)

// SubmitBlockers evaluates the full submittability invariant and returns one
// reason per unmet rule. An empty slice means the draft may be submitted.
func (d *Draft) SubmitBlockers() []string {
	var reasons []string
	if strings.TrimSpace(d.Title) == "" {
		reasons = append(reasons, "release title is required")
	}
	if strings.TrimSpace(d.PrimaryArtist) == "" {
		reasons = append(reasons, "primary artist is required")
	}
	if d.ReleaseDate.IsZero() {
		reasons = append(reasons, "release date is required")
	}
	if len(d.Genres) == 0 {
		reasons = append(reasons, "at least one genre is required")
	}
	if d.CoverArt == nil {
		reasons = append(reasons, "cover art is required")
	}
	if d.ExistingRelease && strings.TrimSpace(d.UPC) == "" {
		reasons = append(reasons, "UPC is required for an existing release")
	}
	if len(d.Tracks) == 0 {
		reasons = append(reasons, "at least one track is required")
	}
	for i, track := range d.Tracks {
		if !track.Complete() {
			reasons = append(reasons, fmt.Sprintf("track %d (%s) is incomplete", i+1, trackLabel(track)))
		}
	}
	return reasons
}

// Submittable reports whether the full submission invariant holds.
func (d *Draft) Submittable() bool {
	return len(d.SubmitBlockers()) == 0
}

func trackLabel(track *TrackEntry) string {
	if track == nil {
		return "unknown"
	}
	if title := strings.TrimSpace(track.Title); title != "" {
		return title
	}
	if track.Audio != nil {
		return track.Audio.DisplayName()
	}
	return track.ID
}
