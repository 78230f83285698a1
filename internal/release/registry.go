package release

import (
	"strings"

	"github.com/google/uuid"

	"presskit/internal/assetcheck"
	"presskit/internal/textutil"
)

// AudioChecker is the validation gate an audio file must pass before it
// becomes a track's asset.
type AudioChecker interface {
	CheckAudio(path string) (assetcheck.AudioInfo, error)
}

// ImageChecker is the validation gate for the cover art slot.
type ImageChecker interface {
	CheckImage(path string) (assetcheck.ImageInfo, error)
}

// Rejection reports one candidate file that failed validation.
type Rejection struct {
	Filename string
	Err      *assetcheck.ValidationError
}

// AddResult reports the outcome of a batch track addition.
type AddResult struct {
	Added    []*TrackEntry
	Rejected []Rejection
}

// AddTracks validates each candidate file independently and appends a new
// track entry for every valid one, in input order. Invalid files are reported
// as rejections and never abort the batch; one bad file must not block the
// rest.
func (d *Draft) AddTracks(checker AudioChecker, paths ...string) AddResult {
	var result AddResult
	for _, path := range paths {
		info, err := checker.CheckAudio(path)
		if err != nil {
			verr, ok := assetcheck.AsValidation(err)
			if !ok {
				verr = &assetcheck.ValidationError{
					Kind:    assetcheck.KindCorruptFile,
					Message: err.Error(),
				}
			}
			result.Rejected = append(result.Rejected, Rejection{Filename: path, Err: verr})
			continue
		}

		title := strings.TrimSpace(info.EmbeddedTitle)
		if title == "" {
			title = textutil.TitleFromFilename(path)
		}

		track := &TrackEntry{
			ID:              uuid.NewString(),
			Title:           title,
			Audio:           newAsset(AssetTrackAudio, path, info.SizeBytes, info.MIMEType),
			DurationSeconds: info.DurationSeconds,
			Explicit:        ExplicitClean,
		}
		d.Tracks = append(d.Tracks, track)
		result.Added = append(result.Added, track)
	}
	if len(result.Added) > 0 {
		d.touch()
	}
	return result
}

// UpdateTrack applies mutate to the identified track. It reports whether the
// track was found; unknown ids leave the draft untouched.
func (d *Draft) UpdateTrack(id string, mutate func(*TrackEntry)) bool {
	track := d.Track(id)
	if track == nil {
		return false
	}
	mutate(track)
	d.touch()
	return true
}

// RemoveTrack deletes the entry with the given id. Remaining tracks keep
// their identities; only their positional order shifts.
func (d *Draft) RemoveTrack(id string) bool {
	for i, track := range d.Tracks {
		if track.ID == id {
			d.Tracks = append(d.Tracks[:i], d.Tracks[i+1:]...)
			d.touch()
			return true
		}
	}
	return false
}

// MoveTrack repositions a track to the given zero-based index, clamped to the
// list bounds.
func (d *Draft) MoveTrack(id string, index int) bool {
	from := -1
	for i, track := range d.Tracks {
		if track.ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return false
	}
	if index < 0 {
		index = 0
	}
	if index >= len(d.Tracks) {
		index = len(d.Tracks) - 1
	}
	if index == from {
		return true
	}

	track := d.Tracks[from]
	d.Tracks = append(d.Tracks[:from], d.Tracks[from+1:]...)
	d.Tracks = append(d.Tracks[:index], append([]*TrackEntry{track}, d.Tracks[index:]...)...)
	d.touch()
	return true
}

// ApplyLegalNameToAll bulk-sets the legal name on every track. This is an
// explicit operation, never automatic propagation, so per-track edits are only
// overwritten when the caller asks for it.
func (d *Draft) ApplyLegalNameToAll(name string) {
	name = strings.TrimSpace(name)
	for _, track := range d.Tracks {
		track.LegalName = name
	}
	d.touch()
}

// SetCoverArt validates the candidate image and installs it in the cover art
// slot, replacing any previous asset. The previous asset is discarded even if
// it was already resolved; a new file means a new upload.
func (d *Draft) SetCoverArt(checker ImageChecker, path string) error {
	info, err := checker.CheckImage(path)
	if err != nil {
		return err
	}
	d.CoverArt = newAsset(AssetCoverArt, path, info.SizeBytes, info.MIMEType)
	d.touch()
	return nil
}
