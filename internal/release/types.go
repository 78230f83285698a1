package release

import "strings"

// Type identifies the kind of release being assembled.
type Type string

const (
	TypeSingle Type = "single"
	TypeEP     Type = "ep"
	TypeAlbum  Type = "album"
)

var allTypes = []Type{TypeSingle, TypeEP, TypeAlbum}

// ParseType converts a string into a known release Type.
func ParseType(value string) (Type, bool) {
	normalized := Type(strings.ToLower(strings.TrimSpace(value)))
	for _, t := range allTypes {
		if t == normalized {
			return t, true
		}
	}
	return "", false
}

// Explicit flags a track's lyrical content.
type Explicit string

const (
	ExplicitClean    Explicit = "clean"
	ExplicitExplicit Explicit = "explicit"
)

// AssetKind distinguishes the cover art slot from track audio.
type AssetKind string

const (
	AssetCoverArt   AssetKind = "cover_art"
	AssetTrackAudio AssetKind = "track_audio"
)
