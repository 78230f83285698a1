package catalog

// TrackPayload is one track's metadata carrying only resolved remote asset
// references.
type TrackPayload struct {
	Position        int      `json:"position"`
	Title           string   `json:"title"`
	AudioURL        string   `json:"audio_url"`
	AudioAssetID    string   `json:"audio_asset_id"`
	DurationSeconds float64  `json:"duration_seconds"`
	FeaturedArtists []string `json:"featured_artists,omitempty"`
	Producers       []string `json:"producers,omitempty"`
	Songwriters     []string `json:"songwriters,omitempty"`
	Explicit        bool     `json:"explicit"`
	Lyrics          string   `json:"lyrics,omitempty"`
	LegalName       string   `json:"legal_name"`
	ISRC            string   `json:"isrc,omitempty"`
}

// ReleasePayload is the single creation request sent to the persistence API.
type ReleasePayload struct {
	ArtistID        string         `json:"artist_id"`
	Type            string         `json:"type"`
	Title           string         `json:"title"`
	PrimaryArtist   string         `json:"primary_artist"`
	LabelName       string         `json:"label_name,omitempty"`
	Description     string         `json:"description,omitempty"`
	Genres          []string       `json:"genres"`
	CustomGenre     string         `json:"custom_genre,omitempty"`
	ReleaseDate     string         `json:"release_date"`
	ExistingRelease bool           `json:"existing_release"`
	UPC             string         `json:"upc,omitempty"`
	Platforms       []string       `json:"platforms,omitempty"`
	CoverArtURL     string         `json:"cover_art_url"`
	CoverArtAssetID string         `json:"cover_art_asset_id"`
	Tracks          []TrackPayload `json:"tracks"`
}
