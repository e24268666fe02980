package models

// Genre is a closed enumeration of show moods used to pick a prompt template.
type Genre string

const (
	GenreDrama      Genre = "drama"
	GenreComedy     Genre = "comedy"
	GenreSciFi      Genre = "scifi"
	GenreFantasy    Genre = "fantasy"
	GenreThriller   Genre = "thriller"
	GenreHistorical Genre = "historical"
	GenreDefault    Genre = "default"
)

// Genres lists every valid Genre in classification order.
//
// The order is significant: the classifier checks keyword tables in this
// order and the first match wins, so a title like "The Dark Historical Drama"
// deterministically resolves to drama.
var Genres = []Genre{
	GenreDrama,
	GenreComedy,
	GenreSciFi,
	GenreFantasy,
	GenreThriller,
	GenreHistorical,
}

// Valid reports whether g is a member of the closed enumeration.
func (g Genre) Valid() bool {
	if g == GenreDefault {
		return true
	}
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

// ParsedSong is the best-effort split of a suggestion line into title and
// artist. Artist is empty when no separator matched; consumers must treat
// that as a common case, not an error.
type ParsedSong struct {
	Title  string
	Artist string
}

// PlaylistResult is the unit handed to the fulfillment engine: one successful
// generation for one show. Songs holds the raw suggestion lines in generation
// order, capped at ten entries.
type PlaylistResult struct {
	Show  string   `json:"show"`
	Genre Genre    `json:"genre"`
	Songs []string `json:"playlist"`
	Mood  string   `json:"mood,omitempty"`
}

// Track represents a catalog track returned from search.
type Track struct {
	ID     string
	Title  string
	Artist string
	Album  string
	URI    string
}

// Playlist represents a remote playlist container.
type Playlist struct {
	ID          string
	Name        string
	Description string
	URL         string
	Public      bool
}

// TrackMatch records the outcome of resolving one suggestion against the
// catalog. A nil Track means "not found", which is an expected outcome.
type TrackMatch struct {
	Query string
	Track *Track
}

// Found reports whether the suggestion resolved to a catalog track.
func (m TrackMatch) Found() bool {
	return m.Track != nil
}

// FulfillmentSummary reports how a playlist fulfillment went. TracksFound is
// always <= TotalTracks; a shortfall is a partial match, not a failure.
type FulfillmentSummary struct {
	PlaylistID  string `json:"playlist_id"`
	PlaylistURL string `json:"playlist_url"`
	TracksFound int    `json:"tracks_found"`
	TotalTracks int    `json:"total_tracks"`
}

// CostEstimate is an advisory token and price estimate for one generation
// call. It never measures an actual request and must not gate one.
type CostEstimate struct {
	EstimatedTokens int     `json:"estimated_tokens"`
	EstimatedCost   float64 `json:"estimated_cost"`
}
