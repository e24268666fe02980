package curator

import (
	"strings"

	"github.com/desertthunder/showtunes/internal/models"
)

// separators lists the delimiters and phrases tried when splitting a
// suggestion into title and artist. Priority order is fixed for
// reproducibility; the first separator present in the string wins.
// " performed by " sits ahead of " by " because it contains it and would
// otherwise never match.
var separators = []string{
	" - ",
	" performed by ",
	" by ",
	" – ", // en dash
	" -- ",
	": ",
	" from ",
}

// SplitSong heuristically splits a suggestion line into title and artist.
//
// The string is split on the first occurrence of the winning separator; any
// later occurrences are rejoined into the artist so a delimiter inside the
// artist name survives. When no separator matches, the whole string becomes
// the title and the artist is left empty. The output is not ground truth.
func SplitSong(suggestion string) models.ParsedSong {
	for _, sep := range separators {
		before, after, found := strings.Cut(suggestion, sep)
		if !found {
			continue
		}

		return models.ParsedSong{
			Title:  strings.TrimSpace(before),
			Artist: strings.TrimSpace(after),
		}
	}

	return models.ParsedSong{Title: strings.TrimSpace(suggestion)}
}

// SearchQuery builds a catalog search query from a parsed song.
func SearchQuery(song models.ParsedSong) string {
	if song.Artist == "" {
		return song.Title
	}
	return song.Title + " " + song.Artist
}
