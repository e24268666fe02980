package curator

import (
	"strings"

	"github.com/desertthunder/showtunes/internal/models"
)

// genreKeywords maps each genre to the substrings that select it. Lookup
// order follows models.Genres so classification stays deterministic when a
// title matches more than one table.
var genreKeywords = map[models.Genre][]string{
	models.GenreDrama:      {"drama", "emotional", "serious", "character study"},
	models.GenreComedy:     {"comedy", "sitcom", "humor", "funny"},
	models.GenreSciFi:      {"sci-fi", "science fiction", "futuristic", "space", "technology"},
	models.GenreFantasy:    {"fantasy", "magic", "mythical", "supernatural"},
	models.GenreThriller:   {"thriller", "suspense", "crime", "mystery"},
	models.GenreHistorical: {"historical", "period", "era", "past"},
}

// DetectGenre classifies a show title by case-insensitive substring match
// against the keyword tables. Returns GenreDefault when nothing matches.
func DetectGenre(show string) models.Genre {
	lowered := strings.ToLower(show)

	for _, genre := range models.Genres {
		for _, keyword := range genreKeywords[genre] {
			if strings.Contains(lowered, keyword) {
				return genre
			}
		}
	}

	return models.GenreDefault
}
