package curator

import (
	"fmt"
	"strings"

	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/shared"
)

// SystemInstruction is the fixed system message sent with every generation
// request.
const SystemInstruction = "You are a music curator specializing in creating thematic playlists inspired by TV shows."

const showPlaceholder = "{show}"

var promptTemplates = map[models.Genre]string{
	models.GenreDrama:      "Create a playlist that captures the emotional depth and narrative tone of {show}. Focus on songs that reflect the show's core themes and character journeys.",
	models.GenreComedy:     "Generate a playlist with upbeat, witty tracks that match the comedic spirit of {show}. Include songs that feel energetic and lighthearted.",
	models.GenreSciFi:      "Compile a playlist with futuristic, atmospheric, or electronic tracks that complement the sci-fi world of {show}.",
	models.GenreFantasy:    "Create a mystical and epic playlist that captures the magical essence and adventurous spirit of {show}.",
	models.GenreThriller:   "Develop a tense, atmospheric playlist that mirrors the suspense and psychological complexity of {show}.",
	models.GenreHistorical: "Curate a playlist that reflects the historical period and emotional landscape of {show}.",
	models.GenreDefault:    "Generate a playlist that captures the unique mood and essence of {show}, selecting songs that resonate with its overall tone and themes.",
}

// BuildPrompt fills the genre's template with the show title and returns the
// system and user instructions for the generation call. The title is
// substituted verbatim.
//
// Fails only for a genre outside the closed enumeration, which is unreachable
// when the genre came from DetectGenre.
func BuildPrompt(show string, genre models.Genre) (system, user string, err error) {
	template, ok := promptTemplates[genre]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown genre %q", shared.ErrInvalidInput, genre)
	}

	return SystemInstruction, strings.ReplaceAll(template, showPlaceholder, show), nil
}
