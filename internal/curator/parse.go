package curator

import (
	"regexp"
	"strings"
)

// MaxSuggestions bounds the number of songs taken from one generation.
const MaxSuggestions = 10

// enumMarker matches a leading list marker like "1." or "12)" with trailing
// whitespace.
var enumMarker = regexp.MustCompile(`^\d+[).]?\s*`)

// ParseSuggestions turns raw generated text into an ordered, bounded list of
// song suggestion lines. Blank lines are dropped, enumeration markers are
// stripped, and the result is truncated to MaxSuggestions entries.
//
// No attempt is made to validate that a line actually names a song; callers
// must tolerate noise.
func ParseSuggestions(raw string) []string {
	songs := make([]string, 0, MaxSuggestions)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		songs = append(songs, strings.TrimSpace(enumMarker.ReplaceAllString(line, "")))
		if len(songs) == MaxSuggestions {
			break
		}
	}

	return songs
}
