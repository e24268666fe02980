package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	DetectGenre Phase = iota
	Generate
	ParseSuggestions
	CreatePlaylist
	SearchTracks
	AddTracks
	Done
)

func (p Phase) String() string {
	switch p {
	case DetectGenre:
		return "detect_genre"
	case Generate:
		return "generate"
	case ParseSuggestions:
		return "parse_suggestions"
	case CreatePlaylist:
		return "create_playlist"
	case SearchTracks:
		return "search_tracks"
	case AddTracks:
		return "add_tracks"
	case Done:
		return "done"
	default:
		return ""
	}
}

func generateUpdate(show string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Generate,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Generating playlist for %s...", show),
	}
}

func parseUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseSuggestions,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Parsed %d song suggestions", count),
		Data:    count,
	}
}

func createPlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist %q...", name),
	}
}

func searchTracksUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Searching for %q...", query),
		Data:    query,
	}
}

func addTracksUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Adding %d tracks...", count),
		Data:    count,
	}
}

func doneUpdate(found, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d of %d tracks", found, total),
	}
}
