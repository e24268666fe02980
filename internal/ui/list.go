package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/showtunes/internal/curator"
	"github.com/desertthunder/showtunes/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps a generated song line to implement [list.Item].
type songItem struct {
	song   string
	parsed models.ParsedSong
}

func newSongItem(song string) songItem {
	return songItem{song: song, parsed: curator.SplitSong(song)}
}

func (i songItem) FilterValue() string { return i.song }
func (i songItem) Title() string       { return i.parsed.Title }
func (i songItem) Description() string {
	if i.parsed.Artist == "" {
		return "unknown artist"
	}
	return i.parsed.Artist
}
