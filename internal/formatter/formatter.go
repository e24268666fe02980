// package formatter provides functions to export generated song lists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/showtunes/internal/curator"
	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/shared"
)

// ExportToCSV converts a PlaylistResult to CSV format with columns: Position, Title, Artist
func ExportToCSV(result *models.PlaylistResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Title", "Artist"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range result.Songs {
		parsed := curator.SplitSong(song)
		record := []string{
			strconv.Itoa(i + 1),
			parsed.Title,
			parsed.Artist,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a PlaylistResult to Markdown format
func ExportToMarkdown(result *models.PlaylistResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s Playlist\n\n", result.Show))

	buf.WriteString(fmt.Sprintf("**Genre**: %s\n", result.Genre))
	buf.WriteString(fmt.Sprintf("**Mood**: %s\n", result.Mood))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(result.Songs)))

	buf.WriteString("## Songs\n\n")
	for i, song := range result.Songs {
		parsed := curator.SplitSong(song)
		artistPart := ""
		if parsed.Artist != "" {
			artistPart = fmt.Sprintf(" - %s", parsed.Artist)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, parsed.Title, artistPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a PlaylistResult to plain text format
func ExportToText(result *models.PlaylistResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Show: %s\n", result.Show))
	buf.WriteString(fmt.Sprintf("Genre: %s\n", result.Genre))
	buf.WriteString(fmt.Sprintf("Mood: %s\n", result.Mood))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(result.Songs)))

	for i, song := range result.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, song))
	}

	return buf.Bytes(), nil
}

// ToJSON generates a JSON representation of the song list
func ToJSON(result *models.PlaylistResult) ([]byte, error) {
	return shared.MarshalJSON(result, true)
}

// SummaryToText renders a fulfillment summary as plain text
func SummaryToText(summary *models.FulfillmentSummary) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist created: %s\n", summary.PlaylistID))
	if summary.PlaylistURL != "" {
		buf.WriteString(fmt.Sprintf("URL: %s\n", summary.PlaylistURL))
	}
	buf.WriteString(fmt.Sprintf("Tracks found: %d/%d\n", summary.TracksFound, summary.TotalTracks))

	return buf.Bytes()
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a song list to CSV format with an accompanying metadata JSON file.
//
// Defaults to the show name as the base filename & creates {base}_songs.csv and {base}_metadata.json
func WriteCSVExport(result *models.PlaylistResult, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = slugify(result.Show)
	}

	csvData, err := ExportToCSV(result)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	songsFile := baseFilepath + "_songs.csv"
	if err := os.WriteFile(songsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToJSON(result)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   songsFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a song list to Markdown format.
//
// Defaults to {show}_playlist.md as the filename.
func WriteMarkdownExport(result *models.PlaylistResult, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_playlist.md", slugify(result.Show))
	}

	mdData, err := ExportToMarkdown(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a song list to plain text format.
//
// Defaults to {show}_songs.txt as the filename.
func WriteTextExport(result *models.PlaylistResult, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_songs.txt", slugify(result.Show))
	}

	textData, err := ExportToText(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// slugify converts a show title into a filesystem-friendly base name.
func slugify(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "playlist"
	}
	return string(out)
}
