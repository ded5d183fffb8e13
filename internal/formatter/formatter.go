// package formatter renders pipeline results as plain text summaries and report files
package formatter

import (
	"bytes"
	"fmt"
	"os"

	"spotisync/internal/scraper"
	"spotisync/internal/tasks"
)

// ScrapeSummary renders a completed scrape run as plain text.
func ScrapeSummary(report *scraper.Report) []byte {
	var buf bytes.Buffer

	kind := "playlist"
	if report.IsAlbum {
		kind = "album"
	}

	buf.WriteString(fmt.Sprintf("Scraped %s: %s\n", kind, report.PlaylistName))
	buf.WriteString(fmt.Sprintf("Songs found: %d\n", report.SongCount))
	if report.UsedFallback {
		buf.WriteString("Source: oEmbed fallback (page rows were empty)\n")
	}

	return buf.Bytes()
}

// MatchSummary renders a match run as plain text, including the full list of
// songs the platform had no result for.
func MatchSummary(result *tasks.MatchResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Songs processed: %d\n", result.Processed))
	buf.WriteString(fmt.Sprintf("Matched: %d\n", result.Matched))
	if result.Failed > 0 {
		buf.WriteString(fmt.Sprintf("Search errors: %d (still pending, re-run match)\n", result.Failed))
	}
	buf.WriteString(fmt.Sprintf("Not found: %d\n", len(result.NotFound)))

	if len(result.NotFound) > 0 {
		buf.WriteString("\nSongs without a match:\n")
		for i, label := range result.NotFound {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, label))
		}
	}

	return buf.Bytes()
}

// BuildSummary renders a playlist build as plain text with the playlist URL.
func BuildSummary(result *tasks.BuildResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.PlaylistName))
	buf.WriteString(fmt.Sprintf("Videos added: %d/%d\n", result.Added, result.Total))
	if result.Failed > 0 {
		buf.WriteString(fmt.Sprintf("Failed inserts: %d\n", result.Failed))
	}
	if result.PlaylistID != "" {
		buf.WriteString(fmt.Sprintf("URL: https://www.youtube.com/playlist?list=%s\n", result.PlaylistID))
	}

	return buf.Bytes()
}

// WriteNotFoundReport writes the unmatched song labels to a report file,
// one per line. Defaults to not_found.txt. Returns the path written, or ""
// with a nil error when there was nothing to report.
func WriteNotFoundReport(result *tasks.MatchResult, filepath string) (string, error) {
	if len(result.NotFound) == 0 {
		return "", nil
	}
	if filepath == "" {
		filepath = "not_found.txt"
	}

	var buf bytes.Buffer
	for _, label := range result.NotFound {
		buf.WriteString(label)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(filepath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filepath, nil
}
