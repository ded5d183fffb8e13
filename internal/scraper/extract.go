package scraper

import (
	"strings"

	"spotisync/internal/models"
)

// unknownArtist is the terminal artist fallback.
const unknownArtist = "Unknown"

// pageRow is the raw shape returned by extractRowsScript.
type pageRow struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// finalizeCandidates turns raw page rows into the ordered, deduplicated
// candidate list the scrape stage emits.
//
// Rows with an empty or header-placeholder title ("Title", "#") are skipped.
// An empty artist falls back to the page's default artist on album pages,
// then to "Unknown". Dedup is by exact (title, artist) pair, case-sensitive,
// preserving first-seen order.
func finalizeCandidates(rows []pageRow, defaultArtist string, isAlbum bool) []models.Candidate {
	seen := make(map[string]struct{}, len(rows))
	out := make([]models.Candidate, 0, len(rows))

	for _, row := range rows {
		title := strings.TrimSpace(row.Title)
		if title == "" || title == "Title" || title == "#" {
			continue
		}

		artist := strings.TrimSpace(row.Artist)
		if artist == "" {
			if isAlbum && defaultArtist != "" && defaultArtist != unknownArtist {
				artist = defaultArtist
			} else {
				artist = unknownArtist
			}
		}

		c := models.Candidate{Title: title, Artist: artist}
		if _, dup := seen[c.Key()]; dup {
			continue
		}
		seen[c.Key()] = struct{}{}
		out = append(out, c)
	}

	return out
}

// pageInfo is the raw shape returned by playlistInfoScript.
type pageInfo struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// finalizeInfo applies defaults to raw page metadata.
func finalizeInfo(info pageInfo) (title, defaultArtist string) {
	title = strings.TrimSpace(info.Title)
	if title == "" {
		title = "Spotify Playlist"
	}

	defaultArtist = strings.TrimSpace(info.Artist)
	if defaultArtist == "" {
		defaultArtist = unknownArtist
	}

	return title, defaultArtist
}
