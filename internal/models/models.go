package models

import "fmt"

// MatchStatus is the lifecycle state of a [Song] with respect to video resolution.
type MatchStatus string

const (
	StatusPending MatchStatus = "PENDING" // scraped, not yet resolved
	StatusMatched MatchStatus = "MATCHED" // resolved to a video by the match stage
)

// Candidate is a single (title, artist) pair extracted from a rendered page row.
type Candidate struct {
	Title  string
	Artist string
}

// Key returns the exact-string identity used for deduplication.
// Dedup is case-sensitive: "Song" and "song" are distinct candidates.
func (c Candidate) Key() string {
	return c.Title + "\x00" + c.Artist
}

// PlaylistMeta carries the scraped playlist's display name.
// The store keeps exactly one instance, overwritten by every scrape.
type PlaylistMeta struct {
	Name string
}

// Song is a persisted track read back from the graph store.
//
// ID is the store-internal node identifier and is only meaningful for
// subsequent update calls against the same store.
type Song struct {
	ID            int64
	Title         string
	Artist        string
	PlaylistIndex int
	Status        MatchStatus
	YouTubeID     string // set iff Status == StatusMatched
	QueryUsed     string // the search query that produced the match
}

// Label renders the song as "title - artist", the form used in not-found reports.
func (s Song) Label() string {
	return fmt.Sprintf("%s - %s", s.Title, s.Artist)
}

// Video is the top search hit returned by the video platform.
type Video struct {
	ID      string
	Title   string
	Channel string
}
