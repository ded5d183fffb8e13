package graph

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"spotisync/internal/models"
	"spotisync/internal/shared"
)

// DefaultPlaylistName is returned when no playlist metadata has been stored
// or the store cannot be reached.
const DefaultPlaylistName = "Spotify Playlist"

// Store persists pipeline state in the graph.
//
// A nil connection is a valid degraded state: reads return empty or default
// results and writes are no-ops, each logged once at warn level. This lets
// later stages run (and report cleanly) even when the store is down.
type Store struct {
	conn   Conn
	logger *log.Logger
}

// NewStore creates a Store over the given connection. conn may be nil, in
// which case every operation degrades as described above.
func NewStore(conn Conn, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{conn: conn, logger: logger}
}

// Available reports whether the store has a backing connection.
func (s *Store) Available() bool {
	return s.conn != nil
}

// UpsertSong creates the Song node, its Artist node, and the PERFORMED_BY
// relationship if absent. Re-upserting an existing (title, artist) pair
// updates only playlist_index; match_status and match data are never touched,
// so re-running a scrape cannot erase prior matches.
func (s *Store) UpsertSong(ctx context.Context, title, artist string, index int) {
	if s.conn == nil {
		s.logger.Warn("dropping song upsert", "title", title, "err", shared.ErrStoreUnavailable)
		return
	}

	t := Sanitize(title)
	a := Sanitize(artist)

	cypher := fmt.Sprintf(`
		MERGE (s:Song {title: '%s', artist: '%s'})
		ON CREATE SET s.scraped_at = timestamp(),
		              s.match_status = '%s',
		              s.playlist_index = %d
		ON MATCH SET s.playlist_index = %d
		MERGE (art:Artist {name: '%s'})
		MERGE (s)-[:PERFORMED_BY]->(art)`,
		t, a, models.StatusPending, index, index, a)

	if _, err := s.conn.Query(ctx, cypher); err != nil {
		s.logger.Warn("failed to upsert song", "title", title, "err", err)
	}
}

// SetPlaylistName upserts the singleton PlaylistMeta node. No history is
// kept; the node always reflects the most recent scrape.
func (s *Store) SetPlaylistName(ctx context.Context, name string) {
	if s.conn == nil {
		s.logger.Warn("dropping playlist name", "name", name, "err", shared.ErrStoreUnavailable)
		return
	}

	cypher := fmt.Sprintf("MERGE (p:PlaylistMeta {id: 1}) SET p.name = '%s'", Sanitize(name))
	if _, err := s.conn.Query(ctx, cypher); err != nil {
		s.logger.Warn("failed to save playlist name", "err", err)
	}
}

// GetPlaylistName returns the stored playlist name, or [DefaultPlaylistName]
// when none is set or the query fails.
func (s *Store) GetPlaylistName(ctx context.Context) string {
	if s.conn == nil {
		return DefaultPlaylistName
	}

	res, err := s.conn.Query(ctx, "MATCH (p:PlaylistMeta) RETURN p.name LIMIT 1")
	if err != nil {
		s.logger.Warn("failed to read playlist name, using default", "err", err)
		return DefaultPlaylistName
	}

	if len(res.Rows) == 0 || res.Rows[0].String(0) == "" {
		return DefaultPlaylistName
	}
	return res.Rows[0].String(0)
}

// ListPendingSongs returns all PENDING songs ordered ascending by
// playlist_index. Each song carries the node ID used by [Store.RecordMatch].
func (s *Store) ListPendingSongs(ctx context.Context) []models.Song {
	if s.conn == nil {
		return nil
	}

	cypher := fmt.Sprintf(
		"MATCH (s:Song) WHERE s.match_status = '%s' "+
			"RETURN s.title, s.artist, ID(s) "+
			"ORDER BY s.playlist_index ASC", models.StatusPending)

	res, err := s.conn.Query(ctx, cypher)
	if err != nil {
		s.logger.Warn("failed to list pending songs", "err", err)
		return nil
	}

	songs := make([]models.Song, 0, len(res.Rows))
	for _, row := range res.Rows {
		songs = append(songs, models.Song{
			ID:     row.Int64(2),
			Title:  row.String(0),
			Artist: row.String(1),
			Status: models.StatusPending,
		})
	}
	return songs
}

// RecordMatch transitions the identified song to MATCHED, writing youtube_id,
// query_used, and matched_at as a single update. The transition is one-way;
// calling it again with the same video ID leaves the node unchanged in state.
func (s *Store) RecordMatch(ctx context.Context, songID int64, videoID, queryUsed string) {
	if s.conn == nil {
		s.logger.Warn("dropping match", "song_id", songID, "err", shared.ErrStoreUnavailable)
		return
	}

	cypher := fmt.Sprintf(`
		MATCH (s:Song) WHERE ID(s) = %d
		SET s.match_status = '%s',
		    s.youtube_id = '%s',
		    s.query_used = '%s',
		    s.matched_at = timestamp()`,
		songID, models.StatusMatched, Sanitize(videoID), Sanitize(queryUsed))

	if _, err := s.conn.Query(ctx, cypher); err != nil {
		s.logger.Warn("failed to record match", "song_id", songID, "err", err)
	}
}

// ListMatchedVideoIDs returns the youtube_ids of all MATCHED songs ordered
// ascending by playlist_index, preserving source track order end-to-end.
func (s *Store) ListMatchedVideoIDs(ctx context.Context) []string {
	if s.conn == nil {
		return nil
	}

	cypher := fmt.Sprintf(
		"MATCH (s:Song) WHERE s.match_status = '%s' "+
			"RETURN s.youtube_id "+
			"ORDER BY s.playlist_index ASC", models.StatusMatched)

	res, err := s.conn.Query(ctx, cypher)
	if err != nil {
		s.logger.Warn("failed to list matched videos", "err", err)
		return nil
	}

	ids := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		if id := row.String(0); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Reset deletes every node and relationship in the graph. Irreversible.
// Failure is logged, not retried.
func (s *Store) Reset(ctx context.Context) {
	if s.conn == nil {
		s.logger.Warn("store unavailable, nothing to reset")
		return
	}

	if _, err := s.conn.Query(ctx, "MATCH (n) DETACH DELETE n"); err != nil {
		s.logger.Error("failed to reset store", "err", err)
		return
	}
	s.logger.Info("store cleared")
}
