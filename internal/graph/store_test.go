package graph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spotisync/internal/models"
	"spotisync/internal/shared"
)

// fakeConn records queries and replays canned results.
type fakeConn struct {
	queries []string
	results map[string]*Result // matched by substring of the query
	err     error
}

func (f *fakeConn) Query(ctx context.Context, cypher string) (*Result, error) {
	f.queries = append(f.queries, cypher)
	if f.err != nil {
		return nil, f.err
	}
	for key, res := range f.results {
		if strings.Contains(cypher, key) {
			return res, nil
		}
	}
	return &Result{}, nil
}

func (f *fakeConn) Close() {}

func (f *fakeConn) lastQuery() string {
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

func newTestStore(conn Conn) *Store {
	logger := shared.NewLogger(&strings.Builder{})
	return NewStore(conn, logger)
}

func TestUpsertSong(t *testing.T) {
	t.Run("builds merge with escaped values", func(t *testing.T) {
		conn := &fakeConn{}
		store := newTestStore(conn)

		store.UpsertSong(context.Background(), "Don't Stop", "Queen's Band", 3)

		q := conn.lastQuery()
		if !strings.Contains(q, "MERGE (s:Song {title: 'Don\\'t Stop', artist: 'Queen\\'s Band'})") {
			t.Errorf("expected sanitized MERGE, got %q", q)
		}
		if !strings.Contains(q, "ON CREATE SET") || !strings.Contains(q, "match_status = 'PENDING'") {
			t.Errorf("expected ON CREATE to set PENDING status, got %q", q)
		}
		if !strings.Contains(q, "ON MATCH SET s.playlist_index = 3") {
			t.Errorf("expected ON MATCH to update only playlist_index, got %q", q)
		}
		if strings.Contains(strings.SplitAfter(q, "ON MATCH SET")[1], "match_status") {
			t.Error("ON MATCH must never touch match_status")
		}
		if !strings.Contains(q, "MERGE (s)-[:PERFORMED_BY]->(art)") {
			t.Errorf("expected PERFORMED_BY relationship, got %q", q)
		}
	})

	t.Run("nil connection is a no-op", func(t *testing.T) {
		store := newTestStore(nil)
		store.UpsertSong(context.Background(), "Song", "Artist", 1)
	})

	t.Run("query error is swallowed", func(t *testing.T) {
		conn := &fakeConn{err: errors.New("connection refused")}
		store := newTestStore(conn)
		store.UpsertSong(context.Background(), "Song", "Artist", 1)
	})
}

func TestSetPlaylistName(t *testing.T) {
	conn := &fakeConn{}
	store := newTestStore(conn)

	store.SetPlaylistName(context.Background(), "Driver's Mix")

	q := conn.lastQuery()
	if !strings.Contains(q, "MERGE (p:PlaylistMeta {id: 1})") {
		t.Errorf("expected singleton merge, got %q", q)
	}
	if !strings.Contains(q, "SET p.name = 'Driver\\'s Mix'") {
		t.Errorf("expected sanitized name, got %q", q)
	}
}

func TestGetPlaylistName(t *testing.T) {
	t.Run("returns stored name", func(t *testing.T) {
		conn := &fakeConn{results: map[string]*Result{
			"PlaylistMeta": {Rows: []Row{{"My Mix"}}},
		}}
		store := newTestStore(conn)

		if got := store.GetPlaylistName(context.Background()); got != "My Mix" {
			t.Errorf("expected My Mix, got %q", got)
		}
	})

	t.Run("default when unset", func(t *testing.T) {
		conn := &fakeConn{}
		store := newTestStore(conn)

		if got := store.GetPlaylistName(context.Background()); got != DefaultPlaylistName {
			t.Errorf("expected default name, got %q", got)
		}
	})

	t.Run("default on query failure", func(t *testing.T) {
		conn := &fakeConn{err: errors.New("down")}
		store := newTestStore(conn)

		if got := store.GetPlaylistName(context.Background()); got != DefaultPlaylistName {
			t.Errorf("expected default name, got %q", got)
		}
	})

	t.Run("default on nil connection", func(t *testing.T) {
		store := newTestStore(nil)

		if got := store.GetPlaylistName(context.Background()); got != DefaultPlaylistName {
			t.Errorf("expected default name, got %q", got)
		}
	})
}

func TestListPendingSongs(t *testing.T) {
	t.Run("maps rows in order", func(t *testing.T) {
		conn := &fakeConn{results: map[string]*Result{
			"PENDING": {Rows: []Row{
				{"Song A", "Artist X", int64(11)},
				{"Song B", "Artist Y", int64(12)},
			}},
		}}
		store := newTestStore(conn)

		songs := store.ListPendingSongs(context.Background())
		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
		if songs[0].Title != "Song A" || songs[0].Artist != "Artist X" || songs[0].ID != 11 {
			t.Errorf("unexpected first song: %+v", songs[0])
		}
		if songs[1].ID != 12 {
			t.Errorf("expected ID 12, got %d", songs[1].ID)
		}
		if songs[0].Status != models.StatusPending {
			t.Errorf("expected PENDING status, got %s", songs[0].Status)
		}

		q := conn.lastQuery()
		if !strings.Contains(q, "ORDER BY s.playlist_index ASC") {
			t.Errorf("expected ascending index order, got %q", q)
		}
	})

	t.Run("empty on failure", func(t *testing.T) {
		conn := &fakeConn{err: errors.New("down")}
		store := newTestStore(conn)

		if songs := store.ListPendingSongs(context.Background()); len(songs) != 0 {
			t.Errorf("expected no songs, got %d", len(songs))
		}
	})
}

func TestRecordMatch(t *testing.T) {
	conn := &fakeConn{}
	store := newTestStore(conn)

	store.RecordMatch(context.Background(), 42, "dQw4w9WgXcQ", "Song A Artist's X")

	q := conn.lastQuery()
	if !strings.Contains(q, "WHERE ID(s) = 42") {
		t.Errorf("expected match by node ID, got %q", q)
	}
	for _, want := range []string{
		"s.match_status = 'MATCHED'",
		"s.youtube_id = 'dQw4w9WgXcQ'",
		"s.query_used = 'Song A Artist\\'s X'",
		"s.matched_at = timestamp()",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("expected combined update to contain %q, got %q", want, q)
		}
	}

	// Idempotent: a second identical call issues the same SET, no new entity.
	store.RecordMatch(context.Background(), 42, "dQw4w9WgXcQ", "Song A Artist's X")
	if len(conn.queries) != 2 || conn.queries[0] != conn.queries[1] {
		t.Error("repeat RecordMatch should issue an identical update")
	}
}

func TestListMatchedVideoIDs(t *testing.T) {
	t.Run("returns ids in index order", func(t *testing.T) {
		conn := &fakeConn{results: map[string]*Result{
			"MATCHED": {Rows: []Row{{"vid1"}, {"vid2"}, {"vid3"}}},
		}}
		store := newTestStore(conn)

		ids := store.ListMatchedVideoIDs(context.Background())
		if len(ids) != 3 || ids[0] != "vid1" || ids[2] != "vid3" {
			t.Errorf("unexpected ids: %v", ids)
		}

		q := conn.lastQuery()
		if !strings.Contains(q, "ORDER BY s.playlist_index ASC") {
			t.Errorf("expected ascending index order, got %q", q)
		}
	})

	t.Run("skips null ids", func(t *testing.T) {
		conn := &fakeConn{results: map[string]*Result{
			"MATCHED": {Rows: []Row{{"vid1"}, {nil}}},
		}}
		store := newTestStore(conn)

		if ids := store.ListMatchedVideoIDs(context.Background()); len(ids) != 1 {
			t.Errorf("expected 1 id, got %v", ids)
		}
	})
}

func TestReset(t *testing.T) {
	conn := &fakeConn{}
	store := newTestStore(conn)

	store.Reset(context.Background())

	if q := conn.lastQuery(); q != "MATCH (n) DETACH DELETE n" {
		t.Errorf("expected detach delete, got %q", q)
	}
}

func TestRowAccessors(t *testing.T) {
	row := Row{"title", int64(7), nil}

	if row.String(0) != "title" {
		t.Errorf("expected title, got %q", row.String(0))
	}
	if row.Int64(1) != 7 {
		t.Errorf("expected 7, got %d", row.Int64(1))
	}
	if row.String(1) != "7" {
		t.Errorf("expected numeric string, got %q", row.String(1))
	}
	if row.String(2) != "" {
		t.Errorf("expected empty for nil cell, got %q", row.String(2))
	}
	if row.Int64(5) != 0 || row.String(5) != "" {
		t.Error("out-of-range access should return zero values")
	}
}
