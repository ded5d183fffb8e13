// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"spotisync/internal/models"
)

// MockVideoSearcher is a configurable test double for [youtube.VideoSearcher].
//
// Each func field overrides the corresponding method; a nil field yields the
// zero behavior (no result, empty ID, no error). Calls are recorded in order.
type MockVideoSearcher struct {
	SearchVideoFunc        func(ctx context.Context, query string) (*models.Video, error)
	CreatePlaylistFunc     func(ctx context.Context, title, description string) (string, error)
	AddVideoToPlaylistFunc func(ctx context.Context, playlistID, videoID string) error

	SearchQueries  []string
	CreatedTitles  []string
	AddedVideoIDs  []string
	AddPlaylistIDs []string
}

func (m *MockVideoSearcher) SearchVideo(ctx context.Context, query string) (*models.Video, error) {
	m.SearchQueries = append(m.SearchQueries, query)
	if m.SearchVideoFunc != nil {
		return m.SearchVideoFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockVideoSearcher) CreatePlaylist(ctx context.Context, title, description string) (string, error) {
	m.CreatedTitles = append(m.CreatedTitles, title)
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(ctx, title, description)
	}
	return "", nil
}

func (m *MockVideoSearcher) AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) error {
	m.AddPlaylistIDs = append(m.AddPlaylistIDs, playlistID)
	m.AddedVideoIDs = append(m.AddedVideoIDs, videoID)
	if m.AddVideoToPlaylistFunc != nil {
		return m.AddVideoToPlaylistFunc(ctx, playlistID, videoID)
	}
	return nil
}

// MockSongStore is an in-memory test double for [tasks.SongStore].
type MockSongStore struct {
	Pending      []models.Song
	MatchedIDs   []string
	PlaylistName string

	RecordedMatches []RecordedMatch
	ResetCalled     bool
}

// RecordedMatch captures one RecordMatch call.
type RecordedMatch struct {
	SongID    int64
	VideoID   string
	QueryUsed string
}

func (m *MockSongStore) ListPendingSongs(ctx context.Context) []models.Song {
	return m.Pending
}

func (m *MockSongStore) RecordMatch(ctx context.Context, songID int64, videoID, queryUsed string) {
	m.RecordedMatches = append(m.RecordedMatches, RecordedMatch{
		SongID:    songID,
		VideoID:   videoID,
		QueryUsed: queryUsed,
	})
}

func (m *MockSongStore) GetPlaylistName(ctx context.Context) string {
	if m.PlaylistName == "" {
		return "Spotify Playlist"
	}
	return m.PlaylistName
}

func (m *MockSongStore) ListMatchedVideoIDs(ctx context.Context) []string {
	return m.MatchedIDs
}

func (m *MockSongStore) Reset(ctx context.Context) {
	m.ResetCalled = true
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
