// package tasks implements the match, build, and reset stages of the sync pipeline.
//
// The core abstraction is SyncEngine, which runs each stage against the graph store
// and the video platform. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"spotisync/internal/models"
	"spotisync/internal/shared"
	"spotisync/internal/youtube"
)

// playlistDescription is written on every playlist the build stage creates.
const playlistDescription = "Created from a Spotify playlist"

// MatchResult contains all data from a full match operation.
type MatchResult struct {
	Processed int      `json:"processed"` // Songs pulled from the store in playlist order
	Matched   int      `json:"matched"`   // Songs transitioned to MATCHED
	Failed    int      `json:"failed"`    // Songs whose search errored after retries
	NotFound  []string `json:"not_found"` // Labels of songs the platform had no result for
}

// BuildResult contains all data from a playlist build operation.
type BuildResult struct {
	PlaylistID   string `json:"playlist_id"`   // ID of the created playlist
	PlaylistName string `json:"playlist_name"` // Name the playlist was created with
	Total        int    `json:"total"`         // Matched videos eligible for insertion
	Added        int    `json:"added"`         // Videos successfully appended
	Failed       int    `json:"failed"`        // Insertions that errored after retries
}

// SongStore defines the graph operations the pipeline stages consume.
// Implemented by [graph.Store].
type SongStore interface {
	ListPendingSongs(ctx context.Context) []models.Song
	RecordMatch(ctx context.Context, songID int64, videoID, queryUsed string)
	GetPlaylistName(ctx context.Context) string
	ListMatchedVideoIDs(ctx context.Context) []string
	Reset(ctx context.Context)
}

// SyncEngine defines the pipeline stages that run after a scrape.
type SyncEngine interface {
	// Match searches the video platform for every PENDING song and records
	// each hit. Songs without a result stay PENDING and are reported.
	Match(ctx context.Context, progress chan<- ProgressUpdate) (*MatchResult, error)

	// Build creates a private playlist from all MATCHED songs in playlist
	// order. Individual insert failures are counted, not fatal.
	Build(ctx context.Context, progress chan<- ProgressUpdate) (*BuildResult, error)

	// Reset wipes all pipeline state from the store.
	Reset(ctx context.Context) error
}

// PipelineEngine implements SyncEngine over the graph store and video platform.
type PipelineEngine struct {
	store  SongStore
	videos youtube.VideoSearcher
}

var _ SyncEngine = (*PipelineEngine)(nil)

// NewPipelineEngine creates a PipelineEngine with the provided dependencies.
func NewPipelineEngine(store SongStore, videos youtube.VideoSearcher) *PipelineEngine {
	return &PipelineEngine{store: store, videos: videos}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PipelineEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Match runs a top-1 search per pending song and records each hit.
//
// The search query is the space-joined "title artist" pair, recorded
// alongside the match for auditing; the not-found report uses the song's
// "title - artist" label instead. A song only leaves PENDING when the
// platform returned a video; search errors and empty results both leave it
// eligible for the next run.
func (e *PipelineEngine) Match(ctx context.Context, progress chan<- ProgressUpdate) (*MatchResult, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: store not initialized", shared.ErrServiceUnavailable)
	}
	if e.videos == nil {
		return nil, fmt.Errorf("%w: video service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, listSongsUpdate(1, 1))
	songs := e.store.ListPendingSongs(ctx)

	result := &MatchResult{Processed: len(songs)}
	total := len(songs)

	for i, song := range songs {
		query := song.Title + " " + song.Artist
		e.sendProgress(progress, searchVideoUpdate(i+1, total, query))

		video, err := e.videos.SearchVideo(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			e.sendProgress(progress, searchFailedUpdate(i+1, total, query, err))
			continue
		}
		if video == nil {
			result.NotFound = append(result.NotFound, song.Label())
			continue
		}

		e.store.RecordMatch(ctx, song.ID, video.ID, query)
		result.Matched++
	}

	return result, nil
}

// Build creates a private playlist named after the stored playlist metadata
// and appends every matched video in playlist order.
func (e *PipelineEngine) Build(ctx context.Context, progress chan<- ProgressUpdate) (*BuildResult, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: store not initialized", shared.ErrServiceUnavailable)
	}
	if e.videos == nil {
		return nil, fmt.Errorf("%w: video service not initialized", shared.ErrServiceUnavailable)
	}

	ids := e.store.ListMatchedVideoIDs(ctx)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no matched songs - run match first", shared.ErrPlaylistCreate)
	}

	name := e.store.GetPlaylistName(ctx)
	result := &BuildResult{PlaylistName: name, Total: len(ids)}

	e.sendProgress(progress, createPlaylistUpdate(1, 1, name))
	playlistID, err := e.videos.CreatePlaylist(ctx, name, playlistDescription)
	if err != nil {
		return result, err
	}
	result.PlaylistID = playlistID

	for i, videoID := range ids {
		e.sendProgress(progress, addVideoUpdate(i+1, len(ids), videoID))

		if err := e.videos.AddVideoToPlaylist(ctx, playlistID, videoID); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			e.sendProgress(progress, addFailedUpdate(i+1, len(ids), videoID, err))
			continue
		}
		result.Added++
	}

	return result, nil
}

// Reset wipes all pipeline state from the store.
func (e *PipelineEngine) Reset(ctx context.Context) error {
	if e.store == nil {
		return fmt.Errorf("%w: store not initialized", shared.ErrServiceUnavailable)
	}
	e.store.Reset(ctx)
	return nil
}
