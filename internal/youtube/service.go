package youtube

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/youtube/v3"

	"spotisync/internal/models"
	"spotisync/internal/shared"
)

// VideoSearcher defines the video-platform capabilities the pipeline consumes.
type VideoSearcher interface {
	// SearchVideo returns the top search hit for the query, or (nil, nil)
	// when the platform has no result.
	SearchVideo(ctx context.Context, query string) (*models.Video, error)

	// CreatePlaylist creates a private playlist and returns its ID.
	CreatePlaylist(ctx context.Context, title, description string) (string, error)

	// AddVideoToPlaylist appends a single video to the playlist.
	AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) error
}

// DataAPIService implements [VideoSearcher] over the YouTube Data API v3.
//
// All calls are paced by a rate limiter to stay inside API quotas; the
// pipeline is sequential by design, so the limiter only enforces spacing.
type DataAPIService struct {
	svc     *youtube.Service
	limiter *rate.Limiter
}

var _ VideoSearcher = (*DataAPIService)(nil)

// NewDataAPIService wraps an authenticated Data API client.
// interval is the minimum delay between calls; zero selects 200ms.
func NewDataAPIService(svc *youtube.Service, interval time.Duration) *DataAPIService {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &DataAPIService{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// SearchVideo runs a top-1 video search for the query.
func (d *DataAPIService) SearchVideo(ctx context.Context, query string) (*models.Video, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := withRetries(func() (*youtube.SearchListResponse, error) {
		return d.svc.Search.List([]string{"snippet"}).
			Q(query).
			MaxResults(1).
			Type("video").
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", shared.ErrAPIRequest, query, err)
	}

	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	if item.Id == nil || item.Id.VideoId == "" {
		return nil, nil
	}

	return &models.Video{
		ID:      item.Id.VideoId,
		Title:   item.Snippet.Title,
		Channel: item.Snippet.ChannelTitle,
	}, nil
}

// CreatePlaylist creates a new private playlist and returns its ID.
func (d *DataAPIService) CreatePlaylist(ctx context.Context, title, description string) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", err
	}

	playlist := &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{
			Title:       title,
			Description: description,
		},
		Status: &youtube.PlaylistStatus{
			PrivacyStatus: "private",
		},
	}

	created, err := withRetries(func() (*youtube.Playlist, error) {
		return d.svc.Playlists.Insert([]string{"snippet", "status"}, playlist).
			Context(ctx).
			Do()
	})
	if err != nil {
		return "", fmt.Errorf("%w: create playlist %q: %v", shared.ErrPlaylistCreate, title, err)
	}
	if created.Id == "" {
		return "", fmt.Errorf("%w: create playlist %q returned no id", shared.ErrPlaylistCreate, title)
	}

	return created.Id, nil
}

// AddVideoToPlaylist appends the video to the end of the playlist.
func (d *DataAPIService) AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}

	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}

	_, err := withRetries(func() (*youtube.PlaylistItem, error) {
		return d.svc.PlaylistItems.Insert([]string{"snippet"}, item).
			Context(ctx).
			Do()
	})
	if err != nil {
		return fmt.Errorf("%w: add video %s: %v", shared.ErrAPIRequest, videoID, err)
	}

	return nil
}
