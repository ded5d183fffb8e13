package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	ListSongs Phase = iota
	SearchVideos
	CreatePlaylist
	AddVideos
)

func (p Phase) String() string {
	switch p {
	case ListSongs:
		return "list_songs"
	case SearchVideos:
		return "search_videos"
	case CreatePlaylist:
		return "create_playlist"
	case AddVideos:
		return "add_videos"
	default:
		return ""
	}
}

func listSongsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ListSongs,
		Step:    step,
		Total:   total,
		Message: "Loading pending songs from the store...",
	}
}

func searchVideoUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Searching: %s", step, total, query),
	}
}

func searchFailedUpdate(step, total int, query string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, query, err),
	}
}

func createPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Creating playlist: %s", name),
	}
}

func addVideoUpdate(step, total int, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding video %s", step, total, videoID),
	}
}

func addFailedUpdate(step, total int, videoID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, videoID, err),
	}
}
