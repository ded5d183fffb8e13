package shared

import "fmt"

var (
	// Store errors
	ErrStoreUnavailable = fmt.Errorf("graph store unavailable")

	// Authentication errors
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrAuthFailed         = fmt.Errorf("authentication failed")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistCreate     = fmt.Errorf("playlist creation failed")

	// Scrape errors
	ErrRenderTimeout = fmt.Errorf("page render timed out")
	ErrScrapeFailed  = fmt.Errorf("scrape failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
