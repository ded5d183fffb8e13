// Package youtube talks to the YouTube Data API v3.
//
// [VideoSearcher] is the capability set the pipeline needs from the video
// platform: top-1 search, playlist creation, and playlist population.
// [DataAPIService] is the concrete implementation over
// google.golang.org/api/youtube/v3; tests use the mock in internal/testing.
//
// Calls that can fail transiently go through [withRetries]: up to three
// attempts, repeated immediately, and only for server-side (5xx) errors;
// anything else propagates to the calling stage, which reports it per item.
// Authentication is handled by [Authenticate]: token file → refresh →
// interactive browser consent → persist.
package youtube
