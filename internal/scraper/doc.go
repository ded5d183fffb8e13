// Package scraper drives a headless Chrome session over a Spotify playlist or
// album page and emits what it finds into the graph store.
//
// [Spider.Run] walks a fixed state machine: navigate (with heavy resources
// blocked and automation fingerprinting masked) → bounded render wait →
// playlist metadata extraction → scroll to trigger lazy-loaded rows → row
// extraction → candidate finalization and emission → oEmbed fallback when the
// primary pass produced nothing → bounded page close.
//
// The row heuristics live in a single in-page script (see scripts.go) whose
// tier order is load-bearing: it directly determines extraction quality on a
// page whose markup changes without notice. Candidate filtering, artist
// defaulting, and deduplication happen on the Go side so they stay testable.
package scraper
