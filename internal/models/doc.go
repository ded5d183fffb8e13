// Package models defines the domain value types shared across the sync pipeline.
//
// Two categories of types:
//
// 1. Extraction DTOs produced by the scrape stage:
//   - [Candidate] : a (title, artist) pair pulled from a rendered page row
//   - [PlaylistMeta] : the scraped playlist's display name
//
// 2. Persisted entities read back from the graph store:
//   - [Song] : a track with its lifecycle state and ordering position
//   - [Video] : a search hit from the video platform
//
// Songs move through exactly two lifecycle states: [StatusPending] after the
// scrape stage writes them, and [StatusMatched] once the match stage has
// resolved a video for them. The transition is one-way.
package models
