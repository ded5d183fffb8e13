// Package graph owns all durable pipeline state, persisted in a FalkorDB
// graph reached over the RESP protocol.
//
// [Store] exposes the pipeline's persistence operations (song upsert, playlist
// metadata, pending/matched listings, match recording, full reset) on top of a
// [Conn]. Every read degrades to an empty or default result when the backing
// connection is unavailable or a query fails; writes become logged no-ops.
// Callers never see a store error; the warning is logged exactly once at the
// boundary where the failure is converted to a default value.
//
// Queries are Cypher built by string interpolation, so every untrusted value
// passes through [Sanitize] first.
package graph
