// Package gateway executes SQL against a single database adapter with a
// confirmation gate for writes and a time-bounded cache for reads.
//
// Every call goes through Execute:
//
//	START -> CLASSIFIED -> (WITHHELD | CACHE_HIT | EXECUTING) -> (RESULT | ERROR)
//
// Writes are never run without Request.ConfirmWrite. Reads may be served
// from the Store when the entry for the exact query text is younger than
// the TTL. Any successful write clears the whole Store: the gateway has no
// way to know which cached reads a write touched, so it drops all of them.
// Cache keys are the raw query text only; two spellings of the same query
// are two entries.
//
// Database failures never escape Execute. They come back as a Result with
// Status StatusError, and a failed write leaves the cache as it was.
package gateway
