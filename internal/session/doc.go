// Package session persists in-progress wizard sessions.
//
// A Manager serializes the full form state to a Store under one fixed
// storage key. Saves are debounced behind a single superseding timer;
// restores are age-bounded (24h by default) and optionally require an
// exact session id match. Storage and serialization failures are logged
// and swallowed: persistence is opportunistic and never corrupts or
// blocks the in-memory state.
//
// Two stores ship with the package: MemoryStore for the HTTP server
// (one scope per client, gone on process exit) and FileStore for the
// terminal wizard (resume after an interrupted run).
package session
