// Package server implements the rent wizard HTTP API.
//
// The server exposes three surfaces:
//
//   - The step URL contract: GET /{locale}/calculateur/bruxelles/step/{stepKey}
//     resolves a step key to its ordinal. Unknown keys redirect to the
//     first step, and a ?session= query parameter rehydrates a persisted
//     session and is then stripped by redirect.
//   - The session API under /api/session: create, fetch, delete, dispatch
//     actions, and run the reference rent calculation.
//   - A websocket stream at /api/session/{id}/watch that pushes the full
//     session state after every transition.
//
// Sessions live in memory while active and are persisted through the
// session package: saves are debounced, restores are age-bounded, and
// storage failures never surface to clients.
package server
