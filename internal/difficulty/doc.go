// Package difficulty talks to the remote address lookup service that
// maps a Brussels street to its difficulty index, the location factor
// of the rent grid formula.
//
// The service is opaque to the rest of the application: every call
// produces an Envelope with a success flag, the index value, and a
// result code. Incomplete addresses are rejected locally with
// INSUFFICIENT_QUERY before any network traffic.
package difficulty
