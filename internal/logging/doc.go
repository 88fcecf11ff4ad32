// Package logging provides structured logging for the rentwizard binaries
// using Uber's zap library.
//
// Logging is silent by default so the interactive wizard never mixes log
// lines into its terminal UI. Set the RENTWIZARD_LOG_LEVEL environment
// variable (or pass an explicit level to Initialize) to enable output.
//
// The package exposes zap's field-based API through package-level helpers
// (Info, Debug, Warn, Error) plus a small set of domain-specific helpers
// for HTTP traffic, state transitions, persistence events and lookup
// calls so call sites stay consistent about field names.
package logging
