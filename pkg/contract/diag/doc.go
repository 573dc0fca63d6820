// Package diag provides the diagnostics sink shared across one parsing
// session.
//
// A Sink is an append-only ordered sequence of Diagnostic entries. It is
// passed by explicit handle to the parser and the semantic validators, so
// the wiring is visible at every call site rather than ambient. Entries
// carry a severity, a message, an optional source location, and an optional
// documentation reference that external tooling may render as a help link.
//
// The session's success signal is derived: no error-severity entries means
// the session succeeded. Diagnostics are reported, never thrown; a failed
// file never aborts the session.
package diag
