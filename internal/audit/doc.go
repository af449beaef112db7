// Package audit holds the canonical audit event model and sink implementations
// shared by the root dispatcher and public re-exports.
//
// # What this package must NOT do
//
//   - Import the root edgegate package (no import cycles).
//   - Block callers: sinks own their delivery semantics; the dispatcher owns
//     backpressure.
package audit
