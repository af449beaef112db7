// Package token verifies HMAC-SHA256 bearer credentials and decodes them into a
// strict, typed claims structure.
//
// # Architecture boundaries
//
// This package owns signature verification and claims decoding only. Mapping a
// verified claims set into a Principal, extracting credentials from HTTP
// requests, and all authorization decisions live in the root edgegate package
// and its siblings.
//
// # What this package must NOT do
//
//   - Issue or sign tokens (the platform's identity provider owns issuance).
//   - Perform network or Redis I/O.
//   - Leak which verification sub-check failed beyond the typed errors below;
//     callers collapse all of them to a single unauthenticated outcome.
package token
