// Package pathmatch tests request paths against anchored glob-like patterns.
//
// Two wildcards are supported: `**` matches any remaining characters including
// `/`, and a single `*` matches within one path segment (no `/`). Everything
// else is literal and case-sensitive. Patterns are compiled once into anchored
// regular expressions; a single-pass scanner distinguishes `**` from `*`
// structurally, so adjacent mixed wildcards (`/a/**/*.js`) never degrade into
// two independent single-segment wildcards.
//
// Matching is against the path component only — callers strip any query string
// before invoking.
package pathmatch
