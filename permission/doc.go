// Package permission decides read/write/delete authorization for a resolved
// principal against an optional resource owner.
//
// The rule set is a fixed four-step hierarchy evaluated in priority order:
// super admin, admin role, unscoped resource, owner equality. [Authorize] is
// deterministic and total — it never returns an error and treats unrecognized
// actions as the most restrictive case (deny).
//
// # What this package must NOT do
//
//   - Verify credentials (token/ owns that).
//   - Perform I/O or consult external policy stores; the hierarchy is part of
//     the platform's observable contract and is deliberately hard-coded.
package permission
