package edgegate

import "errors"

var (
	// ErrMissingCredential is returned when a request carries no bearer token
	// or session cookie.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential is returned for any signature, structure, or expiry
	// failure. It is indistinguishable from ErrMissingCredential at the HTTP
	// boundary; both surface as a generic 401.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrInsufficientPermission is returned when a verified principal lacks
	// the role required for an admin-subtree request.
	ErrInsufficientPermission = errors.New("insufficient permission")
	// ErrIdentityUnresolvable is returned when a credential yields no usable
	// identifier for cache partitioning. Soft-fail only: invalidation is
	// skipped and the business response is untouched.
	ErrIdentityUnresolvable = errors.New("identity unresolvable")
	// ErrConfigurationMissing is returned when the verification secret is
	// absent. Requests during this condition are treated as unauthenticated.
	ErrConfigurationMissing = errors.New("verification secret missing")
	// ErrInvalidPattern is returned when a glob pattern cannot be compiled.
	ErrInvalidPattern = errors.New("invalid path pattern")
	// ErrGatewayNotReady is returned by methods on a nil or unbuilt Gateway.
	ErrGatewayNotReady = errors.New("gateway not initialized")
)
