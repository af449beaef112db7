package permission

import (
	edgegate "github.com/lumivoice/edgegate"
)

// Action identifies the kind of access being requested.
type Action uint8

const (
	// ActionRead is a non-mutating access.
	ActionRead Action = iota
	// ActionWrite is a create-or-update access.
	ActionWrite
	// ActionDelete is a removal access.
	ActionDelete
)

// Authorize reports whether p may perform action on a resource owned by
// ownerRef. An empty ownerRef marks the resource as global/unscoped and
// implicitly accessible.
//
// Rules, in priority order: super admins and admins are always allowed;
// otherwise recognized actions require ownerRef to be empty or equal to the
// principal's id. Unrecognized actions are denied.
func Authorize(p edgegate.Principal, action Action, ownerRef string) bool {
	if p.SuperAdmin {
		return true
	}
	if p.Role == edgegate.RoleAdmin {
		return true
	}

	switch action {
	case ActionRead, ActionWrite, ActionDelete:
	default:
		return false
	}

	if ownerRef == "" {
		return true
	}
	return p.ID == ownerRef
}
