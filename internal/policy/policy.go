// Package policy decides which identity may perform which storefront action.
// It is a flat rule table with no I/O; ownership of individual wishlist items
// is checked by the wishlist store, not here.
package policy

import (
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Identity is the requester as seen by the policy. The zero value is anonymous.
type Identity struct {
	ID            uint64
	Username      string
	IsAdmin       bool
	Authenticated bool
}

// Anonymous returns the identity of a visitor without a session.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated builds the identity for a logged-in user.
func Authenticated(id uint64, username string, isAdmin bool) Identity {
	return Identity{ID: id, Username: username, IsAdmin: isAdmin, Authenticated: true}
}

// Action enumerates everything a handler may ask the policy about.
type Action string

const (
	ViewCatalog       Action = "view_catalog"
	CreateProduct     Action = "create_product"
	DeleteProduct     Action = "delete_product"
	ManageOwnWishlist Action = "manage_own_wishlist"
	ViewOwnProfile    Action = "view_own_profile"
	RequestReturn     Action = "request_return"
	Logout            Action = "logout"
)

// DenyReason explains a negative decision.
type DenyReason string

const (
	ReasonNone            DenyReason = ""
	ReasonUnauthenticated DenyReason = "unauthenticated"
	ReasonNotAdmin        DenyReason = "not_admin"
	ReasonUnknownAction   DenyReason = "unknown_action"
)

// Decision is the typed allow/deny result consumed by handlers.
type Decision struct {
	Action  Action
	Allowed bool
	Reason  DenyReason
}

// Err converts a denial into the matching typed error, or nil when allowed.
func (d Decision) Err() error {
	switch d.Reason {
	case ReasonNone:
		if d.Allowed {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeForbidden, "action denied")
	case ReasonUnauthenticated:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login required for "+string(d.Action))
	case ReasonNotAdmin:
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required for "+string(d.Action))
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "unknown action "+string(d.Action))
	}
}

type requirement int

const (
	requireNothing requirement = iota
	requireLogin
	requireAdmin
)

var rules = map[Action]requirement{
	ViewCatalog:       requireNothing,
	CreateProduct:     requireAdmin,
	DeleteProduct:     requireAdmin,
	ManageOwnWishlist: requireLogin,
	ViewOwnProfile:    requireLogin,
	RequestReturn:     requireLogin,
	Logout:            requireLogin,
}

// Check evaluates action for identity. Unknown actions are denied.
func Check(identity Identity, action Action) Decision {
	req, ok := rules[action]
	if !ok {
		return Decision{Action: action, Reason: ReasonUnknownAction}
	}
	switch {
	case req == requireNothing:
		return Decision{Action: action, Allowed: true}
	case !identity.Authenticated:
		return Decision{Action: action, Reason: ReasonUnauthenticated}
	case req == requireAdmin && !identity.IsAdmin:
		return Decision{Action: action, Reason: ReasonNotAdmin}
	default:
		return Decision{Action: action, Allowed: true}
	}
}

// CanPerform reports whether identity may perform action.
func CanPerform(identity Identity, action Action) bool {
	return Check(identity, action).Allowed
}
