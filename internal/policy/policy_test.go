package policy

import (
	"testing"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func TestCanPerformRuleTable(t *testing.T) {
	anon := Anonymous()
	user := Authenticated(1, "alice", false)
	admin := Authenticated(2, "root", true)
	// an admin flag without a session must not grant anything
	forged := Identity{ID: 3, IsAdmin: true}

	tests := []struct {
		name     string
		identity Identity
		action   Action
		want     bool
	}{
		{"anon views catalog", anon, ViewCatalog, true},
		{"user views catalog", user, ViewCatalog, true},
		{"anon cannot create", anon, CreateProduct, false},
		{"user cannot create", user, CreateProduct, false},
		{"admin creates", admin, CreateProduct, true},
		{"user cannot delete", user, DeleteProduct, false},
		{"admin deletes", admin, DeleteProduct, true},
		{"unauthenticated admin flag cannot delete", forged, DeleteProduct, false},
		{"anon cannot manage wishlist", anon, ManageOwnWishlist, false},
		{"user manages wishlist", user, ManageOwnWishlist, true},
		{"admin manages wishlist", admin, ManageOwnWishlist, true},
		{"anon cannot view profile", anon, ViewOwnProfile, false},
		{"user views profile", user, ViewOwnProfile, true},
		{"user requests return", user, RequestReturn, true},
		{"anon cannot logout", anon, Logout, false},
		{"unknown action denied", admin, Action("drop_tables"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanPerform(tt.identity, tt.action); got != tt.want {
				t.Fatalf("CanPerform(%+v, %s) = %v, want %v", tt.identity, tt.action, got, tt.want)
			}
		})
	}
}

func TestDecisionErr(t *testing.T) {
	if err := Check(Authenticated(1, "alice", false), ManageOwnWishlist).Err(); err != nil {
		t.Fatalf("allowed decision should not error, got %v", err)
	}

	err := Check(Anonymous(), ViewOwnProfile).Err()
	if !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for anonymous, got %v", err)
	}

	decision := Check(Authenticated(1, "alice", false), DeleteProduct)
	if decision.Reason != ReasonNotAdmin {
		t.Fatalf("expected not_admin reason, got %q", decision.Reason)
	}
	if !pkgerrors.Is(decision.Err(), pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", decision.Err())
	}

	if Check(Anonymous(), Action("nope")).Reason != ReasonUnknownAction {
		t.Fatal("expected unknown action reason")
	}
}
