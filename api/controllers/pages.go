package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/policy"
	"github.com/angelmondragon/storefront/internal/users"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

type profileView struct {
	User *users.UserDTO `json:"user"`
}

func Home(views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, r, http.StatusOK, "home", nil)
	}
}

func Discounts(views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, r, http.StatusOK, "discounts", nil)
	}
}

// Profile shows the logged-in user's account.
func Profile(svc users.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		identity := middleware.IdentityFromContext(ctx)
		decision := policy.Check(identity, policy.ViewOwnProfile)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Fail(w, r, decision.Err()) })
			return
		}

		user, err := svc.FindByID(ctx, identity.ID)
		if err != nil {
			views.Fail(w, r, err)
			return
		}
		if user == nil {
			views.Fail(w, r, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
			return
		}
		views.Render(w, r, http.StatusOK, "profile", profileView{User: user})
	}
}

// ReturnRequest is a placeholder page for logged-in users; it accepts GET and POST.
func ReturnRequest(views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := policy.Check(middleware.IdentityFromContext(r.Context()), policy.RequestReturn)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Fail(w, r, decision.Err()) })
			return
		}
		views.Render(w, r, http.StatusOK, "return_request", nil)
	}
}
