package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/policy"
	"github.com/angelmondragon/storefront/internal/wishlist"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

const (
	noticeWishlistAdded   = "Added to wishlist."
	noticeWishlistPresent = "Product already in wishlist."
	noticeWishlistRemoved = "Removed from wishlist."
)

type wishlistView struct {
	Items []wishlist.WishlistItemDTO `json:"items"`
}

// AddToWishlist saves a product for the current user.
func AddToWishlist(svc wishlist.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseID(chi.URLParam(r, "productId"))
		if err != nil {
			views.Fail(w, r, err)
			return
		}

		ctx := r.Context()
		identity := middleware.IdentityFromContext(ctx)
		decision := policy.Check(identity, policy.ManageOwnWishlist)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Fail(w, r, decision.Err()) })
			return
		}

		res, err := svc.Add(ctx, identity.ID, productID)
		if err != nil {
			views.Fail(w, r, err)
			return
		}
		notice := noticeWishlistAdded
		if res.Outcome == wishlist.OutcomeAlreadyPresent {
			notice = noticeWishlistPresent
		}
		views.Redirect(w, r, "/catalog", notice)
	}
}

// WishlistList shows the current user's saved products.
func WishlistList(svc wishlist.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		identity := middleware.IdentityFromContext(ctx)
		decision := policy.Check(identity, policy.ManageOwnWishlist)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Fail(w, r, decision.Err()) })
			return
		}

		items, err := svc.ListForUser(ctx, identity.ID)
		if err != nil {
			views.Fail(w, r, err)
			return
		}
		views.Render(w, r, http.StatusOK, "wishlist", wishlistView{Items: items})
	}
}

// RemoveFromWishlist deletes an item the current user owns.
func RemoveFromWishlist(svc wishlist.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseID(chi.URLParam(r, "itemId"))
		if err != nil {
			views.Fail(w, r, err)
			return
		}

		ctx := r.Context()
		identity := middleware.IdentityFromContext(ctx)
		decision := policy.Check(identity, policy.ManageOwnWishlist)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Fail(w, r, decision.Err()) })
			return
		}

		err = svc.Remove(ctx, identity, itemID)
		switch {
		case err == nil:
			views.Redirect(w, r, "/wishlist", noticeWishlistRemoved)
		case pkgerrors.Is(err, pkgerrors.CodeNotOwner):
			views.Redirect(w, r, "/wishlist", pkgerrors.MetadataFor(pkgerrors.CodeNotOwner).PublicMessage)
		default:
			views.Fail(w, r, err)
		}
	}
}
