package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/policy"
	product "github.com/angelmondragon/storefront/internal/products"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

const (
	noticeAdminOnlyDelete = "Only admins can delete products."
	noticeProductDeleted  = "Product deleted successfully."
	pageAddProduct        = "add_product"
)

type catalogView struct {
	Products []product.ProductDTO `json:"products"`
}

type productView struct {
	Product *product.ProductDTO `json:"product"`
}

// Catalog lists every product.
func Catalog(svc product.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if decision := policy.Check(middleware.IdentityFromContext(ctx), policy.ViewCatalog); !decision.Allowed {
			views.Fail(w, r, decision.Err())
			return
		}
		products, err := svc.ListAll(ctx)
		if err != nil {
			views.Fail(w, r, err)
			return
		}
		views.Render(w, r, http.StatusOK, "catalog", catalogView{Products: products})
	}
}

// ProductDetail shows one product or 404s.
func ProductDetail(svc product.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseID(chi.URLParam(r, "productId"))
		if err != nil {
			views.Fail(w, r, err)
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			views.Fail(w, r, err)
			return
		}
		views.Render(w, r, http.StatusOK, "product_detail", productView{Product: dto})
	}
}

// AddProductPage renders the admin product form. Non-admins are sent back to
// the catalog without a notice.
func AddProductPage(views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := policy.Check(middleware.IdentityFromContext(r.Context()), policy.CreateProduct)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Redirect(w, r, "/catalog") })
			return
		}
		views.Render(w, r, http.StatusOK, pageAddProduct, formErrorsView{})
	}
}

// AddProduct validates the admin product form and creates the product.
func AddProduct(svc product.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		identity := middleware.IdentityFromContext(ctx)
		decision := policy.Check(identity, policy.CreateProduct)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Redirect(w, r, "/catalog") })
			return
		}

		values, err := validators.ReadValues(r)
		if err != nil {
			views.Fail(w, r, err)
			return
		}
		form := validators.ProductFormFrom(values)
		input, result := validators.ValidateProduct(form)
		if result != nil {
			views.Render(w, r, http.StatusUnprocessableEntity, pageAddProduct, formErrorsView{
				Form: map[string]string{
					"name":        form.Name,
					"description": form.Description,
					"price":       form.Price,
					"category":    form.Category,
				},
				Errors: result.Errors,
			})
			return
		}

		_, err = svc.Create(ctx, identity, product.CreateProductInput{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Category:    input.Category,
		})
		if err != nil {
			views.Fail(w, r, err)
			return
		}
		views.Redirect(w, r, "/catalog")
	}
}

// DeleteProduct removes a product on behalf of an admin.
func DeleteProduct(svc product.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseID(chi.URLParam(r, "productId"))
		if err != nil {
			views.Fail(w, r, err)
			return
		}

		ctx := r.Context()
		identity := middleware.IdentityFromContext(ctx)
		decision := policy.Check(identity, policy.DeleteProduct)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Redirect(w, r, "/catalog", noticeAdminOnlyDelete) })
			return
		}

		if err := svc.Delete(ctx, identity, id); err != nil {
			if pkgerrors.Is(err, pkgerrors.CodeForbidden) {
				views.Redirect(w, r, "/catalog", noticeAdminOnlyDelete)
				return
			}
			views.Fail(w, r, err)
			return
		}
		views.Redirect(w, r, "/catalog", noticeProductDeleted)
	}
}
