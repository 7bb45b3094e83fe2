package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/auth"
	"github.com/angelmondragon/storefront/internal/policy"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

const (
	noticeAccountCreated = "Account created successfully!"
	pageRegister         = "register"
	pageLogin            = "login"
)

type formErrorsView struct {
	Form   map[string]string       `json:"form,omitempty"`
	Errors []validators.FieldError `json:"errors,omitempty"`
	Next   string                  `json:"next,omitempty"`
}

// RegisterPage renders the empty sign-up form.
func RegisterPage(views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, r, http.StatusOK, pageRegister, formErrorsView{})
	}
}

// Register creates an account and sends the visitor on to log in.
func Register(svc auth.Service, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := validators.ReadValues(r)
		if err != nil {
			views.Fail(w, r, err)
			return
		}

		form := validators.RegisterFormFrom(values)
		input, result := validators.ValidateRegister(form)
		if result != nil {
			views.Render(w, r, http.StatusUnprocessableEntity, pageRegister, formErrorsView{
				Form:   map[string]string{"username": form.Username, "email": form.Email},
				Errors: result.Errors,
			})
			return
		}

		_, err = svc.Register(r.Context(), auth.RegisterRequest{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
		})
		switch code := pkgerrors.CodeOf(err); {
		case err == nil:
			views.Redirect(w, r, "/login", noticeAccountCreated)
		case code == pkgerrors.CodeUsernameTaken, code == pkgerrors.CodeEmailTaken:
			views.Redirect(w, r, "/register", pkgerrors.MetadataFor(code).PublicMessage)
		default:
			views.Fail(w, r, err)
		}
	}
}

// LoginPage renders the login form. The next parameter is echoed back so the
// form can post it.
func LoginPage(views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, r, http.StatusOK, pageLogin, formErrorsView{Next: safeNext(r.URL.Query().Get("next"), "")})
	}
}

// Login verifies credentials, sets the session cookie and redirects to the
// catalog or to a local next path.
func Login(svc auth.Service, cookies middleware.CookieOptions, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := validators.ReadValues(r)
		if err != nil {
			views.Fail(w, r, err)
			return
		}

		next := safeNext(firstNonEmpty(values.Get("next"), r.URL.Query().Get("next")), "")
		form := validators.LoginFormFrom(values)
		if result := validators.ValidateLogin(form); result != nil {
			views.Render(w, r, http.StatusUnprocessableEntity, pageLogin, formErrorsView{
				Form:   map[string]string{"username": form.Username},
				Errors: result.Errors,
				Next:   next,
			})
			return
		}

		resp, err := svc.Login(r.Context(), auth.LoginRequest{Username: form.Username, Password: form.Password})
		if err != nil {
			if pkgerrors.Is(err, pkgerrors.CodeInvalidCredentials) {
				views.Render(w, r, http.StatusOK, pageLogin, formErrorsView{
					Form: map[string]string{"username": form.Username},
					Next: next,
				}, pkgerrors.MetadataFor(pkgerrors.CodeInvalidCredentials).PublicMessage)
				return
			}
			views.Fail(w, r, err)
			return
		}

		middleware.SetSessionCookie(w, cookies, resp.AccessToken, resp.ExpiresAt)
		views.Redirect(w, r, safeNext(next, "/catalog"))
	}
}

// Logout revokes the current session and clears the cookie.
func Logout(svc auth.Service, cookies middleware.CookieOptions, views *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		decision := policy.Check(middleware.IdentityFromContext(ctx), policy.Logout)
		if !decision.Allowed {
			views.Deny(w, r, decision, func() { views.Fail(w, r, decision.Err()) })
			return
		}

		if err := svc.Logout(ctx, middleware.AccessIDFromContext(ctx)); err != nil && views.logg != nil {
			views.logg.Error(ctx, "auth.logout_failed", err)
		}
		middleware.ClearSessionCookie(w, cookies)
		views.Redirect(w, r, "/")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
