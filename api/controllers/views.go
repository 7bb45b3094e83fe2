package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/internal/policy"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

type noticeStore interface {
	Push(ctx context.Context, visitorID string, notices ...string) error
	Pop(ctx context.Context, visitorID string) ([]string, error)
}

// Views renders storefront pages and carries notices across redirects.
type Views struct {
	notices noticeStore
	logg    *logger.Logger
}

// NewViews builds the page renderer. A nil notice store drops notices.
func NewViews(notices noticeStore, logg *logger.Logger) *Views {
	return &Views{notices: notices, logg: logg}
}

// Render writes the named page with any pending notices, followed by extra.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, name string, data any, extra ...string) {
	ctx := r.Context()
	notices := v.pop(ctx)
	notices = append(notices, extra...)
	responses.WritePage(w, status, types.Page{
		Name:    name,
		Notices: notices,
		Viewer:  viewerOf(middleware.IdentityFromContext(ctx)),
		Data:    data,
	})
}

// Redirect queues notices for the visitor and answers 303 to target.
func (v *Views) Redirect(w http.ResponseWriter, r *http.Request, target string, notices ...string) {
	v.push(r.Context(), notices...)
	responses.Redirect(w, r, target)
}

// RequireLogin sends an anonymous visitor to the login page, remembering
// where they were headed.
func (v *Views) RequireLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login?" + url.Values{"next": {r.URL.RequestURI()}}.Encode()
	v.Redirect(w, r, target, pkgerrors.MetadataFor(pkgerrors.CodeUnauthorized).PublicMessage)
}

// Fail writes err as a JSON error envelope.
func (v *Views) Fail(w http.ResponseWriter, r *http.Request, err error) {
	responses.WriteError(r.Context(), v.logg, w, err)
}

// Deny answers a negative policy decision: anonymous visitors go to login,
// everyone else gets fallback.
func (v *Views) Deny(w http.ResponseWriter, r *http.Request, decision policy.Decision, fallback func()) {
	if decision.Reason == policy.ReasonUnauthenticated {
		v.RequireLogin(w, r)
		return
	}
	fallback()
}

func (v *Views) push(ctx context.Context, notices ...string) {
	if v.notices == nil || len(notices) == 0 {
		return
	}
	visitorID := middleware.VisitorIDFromContext(ctx)
	if visitorID == "" {
		return
	}
	if err := v.notices.Push(ctx, visitorID, notices...); err != nil && v.logg != nil {
		v.logg.Error(ctx, "notices.push_failed", err)
	}
}

func (v *Views) pop(ctx context.Context) []string {
	if v.notices == nil {
		return nil
	}
	visitorID := middleware.VisitorIDFromContext(ctx)
	if visitorID == "" {
		return nil
	}
	notices, err := v.notices.Pop(ctx, visitorID)
	if err != nil {
		if v.logg != nil {
			v.logg.Error(ctx, "notices.pop_failed", err)
		}
		return nil
	}
	return notices
}

func viewerOf(identity policy.Identity) types.Viewer {
	return types.Viewer{
		ID:            identity.ID,
		Username:      identity.Username,
		IsAdmin:       identity.IsAdmin,
		Authenticated: identity.Authenticated,
	}
}

// safeNext accepts only local absolute paths so the login form cannot be used
// as an open redirect.
func safeNext(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return raw
}
