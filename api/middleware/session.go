package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront/internal/auth"
	"github.com/angelmondragon/storefront/internal/policy"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Session, error)
}

// Session resolves the requester from the session cookie or a bearer token.
// It never rejects a request: handlers ask the policy what an identity may do.
func Session(resolver sessionResolver, opts CookieOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, fromCookie := tokenFromRequest(r, opts)
			if token == "" || resolver == nil {
				next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, policy.Anonymous(), "")))
				return
			}

			sess, err := resolver.Resolve(ctx, token)
			if err != nil {
				if logg != nil {
					if pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
						logg.Debug(logg.WithField(ctx, "reason", err.Error()), "session.discarded")
					} else {
						logg.Error(ctx, "session.resolve_failed", err)
					}
				}
				if fromCookie && pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
					ClearSessionCookie(w, opts)
				}
				next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, policy.Anonymous(), "")))
				return
			}

			ctx = WithIdentity(ctx, sess.Identity, sess.AccessID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, sess.Identity.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request, opts CookieOptions) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		if token := strings.TrimSpace(raw[7:]); token != "" {
			return token, false
		}
	}
	if c, err := r.Cookie(opts.sessionName()); err == nil {
		if token := strings.TrimSpace(c.Value); token != "" {
			return token, true
		}
	}
	return "", false
}
