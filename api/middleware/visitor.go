package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/logger"
)

// Visitor tags every browser with a random id. Notices are queued under it so
// they survive the redirect that follows a form post.
func Visitor(opts CookieOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if c, err := r.Cookie(opts.visitorName()); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					visitorID = parsed.String()
				}
			}
			if visitorID == "" {
				visitorID = uuid.NewString()
				setVisitorCookie(w, opts, visitorID)
			}

			ctx := WithVisitorID(r.Context(), visitorID)
			if logg != nil {
				ctx = logg.WithVisitorID(ctx, visitorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
