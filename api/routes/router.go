package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/auth"
	product "github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/internal/wishlist"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Observability bundles the metrics registry with the dependencies the
// readiness check pings.
type Observability struct {
	Registry *prometheus.Registry
	Checks   map[string]controllers.Pinger
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	views *controllers.Views,
	limiter rateLimiter,
	obs Observability,
	authService auth.Service,
	userService users.Service,
	productService product.Service,
	wishlistService wishlist.Service,
) http.Handler {
	r := chi.NewRouter()
	cookies := middleware.CookieOptionsFrom(cfg)

	var registerer prometheus.Registerer
	if obs.Registry != nil {
		registerer = obs.Registry
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(metrics.NewHTTPMetrics(registerer)),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, obs.Checks))
	})
	if obs.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Group(func(r chi.Router) {
		r.Use(
			middleware.Visitor(cookies, logg),
			middleware.Session(authService, cookies, logg),
		)

		r.Get("/", controllers.Home(views))

		r.Get("/register", controllers.RegisterPage(views))
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.Register(authService, views))
		r.Get("/login", controllers.LoginPage(views))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.Login(authService, cookies, views))
		r.Get("/logout", controllers.Logout(authService, cookies, views))

		r.Get("/catalog", controllers.Catalog(productService, views))
		r.Get("/product/{productId}", controllers.ProductDetail(productService, views))
		r.Get("/add_product", controllers.AddProductPage(views))
		r.Post("/add_product", controllers.AddProduct(productService, views))
		r.Post("/delete_product/{productId}", controllers.DeleteProduct(productService, views))

		r.Get("/add_to_wishlist/{productId}", controllers.AddToWishlist(wishlistService, views))
		r.Get("/wishlist", controllers.WishlistList(wishlistService, views))
		r.Get("/remove_from_wishlist/{itemId}", controllers.RemoveFromWishlist(wishlistService, views))

		r.Get("/profile", controllers.Profile(userService, views))
		r.Get("/discounts", controllers.Discounts(views))
		r.Get("/return", controllers.ReturnRequest(views))
		r.Post("/return", controllers.ReturnRequest(views))
	})

	return r
}
